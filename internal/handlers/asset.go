package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/services"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// AssetHandler handles the media asset CMS
type AssetHandler struct {
	store    storage.Store
	uploader *services.UploadClient
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(store storage.Store, uploader *services.UploadClient) *AssetHandler {
	return &AssetHandler{
		store:    store,
		uploader: uploader,
	}
}

// List returns all assets
func (h *AssetHandler) List(c *fiber.Ctx) error {
	assets, err := h.store.GetAllAssets()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assets",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"assets":  assets,
		"count":   len(assets),
	})
}

// Upload stores a new media file through the upload service and records it
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}

	folder := c.FormValue("folder", "gallery")
	resourceType := c.FormValue("resource_type", "image")

	result, err := h.uploader.Upload(data, fileHeader.Filename, folder, resourceType)
	if err != nil {
		log.Printf("Asset upload failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Upload service unavailable",
		})
	}

	asset := &models.Asset{
		Title:        c.FormValue("title", fileHeader.Filename),
		URL:          result.URL,
		PublicID:     result.PublicID,
		Folder:       folder,
		ResourceType: resourceType,
		UploadedBy:   "admin",
	}

	created, err := h.store.CreateAsset(asset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record asset",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"asset":   created,
	})
}

// Delete removes an asset record
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	assetID := c.Params("assetID")

	if err := h.store.DeleteAsset(assetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Asset not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete asset",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

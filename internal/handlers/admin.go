package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SevaSetu/sevasetu-backend/internal/config"
	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/services"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// AdminHandler handles admin login and the donation review queue
type AdminHandler struct {
	store           storage.Store
	donationService *services.DonationService
	cfg             *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store, donationService *services.DonationService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		store:           store,
		donationService: donationService,
		cfg:             cfg,
	}
}

// Login exchanges the admin password for a session token
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if h.cfg.AdminPassword == "" || req.Password != h.cfg.AdminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		log.Printf("Failed to sign admin token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   signed,
	})
}

// GetDonations lists donations, optionally filtered by status
func (h *AdminHandler) GetDonations(c *fiber.Ctx) error {
	status := c.Query("status")

	var donations []*models.Donation
	var err error
	if status != "" {
		donations, err = h.store.GetDonationsByStatus(status)
	} else {
		donations, err = h.store.GetAllDonations()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch donations",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"donations": donations,
		"count":     len(donations),
	})
}

// GetPendingDonations returns the manual review queue
func (h *AdminHandler) GetPendingDonations(c *fiber.Ctx) error {
	donations, err := h.store.GetDonationsByStatus(models.DonationStatusPending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending donations",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"donations": donations,
		"count":     len(donations),
	})
}

// UpdateDonationStatus verifies or rejects a donation
func (h *AdminHandler) UpdateDonationStatus(c *fiber.Ctx) error {
	donationID := c.Params("donationID")

	var req struct {
		Status     string `json:"status"` // "verified" or "rejected"
		AdminNotes string `json:"admin_notes"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Status != models.DonationStatusVerified && req.Status != models.DonationStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be 'verified' or 'rejected'",
		})
	}

	donation, err := h.donationService.UpdateStatus(donationID, req.Status, req.AdminNotes)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Donation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update donation",
		})
	}

	log.Printf("Donation %s %s by admin", donationID, req.Status)

	return c.JSON(fiber.Map{
		"success":  true,
		"donation": donation,
	})
}

// GetSubscribers lists newsletter subscribers for export
func (h *AdminHandler) GetSubscribers(c *fiber.Ctx) error {
	subscribers, err := h.store.GetAllSubscribers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch subscribers",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"subscribers": subscribers,
		"count":       len(subscribers),
	})
}

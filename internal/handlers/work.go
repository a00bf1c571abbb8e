package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// WorkHandler handles the works/projects CMS
type WorkHandler struct {
	store storage.Store
}

// NewWorkHandler creates a new work handler
func NewWorkHandler(store storage.Store) *WorkHandler {
	return &WorkHandler{store: store}
}

// ListPublished returns published works for the public site
func (h *WorkHandler) ListPublished(c *fiber.Ctx) error {
	works, err := h.store.GetPublishedWorks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch works",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"works":   works,
		"count":   len(works),
	})
}

// ListAll returns every work including drafts (admin)
func (h *WorkHandler) ListAll(c *fiber.Ctx) error {
	works, err := h.store.GetAllWorks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch works",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"works":   works,
		"count":   len(works),
	})
}

// Create adds a work
func (h *WorkHandler) Create(c *fiber.Ctx) error {
	work := &models.Work{}
	if err := c.BodyParser(work); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if work.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	created, err := h.store.CreateWork(work)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create work",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"work":    created,
	})
}

// Update modifies a work
func (h *WorkHandler) Update(c *fiber.Ctx) error {
	workID := c.Params("workID")

	work, err := h.store.GetWork(workID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Work not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch work",
		})
	}

	if err := c.BodyParser(work); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	work.WorkID = workID

	if err := h.store.UpdateWork(work); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update work",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"work":    work,
	})
}

// Delete removes a work
func (h *WorkHandler) Delete(c *fiber.Ctx) error {
	workID := c.Params("workID")

	if err := h.store.DeleteWork(workID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Work not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete work",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

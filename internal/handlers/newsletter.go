package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// NewsletterHandler handles public newsletter signups
type NewsletterHandler struct {
	store storage.Store
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(store storage.Store) *NewsletterHandler {
	return &NewsletterHandler{store: store}
}

// Subscribe registers a new subscriber
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email address is required",
		})
	}

	if existing, err := h.store.GetSubscriberByEmail(email); err == nil && existing != nil {
		// Already subscribed - treat as success, don't leak subscriber state
		return c.JSON(fiber.Map{
			"success": true,
		})
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to subscribe",
		})
	}

	if _, err := h.store.CreateSubscriber(&models.Subscriber{
		Email:  email,
		Name:   req.Name,
		Active: true,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to subscribe",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
	})
}

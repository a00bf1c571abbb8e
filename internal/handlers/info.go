package handlers

import "github.com/gofiber/fiber/v2"

// InfoHandler serves the root welcome endpoint
type InfoHandler struct {
	Version string
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(version string) *InfoHandler {
	return &InfoHandler{
		Version: version,
	}
}

// Root returns a welcome message with the main endpoint groups
func (h *InfoHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to SevaSetu Backend!",
		"version": h.Version,
		"endpoints": fiber.Map{
			"health":     "/health",
			"donations":  "/api/donations",
			"team":       "/api/team",
			"works":      "/api/works",
			"ledger":     "/api/ledger",
			"newsletter": "/api/newsletter/subscribe",
			"admin":      "/admin",
		},
	})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// TeamHandler handles the team CMS
type TeamHandler struct {
	store storage.Store
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(store storage.Store) *TeamHandler {
	return &TeamHandler{store: store}
}

// List returns all team members for the public page
func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.store.GetAllTeamMembers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch team",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    members,
		"count":   len(members),
	})
}

// Create adds a team member
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	member := &models.TeamMember{Active: true}
	if err := c.BodyParser(member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if member.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	created, err := h.store.CreateTeamMember(member)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create team member",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"member":  created,
	})
}

// Update modifies a team member
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	memberID := c.Params("memberID")

	member, err := h.store.GetTeamMember(memberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team member not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch team member",
		})
	}

	if err := c.BodyParser(member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	member.MemberID = memberID

	if err := h.store.UpdateTeamMember(member); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update team member",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}

// Delete removes a team member
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	memberID := c.Params("memberID")

	if err := h.store.DeleteTeamMember(memberID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team member not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete team member",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

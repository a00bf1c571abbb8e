package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
	"github.com/SevaSetu/sevasetu-backend/internal/utils"
)

// LedgerHandler handles the public transparency ledger
type LedgerHandler struct {
	store storage.Store
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(store storage.Store) *LedgerHandler {
	return &LedgerHandler{store: store}
}

// List returns all ledger entries with running totals
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	entries, err := h.store.GetLedgerEntries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch ledger",
		})
	}

	summary, err := h.store.GetLedgerSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch ledger summary",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entries": entries,
		"summary": summary,
	})
}

// Create records a new ledger entry (admin)
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Type        string      `json:"type"`
		Description string      `json:"description"`
		Amount      interface{} `json:"amount"`
		Category    string      `json:"category"`
		ProofURL    string      `json:"proof_url"`
		EntryDate   string      `json:"entry_date"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Type != models.LedgerTypeIncome && req.Type != models.LedgerTypeExpense {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be 'income' or 'expense'",
		})
	}

	amount := utils.NormalizeAmount(req.Amount)
	if amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be greater than zero",
		})
	}

	entry := &models.LedgerEntry{
		Type:        req.Type,
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		ProofURL:    req.ProofURL,
		EntryDate:   utils.NormalizeDate(req.EntryDate),
		RecordedBy:  "admin",
	}

	created, err := h.store.CreateLedgerEntry(entry)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record ledger entry",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"entry":   created,
	})
}

package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/services"
)

const maxReceiptBytes = 10 << 20 // 10 MB

// DonationHandler handles donation intake and public donation reads
type DonationHandler struct {
	donationService *services.DonationService
	extractor       services.ReceiptExtractor
	uploader        *services.UploadClient
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService, extractor services.ReceiptExtractor, uploader *services.UploadClient) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		extractor:       extractor,
		uploader:        uploader,
	}
}

// Submit accepts a donation claim, either as a JSON manual entry or as a
// multipart form carrying a receipt screenshot
func (h *DonationHandler) Submit(c *fiber.Ctx) error {
	submission := &models.DonationSubmission{}
	var receiptFields *models.ReceiptFields
	receiptURL := ""

	if fileHeader, err := c.FormFile("receipt"); err == nil {
		// Receipt upload path: multipart form fields + image
		submission.DonorName = c.FormValue("donor_name")
		submission.Phone = c.FormValue("phone")
		submission.Amount = c.FormValue("amount")
		submission.TransactionID = c.FormValue("transaction_id")
		submission.Message = c.FormValue("message")

		if fileHeader.Size > maxReceiptBytes {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Receipt image too large (max 10MB)",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not read receipt image",
			})
		}
		image, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not read receipt image",
			})
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		// The upload collaborator is best-effort: losing the stored copy
		// does not block intake, the extraction still runs on the bytes
		if h.uploader != nil {
			if result, err := h.uploader.Upload(image, fileHeader.Filename, "receipts", "image"); err != nil {
				log.Printf("Receipt upload failed (continuing without stored copy): %v", err)
			} else {
				receiptURL = result.URL
			}
		}

		receiptFields, err = h.extractor.ExtractReceipt(image, mimeType)
		if err != nil {
			var extractionErr *services.ExtractionServiceError
			if errors.As(err, &extractionErr) {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
					"error":     "Receipt could not be processed right now. Please retry, or submit the details manually.",
					"retryable": true,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process receipt",
			})
		}
	} else {
		// Manual entry path: plain JSON body
		if err := c.BodyParser(submission); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	donation, err := h.donationService.Create(submission, receiptFields, receiptURL)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
				"field": validationErr.Field,
			})
		}
		var dupErr *services.DuplicateTransactionError
		if errors.As(err, &dupErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     "This transaction has already been submitted",
				"duplicate": true,
			})
		}
		log.Printf("Failed to create donation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save donation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"donation": donation,
	})
}

// GetVerifiedDonors returns verified donations for the public showcase,
// with contact details stripped
func (h *DonationHandler) GetVerifiedDonors(c *fiber.Ctx) error {
	donations, err := h.donationService.ListVerified()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch donors",
		})
	}

	type donorEntry struct {
		DonorName string  `json:"donor_name"`
		Amount    float64 `json:"amount"`
		Message   string  `json:"message"`
	}

	donors := make([]donorEntry, 0, len(donations))
	for _, d := range donations {
		donors = append(donors, donorEntry{
			DonorName: d.DonorName,
			Amount:    d.Amount,
			Message:   d.Message,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"donors":  donors,
		"count":   len(donors),
	})
}

// GetStats returns the aggregate donation counters
func (h *DonationHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.donationService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

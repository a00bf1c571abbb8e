package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SevaSetu/sevasetu-backend/internal/utils"
)

// Donation represents a single donation claim with its verification state
type Donation struct {
	gorm.Model

	DonationID string `json:"donation_id" gorm:"uniqueIndex"`

	// Claimed fields (user-supplied or auto-filled from the receipt)
	DonorName     string  `json:"donor_name"`
	Phone         string  `json:"phone"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id" gorm:"uniqueIndex"` // sole de-duplication key
	Message       string  `json:"message"`

	// Receipt reference (opaque URL from the upload service)
	ReceiptURL string `json:"receipt_url"`

	// Extracted fields - only populated when receipt extraction succeeds
	SenderName         *string  `json:"sender_name,omitempty"`
	SenderPhone        *string  `json:"sender_phone,omitempty"`
	SenderAccount      *string  `json:"sender_account,omitempty"`
	SenderUPIID        *string  `json:"sender_upi_id,omitempty"`
	RecipientName      *string  `json:"recipient_name,omitempty"`
	RecipientUPIID     *string  `json:"recipient_upi_id,omitempty"`
	PaymentStatusLabel *string  `json:"payment_status_label,omitempty"`
	PaymentTimestamp   *string  `json:"payment_timestamp,omitempty"` // free text as printed on the receipt
	PaymentMethod      *string  `json:"payment_method,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty"`
	ExtractionNotes    *string  `json:"extraction_notes,omitempty"`

	// Set when the extractor substituted a degraded result during a
	// vision-service outage, so admins know the data was not machine-read
	ExtractionDegraded bool `json:"extraction_degraded" gorm:"default:false"`

	Status                  string `json:"status" gorm:"default:pending_verification;index"`
	ReceiptProcessingStatus string `json:"receipt_processing_status" gorm:"default:not_processed"`

	AdminNotes string     `json:"admin_notes"`
	VerifiedAt *time.Time `json:"verified_at"`
}

// Donation status constants
const (
	DonationStatusPending  = "pending_verification"
	DonationStatusVerified = "verified"
	DonationStatusRejected = "rejected"

	ReceiptNotProcessed = "not_processed"
	ReceiptProcessing   = "processing"
	ReceiptCompleted    = "completed"
)

// BeforeCreate hook to auto-generate DonationID and normalize data
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.DonationID == "" {
		d.DonationID = fmt.Sprintf("DON%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	d.TransactionID = strings.TrimSpace(d.TransactionID)

	d.Phone = utils.NormalizePhone(d.Phone)

	if d.Status == "" {
		d.Status = DonationStatusPending
	}
	if d.ReceiptProcessingStatus == "" {
		d.ReceiptProcessingStatus = ReceiptNotProcessed
	}

	return nil
}

// DonationSubmission is the intake payload for a new donation
type DonationSubmission struct {
	DonorName     string      `json:"donor_name" validate:"required"`
	Phone         string      `json:"phone"`
	Amount        interface{} `json:"amount" validate:"required"`
	TransactionID string      `json:"transaction_id"`
	Message       string      `json:"message"`
}

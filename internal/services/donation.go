package services

import (
	"fmt"
	"log"
	"time"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
	"github.com/SevaSetu/sevasetu-backend/internal/utils"
)

// Notifier dispatches donation notifications to the NGO admin.
// Implementations are fire-and-forget collaborators: failures are logged,
// never surfaced to the submitter.
type Notifier interface {
	NotifyDonation(donation *models.Donation) error
}

// DonationService persists donation records and exposes the read/aggregate
// queries the presentation layers consume
type DonationService struct {
	store    storage.Store
	verifier *VerificationService
	notifier Notifier
}

// NewDonationService creates a new donation service
func NewDonationService(store storage.Store, verifier *VerificationService, notifier Notifier) *DonationService {
	return &DonationService{
		store:    store,
		verifier: verifier,
		notifier: notifier,
	}
}

// Create validates a submission, runs the verification decider, persists
// the donation and fires the admin notification. Extracted receipt fields
// may be nil (manual entry). Duplicates are rejected before anything is
// written so they never accumulate in the store.
func (s *DonationService) Create(sub *models.DonationSubmission, fields *models.ReceiptFields, receiptURL string) (*models.Donation, error) {
	amount := utils.NormalizeAmount(sub.Amount)
	transactionID := sub.TransactionID

	// Auto-fill claimed fields from a confident extraction
	if fields != nil && !fields.Degraded && s.verifier.IsHighConfidence(fields.Confidence) {
		if transactionID == "" {
			transactionID = fields.TransactionID
		}
		if amount <= 0 {
			amount = utils.NormalizeAmount(fields.Amount)
		}
	}

	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "donation amount must be greater than zero"}
	}
	if transactionID == "" {
		return nil, &ValidationError{Field: "transaction_id", Message: "UPI transaction id is required"}
	}

	destinationUPIID := ""
	if fields != nil {
		destinationUPIID = fields.RecipientUPIID
	}

	decision, err := s.verifier.Decide(transactionID, destinationUPIID)
	if err != nil {
		return nil, fmt.Errorf("verification check failed: %w", err)
	}
	if decision.IsDuplicate {
		return nil, &DuplicateTransactionError{TransactionID: transactionID}
	}

	donation := &models.Donation{
		DonorName:     sub.DonorName,
		Phone:         sub.Phone,
		Amount:        amount,
		TransactionID: transactionID,
		Message:       sub.Message,
		ReceiptURL:    receiptURL,
		Status:        decision.Status,
		VerifiedAt:    decision.VerifiedAt,
	}

	if fields != nil {
		applyExtractedFields(donation, fields)
		donation.ReceiptProcessingStatus = models.ReceiptCompleted
	} else {
		donation.ReceiptProcessingStatus = models.ReceiptNotProcessed
	}

	created, err := s.store.CreateDonation(donation)
	if err != nil {
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}

	// Fire-and-forget admin notification
	if s.notifier != nil {
		go func(d models.Donation) {
			if err := s.notifier.NotifyDonation(&d); err != nil {
				log.Printf("Failed to send donation notification for %s: %v", d.DonationID, err)
			}
		}(*created)
	}

	log.Printf("💝 Donation %s created: ₹%.0f (%s)", created.DonationID, created.Amount, created.Status)
	return created, nil
}

// UpdateStatus applies an administrator verify/reject decision, keeping
// verified_at consistent with the target status
func (s *DonationService) UpdateStatus(donationID, status, adminNotes string) (*models.Donation, error) {
	if status != models.DonationStatusVerified &&
		status != models.DonationStatusRejected &&
		status != models.DonationStatusPending {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	donation, err := s.store.GetDonation(donationID)
	if err != nil {
		return nil, err
	}

	donation.Status = status
	if adminNotes != "" {
		donation.AdminNotes = adminNotes
	}

	if status == models.DonationStatusVerified {
		if donation.VerifiedAt == nil {
			now := time.Now()
			donation.VerifiedAt = &now
		}
	} else {
		donation.VerifiedAt = nil
	}

	if err := s.store.UpdateDonation(donation); err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	log.Printf("Donation %s moved to %s", donationID, status)
	return donation, nil
}

// ListVerified returns verified donations for the public donor showcase
func (s *DonationService) ListVerified() ([]*models.Donation, error) {
	return s.store.GetDonationsByStatus(models.DonationStatusVerified)
}

// Stats returns the aggregate donation counters
func (s *DonationService) Stats() (*models.DonationStats, error) {
	return s.store.GetDonationStats()
}

func applyExtractedFields(donation *models.Donation, fields *models.ReceiptFields) {
	donation.SenderName = optional(fields.SenderName)
	donation.SenderPhone = optional(fields.SenderPhone)
	donation.SenderAccount = optional(fields.SenderAccount)
	donation.SenderUPIID = optional(fields.SenderUPIID)
	donation.RecipientName = optional(fields.RecipientName)
	donation.RecipientUPIID = optional(fields.RecipientUPIID)
	donation.PaymentStatusLabel = optional(fields.PaymentStatus)
	donation.PaymentTimestamp = optional(fields.Timestamp)
	donation.PaymentMethod = optional(fields.PaymentMethod)
	donation.ExtractionNotes = optional(fields.Notes)
	donation.ExtractionDegraded = fields.Degraded

	if !fields.Degraded {
		confidence := fields.Confidence
		donation.Confidence = &confidence
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package services

import (
	"errors"
	"testing"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// stubNotifier stands in for Twilio so no real messages go out
type stubNotifier struct {
	fail bool
}

func (n *stubNotifier) NotifyDonation(d *models.Donation) error {
	if n.fail {
		return errors.New("notification channel down")
	}
	return nil
}

func newTestDonationService(store storage.Store) *DonationService {
	return NewDonationService(store, newTestVerifier(store), &stubNotifier{})
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		submission *models.DonationSubmission
	}{
		{
			name:       "zero amount",
			submission: &models.DonationSubmission{DonorName: "A", Amount: 0, TransactionID: "TXN-V1"},
		},
		{
			name:       "negative amount",
			submission: &models.DonationSubmission{DonorName: "A", Amount: -100, TransactionID: "TXN-V2"},
		},
		{
			name:       "unparseable amount string",
			submission: &models.DonationSubmission{DonorName: "A", Amount: "abc", TransactionID: "TXN-V3"},
		},
		{
			name:       "missing transaction id",
			submission: &models.DonationSubmission{DonorName: "A", Amount: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			service := newTestDonationService(store)

			_, err := service.Create(tt.submission, nil, "")
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			// Nothing may be persisted on validation failure
			stats, _ := store.GetDonationStats()
			if stats.Total != 0 {
				t.Errorf("store contains %d records after rejected submission", stats.Total)
			}
		})
	}
}

// End-to-end scenarios A, B and C plus the resulting aggregate stats
func TestCreateEndToEnd(t *testing.T) {
	store := storage.NewMemoryStore()
	service := newTestDonationService(store)

	// Scenario A: matching recipient UPI id, formatted amount
	receiptA := &models.ReceiptFields{
		RecipientUPIID: testExpectedUPI,
		TransactionID:  "TXN-1",
		Amount:         500,
		Confidence:     0.9,
	}
	donationA, err := service.Create(&models.DonationSubmission{
		DonorName:     "Asha Rao",
		Amount:        "₹500",
		TransactionID: "TXN-1",
	}, receiptA, "https://files.example/receipt-a.png")
	if err != nil {
		t.Fatalf("scenario A failed: %v", err)
	}
	if donationA.Amount != 500 {
		t.Errorf("scenario A amount = %v, want 500", donationA.Amount)
	}
	if donationA.Status != models.DonationStatusVerified {
		t.Errorf("scenario A status = %q, want verified", donationA.Status)
	}
	if donationA.VerifiedAt == nil {
		t.Error("scenario A verified_at must be set")
	}

	// Scenario B: same transaction id again - rejected, count unchanged
	_, err = service.Create(&models.DonationSubmission{
		DonorName:     "Asha Rao",
		Amount:        "₹500",
		TransactionID: "TXN-1",
	}, receiptA, "")
	var dupErr *DuplicateTransactionError
	if !errors.As(err, &dupErr) {
		t.Fatalf("scenario B: expected DuplicateTransactionError, got %v", err)
	}

	// Scenario C: different recipient, Indian digit grouping
	receiptC := &models.ReceiptFields{
		RecipientUPIID: "someoneelse@upi",
		TransactionID:  "TXN-2",
		Amount:         "₹1,50,000",
		Confidence:     0.85,
	}
	donationC, err := service.Create(&models.DonationSubmission{
		DonorName:     "Vikram Shah",
		Amount:        "₹1,50,000",
		TransactionID: "TXN-2",
	}, receiptC, "")
	if err != nil {
		t.Fatalf("scenario C failed: %v", err)
	}
	if donationC.Amount != 150000 {
		t.Errorf("scenario C amount = %v, want 150000", donationC.Amount)
	}
	if donationC.Status != models.DonationStatusPending {
		t.Errorf("scenario C status = %q, want pending_verification", donationC.Status)
	}
	if donationC.VerifiedAt != nil {
		t.Error("scenario C verified_at must be nil")
	}

	// Aggregate stats: duplicate not counted
	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
	if stats.Verified != 1 {
		t.Errorf("verified = %d, want 1", stats.Verified)
	}
	if stats.Pending != 1 {
		t.Errorf("pending = %d, want 1", stats.Pending)
	}
	if stats.TotalAmountVerified != 500 {
		t.Errorf("totalAmountVerified = %v, want 500", stats.TotalAmountVerified)
	}
}

func TestCreateManualEntryGoesPending(t *testing.T) {
	service := newTestDonationService(storage.NewMemoryStore())

	donation, err := service.Create(&models.DonationSubmission{
		DonorName:     "Manual Donor",
		Amount:        "1000",
		TransactionID: "TXN-MANUAL",
	}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if donation.Status != models.DonationStatusPending {
		t.Errorf("status = %q, want pending_verification", donation.Status)
	}
	if donation.VerifiedAt != nil {
		t.Error("manual entry must not carry verified_at")
	}
	if donation.ReceiptProcessingStatus != models.ReceiptNotProcessed {
		t.Errorf("receipt processing status = %q, want not_processed", donation.ReceiptProcessingStatus)
	}
}

func TestCreateAutoFillFromConfidentExtraction(t *testing.T) {
	service := newTestDonationService(storage.NewMemoryStore())

	// Submitter typed nothing; the high-confidence extraction fills in both
	// the transaction id and the amount
	donation, err := service.Create(&models.DonationSubmission{DonorName: "Quiet Donor"}, &models.ReceiptFields{
		RecipientUPIID: "other@upi",
		TransactionID:  "TXN-FILL",
		Amount:         "₹3,000",
		Confidence:     0.8,
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if donation.TransactionID != "TXN-FILL" {
		t.Errorf("transaction id = %q, want TXN-FILL", donation.TransactionID)
	}
	if donation.Amount != 3000 {
		t.Errorf("amount = %v, want 3000", donation.Amount)
	}
}

func TestCreateLowConfidenceNeverAutoFills(t *testing.T) {
	service := newTestDonationService(storage.NewMemoryStore())

	_, err := service.Create(&models.DonationSubmission{DonorName: "Quiet Donor"}, &models.ReceiptFields{
		TransactionID: "TXN-LOW",
		Amount:        500,
		Confidence:    0.4,
	}, "")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("low-confidence extraction must not fill required fields, got %v", err)
	}
}

func TestCreateDegradedExtractionStaysPendingAndFlagged(t *testing.T) {
	store := storage.NewMemoryStore()
	service := newTestDonationService(store)

	donation, err := service.Create(&models.DonationSubmission{
		DonorName:     "Outage Donor",
		Amount:        "₹750",
		TransactionID: "TXN-OUTAGE",
	}, degradedReceiptFields(), "https://files.example/receipt.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if donation.Status != models.DonationStatusPending {
		t.Errorf("degraded extraction ended as %q, must be pending_verification", donation.Status)
	}
	if !donation.ExtractionDegraded {
		t.Error("degraded marker must be persisted for admin review")
	}
	if donation.Confidence != nil {
		t.Error("degraded extraction must not record a confidence value")
	}
}

func TestUpdateStatus(t *testing.T) {
	store := storage.NewMemoryStore()
	service := newTestDonationService(store)

	donation, err := service.Create(&models.DonationSubmission{
		DonorName:     "Pending Donor",
		Amount:        "200",
		TransactionID: "TXN-ADMIN",
	}, nil, "")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	// Admin verifies
	verified, err := service.UpdateStatus(donation.DonationID, models.DonationStatusVerified, "matched bank statement")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.VerifiedAt == nil {
		t.Error("verified_at must be set on verify")
	}

	// Admin rejects - verified_at must be cleared
	rejected, err := service.UpdateStatus(donation.DonationID, models.DonationStatusRejected, "amount mismatch")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.VerifiedAt != nil {
		t.Error("verified_at must be cleared on reject")
	}

	// Unknown status rejected
	if _, err := service.UpdateStatus(donation.DonationID, "approved", ""); err == nil {
		t.Error("unknown status must fail")
	}
}

func TestNotificationFailureDoesNotBlockCreation(t *testing.T) {
	store := storage.NewMemoryStore()
	notifier := &stubNotifier{fail: true}
	service := NewDonationService(store, newTestVerifier(store), notifier)

	donation, err := service.Create(&models.DonationSubmission{
		DonorName:     "Donor",
		Amount:        "150",
		TransactionID: "TXN-NOTIFY",
	}, nil, "")
	if err != nil {
		t.Fatalf("notification failure must not fail creation: %v", err)
	}
	if donation == nil {
		t.Fatal("donation not returned")
	}
}

func TestListVerified(t *testing.T) {
	store := storage.NewMemoryStore()
	service := newTestDonationService(store)

	receipt := &models.ReceiptFields{RecipientUPIID: testExpectedUPI, Confidence: 0.9}
	if _, err := service.Create(&models.DonationSubmission{
		DonorName: "Shown Donor", Amount: 500, TransactionID: "TXN-SHOW",
	}, receipt, ""); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := service.Create(&models.DonationSubmission{
		DonorName: "Hidden Donor", Amount: 300, TransactionID: "TXN-HIDE",
	}, nil, ""); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	verified, err := service.ListVerified()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verified) != 1 || verified[0].DonorName != "Shown Donor" {
		t.Errorf("verified listing wrong: %+v", verified)
	}
}

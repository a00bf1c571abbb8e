package services

import (
	"testing"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

const testExpectedUPI = "mk10092004-1@oksbi"

func newTestVerifier(store storage.Store) *VerificationService {
	return NewVerificationService(store, VerificationConfig{
		ExpectedUPIID:       testExpectedUPI,
		ConfidenceThreshold: 0.7,
	})
}

func TestDecideIdentityMatch(t *testing.T) {
	tests := []struct {
		name           string
		destinationUPI string
		wantStatus     string
		wantVerifiedAt bool
	}{
		{"exact match", "mk10092004-1@oksbi", models.DonationStatusVerified, true},
		{"case-insensitive match", "MK10092004-1@OKSBI", models.DonationStatusVerified, true},
		{"match with surrounding spaces", "  mk10092004-1@oksbi ", models.DonationStatusVerified, true},
		{"different upi id", "someoneelse@upi", models.DonationStatusPending, false},
		{"no upi id extracted", "", models.DonationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newTestVerifier(storage.NewMemoryStore())

			decision, err := verifier.Decide("TXN-NEW", tt.destinationUPI)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.IsDuplicate {
				t.Fatal("fresh transaction id flagged as duplicate")
			}
			if decision.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", decision.Status, tt.wantStatus)
			}
			if (decision.VerifiedAt != nil) != tt.wantVerifiedAt {
				t.Errorf("verified_at set = %v, want %v", decision.VerifiedAt != nil, tt.wantVerifiedAt)
			}
		})
	}
}

func TestDecideDuplicateTransaction(t *testing.T) {
	store := storage.NewMemoryStore()
	if _, err := store.CreateDonation(&models.Donation{
		DonorName:     "First Donor",
		Amount:        500,
		TransactionID: "TXN-1",
		Status:        models.DonationStatusVerified,
	}); err != nil {
		t.Fatalf("seed donation failed: %v", err)
	}

	verifier := newTestVerifier(store)

	decision, err := verifier.Decide("TXN-1", testExpectedUPI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.IsDuplicate {
		t.Fatal("existing transaction id not flagged as duplicate")
	}
}

func TestIsHighConfidence(t *testing.T) {
	verifier := newTestVerifier(storage.NewMemoryStore())

	if verifier.IsHighConfidence(0.69) {
		t.Error("0.69 should be below the threshold")
	}
	if !verifier.IsHighConfidence(0.7) {
		t.Error("0.7 should meet the threshold")
	}
	if !verifier.IsHighConfidence(0.95) {
		t.Error("0.95 should meet the threshold")
	}
}

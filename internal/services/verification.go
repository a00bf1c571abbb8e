package services

import (
	"errors"
	"strings"
	"time"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

// VerificationConfig carries the NGO's expected receiving UPI id and the
// confidence threshold, injected at construction instead of read from the
// environment inside the decider
type VerificationConfig struct {
	ExpectedUPIID       string
	ConfidenceThreshold float64
}

// Decision is the outcome of the verification decider
type Decision struct {
	Status      string
	IsDuplicate bool
	VerifiedAt  *time.Time
}

// VerificationService decides the acceptance state of a donation claim
type VerificationService struct {
	store  storage.Store
	config VerificationConfig
}

// NewVerificationService creates a new verification decider
func NewVerificationService(store storage.Store, config VerificationConfig) *VerificationService {
	return &VerificationService{
		store:  store,
		config: config,
	}
}

// Decide checks the transaction id against existing donations and the
// extracted recipient UPI id against the configured one.
//
// A duplicate transaction id short-circuits: the caller must reject the
// submission without persisting anything. An extracted recipient UPI id
// matching the configured one (case-insensitively) auto-verifies; anything
// else, including manual entries with no receipt at all, goes to
// pending_verification for an administrator. Rejection is only ever an
// explicit admin action, never decided here.
func (v *VerificationService) Decide(transactionID, destinationUPIID string) (*Decision, error) {
	existing, err := v.store.GetDonationByTransactionID(transactionID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return &Decision{IsDuplicate: true}, nil
	}

	if destinationUPIID != "" && v.matchesExpectedUPI(destinationUPIID) {
		now := time.Now()
		return &Decision{
			Status:     models.DonationStatusVerified,
			VerifiedAt: &now,
		}, nil
	}

	return &Decision{Status: models.DonationStatusPending}, nil
}

// IsHighConfidence reports whether an extraction confidence clears the
// configured threshold
func (v *VerificationService) IsHighConfidence(confidence float64) bool {
	return confidence >= v.config.ConfidenceThreshold
}

func (v *VerificationService) matchesExpectedUPI(upiID string) bool {
	return strings.EqualFold(
		strings.TrimSpace(upiID),
		strings.TrimSpace(v.config.ExpectedUPIID),
	)
}

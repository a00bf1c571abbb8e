package storage

import (
	"errors"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
)

// ErrNotFound is returned by lookups when no record matches
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Donation operations
	CreateDonation(donation *models.Donation) (*models.Donation, error)
	GetDonation(donationID string) (*models.Donation, error)
	GetDonationByTransactionID(transactionID string) (*models.Donation, error)
	GetDonationsByStatus(status string) ([]*models.Donation, error)
	GetAllDonations() ([]*models.Donation, error)
	UpdateDonation(donation *models.Donation) error
	GetDonationStats() (*models.DonationStats, error)

	// Team operations
	CreateTeamMember(member *models.TeamMember) (*models.TeamMember, error)
	GetTeamMember(memberID string) (*models.TeamMember, error)
	GetAllTeamMembers() ([]*models.TeamMember, error)
	UpdateTeamMember(member *models.TeamMember) error
	DeleteTeamMember(memberID string) error

	// Work operations
	CreateWork(work *models.Work) (*models.Work, error)
	GetWork(workID string) (*models.Work, error)
	GetAllWorks() ([]*models.Work, error)
	GetPublishedWorks() ([]*models.Work, error)
	UpdateWork(work *models.Work) error
	DeleteWork(workID string) error

	// Asset operations
	CreateAsset(asset *models.Asset) (*models.Asset, error)
	GetAsset(assetID string) (*models.Asset, error)
	GetAllAssets() ([]*models.Asset, error)
	DeleteAsset(assetID string) error

	// Transparency ledger operations
	CreateLedgerEntry(entry *models.LedgerEntry) (*models.LedgerEntry, error)
	GetLedgerEntries() ([]*models.LedgerEntry, error)
	GetLedgerSummary() (*models.LedgerSummary, error)

	// Newsletter operations
	CreateSubscriber(sub *models.Subscriber) (*models.Subscriber, error)
	GetSubscriberByEmail(email string) (*models.Subscriber, error)
	GetAllSubscribers() ([]*models.Subscriber, error)
}

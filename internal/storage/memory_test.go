package storage

import (
	"errors"
	"testing"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
)

func TestCreateDonationRejectsDuplicateTransactionID(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.CreateDonation(&models.Donation{
		DonorName:     "First",
		Amount:        500,
		TransactionID: "TXN-DUP",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.DonationID == "" {
		t.Error("donation id not generated")
	}

	_, err = store.CreateDonation(&models.Donation{
		DonorName:     "Second",
		Amount:        500,
		TransactionID: "TXN-DUP",
	})
	if err == nil {
		t.Fatal("duplicate transaction id accepted at the storage layer")
	}

	donations, _ := store.GetAllDonations()
	if len(donations) != 1 {
		t.Errorf("store holds %d donations after duplicate attempt, want 1", len(donations))
	}
}

func TestCreateDonationTrimsTransactionID(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.CreateDonation(&models.Donation{
		DonorName:     "First",
		Amount:        100,
		TransactionID: "  TXN-TRIM  ",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := store.GetDonationByTransactionID("TXN-TRIM")
	if err != nil {
		t.Fatalf("trimmed lookup failed: %v", err)
	}
	if found.TransactionID != "TXN-TRIM" {
		t.Errorf("stored transaction id = %q, want trimmed", found.TransactionID)
	}
}

func TestCreateDonationNormalizesPhone(t *testing.T) {
	store := NewMemoryStore()

	// Memory store must apply the same defaults as the database hook,
	// phone format included
	created, err := store.CreateDonation(&models.Donation{
		DonorName:     "Desi Donor",
		Phone:         "9876543210",
		Amount:        250,
		TransactionID: "TXN-PHONE",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Phone != "+919876543210" {
		t.Errorf("stored phone = %q, want +919876543210", created.Phone)
	}

	intl, err := store.CreateDonation(&models.Donation{
		DonorName:     "NRI Donor",
		Phone:         "+14155550123",
		Amount:        250,
		TransactionID: "TXN-PHONE-2",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if intl.Phone != "+14155550123" {
		t.Errorf("stored phone = %q, want unchanged country code", intl.Phone)
	}
}

func TestGetDonationByTransactionIDNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetDonationByTransactionID("TXN-MISSING")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDonationStats(t *testing.T) {
	store := NewMemoryStore()

	seed := []*models.Donation{
		{DonorName: "A", Amount: 500, TransactionID: "S-1", Status: models.DonationStatusVerified},
		{DonorName: "B", Amount: 300, TransactionID: "S-2", Status: models.DonationStatusVerified},
		{DonorName: "C", Amount: 1000, TransactionID: "S-3", Status: models.DonationStatusPending},
		{DonorName: "D", Amount: 50, TransactionID: "S-4", Status: models.DonationStatusRejected},
	}
	for _, d := range seed {
		if _, err := store.CreateDonation(d); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	stats, err := store.GetDonationStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.Verified != 2 {
		t.Errorf("verified = %d, want 2", stats.Verified)
	}
	if stats.Pending != 1 {
		t.Errorf("pending = %d, want 1", stats.Pending)
	}
	if stats.Rejected != 1 {
		t.Errorf("rejected = %d, want 1", stats.Rejected)
	}
	if stats.TotalAmountVerified != 800 {
		t.Errorf("totalAmountVerified = %v, want 800", stats.TotalAmountVerified)
	}
}

func TestLedgerSummary(t *testing.T) {
	store := NewMemoryStore()

	entries := []*models.LedgerEntry{
		{Type: models.LedgerTypeIncome, Amount: 10000, Description: "donation drive"},
		{Type: models.LedgerTypeIncome, Amount: 2500, Description: "grant"},
		{Type: models.LedgerTypeExpense, Amount: 4000, Description: "school supplies"},
	}
	for _, e := range entries {
		if _, err := store.CreateLedgerEntry(e); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	summary, err := store.GetLedgerSummary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.TotalIncome != 12500 {
		t.Errorf("income = %v, want 12500", summary.TotalIncome)
	}
	if summary.TotalExpense != 4000 {
		t.Errorf("expense = %v, want 4000", summary.TotalExpense)
	}
	if summary.Balance != 8500 {
		t.Errorf("balance = %v, want 8500", summary.Balance)
	}
	if summary.EntryCount != 3 {
		t.Errorf("entry count = %d, want 3", summary.EntryCount)
	}
}

func TestSubscriberDeduplication(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.CreateSubscriber(&models.Subscriber{Email: "Donor@Example.ORG", Active: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Same address, different casing
	if _, err := store.CreateSubscriber(&models.Subscriber{Email: "donor@example.org", Active: true}); err == nil {
		t.Fatal("duplicate email accepted")
	}

	found, err := store.GetSubscriberByEmail("DONOR@example.org")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.Email != "donor@example.org" {
		t.Errorf("stored email = %q, want lowercased", found.Email)
	}
}

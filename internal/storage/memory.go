package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
	"github.com/SevaSetu/sevasetu-backend/internal/utils"
)

// MemoryStore holds all data in memory for local development and tests
type MemoryStore struct {
	donations   map[string]*models.Donation
	team        map[string]*models.TeamMember
	works       map[string]*models.Work
	assets      map[string]*models.Asset
	ledger      map[string]*models.LedgerEntry
	subscribers map[string]*models.Subscriber

	// Mutexes for thread safety
	donationMu   sync.RWMutex
	teamMu       sync.RWMutex
	workMu       sync.RWMutex
	assetMu      sync.RWMutex
	ledgerMu     sync.RWMutex
	subscriberMu sync.RWMutex

	// Counters for ID generation
	donationCounter int
	teamCounter     int
	workCounter     int
	ledgerCounter   int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		donations:   make(map[string]*models.Donation),
		team:        make(map[string]*models.TeamMember),
		works:       make(map[string]*models.Work),
		assets:      make(map[string]*models.Asset),
		ledger:      make(map[string]*models.LedgerEntry),
		subscribers: make(map[string]*models.Subscriber),
	}
}

// Donation operations

func (m *MemoryStore) CreateDonation(donation *models.Donation) (*models.Donation, error) {
	m.donationMu.Lock()
	defer m.donationMu.Unlock()

	// Enforce transaction-id uniqueness the way the database's uniqueIndex
	// does, so both store implementations behave identically
	txnID := strings.TrimSpace(donation.TransactionID)
	for _, existing := range m.donations {
		if existing.TransactionID == txnID {
			return nil, fmt.Errorf("duplicate transaction id %s", txnID)
		}
	}

	m.donationCounter++
	if donation.DonationID == "" {
		donation.DonationID = fmt.Sprintf("DON%05d", m.donationCounter)
	}
	donation.TransactionID = txnID
	donation.Phone = utils.NormalizePhone(donation.Phone)
	if donation.Status == "" {
		donation.Status = models.DonationStatusPending
	}
	if donation.ReceiptProcessingStatus == "" {
		donation.ReceiptProcessingStatus = models.ReceiptNotProcessed
	}
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = time.Now()

	m.donations[donation.DonationID] = donation
	return donation, nil
}

func (m *MemoryStore) GetDonation(donationID string) (*models.Donation, error) {
	m.donationMu.RLock()
	defer m.donationMu.RUnlock()

	donation, exists := m.donations[donationID]
	if !exists {
		return nil, ErrNotFound
	}
	return donation, nil
}

func (m *MemoryStore) GetDonationByTransactionID(transactionID string) (*models.Donation, error) {
	m.donationMu.RLock()
	defer m.donationMu.RUnlock()

	for _, donation := range m.donations {
		if donation.TransactionID == strings.TrimSpace(transactionID) {
			return donation, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetDonationsByStatus(status string) ([]*models.Donation, error) {
	m.donationMu.RLock()
	defer m.donationMu.RUnlock()

	var donations []*models.Donation
	for _, donation := range m.donations {
		if donation.Status == status {
			donations = append(donations, donation)
		}
	}
	sortDonations(donations)
	return donations, nil
}

func (m *MemoryStore) GetAllDonations() ([]*models.Donation, error) {
	m.donationMu.RLock()
	defer m.donationMu.RUnlock()

	donations := make([]*models.Donation, 0, len(m.donations))
	for _, donation := range m.donations {
		donations = append(donations, donation)
	}
	sortDonations(donations)
	return donations, nil
}

func (m *MemoryStore) UpdateDonation(donation *models.Donation) error {
	m.donationMu.Lock()
	defer m.donationMu.Unlock()

	if _, exists := m.donations[donation.DonationID]; !exists {
		return ErrNotFound
	}
	donation.UpdatedAt = time.Now()
	m.donations[donation.DonationID] = donation
	return nil
}

func (m *MemoryStore) GetDonationStats() (*models.DonationStats, error) {
	m.donationMu.RLock()
	defer m.donationMu.RUnlock()

	stats := &models.DonationStats{}
	for _, donation := range m.donations {
		stats.Total++
		switch donation.Status {
		case models.DonationStatusVerified:
			stats.Verified++
			stats.TotalAmountVerified += donation.Amount
		case models.DonationStatusPending:
			stats.Pending++
		case models.DonationStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// newest first, matching the database store's ordering
func sortDonations(donations []*models.Donation) {
	sort.Slice(donations, func(i, j int) bool {
		return donations[i].CreatedAt.After(donations[j].CreatedAt)
	})
}

// Team operations

func (m *MemoryStore) CreateTeamMember(member *models.TeamMember) (*models.TeamMember, error) {
	m.teamMu.Lock()
	defer m.teamMu.Unlock()

	m.teamCounter++
	if member.MemberID == "" {
		member.MemberID = fmt.Sprintf("TM%05d", m.teamCounter)
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()

	m.team[member.MemberID] = member
	return member, nil
}

func (m *MemoryStore) GetTeamMember(memberID string) (*models.TeamMember, error) {
	m.teamMu.RLock()
	defer m.teamMu.RUnlock()

	member, exists := m.team[memberID]
	if !exists {
		return nil, ErrNotFound
	}
	return member, nil
}

func (m *MemoryStore) GetAllTeamMembers() ([]*models.TeamMember, error) {
	m.teamMu.RLock()
	defer m.teamMu.RUnlock()

	members := make([]*models.TeamMember, 0, len(m.team))
	for _, member := range m.team {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].SortOrder < members[j].SortOrder
	})
	return members, nil
}

func (m *MemoryStore) UpdateTeamMember(member *models.TeamMember) error {
	m.teamMu.Lock()
	defer m.teamMu.Unlock()

	if _, exists := m.team[member.MemberID]; !exists {
		return ErrNotFound
	}
	member.UpdatedAt = time.Now()
	m.team[member.MemberID] = member
	return nil
}

func (m *MemoryStore) DeleteTeamMember(memberID string) error {
	m.teamMu.Lock()
	defer m.teamMu.Unlock()

	if _, exists := m.team[memberID]; !exists {
		return ErrNotFound
	}
	delete(m.team, memberID)
	return nil
}

// Work operations

func (m *MemoryStore) CreateWork(work *models.Work) (*models.Work, error) {
	m.workMu.Lock()
	defer m.workMu.Unlock()

	m.workCounter++
	if work.WorkID == "" {
		work.WorkID = fmt.Sprintf("WRK%05d", m.workCounter)
	}
	work.CreatedAt = time.Now()
	work.UpdatedAt = time.Now()

	m.works[work.WorkID] = work
	return work, nil
}

func (m *MemoryStore) GetWork(workID string) (*models.Work, error) {
	m.workMu.RLock()
	defer m.workMu.RUnlock()

	work, exists := m.works[workID]
	if !exists {
		return nil, ErrNotFound
	}
	return work, nil
}

func (m *MemoryStore) GetAllWorks() ([]*models.Work, error) {
	m.workMu.RLock()
	defer m.workMu.RUnlock()

	works := make([]*models.Work, 0, len(m.works))
	for _, work := range m.works {
		works = append(works, work)
	}
	return works, nil
}

func (m *MemoryStore) GetPublishedWorks() ([]*models.Work, error) {
	m.workMu.RLock()
	defer m.workMu.RUnlock()

	var works []*models.Work
	for _, work := range m.works {
		if work.Published {
			works = append(works, work)
		}
	}
	return works, nil
}

func (m *MemoryStore) UpdateWork(work *models.Work) error {
	m.workMu.Lock()
	defer m.workMu.Unlock()

	if _, exists := m.works[work.WorkID]; !exists {
		return ErrNotFound
	}
	work.UpdatedAt = time.Now()
	m.works[work.WorkID] = work
	return nil
}

func (m *MemoryStore) DeleteWork(workID string) error {
	m.workMu.Lock()
	defer m.workMu.Unlock()

	if _, exists := m.works[workID]; !exists {
		return ErrNotFound
	}
	delete(m.works, workID)
	return nil
}

// Asset operations

func (m *MemoryStore) CreateAsset(asset *models.Asset) (*models.Asset, error) {
	m.assetMu.Lock()
	defer m.assetMu.Unlock()

	if asset.AssetID == "" {
		asset.AssetID = uuid.NewString()
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()

	m.assets[asset.AssetID] = asset
	return asset, nil
}

func (m *MemoryStore) GetAsset(assetID string) (*models.Asset, error) {
	m.assetMu.RLock()
	defer m.assetMu.RUnlock()

	asset, exists := m.assets[assetID]
	if !exists {
		return nil, ErrNotFound
	}
	return asset, nil
}

func (m *MemoryStore) GetAllAssets() ([]*models.Asset, error) {
	m.assetMu.RLock()
	defer m.assetMu.RUnlock()

	assets := make([]*models.Asset, 0, len(m.assets))
	for _, asset := range m.assets {
		assets = append(assets, asset)
	}
	return assets, nil
}

func (m *MemoryStore) DeleteAsset(assetID string) error {
	m.assetMu.Lock()
	defer m.assetMu.Unlock()

	if _, exists := m.assets[assetID]; !exists {
		return ErrNotFound
	}
	delete(m.assets, assetID)
	return nil
}

// Transparency ledger operations

func (m *MemoryStore) CreateLedgerEntry(entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	m.ledgerMu.Lock()
	defer m.ledgerMu.Unlock()

	m.ledgerCounter++
	if entry.EntryID == "" {
		entry.EntryID = fmt.Sprintf("LED%05d", m.ledgerCounter)
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()

	m.ledger[entry.EntryID] = entry
	return entry, nil
}

func (m *MemoryStore) GetLedgerEntries() ([]*models.LedgerEntry, error) {
	m.ledgerMu.RLock()
	defer m.ledgerMu.RUnlock()

	entries := make([]*models.LedgerEntry, 0, len(m.ledger))
	for _, entry := range m.ledger {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (m *MemoryStore) GetLedgerSummary() (*models.LedgerSummary, error) {
	m.ledgerMu.RLock()
	defer m.ledgerMu.RUnlock()

	summary := &models.LedgerSummary{}
	for _, entry := range m.ledger {
		summary.EntryCount++
		switch entry.Type {
		case models.LedgerTypeIncome:
			summary.TotalIncome += entry.Amount
		case models.LedgerTypeExpense:
			summary.TotalExpense += entry.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// Newsletter operations

func (m *MemoryStore) CreateSubscriber(sub *models.Subscriber) (*models.Subscriber, error) {
	m.subscriberMu.Lock()
	defer m.subscriberMu.Unlock()

	email := strings.ToLower(strings.TrimSpace(sub.Email))
	if _, exists := m.subscribers[email]; exists {
		return nil, fmt.Errorf("email %s already subscribed", email)
	}

	sub.Email = email
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	m.subscribers[email] = sub
	return sub, nil
}

func (m *MemoryStore) GetSubscriberByEmail(email string) (*models.Subscriber, error) {
	m.subscriberMu.RLock()
	defer m.subscriberMu.RUnlock()

	sub, exists := m.subscribers[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (m *MemoryStore) GetAllSubscribers() ([]*models.Subscriber, error) {
	m.subscriberMu.RLock()
	defer m.subscriberMu.RUnlock()

	subs := make([]*models.Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		subs = append(subs, sub)
	}
	return subs, nil
}

package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/SevaSetu/sevasetu-backend/internal/models"
)

// DatabaseStore implements Store on top of PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Donation operations

func (s *DatabaseStore) CreateDonation(donation *models.Donation) (*models.Donation, error) {
	// The uniqueIndex on transaction_id closes the race window between the
	// application-level duplicate check and the insert
	if err := s.db.Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

func (s *DatabaseStore) GetDonation(donationID string) (*models.Donation, error) {
	var donation models.Donation
	if err := s.db.Where("donation_id = ?", donationID).First(&donation).Error; err != nil {
		return nil, translateError(err)
	}
	return &donation, nil
}

func (s *DatabaseStore) GetDonationByTransactionID(transactionID string) (*models.Donation, error) {
	var donation models.Donation
	err := s.db.Where("transaction_id = ?", strings.TrimSpace(transactionID)).First(&donation).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &donation, nil
}

func (s *DatabaseStore) GetDonationsByStatus(status string) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&donations).Error
	return donations, err
}

func (s *DatabaseStore) GetAllDonations() ([]*models.Donation, error) {
	var donations []*models.Donation
	err := s.db.Order("created_at DESC").Find(&donations).Error
	return donations, err
}

func (s *DatabaseStore) UpdateDonation(donation *models.Donation) error {
	return s.db.Save(donation).Error
}

func (s *DatabaseStore) GetDonationStats() (*models.DonationStats, error) {
	stats := &models.DonationStats{}

	if err := s.db.Model(&models.Donation{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	statusCounts := []struct {
		status string
		dest   *int64
	}{
		{models.DonationStatusVerified, &stats.Verified},
		{models.DonationStatusPending, &stats.Pending},
		{models.DonationStatusRejected, &stats.Rejected},
	}
	for _, sc := range statusCounts {
		if err := s.db.Model(&models.Donation{}).Where("status = ?", sc.status).Count(sc.dest).Error; err != nil {
			return nil, err
		}
	}

	var totalVerified *float64
	err := s.db.Model(&models.Donation{}).
		Where("status = ?", models.DonationStatusVerified).
		Select("SUM(amount)").Scan(&totalVerified).Error
	if err != nil {
		return nil, err
	}
	if totalVerified != nil {
		stats.TotalAmountVerified = *totalVerified
	}

	return stats, nil
}

// Team operations

func (s *DatabaseStore) CreateTeamMember(member *models.TeamMember) (*models.TeamMember, error) {
	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *DatabaseStore) GetTeamMember(memberID string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.Where("member_id = ?", memberID).First(&member).Error; err != nil {
		return nil, translateError(err)
	}
	return &member, nil
}

func (s *DatabaseStore) GetAllTeamMembers() ([]*models.TeamMember, error) {
	var members []*models.TeamMember
	err := s.db.Order("sort_order ASC").Find(&members).Error
	return members, err
}

func (s *DatabaseStore) UpdateTeamMember(member *models.TeamMember) error {
	return s.db.Save(member).Error
}

func (s *DatabaseStore) DeleteTeamMember(memberID string) error {
	result := s.db.Where("member_id = ?", memberID).Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Work operations

func (s *DatabaseStore) CreateWork(work *models.Work) (*models.Work, error) {
	if err := s.db.Create(work).Error; err != nil {
		return nil, err
	}
	return work, nil
}

func (s *DatabaseStore) GetWork(workID string) (*models.Work, error) {
	var work models.Work
	if err := s.db.Where("work_id = ?", workID).First(&work).Error; err != nil {
		return nil, translateError(err)
	}
	return &work, nil
}

func (s *DatabaseStore) GetAllWorks() ([]*models.Work, error) {
	var works []*models.Work
	err := s.db.Order("created_at DESC").Find(&works).Error
	return works, err
}

func (s *DatabaseStore) GetPublishedWorks() ([]*models.Work, error) {
	var works []*models.Work
	err := s.db.Where("published = ?", true).Order("created_at DESC").Find(&works).Error
	return works, err
}

func (s *DatabaseStore) UpdateWork(work *models.Work) error {
	return s.db.Save(work).Error
}

func (s *DatabaseStore) DeleteWork(workID string) error {
	result := s.db.Where("work_id = ?", workID).Delete(&models.Work{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Asset operations

func (s *DatabaseStore) CreateAsset(asset *models.Asset) (*models.Asset, error) {
	if err := s.db.Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *DatabaseStore) GetAsset(assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		return nil, translateError(err)
	}
	return &asset, nil
}

func (s *DatabaseStore) GetAllAssets() ([]*models.Asset, error) {
	var assets []*models.Asset
	err := s.db.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (s *DatabaseStore) DeleteAsset(assetID string) error {
	result := s.db.Where("asset_id = ?", assetID).Delete(&models.Asset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Transparency ledger operations

func (s *DatabaseStore) CreateLedgerEntry(entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *DatabaseStore) GetLedgerEntries() ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := s.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (s *DatabaseStore) GetLedgerSummary() (*models.LedgerSummary, error) {
	summary := &models.LedgerSummary{}

	var count int64
	if err := s.db.Model(&models.LedgerEntry{}).Count(&count).Error; err != nil {
		return nil, err
	}
	summary.EntryCount = int(count)

	var income, expense *float64
	s.db.Model(&models.LedgerEntry{}).
		Where("type = ?", models.LedgerTypeIncome).
		Select("SUM(amount)").Scan(&income)
	s.db.Model(&models.LedgerEntry{}).
		Where("type = ?", models.LedgerTypeExpense).
		Select("SUM(amount)").Scan(&expense)

	if income != nil {
		summary.TotalIncome = *income
	}
	if expense != nil {
		summary.TotalExpense = *expense
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}

// Newsletter operations

func (s *DatabaseStore) CreateSubscriber(sub *models.Subscriber) (*models.Subscriber, error) {
	if err := s.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *DatabaseStore) GetSubscriberByEmail(email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&sub).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}

func (s *DatabaseStore) GetAllSubscribers() ([]*models.Subscriber, error) {
	var subs []*models.Subscriber
	err := s.db.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

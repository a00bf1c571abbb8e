package models

// DonationStats aggregates the donation ledger for dashboards and reports.
// Duplicate-rejected submissions never reach storage, so Total only counts
// persisted records.
type DonationStats struct {
	Total               int64   `json:"total"`
	Verified            int64   `json:"verified"`
	Pending             int64   `json:"pending"`
	Rejected            int64   `json:"rejected"`
	TotalAmountVerified float64 `json:"total_amount_verified"`
}

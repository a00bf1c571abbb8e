package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LedgerEntry is a line in the public transparency ledger
type LedgerEntry struct {
	gorm.Model
	EntryID     string     `json:"entry_id" gorm:"uniqueIndex"`
	Type        string     `json:"type"` // "income" or "expense"
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	ProofURL    string     `json:"proof_url"` // receipt/invoice scan, optional
	EntryDate   *time.Time `json:"entry_date"`
	RecordedBy  string     `json:"recorded_by"`
}

// LedgerEntry type constants
const (
	LedgerTypeIncome  = "income"
	LedgerTypeExpense = "expense"
)

func (l *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if l.EntryID == "" {
		l.EntryID = fmt.Sprintf("LED%d", time.Now().UnixNano())
	}
	return nil
}

// LedgerSummary holds running totals across the ledger
type LedgerSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	EntryCount   int     `json:"entry_count"`
}

package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Work represents a project/initiative showcased on the public site
type Work struct {
	gorm.Model
	WorkID      string `json:"work_id" gorm:"uniqueIndex"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"` // e.g. "education", "health", "relief"
	CoverURL    string `json:"cover_url"`
	Location    string `json:"location"`
	Published   bool   `json:"published" gorm:"default:false"`

	Beneficiaries int        `json:"beneficiaries" gorm:"default:0"`
	StartedAt     *time.Time `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.WorkID == "" {
		w.WorkID = fmt.Sprintf("WRK%d", time.Now().UnixNano())
	}
	return nil
}

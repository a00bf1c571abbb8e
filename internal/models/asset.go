package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset represents an uploaded media file (gallery image, document, banner)
type Asset struct {
	gorm.Model
	AssetID      string `json:"asset_id" gorm:"uniqueIndex"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	PublicID     string `json:"public_id"` // upload-service reference, needed for deletes
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"` // "image", "video", "raw"
	UploadedBy   string `json:"uploaded_by"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == "" {
		a.AssetID = uuid.NewString()
	}
	return nil
}

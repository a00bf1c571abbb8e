package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TeamMember represents a member shown on the public team page
type TeamMember struct {
	gorm.Model
	MemberID  string `json:"member_id" gorm:"uniqueIndex"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	LinkedIn  string `json:"linkedin"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	Active    bool   `json:"active" gorm:"default:true"`
}

func (t *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if t.MemberID == "" {
		t.MemberID = fmt.Sprintf("TM%d", time.Now().UnixNano())
	}
	return nil
}

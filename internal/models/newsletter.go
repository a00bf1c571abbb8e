package models

import (
	"strings"

	"gorm.io/gorm"
)

// Subscriber represents a newsletter signup from the public site
type Subscriber struct {
	gorm.Model
	Email  string `json:"email" gorm:"uniqueIndex"`
	Name   string `json:"name"`
	Active bool   `json:"active" gorm:"default:true"`
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return nil
}

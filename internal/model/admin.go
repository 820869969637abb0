package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin represents an administrator account.
type Admin struct {
	ID             string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordDigest string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           string    `json:"role" gorm:"size:100"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invite is a single-use code gating alumni signup.
// Used only ever moves from false to true, either by signup or by cancellation.
type Invite struct {
	ID        string     `json:"id" gorm:"type:char(36);primaryKey"`
	Code      string     `json:"code" gorm:"uniqueIndex;size:64;not null"`
	Used      bool       `json:"used" gorm:"not null;default:false;index"`
	CreatedBy string     `json:"createdBy" gorm:"type:char(36);index"`
	CreatedAt time.Time  `json:"createdAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

// BeforeCreate sets UUID and code before creating the record.
func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Code == "" {
		i.Code = uuid.NewString()
	}
	return nil
}

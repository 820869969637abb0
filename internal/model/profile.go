package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxContactLinks caps the number of contact links on a profile.
const MaxContactLinks = 5

// Profile represents an alumni directory entry.
type Profile struct {
	ID                  string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name                string    `json:"name" gorm:"size:255;not null;index"`
	Username            string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordDigest      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Course              string    `json:"course" gorm:"size:255;index"`
	GraduationYear      string    `json:"graduationYear" gorm:"size:32"`
	PersonalDescription string    `json:"personalDescription" gorm:"type:text"`
	CareerDescription   string    `json:"careerDescription" gorm:"type:text"`
	ContactLinks        []string  `json:"contactLinks" gorm:"serializer:json"`
	ProfileImage        string    `json:"profileImage" gorm:"type:text"`
	FaceImage           string    `json:"faceImage" gorm:"type:text"`
	FacePoints          string    `json:"facePoints" gorm:"type:text"`
	Verified            bool      `json:"verified" gorm:"default:false;index"`
	TermsAccepted       bool      `json:"termsAccepted" gorm:"default:false"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ContactLinks == nil {
		p.ContactLinks = []string{}
	}
	return nil
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareSubject represents the person receiving care, distinct from the
// caregiver who owns the account and from team members.
type CareSubject struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID string         `gorm:"size:36;not null;index" json:"caregiver_id"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50;not null" json:"last_name"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID" json:"-"`
}

// BeforeCreate hook is called before creating a new care subject
func (s *CareSubject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	return nil
}

// FullName returns the subject's display name
func (s *CareSubject) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// HasEmail reports whether the subject can be notified directly.
func (s *CareSubject) HasEmail() bool {
	return s.Email != nil && *s.Email != ""
}

// TableName specifies the table name for the CareSubject model
func (CareSubject) TableName() string {
	return "care_subject"
}

// CreateSubjectRequest represents the data needed to add a care subject
type CreateSubjectRequest struct {
	FirstName   string     `json:"first_name" binding:"required,max=50"`
	LastName    string     `json:"last_name" binding:"required,max=50"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication represents a recurring prescription tracked for a care
// subject. RefillReminderSentAt is the idempotency marker for the
// low-refill reminder.
type Medication struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID          string     `gorm:"size:36;not null;index" json:"caregiver_id"`
	SubjectID            string     `gorm:"size:36;not null;index" json:"subject_id"`
	Name                 string     `gorm:"size:200;not null" json:"name"`
	Dosage               string     `gorm:"size:100" json:"dosage"`
	Frequency            string     `gorm:"size:100" json:"frequency"`
	RefillsRemaining     int        `gorm:"not null;default:0" json:"refills_remaining"`
	IsActive             bool       `gorm:"not null;default:true" json:"is_active"`
	RefillReminderSentAt *time.Time `json:"refill_reminder_sent_at,omitempty"`
	CreatedAt            time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null" json:"updated_at"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID" json:"-"`
	Subject   CareSubject      `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// BeforeCreate hook is called before creating a new medication
func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Medication model
func (Medication) TableName() string {
	return "medication"
}

// CreateMedicationRequest represents the data needed to add a medication
type CreateMedicationRequest struct {
	SubjectID        string `json:"subject_id" binding:"required,uuid"`
	Name             string `json:"name" binding:"required,max=200"`
	Dosage           string `json:"dosage" binding:"max=100"`
	Frequency        string `json:"frequency" binding:"max=100"`
	RefillsRemaining int    `json:"refills_remaining" binding:"min=0"`
}

// UpdateRefillsRequest adjusts the remaining refill count, e.g. after a
// pharmacy pickup.
type UpdateRefillsRequest struct {
	RefillsRemaining int `json:"refills_remaining" binding:"min=0"`
}

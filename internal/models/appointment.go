package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled care appointment for a subject.
// ReminderSentAt is the idempotency marker for the day-before reminder:
// once set, the reminder pipeline never picks the row up again.
type Appointment struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID    string            `gorm:"size:36;not null;index" json:"caregiver_id"`
	SubjectID      string            `gorm:"size:36;not null;index" json:"subject_id"`
	Title          string            `gorm:"size:200;not null" json:"title"`
	Location       string            `gorm:"size:255" json:"location"`
	Notes          string            `gorm:"type:text" json:"notes"`
	StartTime      time.Time         `gorm:"not null;index" json:"start_time"`
	Status         AppointmentStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	ReminderSentAt *time.Time        `json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID" json:"-"`
	Subject   CareSubject      `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// BeforeCreate hook is called before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointment"
}

// CreateAppointmentRequest represents the data needed to create an appointment
type CreateAppointmentRequest struct {
	SubjectID string    `json:"subject_id" binding:"required,uuid"`
	Title     string    `json:"title" binding:"required,max=200"`
	Location  string    `json:"location" binding:"max=255"`
	Notes     string    `json:"notes" binding:"max=2000"`
	StartTime time.Time `json:"start_time" binding:"required"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TrialReminderLabel identifies one of the trial milestone reminders
// recorded in a profile's trial_reminders_sent set.
type TrialReminderLabel string

const (
	TrialReminder3Day    TrialReminderLabel = "3day"
	TrialReminder1Day    TrialReminderLabel = "1day"
	TrialReminderExpired TrialReminderLabel = "expired"
)

// CaregiverProfile represents the account owner: the person coordinating
// care for one or more care subjects. It also carries the subscription
// trial state, so trial reminders are keyed off this row.
type CaregiverProfile struct {
	ID                  string                     `gorm:"primaryKey;size:36" json:"id"`
	Email               string                     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName            string                     `gorm:"size:100;not null" json:"full_name"`
	Phone               *string                    `gorm:"size:20" json:"phone,omitempty"`
	SMSRemindersEnabled bool                       `gorm:"not null;default:false" json:"sms_reminders_enabled"`
	APIToken            string                     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	TrialEndsAt         *time.Time                 `gorm:"index" json:"trial_ends_at,omitempty"`
	TrialRemindersSent  datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"trial_reminders_sent"`
	CreatedAt           time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time                  `gorm:"not null" json:"updated_at"`
	DeletedAt           gorm.DeletedAt             `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new caregiver profile
func (p *CaregiverProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

// BeforeSave hook is called before saving the profile
func (p *CaregiverProfile) BeforeSave(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// HasTrialReminder reports whether the given milestone reminder has
// already been recorded for this profile.
func (p *CaregiverProfile) HasTrialReminder(label TrialReminderLabel) bool {
	for _, sent := range p.TrialRemindersSent {
		if sent == string(label) {
			return true
		}
	}
	return false
}

// CanSMS reports whether the caregiver has opted into SMS reminders and
// has a phone number on file.
func (p *CaregiverProfile) CanSMS() bool {
	return p.SMSRemindersEnabled && p.Phone != nil && *p.Phone != ""
}

// TableName specifies the table name for the CaregiverProfile model
func (CaregiverProfile) TableName() string {
	return "caregiver_profile"
}

// SignUpRequest represents the data needed to create a caregiver account
type SignUpRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	FullName string  `json:"full_name" binding:"required,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,e164"`
}

// UpdateProfileRequest represents updatable caregiver settings
type UpdateProfileRequest struct {
	FullName            *string `json:"full_name" binding:"omitempty,max=100"`
	Phone               *string `json:"phone" binding:"omitempty,e164"`
	SMSRemindersEnabled *bool   `json:"sms_reminders_enabled"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app notification row shown on the caregiver's
// dashboard. The reminder pipeline writes one per dispatched reminder.
type Notification struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID string     `gorm:"size:36;not null;index" json:"caregiver_id"`
	Type        string     `gorm:"size:40;not null" json:"type"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook is called before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notification"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareDocument is an uploaded file (care plan, lab result, insurance
// card) attached to a care subject. The file itself lives in Cloudinary;
// only the secure URL is stored here.
type CareDocument struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID string    `gorm:"size:36;not null;index" json:"caregiver_id"`
	SubjectID   string    `gorm:"size:36;not null;index" json:"subject_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	FileURL     string    `gorm:"size:512;not null" json:"file_url"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	Subject CareSubject `gorm:"foreignKey:SubjectID" json:"-"`
}

// BeforeCreate hook is called before creating a new document
func (d *CareDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the CareDocument model
func (CareDocument) TableName() string {
	return "care_document"
}

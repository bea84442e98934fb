package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MembershipStatus represents the state of a team invitation
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
	MembershipDeclined MembershipStatus = "declined"
)

// TeamMembership associates a person (by email) with a caregiver's
// account and a subset of that account's care subjects. Only accepted
// memberships are eligible reminder recipients.
type TeamMembership struct {
	ID             string                      `gorm:"primaryKey;size:36" json:"id"`
	CaregiverID    string                      `gorm:"size:36;not null;index" json:"caregiver_id"`
	Email          string                      `gorm:"size:255;not null;index" json:"email"`
	Name           string                      `gorm:"size:100;not null" json:"name"`
	Status         MembershipStatus            `gorm:"size:20;not null;default:'pending'" json:"status"`
	InviteToken    string                      `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CareSubjectIDs datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"care_subject_ids"`
	InvitedAt      time.Time                   `gorm:"not null" json:"invited_at"`
	RespondedAt    *time.Time                  `json:"responded_at,omitempty"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID" json:"-"`
}

// BeforeCreate hook is called before creating a new membership
func (t *TeamMembership) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.InviteToken == "" {
		t.InviteToken = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = MembershipPending
	}
	if t.InvitedAt.IsZero() {
		t.InvitedAt = time.Now()
	}
	return nil
}

// CoversSubject reports whether this membership is scoped to the given
// care subject.
func (t *TeamMembership) CoversSubject(subjectID string) bool {
	for _, id := range t.CareSubjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

// TableName specifies the table name for the TeamMembership model
func (TeamMembership) TableName() string {
	return "team_membership"
}

// InviteTeamMemberRequest represents the data needed to invite a helper
type InviteTeamMemberRequest struct {
	Email          string   `json:"email" binding:"required,email"`
	Name           string   `json:"name" binding:"required,max=100"`
	CareSubjectIDs []string `json:"care_subject_ids" binding:"required,min=1,dive,uuid"`
}

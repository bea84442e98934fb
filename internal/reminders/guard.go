package reminders

import (
	"time"

	"carecircle/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Guard stamps the per-entity idempotency markers. Each stamp is a
// single-row UPDATE keyed by primary key, so concurrent runs cannot
// leave a partial marker; once set, the scanner never selects the row
// for that class again.
//
// The stamp happens after the dispatch attempt regardless of whether any
// channel succeeded: attempted-once, not delivered-once.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// MarkAppointment records that the day-before reminder was attempted.
func (g *Guard) MarkAppointment(appointmentID string, at time.Time) error {
	return g.db.Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent_at", at).Error
}

// MarkMedication records that the refill reminder was attempted.
func (g *Guard) MarkMedication(medicationID string, at time.Time) error {
	return g.db.Model(&models.Medication{}).
		Where("id = ?", medicationID).
		Update("refill_reminder_sent_at", at).Error
}

// MarkTrial appends the milestone label to the profile's sent set.
func (g *Guard) MarkTrial(profile *models.CaregiverProfile, label models.TrialReminderLabel) error {
	updated := make([]string, 0, len(profile.TrialRemindersSent)+1)
	updated = append(updated, profile.TrialRemindersSent...)
	updated = append(updated, string(label))

	err := g.db.Model(&models.CaregiverProfile{}).
		Where("id = ?", profile.ID).
		Update("trial_reminders_sent", datatypes.NewJSONSlice(updated)).Error
	if err != nil {
		return err
	}
	profile.TrialRemindersSent = datatypes.NewJSONSlice(updated)
	return nil
}

package reminders

import (
	"math"
	"time"

	"carecircle/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Scanner finds entities whose reminder is due and whose idempotency
// marker is still unset. Rows already marked never come back, so a scan
// after a completed run is a no-op.
type Scanner struct {
	db *gorm.DB
}

func NewScanner(db *gorm.DB) *Scanner {
	return &Scanner{db: db}
}

// startOfTomorrowUTC returns midnight UTC of the day after now.
func startOfTomorrowUTC(now time.Time) time.Time {
	t := now.UTC().AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DueAppointments returns non-cancelled appointments starting tomorrow
// (UTC day) that have not had their reminder sent.
func (s *Scanner) DueAppointments(now time.Time) ([]models.Appointment, error) {
	dayStart := startOfTomorrowUTC(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	var appointments []models.Appointment
	err := s.db.
		Preload("Caregiver").
		Preload("Subject").
		Where("status <> ?", models.AppointmentCancelled).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Where("reminder_sent_at IS NULL").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// DueMedications returns active medications down to their last refill
// (0 or 1 remaining) that have not had a refill reminder sent.
func (s *Scanner) DueMedications() ([]models.Medication, error) {
	var medications []models.Medication
	err := s.db.
		Preload("Caregiver").
		Preload("Subject").
		Where("is_active = ?", true).
		Where("refills_remaining BETWEEN ? AND ?", 0, 1).
		Where("refill_reminder_sent_at IS NULL").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

// TrialCandidate pairs a profile with the single trial milestone selected
// for this run.
type TrialCandidate struct {
	Profile  models.CaregiverProfile
	Label    models.TrialReminderLabel
	DaysLeft int
}

// DueTrials returns at most one trial milestone per profile, selected in
// priority order expired > 1day > 3day. Profiles without an email are
// skipped silently; nothing is marked, so they stay eligible until the
// data is fixed.
func (s *Scanner) DueTrials(now time.Time) ([]TrialCandidate, error) {
	// Everything with 3 or fewer days left, including long-expired trials
	// whose expired milestone may still be unsent.
	cutoff := now.Add(72 * time.Hour)

	var profiles []models.CaregiverProfile
	err := s.db.
		Where("trial_ends_at IS NOT NULL").
		Where("trial_ends_at <= ?", cutoff).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	var candidates []TrialCandidate
	for _, profile := range profiles {
		if profile.TrialEndsAt == nil {
			continue
		}
		if profile.Email == "" {
			log.Debug().Str("profile_id", profile.ID).Msg("trial profile has no email, skipping")
			continue
		}

		left := trialDaysLeft(*profile.TrialEndsAt, now)
		label, ok := selectTrialLabel(profile, left)
		if !ok {
			continue
		}
		candidates = append(candidates, TrialCandidate{Profile: profile, Label: label, DaysLeft: left})
	}
	return candidates, nil
}

// trialDaysLeft is the number of whole-or-partial days until the trial
// ends, rounded up. Zero or negative means the trial is over.
func trialDaysLeft(endsAt, now time.Time) int {
	return int(math.Ceil(endsAt.Sub(now).Hours() / 24))
}

// selectTrialLabel picks the highest-priority milestone matching the
// days-left value whose label has not already been recorded. At most one
// milestone fires per profile per run.
func selectTrialLabel(profile models.CaregiverProfile, daysLeft int) (models.TrialReminderLabel, bool) {
	candidates := []struct {
		label   models.TrialReminderLabel
		matches bool
	}{
		{models.TrialReminderExpired, daysLeft <= 0},
		{models.TrialReminder1Day, daysLeft == 1},
		{models.TrialReminder3Day, daysLeft >= 2 && daysLeft <= 3},
	}

	for _, c := range candidates {
		if c.matches && !profile.HasTrialReminder(c.label) {
			return c.label, true
		}
	}
	return "", false
}

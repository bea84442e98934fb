package reminders

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Engine is the reminder dispatch pipeline: scan for due entities,
// resolve recipients, fan out across channels, stamp the idempotency
// marker, and report batch counts. It holds no state between runs;
// everything durable lives in the marker columns.
type Engine struct {
	scanner    *Scanner
	resolver   *Resolver
	dispatcher *Dispatcher
	guard      *Guard
	now        func() time.Time
}

func NewEngine(db *gorm.DB, email EmailSender, sms SMSSender) *Engine {
	return &Engine{
		scanner:    NewScanner(db),
		resolver:   NewResolver(db),
		dispatcher: NewDispatcher(db, email, sms),
		guard:      NewGuard(db),
		now:        time.Now,
	}
}

// RunAppointmentReminders processes every appointment starting tomorrow
// whose reminder has not yet been attempted. A scan failure aborts only
// this class's run; individual send failures never do.
func (e *Engine) RunAppointmentReminders() (BatchSummary, error) {
	now := e.now()
	summary := BatchSummary{Message: "appointment reminders processed"}

	due, err := e.scanner.DueAppointments(now)
	if err != nil {
		return summary, err
	}

	for _, appt := range due {
		if appt.Caregiver.Email == "" {
			log.Debug().Str("appointment_id", appt.ID).Msg("no caregiver email, skipping")
			continue
		}
		if appt.Subject.ID == "" {
			log.Debug().Str("appointment_id", appt.ID).Msg("no care subject, skipping")
			continue
		}

		targets, err := e.resolver.Targets(appt.Caregiver, appt.Subject)
		if err != nil {
			// No marker set; the row stays eligible for the next run.
			log.Error().Err(err).Str("appointment_id", appt.ID).Msg("resolving recipients failed")
			continue
		}

		results := e.dispatcher.Dispatch(appt.Caregiver, targets, appointmentMessage(appt))
		summary.Processed++
		tally(&summary, results)

		if err := e.guard.MarkAppointment(appt.ID, now); err != nil {
			log.Error().Err(err).Str("appointment_id", appt.ID).Msg("stamping reminder marker failed")
		}
	}

	e.alertOnElevatedFailures("appointment", summary)
	return summary, nil
}

// RunMedicationRefillReminders processes active medications with at most
// one refill remaining whose refill reminder has not yet been attempted.
func (e *Engine) RunMedicationRefillReminders() (BatchSummary, error) {
	now := e.now()
	summary := BatchSummary{Message: "medication refill reminders processed"}

	due, err := e.scanner.DueMedications()
	if err != nil {
		return summary, err
	}

	for _, med := range due {
		if med.Caregiver.Email == "" {
			log.Debug().Str("medication_id", med.ID).Msg("no caregiver email, skipping")
			continue
		}
		if med.Subject.ID == "" {
			log.Debug().Str("medication_id", med.ID).Msg("no care subject, skipping")
			continue
		}

		targets, err := e.resolver.Targets(med.Caregiver, med.Subject)
		if err != nil {
			log.Error().Err(err).Str("medication_id", med.ID).Msg("resolving recipients failed")
			continue
		}

		results := e.dispatcher.Dispatch(med.Caregiver, targets, refillMessage(med))
		summary.Processed++
		tally(&summary, results)

		if err := e.guard.MarkMedication(med.ID, now); err != nil {
			log.Error().Err(err).Str("medication_id", med.ID).Msg("stamping refill marker failed")
		}
	}

	e.alertOnElevatedFailures("refill", summary)
	return summary, nil
}

// RunTrialReminders processes trial milestone reminders. Each profile
// receives at most one milestone per run, and the reminder goes to the
// account owner only.
func (e *Engine) RunTrialReminders() (BatchSummary, error) {
	now := e.now()
	summary := BatchSummary{Message: "trial reminders processed"}

	candidates, err := e.scanner.DueTrials(now)
	if err != nil {
		return summary, err
	}

	for _, candidate := range candidates {
		targets := []NotificationTarget{{
			Email: candidate.Profile.Email,
			Name:  candidate.Profile.FullName,
			Role:  RoleCaregiver,
		}}

		results := e.dispatcher.Dispatch(candidate.Profile, targets, trialMessage(candidate))
		summary.Processed++
		tally(&summary, results)

		if err := e.guard.MarkTrial(&candidate.Profile, candidate.Label); err != nil {
			log.Error().Err(err).Str("profile_id", candidate.Profile.ID).Msg("recording trial milestone failed")
		}
	}

	e.alertOnElevatedFailures("trial", summary)
	return summary, nil
}

// tally folds per-attempt results into the run summary. A skipped
// channel counts as a failure: the recipient did not get the message.
// The in-app row is bookkeeping, not a delivery, so it stays out of the
// counts.
func tally(summary *BatchSummary, results []DispatchResult) {
	for _, r := range results {
		if r.Channel == ChannelInApp {
			continue
		}
		if r.Success {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}
}

// alertOnElevatedFailures surfaces systemic transport trouble to
// operators. Markers are stamped either way, so without this a dead
// provider would silently swallow every reminder.
func (e *Engine) alertOnElevatedFailures(family string, summary BatchSummary) {
	if summary.Failed > 0 && summary.Failed > summary.Sent {
		log.Error().
			Str("family", family).
			Int("sent", summary.Sent).
			Int("failed", summary.Failed).
			Msg("elevated reminder failure rate")
	}
}

package reminders

import (
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Worker runs the three reminder classes on their own cron schedules for
// single-binary deployments. Hosted deployments can disable it and hit
// the HTTP job endpoints from an external scheduler instead.
type Worker struct {
	engine *Engine
	cron   *cron.Cron
}

func NewWorker(engine *Engine) *Worker {
	return &Worker{
		engine: engine,
		cron:   cron.New(),
	}
}

func cronSpec(envKey, fallback string) string {
	if spec := os.Getenv(envKey); spec != "" {
		return spec
	}
	return fallback
}

// Start registers the three jobs and starts the scheduler. Each class
// runs once daily; failures in one class never affect another.
func (w *Worker) Start() error {
	jobs := []struct {
		name string
		spec string
		run  func() (BatchSummary, error)
	}{
		{"appointment_reminders", cronSpec("APPOINTMENT_REMINDER_CRON", "0 8 * * *"), w.engine.RunAppointmentReminders},
		{"refill_reminders", cronSpec("REFILL_REMINDER_CRON", "0 9 * * *"), w.engine.RunMedicationRefillReminders},
		{"trial_reminders", cronSpec("TRIAL_REMINDER_CRON", "0 10 * * *"), w.engine.RunTrialReminders},
	}

	for _, job := range jobs {
		job := job
		_, err := w.cron.AddFunc(job.spec, func() {
			summary, err := job.run()
			if err != nil {
				log.Error().Err(err).Str("job", job.name).Msg("reminder run failed")
				return
			}
			log.Info().
				Str("job", job.name).
				Int("processed", summary.Processed).
				Int("sent", summary.Sent).
				Int("failed", summary.Failed).
				Msg("reminder run complete")
		})
		if err != nil {
			return err
		}
	}

	w.cron.Start()
	return nil
}

// Stop halts the scheduler; a run already in progress finishes.
func (w *Worker) Stop() {
	w.cron.Stop()
}

package reminders

import (
	"sync"

	"carecircle/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Dispatcher fans one rendered message out across the email, SMS and
// in-app channels. Every attempt is isolated: a failed send is recorded
// and the rest of the batch continues. There are no retries within a
// run.
type Dispatcher struct {
	db    *gorm.DB
	email EmailSender
	sms   SMSSender
}

func NewDispatcher(db *gorm.DB, email EmailSender, sms SMSSender) *Dispatcher {
	return &Dispatcher{db: db, email: email, sms: sms}
}

// Dispatch sends msg to every target by email in parallel, sends at most
// one SMS to the caregiver when they have opted in, and writes one
// in-app notification row for the caregiver. It never returns an error;
// per-attempt outcomes are in the results.
func (d *Dispatcher) Dispatch(caregiver models.CaregiverProfile, targets []NotificationTarget, msg Message) []DispatchResult {
	results := make([]DispatchResult, 0, len(targets)+2)

	resultCh := make(chan DispatchResult, len(targets))
	var wg sync.WaitGroup

	for _, target := range targets {
		wg.Add(1)
		go func(t NotificationTarget) {
			defer wg.Done()
			r := d.email.Send(t.Email, t.Name, msg.Subject, msg.HTML)
			resultCh <- DispatchResult{
				Target:  t,
				Channel: ChannelEmail,
				Success: r.Success,
				Skipped: r.Skipped,
				Err:     r.Err,
			}
		}(target)
	}

	wg.Wait()
	close(resultCh)
	for r := range resultCh {
		results = append(results, r)
	}

	caregiverTarget := NotificationTarget{
		Email: caregiver.Email,
		Name:  caregiver.FullName,
		Role:  RoleCaregiver,
	}

	// SMS goes to the caregiver only, at most once per entity, and only
	// with an explicit opt-in and a phone number on file.
	if msg.SMSBody != "" && caregiver.CanSMS() {
		r := d.sms.Send(*caregiver.Phone, msg.SMSBody)
		results = append(results, DispatchResult{
			Target:  caregiverTarget,
			Channel: ChannelSMS,
			Success: r.Success,
			Skipped: r.Skipped,
			Err:     r.Err,
		})
	}

	notification := models.Notification{
		CaregiverID: caregiver.ID,
		Type:        string(msg.Class),
		Title:       msg.Subject,
		Body:        msg.SMSBody,
	}
	err := d.db.Create(&notification).Error
	results = append(results, DispatchResult{
		Target:  caregiverTarget,
		Channel: ChannelInApp,
		Success: err == nil,
		Err:     err,
	})

	for _, r := range results {
		if r.Err != nil {
			log.Warn().
				Err(r.Err).
				Str("channel", string(r.Channel)).
				Str("to", r.Target.Email).
				Str("class", string(msg.Class)).
				Msg("reminder send failed")
		}
	}

	return results
}

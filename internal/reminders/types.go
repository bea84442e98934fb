package reminders

import "carecircle/internal/services"

// Class identifies one reminder type. Trial milestones are distinct
// classes because each has its own idempotency label.
type Class string

const (
	ClassAppointment  Class = "appointment_tomorrow"
	ClassRefill       Class = "medication_refill"
	ClassTrial3Day    Class = "trial_3day"
	ClassTrial1Day    Class = "trial_1day"
	ClassTrialExpired Class = "trial_expired"
)

// Role tags a notification target by their relationship to the care
// subject.
type Role string

const (
	RoleCaregiver Role = "caregiver"
	RoleSubject   Role = "subject"
	RoleMember    Role = "member"
)

// NotificationTarget is one resolved recipient. It is transient: the
// resolver produces it, the dispatcher consumes it, nothing persists it.
type NotificationTarget struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Channel identifies a delivery transport.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
)

// DispatchResult records the outcome of a single send attempt. Failures
// are carried here instead of aborting the batch.
type DispatchResult struct {
	Target  NotificationTarget
	Channel Channel
	Success bool
	Skipped bool
	Err     error
}

// BatchSummary is returned from each run entry point and serialized into
// the scheduler's response body.
type BatchSummary struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
}

// EmailSender is the transport used for the email channel; implemented
// by services.EmailService.
type EmailSender interface {
	Send(toEmail, toName, subject, html string) services.EmailResult
}

// SMSSender is the transport used for the SMS channel; implemented by
// services.SMSService.
type SMSSender interface {
	Send(to, body string) services.SMSResult
}

// Message is the rendered, channel-specific content for one due entity.
type Message struct {
	Class   Class
	Subject string
	HTML    string
	SMSBody string
}

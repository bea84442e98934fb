package services

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailResult is the outcome of one email send attempt. Send never
// panics or returns a Go error; callers inspect the result and decide
// what to count. Skipped means the channel was not configured.
type EmailResult struct {
	Success   bool
	Skipped   bool
	MessageID string
	Err       error
}

type EmailService struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "CareCircle"
	}

	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Configured reports whether the SendGrid credentials are present.
func (s *EmailService) Configured() bool {
	return s.apiKey != "" && s.fromEmail != ""
}

// Send delivers a single HTML email. A missing API key is a skip, not a
// failure of the calling batch; transport errors are folded into the
// result instead of being returned.
func (s *EmailService) Send(toEmail, toName, subject, html string) EmailResult {
	if !s.Configured() {
		log.Warn().Str("to", toEmail).Msg("sendgrid not configured, skipping email")
		return EmailResult{Skipped: true}
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", html)

	response, err := s.client.Send(message)
	if err != nil {
		return EmailResult{Err: err}
	}
	if response.StatusCode >= 400 {
		return EmailResult{Err: fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, response.Body)}
	}

	result := EmailResult{Success: true}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		result.MessageID = ids[0]
	}
	return result
}

// SendInvitation emails a pending team member their accept link.
func (s *EmailService) SendInvitation(toEmail, toName, inviterName, acceptURL string) EmailResult {
	subject := fmt.Sprintf("%s invited you to their care team", inviterName)
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>%s has invited you to join their care team on CareCircle.</p>"+
			"<p><a href=\"%s\">Accept the invitation</a></p>",
		toName, inviterName, acceptURL)
	return s.Send(toEmail, toName, subject, html)
}

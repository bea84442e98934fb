package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailSendSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("SENDGRID_FROM_EMAIL", "")

	svc := NewEmailService()
	assert.False(t, svc.Configured())

	result := svc.Send("anna@example.com", "Anna", "Hello", "<p>Hi</p>")
	assert.True(t, result.Skipped)
	assert.False(t, result.Success)
	assert.NoError(t, result.Err)
}

func TestEmailConfigured(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "SG.test")
	t.Setenv("SENDGRID_FROM_EMAIL", "reminders@carecircle.app")

	assert.True(t, NewEmailService().Configured())
}

func TestInvitationSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("SENDGRID_FROM_EMAIL", "")

	result := NewEmailService().SendInvitation(
		"rosa@example.com", "Rosa", "Anna Ortiz", "http://localhost:8080/team/accept?token=abc")
	assert.True(t, result.Skipped)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestCanSMS(t *testing.T) {
	phone := "+15555550123"

	assert.True(t, (&CaregiverProfile{SMSRemindersEnabled: true, Phone: &phone}).CanSMS())
	assert.False(t, (&CaregiverProfile{SMSRemindersEnabled: false, Phone: &phone}).CanSMS())
	assert.False(t, (&CaregiverProfile{SMSRemindersEnabled: true}).CanSMS())

	empty := ""
	assert.False(t, (&CaregiverProfile{SMSRemindersEnabled: true, Phone: &empty}).CanSMS())
}

func TestHasTrialReminder(t *testing.T) {
	profile := CaregiverProfile{TrialRemindersSent: datatypes.NewJSONSlice([]string{"3day", "1day"})}

	assert.True(t, profile.HasTrialReminder(TrialReminder3Day))
	assert.True(t, profile.HasTrialReminder(TrialReminder1Day))
	assert.False(t, profile.HasTrialReminder(TrialReminderExpired))
}

func TestCoversSubject(t *testing.T) {
	membership := TeamMembership{CareSubjectIDs: datatypes.NewJSONSlice([]string{"subj-1", "subj-2"})}

	assert.True(t, membership.CoversSubject("subj-1"))
	assert.False(t, membership.CoversSubject("subj-3"))
	assert.False(t, (&TeamMembership{}).CoversSubject("subj-1"))
}

func TestSubjectHelpers(t *testing.T) {
	email := "walter@example.com"
	subject := CareSubject{FirstName: "Walter", LastName: "Ortiz", Email: &email}

	assert.Equal(t, "Walter Ortiz", subject.FullName())
	assert.True(t, subject.HasEmail())

	assert.Equal(t, "Walter", (&CareSubject{FirstName: "Walter"}).FullName())
	assert.False(t, (&CareSubject{}).HasEmail())
}

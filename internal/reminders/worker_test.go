package reminders

import (
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCronSpecsParse(t *testing.T) {
	for _, spec := range []string{
		cronSpec("APPOINTMENT_REMINDER_CRON", "0 8 * * *"),
		cronSpec("REFILL_REMINDER_CRON", "0 9 * * *"),
		cronSpec("TRIAL_REMINDER_CRON", "0 10 * * *"),
	} {
		_, err := cron.ParseStandard(spec)
		assert.NoError(t, err, "spec %q should parse", spec)
	}
}

func TestCronSpecEnvOverride(t *testing.T) {
	t.Setenv("APPOINTMENT_REMINDER_CRON", "*/5 * * * *")
	assert.Equal(t, "*/5 * * * *", cronSpec("APPOINTMENT_REMINDER_CRON", "0 8 * * *"))
	assert.Equal(t, "0 8 * * *", cronSpec("UNSET_CRON_KEY", "0 8 * * *"))
}

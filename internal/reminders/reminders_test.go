package reminders

import (
	"errors"
	"sync"
	"testing"

	"carecircle/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB opens a GORM connection backed by sqlmock. Default
// transactions are skipped so expectations map one-to-one onto
// statements.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

type sentEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
}

// fakeEmailSender records sends and fails or skips on demand.
type fakeEmailSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	failAll bool
	skipAll bool
}

func (f *fakeEmailSender) Send(toEmail, toName, subject, html string) services.EmailResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: toEmail, Name: toName, Subject: subject, HTML: html})

	if f.skipAll {
		return services.EmailResult{Skipped: true}
	}
	if f.failAll {
		return services.EmailResult{Err: errors.New("smtp unreachable")}
	}
	return services.EmailResult{Success: true, MessageID: "msg-1"}
}

func (f *fakeEmailSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	addrs := make([]string, 0, len(f.sent))
	for _, s := range f.sent {
		addrs = append(addrs, s.To)
	}
	return addrs
}

// fakeSMSSender records sends and fails on demand.
type fakeSMSSender struct {
	mu      sync.Mutex
	sent    []string
	failAll bool
}

func (f *fakeSMSSender) Send(to, body string) services.SMSResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)

	if f.failAll {
		return services.SMSResult{Err: errors.New("carrier rejected")}
	}
	return services.SMSResult{Success: true, SID: "SM1"}
}

package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSSendSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("TWILIO_FROM_NUMBER", "")

	result := NewSMSService().Send("+15555550123", "hello")
	assert.True(t, result.Skipped)
	assert.False(t, result.Success)
	assert.NoError(t, result.Err)
}

func TestSMSSendSuccess(t *testing.T) {
	var gotTo, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)

		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM99","status":"queued"}`))
	}))
	defer server.Close()

	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_FROM_NUMBER", "+15550001111")
	t.Setenv("TWILIO_API_BASE", server.URL)

	result := NewSMSService().Send("+15555550123", "CareCircle: refill due.")
	require.NoError(t, result.Err)
	assert.True(t, result.Success)
	assert.Equal(t, "SM99", result.SID)
	assert.Equal(t, "+15555550123", gotTo)
	assert.Equal(t, "CareCircle: refill due.", gotBody)
}

func TestSMSSendTruncatesLongBody(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotBody = r.PostFormValue("Body")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1"}`))
	}))
	defer server.Close()

	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_FROM_NUMBER", "+15550001111")
	t.Setenv("TWILIO_API_BASE", server.URL)

	result := NewSMSService().Send("+15555550123", strings.Repeat("x", 400))
	require.True(t, result.Success)
	assert.LessOrEqual(t, len(gotBody), smsMaxLength)
	assert.True(t, strings.HasSuffix(gotBody, "..."))
}

func TestTruncateBodyKeepsRunesIntact(t *testing.T) {
	short := "pick up Grandma's prescription"
	assert.Equal(t, short, truncateBody(short))

	// An accented name straddling the cut point must not leave a
	// dangling lead byte behind.
	body := strings.Repeat("x", 156) + strings.Repeat("é", 10)
	got := truncateBody(body)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), smsMaxLength)
	assert.True(t, strings.HasSuffix(got, "..."))

	ascii := strings.Repeat("x", 400)
	got = truncateBody(ascii)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, smsMaxLength, len(got))
}

func TestSMSSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message":"The 'To' number is not a valid phone number"}`))
	}))
	defer server.Close()

	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_FROM_NUMBER", "+15550001111")
	t.Setenv("TWILIO_API_BASE", server.URL)

	result := NewSMSService().Send("not-a-number", "hello")
	assert.False(t, result.Success)
	assert.False(t, result.Skipped)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "not a valid phone number")
}

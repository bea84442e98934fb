package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const smsMaxLength = 160

// SMSResult is the outcome of one SMS send attempt, mirroring the
// EmailResult contract: never panics, missing credentials is a skip.
type SMSResult struct {
	Success bool
	Skipped bool
	SID     string
	Err     error
}

type SMSService struct {
	accountSID string
	authToken  string
	fromNumber string
	apiBase    string
	client     *http.Client
}

func NewSMSService() *SMSService {
	apiBase := os.Getenv("TWILIO_API_BASE")
	if apiBase == "" {
		apiBase = "https://api.twilio.com/2010-04-01"
	}

	return &SMSService{
		accountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		authToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		fromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		apiBase:    apiBase,
		client:     &http.Client{Timeout: time.Second * 10},
	}
}

// Configured reports whether the Twilio credentials are present.
func (s *SMSService) Configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.fromNumber != ""
}

// truncateBody caps a body at one SMS segment without splitting a
// multi-byte rune at the cut point.
func truncateBody(body string) string {
	if len(body) <= smsMaxLength {
		return body
	}
	cut := smsMaxLength - 3
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}

// twilioMessageResponse is the subset of Twilio's Messages.json response
// the service cares about.
type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Send delivers one SMS to an E.164 number. Bodies longer than a single
// segment are truncated rather than split.
func (s *SMSService) Send(to, body string) SMSResult {
	if !s.Configured() {
		log.Warn().Str("to", to).Msg("twilio not configured, skipping sms")
		return SMSResult{Skipped: true}
	}

	body = truncateBody(body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.apiBase, s.accountSID)

	params := url.Values{}
	params.Set("To", to)
	params.Set("From", s.fromNumber)
	params.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return SMSResult{Err: err}
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return SMSResult{Err: err}
	}
	defer resp.Body.Close()

	var message twilioMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return SMSResult{Err: fmt.Errorf("decoding twilio response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		return SMSResult{Err: fmt.Errorf("twilio returned %d: %s", resp.StatusCode, message.ErrorMessage)}
	}

	return SMSResult{Success: true, SID: message.SID}
}

package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)

	tests := []struct {
		name      string
		secret    string
		signature string
		expected  bool
	}{
		{name: "Valid", secret: "sk_test", signature: sign("sk_test", body), expected: true},
		{name: "Upper case hex", secret: "sk_test", signature: hexUpper(sign("sk_test", body)), expected: true},
		{name: "Wrong secret", secret: "sk_test", signature: sign("other", body), expected: false},
		{name: "Missing header", secret: "sk_test", signature: "", expected: false},
		{name: "No secret configured", secret: "", signature: sign("", body), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VerifySignature(tt.secret, body, tt.signature))
		})
	}
}

func hexUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expected    Event
		expectedErr error
	}{
		{
			name: "Signup charge identified by email",
			body: `{"event":"charge.success","data":{"reference":"PTX-1","amount":1500000,"customer":{"email":"ada@example.com"},"metadata":{"type":"signup"}}}`,
			expected: Event{Name: EventChargeSuccess, Reference: "PTX-1", Payment: &domain.PaymentEvent{
				Type: domain.PaymentSignup, Email: "ada@example.com", Amount: 1500000, Reference: "PTX-1",
			}},
		},
		{
			name: "Subscription charge with numeric user id",
			body: `{"event":"charge.success","data":{"reference":"PTX-2","amount":5000000,"customer":{"email":"a@b.c"},"metadata":{"type":"subscription","userId":7}}}`,
			expected: Event{Name: EventChargeSuccess, Reference: "PTX-2", Payment: &domain.PaymentEvent{
				Type: domain.PaymentSubscription, UserID: 7, Email: "a@b.c", Amount: 5000000, Reference: "PTX-2",
			}},
		},
		{
			name: "Metadata echoed as a string",
			body: `{"event":"charge.success","data":{"reference":"PTX-3","amount":5000000,"customer":{},"metadata":"{\"type\":\"subscription\",\"userId\":\"9\"}"}}`,
			expected: Event{Name: EventChargeSuccess, Reference: "PTX-3", Payment: &domain.PaymentEvent{
				Type: domain.PaymentSubscription, UserID: 9, Amount: 5000000, Reference: "PTX-3",
			}},
		},
		{
			name: "Transfer reversed",
			body: `{"event":"transfer.reversed","data":{"reference":"wth-1","status":"reversed"}}`,
			expected: Event{Name: EventTransferReversed, Reference: "wth-1", Transfer: &domain.TransferEvent{
				Reference: "wth-1", Outcome: domain.TransferReversed,
			}},
		},
		{
			name: "Transfer failed carries the gateway response",
			body: `{"event":"transfer.failed","data":{"reference":"wth-3","status":"failed","gateway_response":" Account closed "}}`,
			expected: Event{Name: EventTransferFailed, Reference: "wth-3", Transfer: &domain.TransferEvent{
				Reference: "wth-3", Outcome: domain.TransferFailed, Reason: "Account closed",
			}},
		},
		{
			name:     "Transfer success",
			body:     `{"event":"transfer.success","data":{"reference":"wth-2"}}`,
			expected: Event{Name: EventTransferSuccess, Reference: "wth-2", Transfer: &domain.TransferEvent{Reference: "wth-2", Outcome: domain.TransferSuccess}},
		},
		{
			name:        "Charge we did not initialize",
			body:        `{"event":"charge.success","data":{"reference":"X","amount":100,"customer":{"email":"a@b.c"},"metadata":null}}`,
			expected:    Event{Name: EventChargeSuccess},
			expectedErr: ErrUnsupportedEvent,
		},
		{
			name:        "Other event",
			body:        `{"event":"subscription.create","data":{}}`,
			expected:    Event{Name: "subscription.create"},
			expectedErr: ErrUnsupportedEvent,
		},
		{
			name:        "Charge without amount",
			body:        `{"event":"charge.success","data":{"reference":"PTX-1","customer":{"email":"a@b.c"},"metadata":{"type":"signup"}}}`,
			expected:    Event{Name: EventChargeSuccess},
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "Subscription with neither user id nor email",
			body:        `{"event":"charge.success","data":{"reference":"PTX-1","amount":5,"customer":{},"metadata":{"type":"subscription"}}}`,
			expected:    Event{Name: EventChargeSuccess},
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "Bad user id",
			body:        `{"event":"charge.success","data":{"reference":"PTX-1","amount":5,"metadata":{"type":"subscription","userId":"abc"}}}`,
			expected:    Event{Name: EventChargeSuccess},
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "Transfer without reference",
			body:        `{"event":"transfer.failed","data":{"status":"failed"}}`,
			expected:    Event{Name: EventTransferFailed},
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "Not JSON",
			body:        `event=charge.success`,
			expectedErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent([]byte(tt.body))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, event)
		})
	}
}

func TestTransferOutcome(t *testing.T) {
	for status, expected := range map[string]domain.TransferOutcome{
		"success":  domain.TransferSuccess,
		"failed":   domain.TransferFailed,
		"reversed": domain.TransferReversed,
	} {
		outcome, terminal := Transfer{Status: status}.Outcome()
		assert.True(t, terminal, status)
		assert.Equal(t, expected, outcome)
	}

	_, terminal := Transfer{Status: "pending"}.Outcome()
	assert.False(t, terminal)
}

func TestTransferFailureReason(t *testing.T) {
	assert.Equal(t, "Insufficient funds", Transfer{Status: "failed", GatewayResponse: "Insufficient funds"}.FailureReason())
	assert.Empty(t, Transfer{Status: "success", GatewayResponse: "Approved"}.FailureReason())
}

package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GlebRadaev/affiliate/internal/domain"
)

const (
	EventChargeSuccess    = "charge.success"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"

	SignatureHeader = "X-Paystack-Signature"
)

var (
	ErrUnsupportedEvent = errors.New("unsupported event")
	ErrMalformedEvent   = errors.New("malformed event")
)

// VerifySignature checks the hex HMAC-SHA512 of the raw body.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Metadata is what we attach at payment initialization. The provider may echo
// it back as an object or as a JSON-encoded string; userId may be a number or
// a string.
type Metadata struct {
	Type   domain.PaymentType
	UserID int
}

func (m *Metadata) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		b = []byte(s)
	}

	var raw struct {
		Type   string          `json:"type"`
		UserID json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.Type = domain.PaymentType(raw.Type)

	id := strings.Trim(string(raw.UserID), `"`)
	if id == "" || id == "null" {
		return nil
	}
	userID, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("userId %q: %w", id, err)
	}
	m.UserID = userID
	return nil
}

type Charge struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
	Metadata Metadata `json:"metadata"`
}

// PaymentEvent normalizes a successful charge. Charges we did not initialize
// are ErrUnsupportedEvent.
func (c Charge) PaymentEvent() (domain.PaymentEvent, error) {
	if c.Reference == "" || c.Amount <= 0 {
		return domain.PaymentEvent{}, fmt.Errorf("%w: charge without reference or amount", ErrMalformedEvent)
	}
	switch c.Metadata.Type {
	case domain.PaymentSignup, domain.PaymentSubscription:
	default:
		return domain.PaymentEvent{}, fmt.Errorf("%w: payment type %q", ErrUnsupportedEvent, c.Metadata.Type)
	}
	if c.Metadata.UserID == 0 && c.Customer.Email == "" {
		return domain.PaymentEvent{}, fmt.Errorf("%w: charge without payer", ErrMalformedEvent)
	}
	return domain.PaymentEvent{
		Type:      c.Metadata.Type,
		UserID:    c.Metadata.UserID,
		Email:     strings.ToLower(c.Customer.Email),
		Amount:    c.Amount,
		Reference: c.Reference,
	}, nil
}

type Transfer struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	TransferCode    string `json:"transfer_code"`
	GatewayResponse string `json:"gateway_response"`
}

// FailureReason is the provider's explanation for a failed transfer, empty
// otherwise.
func (t Transfer) FailureReason() string {
	if t.Status != "failed" {
		return ""
	}
	return strings.TrimSpace(t.GatewayResponse)
}

// Outcome maps a terminal transfer status. Pending states report false.
func (t Transfer) Outcome() (domain.TransferOutcome, bool) {
	switch t.Status {
	case "success":
		return domain.TransferSuccess, true
	case "failed":
		return domain.TransferFailed, true
	case "reversed":
		return domain.TransferReversed, true
	}
	return "", false
}

// Event is a decoded webhook. Exactly one of Payment and Transfer is set.
type Event struct {
	Name      string
	Reference string
	Payment   *domain.PaymentEvent
	Transfer  *domain.TransferEvent
}

func ParseEvent(body []byte) (Event, error) {
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if env.Event == "" || len(env.Data) == 0 {
		return Event{}, fmt.Errorf("%w: missing event or data", ErrMalformedEvent)
	}
	event := Event{Name: env.Event}

	switch env.Event {
	case EventChargeSuccess:
		var charge Charge
		if err := json.Unmarshal(env.Data, &charge); err != nil {
			return event, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		payment, err := charge.PaymentEvent()
		if err != nil {
			return event, err
		}
		event.Reference, event.Payment = payment.Reference, &payment
	case EventTransferSuccess, EventTransferFailed, EventTransferReversed:
		var transfer Transfer
		if err := json.Unmarshal(env.Data, &transfer); err != nil {
			return event, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if transfer.Reference == "" {
			return event, fmt.Errorf("%w: transfer without reference", ErrMalformedEvent)
		}
		outcome := domain.TransferOutcome(strings.TrimPrefix(env.Event, "transfer."))
		event.Reference = transfer.Reference
		event.Transfer = &domain.TransferEvent{
			Reference: transfer.Reference,
			Outcome:   outcome,
		}
		if outcome == domain.TransferFailed {
			event.Transfer.Reason = strings.TrimSpace(transfer.GatewayResponse)
		}
	default:
		return event, fmt.Errorf("%w: %s", ErrUnsupportedEvent, env.Event)
	}
	return event, nil
}

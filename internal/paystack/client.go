// Package paystack is a thin client for the payment provider's REST API and
// the boundary decoder for its webhooks.
package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/pkg/clients"
	"go.uber.org/zap"
)

const (
	recipientType = "nuban"
	currency      = "NGN"
	transferFrom  = "balance"
)

// APIError is returned for non-2xx responses and for envelopes with status=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	secret  string
	client  clients.HTTPClientI
	timeout time.Duration
}

func New(baseURL, secret string, client clients.HTTPClientI, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		client:  client,
		timeout: timeout,
	}
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.secret)
	headers.Set("Content-Type", "application/json")

	statusCode, respBody, err := c.client.Send(ctx, method, c.baseURL+path, headers, body)
	if err != nil {
		zap.L().Error("paystack request failed", zap.String("path", path), zap.Error(err))
		return err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if statusCode < 200 || statusCode > 299 {
			return &APIError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if statusCode < 200 || statusCode > 299 || !env.Status {
		zap.L().Warn("paystack rejected request",
			zap.String("path", path), zap.Int("status", statusCode), zap.String("message", env.Message))
		return &APIError{StatusCode: statusCode, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

type InitializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (c *Client) InitializePayment(ctx context.Context, req InitializeRequest) (*domain.Checkout, error) {
	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", req, &data); err != nil {
		return nil, err
	}
	return &domain.Checkout{AuthorizationURL: data.AuthorizationURL, Reference: data.Reference}, nil
}

// VerifyPayment fetches the charge for reference. The caller decides what a
// non-success status means.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*Charge, error) {
	var charge Charge
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

func (c *Client) CreateRecipient(ctx context.Context, bank domain.BankDetails) (string, error) {
	req := map[string]string{
		"type":           recipientType,
		"name":           bank.AccountName,
		"account_number": bank.AccountNumber,
		"bank_code":      bank.BankCode,
		"currency":       currency,
	}
	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.call(ctx, http.MethodPost, "/transferrecipient", req, &data); err != nil {
		return "", err
	}
	return data.RecipientCode, nil
}

func (c *Client) InitiateTransfer(ctx context.Context, amount int64, recipientCode, reference, reason string) (string, error) {
	req := map[string]any{
		"source":    transferFrom,
		"amount":    amount,
		"recipient": recipientCode,
		"reason":    reason,
		"reference": reference,
	}
	var data struct {
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
	}
	if err := c.call(ctx, http.MethodPost, "/transfer", req, &data); err != nil {
		return "", err
	}
	zap.L().Info("transfer initiated",
		zap.String("reference", reference), zap.String("transferCode", data.TransferCode), zap.String("status", data.Status))
	return data.TransferCode, nil
}

func (c *Client) VerifyTransfer(ctx context.Context, reference string) (*Transfer, error) {
	var transfer Transfer
	if err := c.call(ctx, http.MethodGet, "/transfer/verify/"+url.PathEscape(reference), nil, &transfer); err != nil {
		return nil, err
	}
	return &transfer, nil
}

type Bank struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

// ListBanks returns the active Nigerian banks ordered by name.
func (c *Client) ListBanks(ctx context.Context) ([]Bank, error) {
	var all []Bank
	if err := c.call(ctx, http.MethodGet, "/bank?country=nigeria", nil, &all); err != nil {
		return nil, err
	}
	banks := make([]Bank, 0, len(all))
	for _, b := range all {
		if b.Active {
			banks = append(banks, b)
		}
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks, nil
}

type Account struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

func (c *Client) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*Account, error) {
	q := url.Values{}
	q.Set("account_number", accountNumber)
	q.Set("bank_code", bankCode)
	var account Account
	if err := c.call(ctx, http.MethodGet, "/bank/resolve?"+q.Encode(), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Package kashier creates hosted payment sessions on the Kashier gateway.
package kashier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
)

const (
	defaultTimeout   = 5 * time.Second
	maxBodyBytes     = 1 << 20
	maxErrorBodySize = 512
)

// Client handles Kashier hosted payment sessions
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type sessionCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type sessionRequest struct {
	MerchantID       string          `json:"merchantId"`
	OrderID          string          `json:"merchantOrderId"`
	Amount           string          `json:"amount"`
	Currency         string          `json:"currency"`
	Hash             string          `json:"hash"`
	Mode             string          `json:"mode"`
	Description      string          `json:"description,omitempty"`
	MerchantRedirect string          `json:"merchantRedirect"`
	FailureRedirect  string          `json:"failureRedirect"`
	CancelRedirect   string          `json:"cancelRedirect"`
	ServerWebhook    string          `json:"serverWebhook"`
	Customer         sessionCustomer `json:"customer"`
}

// urlKeys are checked in order, first at the top level and then under "data".
var urlKeys = []string{"paymentUrl", "redirectUrl", "checkout_url", "url"}

// NewClient creates a new Kashier client
func NewClient(cfg config.KashierConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.APIURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreatePaymentSession posts the signed request and returns the hosted page URL.
func (c *Client) CreatePaymentSession(ctx context.Context, req domain.PaymentRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: kashier api key not set", apperrors.ErrConfiguration)
	}

	payload, err := json.Marshal(sessionRequest{
		MerchantID:       req.MerchantID,
		OrderID:          req.OrderID,
		Amount:           req.Amount,
		Currency:         req.Currency.String(),
		Hash:             req.Hash,
		Mode:             req.Mode,
		Description:      req.Description,
		MerchantRedirect: req.URLs.Success,
		FailureRedirect:  req.URLs.Failure,
		CancelRedirect:   req.URLs.Cancel,
		ServerWebhook:    req.URLs.Webhook,
		Customer: sessionCustomer{
			Name:  req.Customer.FullName(),
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: kashier returned status %d: %s", apperrors.ErrUpstream, resp.StatusCode, truncate(string(body), maxErrorBodySize))
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", apperrors.ErrUpstream, err)
	}

	if paymentURL := findPaymentURL(decoded); paymentURL != "" {
		return paymentURL, nil
	}
	if data, ok := decoded["data"].(map[string]any); ok {
		if paymentURL := findPaymentURL(data); paymentURL != "" {
			return paymentURL, nil
		}
	}
	return "", fmt.Errorf("%w: kashier response has no payment url", apperrors.ErrUpstream)
}

func findPaymentURL(m map[string]any) string {
	for _, key := range urlKeys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

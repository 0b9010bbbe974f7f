// Package exchangerate fetches live rates anchored at the settlement currency.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultURL is anchored at EGP so rates read "foreign units per 1 EGP".
	DefaultURL     = "https://open.er-api.com/v6/latest/EGP"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client talks to an open.er-api.com compatible endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

type ratesResponse struct {
	Result   string                 `json:"result"`
	BaseCode string                 `json:"base_code"`
	Rates    map[string]json.Number `json:"rates"`
}

// NewClient creates a rate client. Empty baseURL and non-positive timeout use the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchRates returns settlement units per one unit of every supported currency present
// in the response. Currencies missing from the response are left out of the table.
func (c *Client) FetchRates(ctx context.Context) (domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch rates: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: rate API returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var apiResp ratesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", apperrors.ErrUpstream, err)
	}
	if apiResp.Result != "" && apiResp.Result != "success" {
		return nil, fmt.Errorf("%w: rate API returned result %q", apperrors.ErrUpstream, apiResp.Result)
	}
	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: rate API response has no rates", apperrors.ErrUpstream)
	}

	one := decimal.NewFromInt(1)
	table := make(domain.RateTable, len(apiResp.Rates))
	for _, code := range domain.SupportedCurrencies() {
		if code == domain.SettlementCurrency {
			continue
		}
		raw, ok := apiResp.Rates[code.String()]
		if !ok {
			continue
		}
		perSettlement, err := decimal.NewFromString(raw.String())
		if err != nil || !perSettlement.IsPositive() {
			continue
		}
		table[code] = one.Div(perSettlement)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: rate API response has no supported currencies", apperrors.ErrUpstream)
	}
	table[domain.SettlementCurrency] = one
	return table, nil
}

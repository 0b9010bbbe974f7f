package dto

import (
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
)

// UpdateCurrencySettingsRequest defines the data accepted by the admin settings update.
// DecimalPlaces is a pointer so that an explicit 0 is distinguishable from a missing field.
type UpdateCurrencySettingsRequest struct {
	DefaultCurrency  string `json:"defaultCurrency" binding:"required,currency_code"`
	CurrencySymbol   string `json:"currencySymbol" binding:"required,max=10"`
	CurrencyPosition string `json:"currencyPosition" binding:"required,currency_position"`
	DecimalPlaces    *int   `json:"decimalPlaces" binding:"required,min=0,max=8"`
}

// CurrencySettingsResponse defines the data returned for the site currency settings.
type CurrencySettingsResponse struct {
	DefaultCurrency     string     `json:"defaultCurrency"`
	CurrencySymbol      string     `json:"currencySymbol"`
	CurrencyPosition    string     `json:"currencyPosition"`
	DecimalPlaces       int        `json:"decimalPlaces"`
	SupportedCurrencies []string   `json:"supportedCurrencies"`
	LastUpdatedAt       *time.Time `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy       string     `json:"lastUpdatedBy,omitempty"`
}

// ToCurrencySettingsResponse converts domain.CurrencySettings to its response DTO.
// Audit fields are omitted for the built-in defaults.
func ToCurrencySettingsResponse(s domain.CurrencySettings) CurrencySettingsResponse {
	supported := domain.SupportedCurrencies()
	codes := make([]string, len(supported))
	for i, c := range supported {
		codes[i] = c.String()
	}

	resp := CurrencySettingsResponse{
		DefaultCurrency:     s.DefaultCurrency.String(),
		CurrencySymbol:      s.CurrencySymbol,
		CurrencyPosition:    string(s.CurrencyPosition),
		DecimalPlaces:       s.DecimalPlaces,
		SupportedCurrencies: codes,
		LastUpdatedBy:       s.LastUpdatedBy,
	}
	if !s.LastUpdatedAt.IsZero() {
		updated := s.LastUpdatedAt
		resp.LastUpdatedAt = &updated
	}
	return resp
}

// ListCurrencySettingsHistoryParams are the query parameters of the history listing.
type ListCurrencySettingsHistoryParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// CurrencySettingsChangeResponse is one audit trail entry.
type CurrencySettingsChangeResponse struct {
	DefaultCurrency  string    `json:"defaultCurrency"`
	CurrencySymbol   string    `json:"currencySymbol"`
	CurrencyPosition string    `json:"currencyPosition"`
	DecimalPlaces    int       `json:"decimalPlaces"`
	ChangedAt        time.Time `json:"changedAt"`
	ChangedBy        string    `json:"changedBy"`
}

// ListCurrencySettingsHistoryResponse is a page of changes, newest first.
type ListCurrencySettingsHistoryResponse struct {
	Changes   []CurrencySettingsChangeResponse `json:"changes"`
	NextToken *string                          `json:"nextToken,omitempty"`
}

// ToCurrencySettingsChangeResponses converts domain changes to response DTOs.
func ToCurrencySettingsChangeResponses(changes []domain.CurrencySettingsChange) []CurrencySettingsChangeResponse {
	out := make([]CurrencySettingsChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = CurrencySettingsChangeResponse{
			DefaultCurrency:  c.DefaultCurrency.String(),
			CurrencySymbol:   c.CurrencySymbol,
			CurrencyPosition: string(c.CurrencyPosition),
			DecimalPlaces:    c.DecimalPlaces,
			ChangedAt:        c.ChangedAt,
			ChangedBy:        c.ChangedBy,
		}
	}
	return out
}

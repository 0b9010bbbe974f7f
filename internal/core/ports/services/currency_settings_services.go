package services

import (
	"context"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
)

// CurrencySettingsReaderSvc defines read operations for the site currency settings
type CurrencySettingsReaderSvc interface {
	// GetSettings returns the persisted settings, or the defaults when none were saved yet.
	GetSettings(ctx context.Context) (domain.CurrencySettings, error)
}

// CurrencySettingsWriterSvc defines write operations for the site currency settings
type CurrencySettingsWriterSvc interface {
	// UpdateSettings validates and persists new settings on behalf of actorID.
	UpdateSettings(ctx context.Context, req dto.UpdateCurrencySettingsRequest, actorID string) (*domain.CurrencySettings, error)
}

// CurrencySettingsHistorySvc exposes the settings audit trail
type CurrencySettingsHistorySvc interface {
	ListHistory(ctx context.Context, params dto.ListCurrencySettingsHistoryParams) (*dto.ListCurrencySettingsHistoryResponse, error)
}

// CurrencySettingsSvcFacade combines all currency settings service interfaces
type CurrencySettingsSvcFacade interface {
	CurrencySettingsReaderSvc
	CurrencySettingsWriterSvc
	CurrencySettingsHistorySvc
}

package repositories

import (
	"context"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
)

// CurrencySettingsReader defines read operations for the site currency settings.
type CurrencySettingsReader interface {
	// GetCurrencySettings returns the persisted settings row, or apperrors.ErrNotFound when none exists yet.
	GetCurrencySettings(ctx context.Context) (*domain.CurrencySettings, error)
	// ListCurrencySettingsHistory returns up to limit changes, newest first, strictly older than cursor when it is set.
	ListCurrencySettingsHistory(ctx context.Context, limit int, cursor *domain.HistoryCursor) ([]domain.CurrencySettingsChange, error)
}

// CurrencySettingsWriter defines write operations for the site currency settings.
type CurrencySettingsWriter interface {
	// SaveCurrencySettings upserts the single settings row. Last write wins.
	SaveCurrencySettings(ctx context.Context, settings domain.CurrencySettings) error
}

// CurrencySettingsRepositoryFacade combines all currency settings repository interfaces
type CurrencySettingsRepositoryFacade interface {
	CurrencySettingsReader
	CurrencySettingsWriter
}

// CurrencySettingsRepositoryWithTx extends CurrencySettingsRepositoryFacade with transaction capabilities
type CurrencySettingsRepositoryWithTx interface {
	CurrencySettingsRepositoryFacade
	TransactionManager
}

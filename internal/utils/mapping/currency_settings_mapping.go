package mapping

import (
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/models"
)

// ToModelCurrencySettings converts domain settings to the persisted row.
func ToModelCurrencySettings(d domain.CurrencySettings) models.CurrencySettings {
	return models.CurrencySettings{
		DefaultCurrency:  d.DefaultCurrency.String(),
		CurrencySymbol:   d.CurrencySymbol,
		CurrencyPosition: string(d.CurrencyPosition),
		DecimalPlaces:    d.DecimalPlaces,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainCurrencySettings converts the persisted row to domain settings.
func ToDomainCurrencySettings(m models.CurrencySettings) domain.CurrencySettings {
	return domain.CurrencySettings{
		DefaultCurrency:  domain.CurrencyCode(m.DefaultCurrency).Normalize(),
		CurrencySymbol:   m.CurrencySymbol,
		CurrencyPosition: domain.CurrencyPosition(m.CurrencyPosition),
		DecimalPlaces:    m.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelCurrencySettingsHistory derives the history row recorded for a save:
// the change is attributed to the last update of the saved settings.
func ToModelCurrencySettingsHistory(d domain.CurrencySettings) models.CurrencySettingsHistory {
	return models.CurrencySettingsHistory{
		DefaultCurrency:  d.DefaultCurrency.String(),
		CurrencySymbol:   d.CurrencySymbol,
		CurrencyPosition: string(d.CurrencyPosition),
		DecimalPlaces:    d.DecimalPlaces,
		ChangedAt:        d.LastUpdatedAt,
		ChangedBy:        d.LastUpdatedBy,
	}
}

// ToDomainCurrencySettingsChange converts a history row to its domain entry.
func ToDomainCurrencySettingsChange(m models.CurrencySettingsHistory) domain.CurrencySettingsChange {
	return domain.CurrencySettingsChange{
		ID:               m.ID,
		DefaultCurrency:  domain.CurrencyCode(m.DefaultCurrency).Normalize(),
		CurrencySymbol:   m.CurrencySymbol,
		CurrencyPosition: domain.CurrencyPosition(m.CurrencyPosition),
		DecimalPlaces:    m.DecimalPlaces,
		ChangedAt:        m.ChangedAt,
		ChangedBy:        m.ChangedBy,
	}
}

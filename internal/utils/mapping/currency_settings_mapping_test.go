package mapping_test

import (
	"testing"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
)

func TestCurrencySettingsMapping(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	settings := domain.CurrencySettings{
		DefaultCurrency:  "USD",
		CurrencySymbol:   "$",
		CurrencyPosition: domain.CurrencyPositionBefore,
		DecimalPlaces:    2,
		AuditFields: domain.AuditFields{
			CreatedAt: created, CreatedBy: "admin-1", LastUpdatedAt: updated, LastUpdatedBy: "admin-2",
		},
	}

	row := mapping.ToModelCurrencySettings(settings)
	assert.Equal(t, "USD", row.DefaultCurrency)
	assert.Equal(t, "before", row.CurrencyPosition)
	assert.Equal(t, "admin-1", row.CreatedBy)
	assert.Equal(t, settings, mapping.ToDomainCurrencySettings(row))

	row.DefaultCurrency = " usd "
	assert.Equal(t, domain.CurrencyCode("USD"), mapping.ToDomainCurrencySettings(row).DefaultCurrency)
}

func TestToModelCurrencySettingsHistory_AttributesLastUpdate(t *testing.T) {
	updated := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	settings := domain.CurrencySettings{
		DefaultCurrency:  "EGP",
		CurrencySymbol:   "ج.م",
		CurrencyPosition: domain.CurrencyPositionAfter,
		DecimalPlaces:    0,
		AuditFields: domain.AuditFields{
			CreatedAt: updated.Add(-time.Hour), CreatedBy: "admin-1", LastUpdatedAt: updated, LastUpdatedBy: "admin-2",
		},
	}

	h := mapping.ToModelCurrencySettingsHistory(settings)

	assert.Equal(t, "EGP", h.DefaultCurrency)
	assert.Equal(t, "after", h.CurrencyPosition)
	assert.Equal(t, 0, h.DecimalPlaces)
	assert.Equal(t, updated, h.ChangedAt)
	assert.Equal(t, "admin-2", h.ChangedBy)
	assert.Zero(t, h.ID)
}

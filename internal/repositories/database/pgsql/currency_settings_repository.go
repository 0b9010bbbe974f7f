package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portsrepo "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/repositories"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/models"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// settingsRowID is the primary key of the single settings row.
const settingsRowID = 1

type PgxCurrencySettingsRepository struct {
	BaseRepository
}

// newPgxCurrencySettingsRepository creates a new repository for the site currency settings.
func newPgxCurrencySettingsRepository(pool PgxPool) portsrepo.CurrencySettingsRepositoryWithTx {
	return &PgxCurrencySettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencySettingsRepositoryWithTx = (*PgxCurrencySettingsRepository)(nil)

// GetCurrencySettings reads the single settings row.
func (r *PgxCurrencySettingsRepository) GetCurrencySettings(ctx context.Context) (*domain.CurrencySettings, error) {
	query := `
		SELECT default_currency, currency_symbol, currency_position, decimal_places,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM currency_settings
		WHERE id = $1;
	`
	var m models.CurrencySettings
	err := r.Pool.QueryRow(ctx, query, settingsRowID).Scan(
		&m.DefaultCurrency,
		&m.CurrencySymbol,
		&m.CurrencyPosition,
		&m.DecimalPlaces,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get currency settings: %w", err)
	}

	settings := mapping.ToDomainCurrencySettings(m)
	return &settings, nil
}

// SaveCurrencySettings upserts the settings row and appends the change to the history table.
func (r *PgxCurrencySettingsRepository) SaveCurrencySettings(ctx context.Context, settings domain.CurrencySettings) error {
	m := mapping.ToModelCurrencySettings(settings)
	h := mapping.ToModelCurrencySettingsHistory(settings)

	upsert := `
		INSERT INTO currency_settings (id, default_currency, currency_symbol, currency_position, decimal_places,
		                               created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			default_currency = EXCLUDED.default_currency,
			currency_symbol = EXCLUDED.currency_symbol,
			currency_position = EXCLUDED.currency_position,
			decimal_places = EXCLUDED.decimal_places,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	history := `
		INSERT INTO currency_settings_history (default_currency, currency_symbol, currency_position, decimal_places, changed_at, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsert,
			settingsRowID,
			m.DefaultCurrency,
			m.CurrencySymbol,
			m.CurrencyPosition,
			m.DecimalPlaces,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to save currency settings: %w", err)
		}
		if _, err := tx.Exec(ctx, history,
			h.DefaultCurrency,
			h.CurrencySymbol,
			h.CurrencyPosition,
			h.DecimalPlaces,
			h.ChangedAt,
			h.ChangedBy,
		); err != nil {
			return fmt.Errorf("failed to record currency settings history: %w", err)
		}
		return nil
	})
}

// ListCurrencySettingsHistory pages through the audit trail using (changed_at, id) as the keyset.
func (r *PgxCurrencySettingsRepository) ListCurrencySettingsHistory(ctx context.Context, limit int, cursor *domain.HistoryCursor) ([]domain.CurrencySettingsChange, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		query := `
			SELECT id, default_currency, currency_symbol, currency_position, decimal_places, changed_at, changed_by
			FROM currency_settings_history
			ORDER BY changed_at DESC, id DESC
			LIMIT $1;
		`
		rows, err = r.Pool.Query(ctx, query, limit)
	} else {
		query := `
			SELECT id, default_currency, currency_symbol, currency_position, decimal_places, changed_at, changed_by
			FROM currency_settings_history
			WHERE (changed_at, id) < ($1, $2)
			ORDER BY changed_at DESC, id DESC
			LIMIT $3;
		`
		rows, err = r.Pool.Query(ctx, query, cursor.ChangedAt, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list currency settings history: %w", err)
	}
	defer rows.Close()

	changes := []domain.CurrencySettingsChange{}
	for rows.Next() {
		var m models.CurrencySettingsHistory
		if err := rows.Scan(
			&m.ID,
			&m.DefaultCurrency,
			&m.CurrencySymbol,
			&m.CurrencyPosition,
			&m.DecimalPlaces,
			&m.ChangedAt,
			&m.ChangedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan currency settings history row: %w", err)
		}
		changes = append(changes, mapping.ToDomainCurrencySettingsChange(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency settings history rows: %w", err)
	}
	return changes, nil
}

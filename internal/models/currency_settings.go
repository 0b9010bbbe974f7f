package models

import "time"

// AuditFields mirrors the audit columns shared by persisted tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// CurrencySettings is the row stored in currency_settings.
type CurrencySettings struct {
	DefaultCurrency  string `db:"default_currency"`
	CurrencySymbol   string `db:"currency_symbol"`
	CurrencyPosition string `db:"currency_position"`
	DecimalPlaces    int    `db:"decimal_places"`
	AuditFields
}

// CurrencySettingsHistory is a row of currency_settings_history.
type CurrencySettingsHistory struct {
	ID               int64     `db:"id"`
	DefaultCurrency  string    `db:"default_currency"`
	CurrencySymbol   string    `db:"currency_symbol"`
	CurrencyPosition string    `db:"currency_position"`
	DecimalPlaces    int       `db:"decimal_places"`
	ChangedAt        time.Time `db:"changed_at"`
	ChangedBy        string    `db:"changed_by"`
}

package pgsql

import (
	portsrepo "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto pool.
func NewRepositoryProvider(pool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencySettingsRepo: newPgxCurrencySettingsRepository(pool),
	}
}

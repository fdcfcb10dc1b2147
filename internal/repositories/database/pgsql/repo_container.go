package pgsql

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo: newPgxJournalRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		ChartRepo:   newPgxChartRepository(dbPool),
	}
}

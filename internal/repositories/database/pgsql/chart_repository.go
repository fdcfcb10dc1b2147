package pgsql

import (
	"context"
	"errors"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxChartRepository reads the chart of accounts reference data.
type PgxChartRepository struct {
	BaseRepository
}

// newPgxChartRepository creates a new chart-of-accounts repository.
func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepository {
	return &PgxChartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ChartRepository = (*PgxChartRepository)(nil)

const selectChartColumns = `
	account_code, name, category, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanChartAccount(row pgx.Row) (models.ChartAccount, error) {
	var m models.ChartAccount
	err := row.Scan(
		&m.AccountCode,
		&m.Name,
		&m.Category,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindByCode retrieves one chart account by its code.
func (r *PgxChartRepository) FindByCode(ctx context.Context, accountCode string) (*domain.ChartAccount, error) {
	query := `SELECT ` + selectChartColumns + ` FROM chart_of_accounts WHERE account_code = $1;`
	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountCode + " not found in chart of accounts")
		}
		return nil, apperrors.NewStoreError("failed to find chart account "+accountCode, err)
	}
	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

// FindByCodes retrieves chart accounts for the given codes. Codes missing
// from the chart are simply absent from the result map.
func (r *PgxChartRepository) FindByCodes(ctx context.Context, accountCodes []string) (map[string]domain.ChartAccount, error) {
	if len(accountCodes) == 0 {
		return map[string]domain.ChartAccount{}, nil
	}

	query := `SELECT ` + selectChartColumns + ` FROM chart_of_accounts WHERE account_code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountCodes)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query chart accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.ChartAccount, len(accountCodes))
	for rows.Next() {
		m, scanErr := scanChartAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewStoreError("failed to scan chart account row", scanErr)
		}
		accounts[m.AccountCode] = mapping.ToDomainChartAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating chart account rows", err)
	}
	return accounts, nil
}

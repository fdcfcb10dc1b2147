package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository is the read-only aggregation side of the ledger.
// Reversed entries stay in every result set so that each reversal pair nets
// to zero.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new read-only ledger repository.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// windowClause renders the date filter against the entry header, mirroring
// domain.DateWindow.Contains: entry_date is a timestamp, so upper bounds are
// exclusive day-ends rather than midnight cutoffs. Returns the SQL fragment
// and the extended args.
func windowClause(window domain.DateWindow, args []interface{}) (string, []interface{}) {
	clause := ""
	if window.AsOf != nil {
		args = append(args, domain.StartOfDay(*window.AsOf).AddDate(0, 0, 1))
		clause += " AND e.entry_date < $" + strconv.Itoa(len(args))
		return clause, args
	}
	if window.From != nil {
		args = append(args, domain.StartOfDay(*window.From))
		clause += " AND e.entry_date >= $" + strconv.Itoa(len(args))
	}
	if window.To != nil {
		args = append(args, domain.StartOfDay(*window.To).AddDate(0, 0, 1))
		clause += " AND e.entry_date < $" + strconv.Itoa(len(args))
	}
	return clause, args
}

// AggregateByAccount sums debits and credits per account over the window.
func (r *PgxLedgerRepository) AggregateByAccount(ctx context.Context, window domain.DateWindow, accountCode *string) ([]domain.AccountAggregate, error) {
	query := `
		SELECT l.account_code,
		       MAX(l.account_name) AS account_name,
		       COALESCE(SUM(l.debit), 0) AS debit_total,
		       COALESCE(SUM(l.credit), 0) AS credit_total
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE 1 = 1
	`
	args := []interface{}{}
	clause, args := windowClause(window, args)
	query += clause
	if accountCode != nil {
		args = append(args, *accountCode)
		query += " AND l.account_code = $" + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY l.account_code
		ORDER BY l.account_code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to aggregate ledger by account", err)
	}
	defer rows.Close()

	aggregates := []domain.AccountAggregate{}
	for rows.Next() {
		var agg domain.AccountAggregate
		if err := rows.Scan(&agg.AccountCode, &agg.AccountName, &agg.DebitTotal, &agg.CreditTotal); err != nil {
			return nil, apperrors.NewStoreError("failed to scan account aggregate row", err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating account aggregate rows", err)
	}
	return aggregates, nil
}

const selectLedgerLineColumns = `
	l.line_id, l.entry_id, e.entry_number, e.entry_date, e.status,
	e.transaction_type, l.account_code, l.account_name, l.debit, l.credit,
	l.description, e.reference_id
`

func scanLedgerLine(rows pgx.Rows) (domain.LedgerLine, error) {
	var line domain.LedgerLine
	err := rows.Scan(
		&line.LineID,
		&line.EntryID,
		&line.EntryNumber,
		&line.EntryDate,
		&line.EntryStatus,
		&line.TransactionType,
		&line.AccountCode,
		&line.AccountName,
		&line.Debit,
		&line.Credit,
		&line.Description,
		&line.ReferenceID,
	)
	return line, err
}

// ListAccountLines returns lines of one account joined to their entry
// headers, newest first, with limit/offset paging.
func (r *PgxLedgerRepository) ListAccountLines(ctx context.Context, accountCode string, window domain.DateWindow, limit, offset int) ([]domain.LedgerLine, error) {
	query := `
		SELECT ` + selectLedgerLineColumns + `
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1
	`
	args := []interface{}{accountCode}
	clause, args := windowClause(window, args)
	query += clause
	args = append(args, limit)
	query += " ORDER BY e.entry_date DESC, e.created_at DESC, l.line_id LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query lines for account "+accountCode, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		line, scanErr := scanLedgerLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewStoreError("failed to scan ledger line row for account "+accountCode, scanErr)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating ledger line rows for account "+accountCode, err)
	}
	return lines, nil
}

// FindEntriesTouchingCash returns all lines of every entry in range that
// moves a cash or bank account (code group 11x), keyed by entry ID. The cash
// flow statement needs the full entry to classify counterpart accounts.
func (r *PgxLedgerRepository) FindEntriesTouchingCash(ctx context.Context, from, to time.Time) (map[string][]domain.LedgerLine, error) {
	query := `
		SELECT ` + selectLedgerLineColumns + `
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date >= $1 AND e.entry_date < $2
		  AND e.entry_id IN (
			SELECT DISTINCT cl.entry_id
			FROM journal_lines cl
			WHERE cl.account_code LIKE '11%'
		  )
		ORDER BY e.entry_date, e.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.StartOfDay(from), domain.StartOfDay(to).AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query cash-touching entries", err)
	}
	defer rows.Close()

	entryLines := map[string][]domain.LedgerLine{}
	for rows.Next() {
		line, scanErr := scanLedgerLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewStoreError("failed to scan cash-touching line row", scanErr)
		}
		entryLines[line.EntryID] = append(entryLines[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating cash-touching line rows", err)
	}
	return entryLines, nil
}

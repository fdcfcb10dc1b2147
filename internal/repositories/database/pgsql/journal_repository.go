package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const insertEntryQuery = `
	INSERT INTO journal_entries (
		entry_id, entry_number, entry_date, description, transaction_type,
		reference_id, reference_type, status, total_debit, total_credit,
		currency_code, original_entry_id, reversing_entry_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

const insertLineQuery = `
	INSERT INTO journal_lines (
		line_id, entry_id, account_code, account_name, debit, credit,
		description, reference_id, reference_type,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// insertEntryInTx inserts the header and queues all line inserts as a batch
// on the given transaction. Shared by SaveEntry and SaveReversal.
func (r *PgxJournalRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := tx.Exec(ctx, insertEntryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.TransactionType,
		m.ReferenceID,
		m.ReferenceType,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.CurrencyCode,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountCode,
			ml.AccountName,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.ReferenceID,
			ml.ReferenceType,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewStoreError("failed to insert lines for entry "+m.EntryID, err)
	}
	return nil
}

// SaveEntry persists the header and all lines in a single database
// transaction. Either everything becomes visible or nothing does.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := r.insertEntryInTx(ctx, tx, entry, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversing entry with its lines and flips the
// original entry to REVERSED with the back-link, all in one transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryInTx(ctx, tx, reversing, lines); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2,
		    reversing_entry_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		originalEntryID,
		models.Reversed,
		reversing.EntryID,
		updatedAt,
		updatedBy,
		models.Posted,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to mark entry "+originalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Gone, or reversed concurrently since the service checked.
		return apperrors.NewAppError(409, "entry "+originalEntryID+" is not in POSTED status", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}

const selectEntryColumns = `
	entry_id, entry_number, entry_date, description, transaction_type,
	reference_id, reference_type, status, total_debit, total_credit,
	currency_code, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.TransactionType,
		&m.ReferenceID,
		&m.ReferenceType,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.CurrencyCode,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID + " not found")
		}
		return nil, apperrors.NewStoreError("failed to find journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of one journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_code, account_name, debit, credit,
		       description, reference_id, reference_type,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountCode,
			&l.AccountName,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.ReferenceID,
			&l.ReferenceType,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewStoreError("failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a paginated list of journal entries using
// token-based pagination, newest first. Ordering is by entry_date DESC with
// created_at DESC as a stable tie-breaker.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + selectEntryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastEntryDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewStoreError("failed to query journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewStoreError("failed to scan journal entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStoreError("error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1] // Last item actually included in this page
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// FindOrphanEntryIDs returns the IDs of entry headers with no lines. Writes
// are atomic now, so anything found here predates that or indicates a bug.
func (r *PgxJournalRepository) FindOrphanEntryIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT e.entry_id
		FROM journal_entries e
		LEFT JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE l.line_id IS NULL;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan for orphan journal entries", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewStoreError("failed to scan orphan entry row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating orphan entry rows", err)
	}
	return ids, nil
}

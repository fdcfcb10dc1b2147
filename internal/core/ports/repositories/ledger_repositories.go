package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// JournalRepository is the write side of the ledger store. SaveEntry must
// persist the header and all lines in one atomic unit; a partial write must
// never become visible to readers.
type JournalRepository interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// SaveReversal atomically persists the reversing entry with its lines and
	// flips the original entry's status to REVERSED with the back-link.
	SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error
	// FindOrphanEntryIDs returns headers that have no lines, left behind by
	// legacy non-atomic writers. Used by the startup reconciliation pass.
	FindOrphanEntryIDs(ctx context.Context) ([]string, error)
}

// LedgerReader is the read-only query/aggregation side of the ledger store.
// All methods see every entry, REVERSED originals included: a reversal is a
// negating entry, so the pair sums to zero and dropping either side would
// skew the totals.
type LedgerReader interface {
	// AggregateByAccount sums debits and credits per account over the window,
	// optionally restricted to one account code.
	AggregateByAccount(ctx context.Context, window domain.DateWindow, accountCode *string) ([]domain.AccountAggregate, error)
	// ListAccountLines returns lines of one account joined to their entry
	// headers, newest first, with limit/offset paging.
	ListAccountLines(ctx context.Context, accountCode string, window domain.DateWindow, limit, offset int) ([]domain.LedgerLine, error)
	// FindEntriesTouchingCash returns the lines of every posted entry in
	// range that moves a cash account, grouped by entry ID.
	FindEntriesTouchingCash(ctx context.Context, from, to time.Time) (map[string][]domain.LedgerLine, error)
}

// ChartRepository reads the chart of accounts. The ledger engine never
// writes this table.
type ChartRepository interface {
	FindByCode(ctx context.Context, accountCode string) (*domain.ChartAccount, error)
	FindByCodes(ctx context.Context, accountCodes []string) (map[string]domain.ChartAccount, error)
}

// RepositoryProvider bundles the concrete repositories handed to the service
// container.
type RepositoryProvider struct {
	JournalRepo JournalRepository
	LedgerRepo  LedgerReader
	ChartRepo   ChartRepository
}

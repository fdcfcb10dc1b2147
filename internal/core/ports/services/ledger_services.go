package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// JournalSvcFacade exposes journal entry creation, reversal and lookup.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// Convenience constructors: canned line builders in front of CreateEntry.
	RecordInvoiceIssued(ctx context.Context, req dto.InvoiceIssuedRequest, userID string) (*domain.JournalEntry, error)
	RecordPaymentReceived(ctx context.Context, req dto.PaymentReceivedRequest, userID string) (*domain.JournalEntry, error)
	RecordBillReceived(ctx context.Context, req dto.BillReceivedRequest, userID string) (*domain.JournalEntry, error)
	RecordExpensePaid(ctx context.Context, req dto.ExpensePaidRequest, userID string) (*domain.JournalEntry, error)
	RecordVendorPaid(ctx context.Context, req dto.VendorPaidRequest, userID string) (*domain.JournalEntry, error)

	// ReconcileOrphanEntries reports headers with no lines. Run at startup.
	ReconcileOrphanEntries(ctx context.Context) ([]string, error)
}

// ReportingSvcFacade generates financial statements from the ledger.
type ReportingSvcFacade interface {
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)
}

// DrillDownSvcFacade resolves the transactions behind a reported figure.
type DrillDownSvcFacade interface {
	DrillDown(ctx context.Context, req dto.DrillDownRequest) (*domain.DrillDownResult, error)
}

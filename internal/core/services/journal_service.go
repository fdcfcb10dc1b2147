package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/entrynum"
	"github.com/shopspring/decimal"
)

// journalService provides journal entry creation, reversal and lookup.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	chartRepo   portsrepo.ChartRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, chartRepo portsrepo.ChartRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		chartRepo:   chartRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines checks each line individually: exactly one of debit/credit
// must be non-zero and neither side may be negative.
func (s *journalService) validateLines(lines []dto.CreateLineRequest) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("entry must have at least two lines")
	}
	for i, line := range lines {
		if line.AccountCode == "" {
			return apperrors.NewValidationError(fmt.Sprintf("line %d: account code is required", i))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("line %d: amounts must not be negative", i))
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return apperrors.NewValidationError(fmt.Sprintf("line %d: exactly one of debit/credit must be non-zero", i))
		}
	}
	return nil
}

// sumLines totals the debit and credit sides.
func sumLines(lines []dto.CreateLineRequest) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// accountNamesFor resolves account names from the chart of accounts. Codes
// missing from the chart fall back to the code itself; a bad code must not
// block posting.
func (s *journalService) accountNamesFor(ctx context.Context, codes []string) map[string]string {
	names := make(map[string]string, len(codes))
	accounts, err := s.chartRepo.FindByCodes(ctx, codes)
	if err != nil {
		s.LogWarn(ctx, "chart lookup failed, falling back to account codes", slog.String("error", err.Error()))
		accounts = map[string]domain.ChartAccount{}
	}
	for _, code := range codes {
		if acc, ok := accounts[code]; ok {
			names[code] = acc.Name
		} else {
			names[code] = code
		}
	}
	return names
}

// CreateEntry validates and persists a balanced journal entry. The header
// and all lines are written in one atomic unit.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.validateLines(req.Lines); err != nil {
		return nil, err
	}

	totalDebit, totalCredit := sumLines(req.Lines)
	if diff := totalDebit.Sub(totalCredit).Abs(); diff.GreaterThan(domain.BalanceEpsilon) {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"entry is unbalanced: debits %s, credits %s", totalDebit.String(), totalCredit.String()))
	}

	txnType := domain.TransactionType(req.TransactionType)
	if txnType == "" {
		txnType = domain.TxnJournalEntry
	}

	codes := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		codes = append(codes, line.AccountCode)
	}
	names := s.accountNamesFor(ctx, codes)

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     entrynum.Generate(req.EntryDate),
		EntryDate:       req.EntryDate,
		Description:     req.Description,
		TransactionType: txnType,
		ReferenceID:     req.ReferenceID,
		ReferenceType:   req.ReferenceType,
		Status:          domain.Posted,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		CurrencyCode:    domain.ReportCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       entry.EntryID,
			AccountCode:   lr.AccountCode,
			AccountName:   names[lr.AccountCode],
			Debit:         lr.Debit,
			Credit:        lr.Credit,
			Description:   lr.Description,
			ReferenceID:   lr.ReferenceID,
			ReferenceType: lr.ReferenceType,
			AuditFields:   entry.AuditFields,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("transaction_type", string(entry.TransactionType)))
	return &entry, nil
}

// ReverseEntry posts a new entry negating the original (debits and credits
// swapped) and marks the original REVERSED. The original is never modified
// beyond its status and back-link. Reversing entries can themselves be
// reversed, which re-posts the original amounts.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed {
		return nil, apperrors.NewAppError(409,
			fmt.Sprintf("entry %s is already reversed", entryID), apperrors.ErrConflict)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if len(originalLines) == 0 {
		return nil, apperrors.NewAppError(500,
			fmt.Sprintf("entry %s has no lines", entryID), apperrors.ErrInternal)
	}

	now := time.Now()
	originalID := original.EntryID
	reversing := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     entrynum.Generate(now),
		EntryDate:       now,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		TransactionType: domain.TxnReversal,
		ReferenceID:     &originalID,
		ReferenceType:   strPtr("journal_entry"),
		Status:          domain.Posted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		CurrencyCode:    original.CurrencyCode,
		OriginalEntryID: &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines := make([]domain.JournalLine, len(originalLines))
	for i, ol := range originalLines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       reversing.EntryID,
			AccountCode:   ol.AccountCode,
			AccountName:   ol.AccountName,
			Debit:         ol.Credit, // swapped
			Credit:        ol.Debit,
			Description:   ol.Description,
			ReferenceID:   ol.ReferenceID,
			ReferenceType: ol.ReferenceType,
			AuditFields:   reversing.AuditFields,
		}
	}

	if err := s.journalRepo.SaveReversal(ctx, reversing, lines, originalID, userID, now); err != nil {
		s.LogError(ctx, err, "failed to save reversal",
			slog.String("original_entry_id", originalID))
		return nil, err
	}

	reversing.Lines = lines
	s.LogInfo(ctx, "journal entry reversed",
		slog.String("original_entry_id", originalID),
		slog.String("reversing_entry_id", reversing.EntryID))
	return &reversing, nil
}

// GetEntryByID returns an entry with its lines loaded.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns a page of entries newest first with a cursor for the
// next page.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// RecordInvoiceIssued posts the entry for a sales invoice: debit accounts
// receivable for the gross amount, credit revenue, credit VAT payable.
// Implements portssvc.JournalSvcFacade
func (s *journalService) RecordInvoiceIssued(ctx context.Context, req dto.InvoiceIssuedRequest, userID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("invoice amount must be positive")
	}
	if req.VATAmount.IsNegative() {
		return nil, apperrors.NewValidationError("vat amount must not be negative")
	}

	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Invoice %s issued", req.InvoiceID)
		if req.CustomerName != "" {
			desc = fmt.Sprintf("Invoice %s issued to %s", req.InvoiceID, req.CustomerName)
		}
	}

	gross := req.Amount.Add(req.VATAmount)
	lines := []dto.CreateLineRequest{
		{AccountCode: domain.AccountReceivable, Debit: gross},
		{AccountCode: domain.AccountRevenue, Credit: req.Amount},
	}
	if req.VATAmount.IsPositive() {
		lines = append(lines, dto.CreateLineRequest{AccountCode: domain.AccountVATPayable, Credit: req.VATAmount})
	}

	return s.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       req.IssuedAt,
		Description:     desc,
		TransactionType: string(domain.TxnInvoice),
		ReferenceID:     &req.InvoiceID,
		ReferenceType:   strPtr("invoice"),
		Lines:           lines,
	}, userID)
}

// RecordPaymentReceived posts a customer payment: debit cash or bank by
// payment method, credit accounts receivable.
// Implements portssvc.JournalSvcFacade
func (s *journalService) RecordPaymentReceived(ctx context.Context, req dto.PaymentReceivedRequest, userID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Payment received for receipt %s", req.ReceiptID)
	}

	return s.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       req.ReceivedAt,
		Description:     desc,
		TransactionType: string(domain.TxnReceipt),
		ReferenceID:     &req.ReceiptID,
		ReferenceType:   strPtr("receipt_voucher"),
		Lines: []dto.CreateLineRequest{
			{AccountCode: moneyAccountFor(req.PaymentMethod), Debit: req.Amount},
			{AccountCode: domain.AccountReceivable, Credit: req.Amount},
		},
	}, userID)
}

// RecordBillReceived posts a supplier bill: debit the expense account,
// credit accounts payable.
// Implements portssvc.JournalSvcFacade
func (s *journalService) RecordBillReceived(ctx context.Context, req dto.BillReceivedRequest, userID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("bill amount must be positive")
	}

	expenseCode := req.ExpenseAccountCode
	if expenseCode == "" {
		expenseCode = domain.AccountOpexGeneral
	}
	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Bill %s received", req.BillID)
	}

	return s.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       req.ReceivedAt,
		Description:     desc,
		TransactionType: string(domain.TxnBill),
		ReferenceID:     &req.BillID,
		ReferenceType:   strPtr("bill"),
		Lines: []dto.CreateLineRequest{
			{AccountCode: expenseCode, Debit: req.Amount},
			{AccountCode: domain.AccountPayable, Credit: req.Amount},
		},
	}, userID)
}

// RecordExpensePaid posts a directly paid expense: debit the expense
// account, credit cash or bank.
// Implements portssvc.JournalSvcFacade
func (s *journalService) RecordExpensePaid(ctx context.Context, req dto.ExpensePaidRequest, userID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("expense amount must be positive")
	}

	expenseCode := req.ExpenseAccountCode
	if expenseCode == "" {
		expenseCode = domain.AccountOpexGeneral
	}
	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Expense %s paid", req.ExpenseID)
	}

	return s.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       req.PaidAt,
		Description:     desc,
		TransactionType: string(domain.TxnExpense),
		ReferenceID:     &req.ExpenseID,
		ReferenceType:   strPtr("expense"),
		Lines: []dto.CreateLineRequest{
			{AccountCode: expenseCode, Debit: req.Amount},
			{AccountCode: moneyAccountFor(req.PaymentMethod), Credit: req.Amount},
		},
	}, userID)
}

// RecordVendorPaid posts the settlement of a supplier bill: debit accounts
// payable, credit cash or bank.
// Implements portssvc.JournalSvcFacade
func (s *journalService) RecordVendorPaid(ctx context.Context, req dto.VendorPaidRequest, userID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	desc := req.Description
	if desc == "" {
		desc = fmt.Sprintf("Vendor payment %s", req.PaymentID)
	}

	return s.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       req.PaidAt,
		Description:     desc,
		TransactionType: string(domain.TxnPayment),
		ReferenceID:     &req.PaymentID,
		ReferenceType:   strPtr("payment_voucher"),
		Lines: []dto.CreateLineRequest{
			{AccountCode: domain.AccountPayable, Debit: req.Amount},
			{AccountCode: moneyAccountFor(req.PaymentMethod), Credit: req.Amount},
		},
	}, userID)
}

// ReconcileOrphanEntries reports entry headers with no lines, left behind by
// legacy non-atomic writers. It only reports; cleanup stays a manual call.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ReconcileOrphanEntries(ctx context.Context) ([]string, error) {
	ids, err := s.journalRepo.FindOrphanEntryIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "orphan entry scan failed")
		return nil, err
	}
	if len(ids) > 0 {
		s.LogWarn(ctx, "found journal entry headers without lines",
			slog.Int("count", len(ids)),
			slog.Any("entry_ids", ids))
	}
	return ids, nil
}

// moneyAccountFor maps a payment method to its ledger account.
func moneyAccountFor(method domain.PaymentMethod) string {
	if method == domain.PaymentBankTransfer {
		return domain.AccountBank
	}
	return domain.AccountCash
}

func strPtr(s string) *string {
	return &s
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	ReportTypeProfitAndLoss = "profit_and_loss"
	ReportTypeBalanceSheet  = "balance_sheet"
	ReportTypeCashFlow      = "cash_flow"

	defaultDrillDownLimit = 50
	maxDrillDownLimit     = 200
	defaultRangeDays      = 30
)

// drillDownService resolves the individual transactions behind a reported
// account figure.
type drillDownService struct {
	BaseService
	ledgerReader portsrepo.LedgerReader
	chartRepo    portsrepo.ChartRepository
	classifier   *accounting.Classifier
}

// NewDrillDownService creates a new DrillDownService.
func NewDrillDownService(ledgerReader portsrepo.LedgerReader, chartRepo portsrepo.ChartRepository, classifier *accounting.Classifier) portssvc.DrillDownSvcFacade {
	return &drillDownService{
		ledgerReader: ledgerReader,
		chartRepo:    chartRepo,
		classifier:   classifier,
	}
}

var _ portssvc.DrillDownSvcFacade = (*drillDownService)(nil)

// normalizeReportType maps the requested report type to a known one. An
// unknown type degrades to profit_and_loss rather than failing.
func (s *drillDownService) normalizeReportType(ctx context.Context, reportType string) string {
	switch reportType {
	case ReportTypeProfitAndLoss, ReportTypeBalanceSheet, ReportTypeCashFlow:
		return reportType
	default:
		s.LogWarn(ctx, "unknown drill-down report type, defaulting to profit and loss",
			slog.String("report_type", reportType))
		return ReportTypeProfitAndLoss
	}
}

// windowFor derives the date window from the request. Balance sheet
// drill-downs are cumulative up to as-of; everything else uses a range
// defaulting to the trailing 30 days.
func windowFor(reportType string, req dto.DrillDownRequest) (domain.DateWindow, string) {
	if reportType == ReportTypeBalanceSheet {
		asOf := time.Now()
		if req.AsOf != nil {
			asOf = *req.AsOf
		}
		return domain.AsOfWindow(asOf), fmt.Sprintf("as of %s", asOf.Format("2006-01-02"))
	}

	to := time.Now()
	if req.To != nil {
		to = *req.To
	}
	from := to.AddDate(0, 0, -defaultRangeDays)
	if req.From != nil {
		from = *req.From
	}
	label := fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return domain.RangeWindow(from, to), label
}

// DrillDown lists the posted transactions behind one account of one report,
// newest first, with limit/offset paging.
// Implements portssvc.DrillDownSvcFacade
func (s *drillDownService) DrillDown(ctx context.Context, req dto.DrillDownRequest) (*domain.DrillDownResult, error) {
	if req.AccountCode == "" {
		return nil, apperrors.NewValidationError("account code is required")
	}
	if req.Offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDrillDownLimit
	}
	if limit > maxDrillDownLimit {
		limit = maxDrillDownLimit
	}

	reportType := s.normalizeReportType(ctx, req.ReportType)
	window, rangeLabel := windowFor(reportType, req)

	lines, err := s.ledgerReader.ListAccountLines(ctx, req.AccountCode, window, limit, req.Offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list account lines for drill-down",
			slog.String("account_code", req.AccountCode))
		return nil, err
	}

	category := s.classifier.Classify(req.AccountCode)
	accountName := s.accountNameFor(ctx, req.AccountCode, lines)

	result := &domain.DrillDownResult{
		ReportType:   reportType,
		AccountCode:  req.AccountCode,
		AccountName:  accountName,
		CurrencyCode: domain.ReportCurrency,
		Transactions: make([]domain.DrillDownTransaction, len(lines)),
		// A full page means there may be another one.
		HasMore: len(lines) == limit,
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	totalAmount := decimal.Zero
	for i, line := range lines {
		amount := accounting.NetAmount(category, line.Debit, line.Credit)
		result.Transactions[i] = domain.DrillDownTransaction{
			EntryID:         line.EntryID,
			EntryNumber:     line.EntryNumber,
			EntryDate:       line.EntryDate,
			Description:     line.Description,
			TransactionType: domain.NormalizeTransactionType(string(line.TransactionType)),
			Debit:           line.Debit,
			Credit:          line.Credit,
			Amount:          amount,
			ReferenceID:     line.ReferenceID,
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
		totalAmount = totalAmount.Add(amount)
	}
	result.Summary = domain.DrillDownSummary{
		TotalTransactions: len(lines),
		TotalAmount:       totalAmount,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		DateRangeLabel:    rangeLabel,
	}
	return result, nil
}

// accountNameFor prefers the name stamped on the ledger lines, then the
// chart of accounts, then the bare code.
func (s *drillDownService) accountNameFor(ctx context.Context, code string, lines []domain.LedgerLine) string {
	if len(lines) > 0 && lines[0].AccountName != "" {
		return lines[0].AccountName
	}
	account, err := s.chartRepo.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "chart lookup failed for drill-down",
				slog.String("account_code", code),
				slog.String("error", err.Error()))
		}
		return code
	}
	return account.Name
}

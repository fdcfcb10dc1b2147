package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerReader ---
type MockLedgerReader struct {
	mock.Mock
}

var _ portsrepo.LedgerReader = (*MockLedgerReader)(nil)

func (m *MockLedgerReader) AggregateByAccount(ctx context.Context, window domain.DateWindow, accountCode *string) ([]domain.AccountAggregate, error) {
	args := m.Called(ctx, window, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAggregate), args.Error(1)
}

func (m *MockLedgerReader) ListAccountLines(ctx context.Context, accountCode string, window domain.DateWindow, limit, offset int) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountCode, window, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerReader) FindEntriesTouchingCash(ctx context.Context, from, to time.Time) (map[string][]domain.LedgerLine, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.LedgerLine), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerReader
	service    portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerReader)
	suite.service = services.NewReportingService(suite.mockLedger, accounting.NewClassifier(nil))
}

func agg(code, name string, debit, credit int64) domain.AccountAggregate {
	return domain.AccountAggregate{
		AccountCode: code,
		AccountName: name,
		DebitTotal:  decimal.NewFromInt(debit),
		CreditTotal: decimal.NewFromInt(credit),
	}
}

func (suite *ReportingServiceTestSuite) TestProfitAndLossComputesTotalsAndMargins() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.RangeWindow(from, to), (*string)(nil)).
		Return([]domain.AccountAggregate{
			agg("511", "Sales revenue", 0, 1000000),
			agg("632", "Cost of goods sold", 600000, 0),
			agg("642", "General admin expenses", 100000, 0),
			agg("711", "Other income", 0, 50000),
			agg("811", "Other expenses", 20000, 0),
			// Balance sheet accounts in the window must not leak into the P&L.
			agg("111", "Cash on hand", 450000, 120000),
		}, nil)

	report, err := suite.service.ProfitAndLoss(context.Background(), from, to)

	suite.Require().NoError(err)
	suite.True(report.Revenue.Total.Equal(decimal.NewFromInt(1000000)))
	suite.True(report.COGS.Total.Equal(decimal.NewFromInt(600000)))
	suite.True(report.GrossProfit.Equal(decimal.NewFromInt(400000)))
	suite.True(report.OperatingIncome.Equal(decimal.NewFromInt(300000)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(330000)))

	suite.True(report.GrossProfitMargin.Equal(decimal.NewFromInt(40)))
	suite.True(report.OperatingIncomeMargin.Equal(decimal.NewFromInt(30)))
	suite.True(report.NetIncomeMargin.Equal(decimal.NewFromInt(33)))

	// Item percentages are relative to total revenue.
	suite.Require().Len(report.COGS.Items, 1)
	suite.True(report.COGS.Items[0].Percentage.Equal(decimal.NewFromInt(60)))

	// The cash aggregate was classified as an asset and excluded.
	suite.Len(report.Revenue.Items, 1)
	suite.Len(report.OtherIncome.Items, 1)
	suite.Len(report.OtherExpenses.Items, 1)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLossEmptyWindowYieldsZeroReport() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.RangeWindow(from, to), (*string)(nil)).
		Return([]domain.AccountAggregate{}, nil)

	report, err := suite.service.ProfitAndLoss(context.Background(), from, to)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.IsZero())
	suite.True(report.GrossProfitMargin.IsZero())
	suite.NotNil(report.Revenue.Items)
	suite.Empty(report.Revenue.Items)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheetFoldsEarningsIntoEquity() {
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.AsOfWindow(asOf), (*string)(nil)).
		Return([]domain.AccountAggregate{
			agg("111", "Cash on hand", 500000, 0),
			agg("131", "Trade receivables", 600000, 0),
			agg("211", "Tangible fixed assets", 1000000, 0),
			agg("331", "Trade payables", 0, 400000),
			agg("341", "Borrowings", 0, 700000),
			agg("411", "Owner contributed capital", 0, 800000),
			agg("511", "Sales revenue", 0, 300000),
			agg("642", "General admin expenses", 100000, 0),
		}, nil)

	report, err := suite.service.BalanceSheet(context.Background(), asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(2100000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(1100000)))
	// Equity is paid-in capital plus 200,000 of un-closed earnings
	// (300,000 revenue less 100,000 expenses).
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(1000000)))
	suite.True(report.BalanceCheck)

	// The asset and liability splits.
	suite.Len(report.CurrentAssets.Items, 2)
	suite.Len(report.FixedAssets.Items, 1)
	suite.Len(report.CurrentLiabilities.Items, 1)
	suite.Len(report.LongTermLiabilities.Items, 1)

	// The earnings line appears as a synthetic equity item.
	suite.Require().Len(report.Equity.Items, 2)
	earningsItem := report.Equity.Items[1]
	suite.Equal(domain.AccountRetained, earningsItem.AccountCode)
	suite.Equal("Current period earnings", earningsItem.AccountName)
	suite.True(earningsItem.Amount.Equal(decimal.NewFromInt(200000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheetEmptyLedger() {
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.AsOfWindow(asOf), (*string)(nil)).
		Return([]domain.AccountAggregate{}, nil)

	report, err := suite.service.BalanceSheet(context.Background(), asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.IsZero())
	suite.True(report.BalanceCheck)
	suite.Empty(report.Equity.Items)
}

func (suite *ReportingServiceTestSuite) TestCashFlowBucketsAndReconciles() {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	line := func(entryID, code, name string, debit, credit int64) domain.LedgerLine {
		return domain.LedgerLine{
			EntryID:     entryID,
			AccountCode: code,
			AccountName: name,
			Debit:       decimal.NewFromInt(debit),
			Credit:      decimal.NewFromInt(credit),
		}
	}

	suite.mockLedger.On("FindEntriesTouchingCash", mock.Anything, from, to).
		Return(map[string][]domain.LedgerLine{
			// Cash sale: operating inflow of 1,000,000.
			"e1": {
				line("e1", "111", "Cash on hand", 1000000, 0),
				line("e1", "511", "Sales revenue", 0, 1000000),
			},
			// Expense paid in cash: operating outflow of 200,000.
			"e2": {
				line("e2", "642", "General admin expenses", 200000, 0),
				line("e2", "111", "Cash on hand", 0, 200000),
			},
			// Equipment bought by bank transfer: investing outflow of 500,000.
			"e3": {
				line("e3", "211", "Tangible fixed assets", 500000, 0),
				line("e3", "112", "Cash in bank", 0, 500000),
			},
			// Loan drawn down: financing inflow of 800,000.
			"e4": {
				line("e4", "112", "Cash in bank", 800000, 0),
				line("e4", "341", "Borrowings", 0, 800000),
			},
		}, nil)

	dayBefore := from.AddDate(0, 0, -1)
	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.AsOfWindow(dayBefore), (*string)(nil)).
		Return([]domain.AccountAggregate{
			agg("111", "Cash on hand", 300000, 0),
			agg("411", "Owner contributed capital", 0, 300000),
		}, nil)
	suite.mockLedger.On("AggregateByAccount", mock.Anything, domain.AsOfWindow(to), (*string)(nil)).
		Return([]domain.AccountAggregate{
			agg("111", "Cash on hand", 1300000, 200000),
			agg("112", "Cash in bank", 800000, 500000),
			agg("411", "Owner contributed capital", 0, 300000),
		}, nil)

	report, err := suite.service.CashFlow(context.Background(), from, to)

	suite.Require().NoError(err)
	suite.True(report.Operating.NetCashFlow.Equal(decimal.NewFromInt(800000)))
	suite.True(report.Investing.NetCashFlow.Equal(decimal.NewFromInt(-500000)))
	suite.True(report.Financing.NetCashFlow.Equal(decimal.NewFromInt(800000)))
	suite.True(report.NetCashFlow.Equal(decimal.NewFromInt(1100000)))

	suite.True(report.BeginningCash.Equal(decimal.NewFromInt(300000)))
	suite.True(report.EndingCash.Equal(decimal.NewFromInt(1400000)))
	suite.True(report.CashFlowValidation)

	// Per-account roll-ups keep inflow and outflow separate.
	suite.Require().Len(report.Operating.Items, 2)
	suite.Equal("511", report.Operating.Items[0].AccountCode)
	suite.True(report.Operating.Items[0].Inflow.Equal(decimal.NewFromInt(1000000)))
	suite.Equal("642", report.Operating.Items[1].AccountCode)
	suite.True(report.Operating.Items[1].Outflow.Equal(decimal.NewFromInt(200000)))
}

func (suite *ReportingServiceTestSuite) TestCashFlowEmptyWindow() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("FindEntriesTouchingCash", mock.Anything, from, to).
		Return(map[string][]domain.LedgerLine{}, nil)
	suite.mockLedger.On("AggregateByAccount", mock.Anything, mock.Anything, (*string)(nil)).
		Return([]domain.AccountAggregate{}, nil)

	report, err := suite.service.CashFlow(context.Background(), from, to)

	suite.Require().NoError(err)
	suite.True(report.NetCashFlow.IsZero())
	suite.True(report.CashFlowValidation)
	suite.Empty(report.Operating.Items)
}

// memoryLedger is a LedgerReader over a fixed line set, applying
// domain.DateWindow.Contains exactly as the store's window clause does.
// Used to exercise the generators' window arithmetic end to end.
type memoryLedger struct {
	lines []domain.LedgerLine
}

var _ portsrepo.LedgerReader = (*memoryLedger)(nil)

func (m *memoryLedger) AggregateByAccount(_ context.Context, window domain.DateWindow, accountCode *string) ([]domain.AccountAggregate, error) {
	byCode := map[string]*domain.AccountAggregate{}
	codes := []string{}
	for _, l := range m.lines {
		if !window.Contains(l.EntryDate) {
			continue
		}
		if accountCode != nil && l.AccountCode != *accountCode {
			continue
		}
		a, ok := byCode[l.AccountCode]
		if !ok {
			a = &domain.AccountAggregate{AccountCode: l.AccountCode, AccountName: l.AccountName}
			byCode[l.AccountCode] = a
			codes = append(codes, l.AccountCode)
		}
		a.DebitTotal = a.DebitTotal.Add(l.Debit)
		a.CreditTotal = a.CreditTotal.Add(l.Credit)
	}
	sort.Strings(codes)
	aggregates := make([]domain.AccountAggregate, 0, len(codes))
	for _, code := range codes {
		aggregates = append(aggregates, *byCode[code])
	}
	return aggregates, nil
}

func (m *memoryLedger) ListAccountLines(_ context.Context, accountCode string, window domain.DateWindow, limit, offset int) ([]domain.LedgerLine, error) {
	matched := []domain.LedgerLine{}
	for _, l := range m.lines {
		if l.AccountCode == accountCode && window.Contains(l.EntryDate) {
			matched = append(matched, l)
		}
	}
	if offset >= len(matched) {
		return []domain.LedgerLine{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *memoryLedger) FindEntriesTouchingCash(_ context.Context, from, to time.Time) (map[string][]domain.LedgerLine, error) {
	window := domain.RangeWindow(from, to)
	byEntry := map[string][]domain.LedgerLine{}
	touchesCash := map[string]bool{}
	for _, l := range m.lines {
		if !window.Contains(l.EntryDate) {
			continue
		}
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
		if accounting.IsCashAccount(l.AccountCode) {
			touchesCash[l.EntryID] = true
		}
	}
	for id := range byEntry {
		if !touchesCash[id] {
			delete(byEntry, id)
		}
	}
	return byEntry, nil
}

func memLine(entryID string, at time.Time, code, name string, debit, credit int64) domain.LedgerLine {
	return domain.LedgerLine{
		EntryID:     entryID,
		EntryDate:   at,
		AccountCode: code,
		AccountName: name,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

// intradayReversalLedger holds a cash sale posted at midnight June 1 and
// its reversing entry posted the same day at 10:23. The pair must net to
// zero in every report no matter where the window bounds land.
func intradayReversalLedger() *memoryLedger {
	saleAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reversalAt := time.Date(2026, 6, 1, 10, 23, 0, 0, time.UTC)
	return &memoryLedger{lines: []domain.LedgerLine{
		memLine("sale", saleAt, "111", "Cash on hand", 1000000, 0),
		memLine("sale", saleAt, "511", "Sales revenue", 0, 1000000),
		memLine("reversal", reversalAt, "111", "Cash on hand", 0, 1000000),
		memLine("reversal", reversalAt, "511", "Sales revenue", 1000000, 0),
	}}
}

func (suite *ReportingServiceTestSuite) TestCashFlowReconcilesAcrossIntradayReversal() {
	svc := services.NewReportingService(intradayReversalLedger(), accounting.NewClassifier(nil))

	// A window starting the day after the sale and its intraday reversal:
	// both must land fully in beginning cash, leaving nothing in the flow.
	report, err := svc.CashFlow(context.Background(),
		time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(report.BeginningCash.IsZero())
	suite.True(report.EndingCash.IsZero())
	suite.True(report.NetCashFlow.IsZero())
	suite.True(report.CashFlowValidation)
}

func (suite *ReportingServiceTestSuite) TestCashFlowWindowCoveringIntradayReversalDay() {
	svc := services.NewReportingService(intradayReversalLedger(), accounting.NewClassifier(nil))

	report, err := svc.CashFlow(context.Background(),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	// Sale and reversal both inside the window: per-account inflow and
	// outflow cancel.
	suite.Require().Len(report.Operating.Items, 1)
	suite.True(report.Operating.Items[0].Inflow.Equal(decimal.NewFromInt(1000000)))
	suite.True(report.Operating.Items[0].Outflow.Equal(decimal.NewFromInt(1000000)))
	suite.True(report.NetCashFlow.IsZero())
	suite.True(report.CashFlowValidation)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLossIncludesIntradayEntriesOnBoundaryDay() {
	svc := services.NewReportingService(intradayReversalLedger(), accounting.NewClassifier(nil))

	// The range ends on the reversal's day: the 10:23 entry must count,
	// netting revenue back to zero.
	report, err := svc.ProfitAndLoss(context.Background(),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(report.Revenue.Total.IsZero())
	suite.True(report.NetIncome.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheetSeesIntradayEntriesOnAsOfDay() {
	svc := services.NewReportingService(intradayReversalLedger(), accounting.NewClassifier(nil))

	report, err := svc.BalanceSheet(context.Background(),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.IsZero())
	suite.True(report.BalanceCheck)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

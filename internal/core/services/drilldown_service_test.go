package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DrillDownServiceTestSuite struct {
	suite.Suite
	mockLedger    *MockLedgerReader
	mockChartRepo *MockChartRepository
	service       portssvc.DrillDownSvcFacade
}

func (suite *DrillDownServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerReader)
	suite.mockChartRepo = new(MockChartRepository)
	suite.service = services.NewDrillDownService(suite.mockLedger, suite.mockChartRepo, accounting.NewClassifier(nil))
}

func ledgerLine(code, name string, debit, credit int64) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:      uuid.NewString(),
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-20260115-AAAA1111",
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
		AccountCode: code,
		AccountName: name,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func (suite *DrillDownServiceTestSuite) TestDrillDownRevenueSummaryAndSigns() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	lines := []domain.LedgerLine{
		ledgerLine("511", "Sales revenue", 0, 1000000),
		ledgerLine("511", "Sales revenue", 0, 500000),
		// A reversing entry debits the revenue account.
		ledgerLine("511", "Sales revenue", 200000, 0),
	}
	suite.mockLedger.On("ListAccountLines", mock.Anything, "511", domain.RangeWindow(from, to), 50, 0).
		Return(lines, nil)

	result, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeProfitAndLoss,
		AccountCode: "511",
		From:        &from,
		To:          &to,
	})

	suite.Require().NoError(err)
	suite.Equal("Sales revenue", result.AccountName)
	suite.Len(result.Transactions, 3)
	// Revenue is credit-normal, so the reversing debit carries a negative
	// amount.
	suite.True(result.Transactions[0].Amount.Equal(decimal.NewFromInt(1000000)))
	suite.True(result.Transactions[2].Amount.Equal(decimal.NewFromInt(-200000)))

	suite.Equal(3, result.Summary.TotalTransactions)
	suite.True(result.Summary.TotalDebit.Equal(decimal.NewFromInt(200000)))
	suite.True(result.Summary.TotalCredit.Equal(decimal.NewFromInt(1500000)))
	suite.True(result.Summary.TotalAmount.Equal(decimal.NewFromInt(1300000)))
	suite.Equal("2026-01-01 to 2026-01-31", result.Summary.DateRangeLabel)
	suite.False(result.HasMore)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownFullPageSetsHasMore() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	lines := make([]domain.LedgerLine, 2)
	for i := range lines {
		lines[i] = ledgerLine("642", "General admin expenses", 50000, 0)
	}
	suite.mockLedger.On("ListAccountLines", mock.Anything, "642", domain.RangeWindow(from, to), 2, 2).
		Return(lines, nil)

	result, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeProfitAndLoss,
		AccountCode: "642",
		From:        &from,
		To:          &to,
		Limit:       2,
		Offset:      2,
	})

	suite.Require().NoError(err)
	suite.True(result.HasMore)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownBalanceSheetUsesAsOfWindow() {
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("ListAccountLines", mock.Anything, "131", domain.AsOfWindow(asOf), 50, 0).
		Return([]domain.LedgerLine{
			ledgerLine("131", "Trade receivables", 1100000, 0),
		}, nil)

	result, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeBalanceSheet,
		AccountCode: "131",
		AsOf:        &asOf,
	})

	suite.Require().NoError(err)
	suite.Equal("as of 2026-01-31", result.Summary.DateRangeLabel)
	// Receivables are debit-normal.
	suite.True(result.Summary.TotalAmount.Equal(decimal.NewFromInt(1100000)))
}

func (suite *DrillDownServiceTestSuite) TestDrillDownUnknownReportTypeDegrades() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("ListAccountLines", mock.Anything, "511", domain.RangeWindow(from, to), 50, 0).
		Return([]domain.LedgerLine{}, nil)
	suite.mockChartRepo.On("FindByCode", mock.Anything, "511").
		Return(&domain.ChartAccount{AccountCode: "511", Name: "Sales revenue"}, nil)

	result, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  "quarterly_synergy",
		AccountCode: "511",
		From:        &from,
		To:          &to,
	})

	suite.Require().NoError(err)
	suite.Equal(services.ReportTypeProfitAndLoss, result.ReportType)
	// With no lines in range the name comes from the chart of accounts.
	suite.Equal("Sales revenue", result.AccountName)
	suite.Empty(result.Transactions)
	suite.False(result.HasMore)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownNormalizesLegacyTransactionTypes() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	legacy := ledgerLine("511", "Sales revenue", 0, 1000)
	legacy.TransactionType = "sales_voucher" // pre-migration tag
	known := ledgerLine("511", "Sales revenue", 0, 2000)
	known.TransactionType = domain.TxnInvoice

	suite.mockLedger.On("ListAccountLines", mock.Anything, "511", domain.RangeWindow(from, to), 50, 0).
		Return([]domain.LedgerLine{legacy, known}, nil)

	result, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeProfitAndLoss,
		AccountCode: "511",
		From:        &from,
		To:          &to,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TxnJournalEntry, result.Transactions[0].TransactionType)
	suite.Equal(domain.TxnInvoice, result.Transactions[1].TransactionType)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownRequiresAccountCode() {
	_, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType: services.ReportTypeProfitAndLoss,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownRejectsNegativeOffset() {
	_, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeProfitAndLoss,
		AccountCode: "511",
		Offset:      -1,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DrillDownServiceTestSuite) TestDrillDownClampsLimit() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedger.On("ListAccountLines", mock.Anything, "511", domain.RangeWindow(from, to), 200, 0).
		Return([]domain.LedgerLine{ledgerLine("511", "Sales revenue", 0, 1000)}, nil)

	_, err := suite.service.DrillDown(context.Background(), dto.DrillDownRequest{
		ReportType:  services.ReportTypeProfitAndLoss,
		AccountCode: "511",
		From:        &from,
		To:          &to,
		Limit:       9999,
	})

	suite.Require().NoError(err)
	suite.mockLedger.AssertCalled(suite.T(), "ListAccountLines", mock.Anything, "511", domain.RangeWindow(from, to), 200, 0)
}

func TestDrillDownServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DrillDownServiceTestSuite))
}

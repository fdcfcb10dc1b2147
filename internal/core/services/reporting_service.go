package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService builds financial statements from ledger aggregates.
// Reports are computed on demand; nothing is persisted.
type reportingService struct {
	BaseService
	ledgerReader portsrepo.LedgerReader
	classifier   *accounting.Classifier
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerReader portsrepo.LedgerReader, classifier *accounting.Classifier) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerReader: ledgerReader,
		classifier:   classifier,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// percentOf returns part/base as a percentage rounded to 2 places, or zero
// when the base is zero.
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(oneHundred).Round(2)
}

// sectionFromItems sorts items by account code and totals them.
func sectionFromItems(items []domain.ReportLineItem) domain.ReportSection {
	sort.Slice(items, func(i, j int) bool {
		return items[i].AccountCode < items[j].AccountCode
	})
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	if items == nil {
		items = []domain.ReportLineItem{}
	}
	return domain.ReportSection{Items: items, Total: total}
}

// applyPercentages fills each item's share of the base after totals are
// known.
func applyPercentages(section *domain.ReportSection, base decimal.Decimal) {
	for i := range section.Items {
		section.Items[i].Percentage = percentOf(section.Items[i].Amount, base)
	}
}

// ProfitAndLoss builds the P&L statement for [from, to]. A window with no
// activity yields a well-formed all-zero report, not an error.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	aggregates, err := s.ledgerReader.AggregateByAccount(ctx, domain.RangeWindow(from, to), nil)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate ledger for profit and loss")
		return nil, err
	}

	buckets := map[domain.Category][]domain.ReportLineItem{}
	for _, agg := range aggregates {
		cat := s.classifier.Classify(agg.AccountCode)
		switch cat {
		case domain.CategoryRevenue, domain.CategoryCOGS, domain.CategoryOperatingExpense,
			domain.CategoryOtherIncome, domain.CategoryOtherExpense:
			buckets[cat] = append(buckets[cat], domain.ReportLineItem{
				AccountCode: agg.AccountCode,
				AccountName: agg.AccountName,
				Amount:      accounting.NetAmount(cat, agg.DebitTotal, agg.CreditTotal),
			})
		default:
			// Balance sheet accounts are out of scope here.
		}
	}

	report := &domain.ProfitAndLossReport{
		FromDate:          from,
		ToDate:            to,
		CurrencyCode:      domain.ReportCurrency,
		Revenue:           sectionFromItems(buckets[domain.CategoryRevenue]),
		COGS:              sectionFromItems(buckets[domain.CategoryCOGS]),
		OperatingExpenses: sectionFromItems(buckets[domain.CategoryOperatingExpense]),
		OtherIncome:       sectionFromItems(buckets[domain.CategoryOtherIncome]),
		OtherExpenses:     sectionFromItems(buckets[domain.CategoryOtherExpense]),
	}

	revenue := report.Revenue.Total
	report.GrossProfit = revenue.Sub(report.COGS.Total)
	report.OperatingIncome = report.GrossProfit.Sub(report.OperatingExpenses.Total)
	report.NetIncome = report.OperatingIncome.
		Add(report.OtherIncome.Total).
		Sub(report.OtherExpenses.Total)

	report.GrossProfitMargin = percentOf(report.GrossProfit, revenue)
	report.OperatingIncomeMargin = percentOf(report.OperatingIncome, revenue)
	report.NetIncomeMargin = percentOf(report.NetIncome, revenue)

	applyPercentages(&report.Revenue, revenue)
	applyPercentages(&report.COGS, revenue)
	applyPercentages(&report.OperatingExpenses, revenue)
	applyPercentages(&report.OtherIncome, revenue)
	applyPercentages(&report.OtherExpenses, revenue)

	return report, nil
}

// BalanceSheet builds the point-in-time balance sheet over all activity up
// to asOf. Income statement accounts are folded into equity as current
// period earnings, so assets always equal liabilities plus equity on a
// consistent ledger.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	aggregates, err := s.ledgerReader.AggregateByAccount(ctx, domain.AsOfWindow(asOf), nil)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate ledger for balance sheet")
		return nil, err
	}

	var currentAssets, fixedAssets, currentLiabilities, longTermLiabilities, equity []domain.ReportLineItem
	earnings := decimal.Zero

	for _, agg := range aggregates {
		cat := s.classifier.Classify(agg.AccountCode)
		net := accounting.NetAmount(cat, agg.DebitTotal, agg.CreditTotal)
		item := domain.ReportLineItem{
			AccountCode: agg.AccountCode,
			AccountName: agg.AccountName,
			Amount:      net,
		}
		switch cat {
		case domain.CategoryAsset:
			if accounting.IsFixedAssetAccount(agg.AccountCode) {
				fixedAssets = append(fixedAssets, item)
			} else {
				currentAssets = append(currentAssets, item)
			}
		case domain.CategoryLiability:
			if accounting.IsLongTermLiabilityAccount(agg.AccountCode) {
				longTermLiabilities = append(longTermLiabilities, item)
			} else {
				currentLiabilities = append(currentLiabilities, item)
			}
		case domain.CategoryEquity:
			equity = append(equity, item)
		default:
			// Income and expense accounts roll into current period earnings.
			// Credit-minus-debit keeps the equity sign convention: income
			// raises earnings, expenses lower them.
			earnings = earnings.Add(agg.CreditTotal.Sub(agg.DebitTotal))
		}
	}

	if !earnings.IsZero() {
		equity = append(equity, domain.ReportLineItem{
			AccountCode: domain.AccountRetained,
			AccountName: "Current period earnings",
			Amount:      earnings,
		})
	}

	report := &domain.BalanceSheetReport{
		AsOf:                asOf,
		CurrencyCode:        domain.ReportCurrency,
		CurrentAssets:       sectionFromItems(currentAssets),
		FixedAssets:         sectionFromItems(fixedAssets),
		CurrentLiabilities:  sectionFromItems(currentLiabilities),
		LongTermLiabilities: sectionFromItems(longTermLiabilities),
		Equity:              sectionFromItems(equity),
	}
	report.TotalAssets = report.CurrentAssets.Total.Add(report.FixedAssets.Total)
	report.TotalLiabilities = report.CurrentLiabilities.Total.Add(report.LongTermLiabilities.Total)
	report.TotalEquity = report.Equity.Total
	report.BalanceCheck = report.TotalAssets.
		Sub(report.TotalLiabilities.Add(report.TotalEquity)).
		Abs().
		LessThanOrEqual(domain.BalanceEpsilon)

	if !report.BalanceCheck {
		s.LogWarn(ctx, "balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}

	applyPercentages(&report.CurrentAssets, report.TotalAssets)
	applyPercentages(&report.FixedAssets, report.TotalAssets)
	applyPercentages(&report.CurrentLiabilities, report.TotalAssets)
	applyPercentages(&report.LongTermLiabilities, report.TotalAssets)
	applyPercentages(&report.Equity, report.TotalAssets)

	return report, nil
}

// cashFlowAccum accumulates cash movements per counterpart account.
type cashFlowAccum struct {
	name    string
	inflow  decimal.Decimal
	outflow decimal.Decimal
}

// CashFlow builds the cash flow statement for [from, to]. It pivots on the
// cash and bank accounts: every posted entry touching them contributes its
// cash delta, bucketed by the counterpart account's classification.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	entryLines, err := s.ledgerReader.FindEntriesTouchingCash(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to load cash entries for cash flow")
		return nil, err
	}

	sections := map[accounting.CashFlowBucket]map[string]*cashFlowAccum{
		accounting.BucketOperating: {},
		accounting.BucketInvesting: {},
		accounting.BucketFinancing: {},
	}

	for _, lines := range entryLines {
		for _, line := range lines {
			if accounting.IsCashAccount(line.AccountCode) {
				continue
			}
			// Debits and credits balance per entry, so each non-cash line's
			// credit-minus-debit is its contribution to the entry's cash delta.
			contribution := line.Credit.Sub(line.Debit)
			if contribution.IsZero() {
				continue
			}
			bucket := accounting.CashFlowSectionFor(s.classifier, line.AccountCode)
			accum, ok := sections[bucket][line.AccountCode]
			if !ok {
				accum = &cashFlowAccum{name: line.AccountName}
				sections[bucket][line.AccountCode] = accum
			}
			if contribution.IsPositive() {
				accum.inflow = accum.inflow.Add(contribution)
			} else {
				accum.outflow = accum.outflow.Add(contribution.Neg())
			}
		}
	}

	report := &domain.CashFlowReport{
		FromDate:     from,
		ToDate:       to,
		CurrencyCode: domain.ReportCurrency,
		Operating:    buildCashFlowSection(sections[accounting.BucketOperating]),
		Investing:    buildCashFlowSection(sections[accounting.BucketInvesting]),
		Financing:    buildCashFlowSection(sections[accounting.BucketFinancing]),
	}
	report.NetCashFlow = report.Operating.NetCashFlow.
		Add(report.Investing.NetCashFlow).
		Add(report.Financing.NetCashFlow)

	beginning, err := s.cashBalanceAsOf(ctx, from.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	ending, err := s.cashBalanceAsOf(ctx, to)
	if err != nil {
		return nil, err
	}
	report.BeginningCash = beginning
	report.EndingCash = ending
	report.CashFlowValidation = beginning.Add(report.NetCashFlow).
		Sub(ending).
		Abs().
		LessThanOrEqual(domain.BalanceEpsilon)

	if !report.CashFlowValidation {
		s.LogWarn(ctx, "cash flow does not reconcile to cash balances",
			slog.String("beginning_cash", beginning.String()),
			slog.String("net_cash_flow", report.NetCashFlow.String()),
			slog.String("ending_cash", ending.String()))
	}

	return report, nil
}

// cashBalanceAsOf sums debit-minus-credit over the cash accounts up to the
// given date.
func (s *reportingService) cashBalanceAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	aggregates, err := s.ledgerReader.AggregateByAccount(ctx, domain.AsOfWindow(asOf), nil)
	if err != nil {
		s.LogError(ctx, err, "failed to compute cash balance", slog.Time("as_of", asOf))
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, agg := range aggregates {
		if accounting.IsCashAccount(agg.AccountCode) {
			balance = balance.Add(agg.DebitTotal.Sub(agg.CreditTotal))
		}
	}
	return balance, nil
}

func buildCashFlowSection(accums map[string]*cashFlowAccum) domain.CashFlowSection {
	codes := make([]string, 0, len(accums))
	for code := range accums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	section := domain.CashFlowSection{
		Items:       make([]domain.CashFlowItem, 0, len(codes)),
		NetCashFlow: decimal.Zero,
	}
	for _, code := range codes {
		accum := accums[code]
		net := accum.inflow.Sub(accum.outflow)
		section.Items = append(section.Items, domain.CashFlowItem{
			AccountCode: code,
			AccountName: accum.name,
			Inflow:      accum.inflow,
			Outflow:     accum.outflow,
			Net:         net,
		})
		section.NetCashFlow = section.NetCashFlow.Add(net)
	}
	return section
}

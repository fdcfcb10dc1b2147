package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateWindow is the date filter shared by the aggregation layer and the
// statement generators. Either AsOf is set (point-in-time, Balance Sheet)
// or From/To are set (range, everything else). Bounds are interpreted at
// calendar-day granularity: entry dates carry time components (reversals
// are dated now), so "to" and "asOf" cover the whole named day, not just
// its midnight instant.
type DateWindow struct {
	From *time.Time
	To   *time.Time
	AsOf *time.Time
}

// RangeWindow builds an inclusive [from, to] window.
func RangeWindow(from, to time.Time) DateWindow {
	return DateWindow{From: &from, To: &to}
}

// AsOfWindow builds a point-in-time (<= asOf) window.
func AsOfWindow(asOf time.Time) DateWindow {
	return DateWindow{AsOf: &asOf}
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Contains reports whether an entry dated t falls inside the window under
// the calendar-day semantics: at or after From's day, strictly before the
// day after To (or AsOf). The store's SQL window clause mirrors this.
func (w DateWindow) Contains(t time.Time) bool {
	if w.AsOf != nil {
		return t.Before(StartOfDay(*w.AsOf).AddDate(0, 0, 1))
	}
	if w.From != nil && t.Before(StartOfDay(*w.From)) {
		return false
	}
	if w.To != nil && !t.Before(StartOfDay(*w.To).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// AccountAggregate is the per-account debit/credit roll-up produced by the
// ledger aggregation layer. The net sign convention is applied by callers
// based on the account's category, not here.
type AccountAggregate struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// LedgerLine is a journal line joined to its entry header, as returned by
// the aggregation layer for drill-down.
type LedgerLine struct {
	LineID          string          `json:"lineID"`
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	EntryStatus     EntryStatus     `json:"entryStatus"`
	TransactionType TransactionType `json:"transactionType"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Description     string          `json:"description"`
	ReferenceID     *string         `json:"referenceID,omitempty"`
}

// ReportLineItem is one account row inside a statement section.
type ReportLineItem struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"` // of total revenue; 0 when revenue is 0
}

// ReportSection groups line items with their total.
type ReportSection struct {
	Items []ReportLineItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// ProfitAndLossReport is the P&L statement for a date range.
type ProfitAndLossReport struct {
	FromDate              time.Time       `json:"fromDate"`
	ToDate                time.Time       `json:"toDate"`
	CurrencyCode          string          `json:"currencyCode"`
	Revenue               ReportSection   `json:"revenue"`
	COGS                  ReportSection   `json:"cogs"`
	OperatingExpenses     ReportSection   `json:"operatingExpenses"`
	OtherIncome           ReportSection   `json:"otherIncome"`
	OtherExpenses         ReportSection   `json:"otherExpenses"`
	GrossProfit           decimal.Decimal `json:"grossProfit"`
	GrossProfitMargin     decimal.Decimal `json:"grossProfitMargin"`
	OperatingIncome       decimal.Decimal `json:"operatingIncome"`
	OperatingIncomeMargin decimal.Decimal `json:"operatingIncomeMargin"`
	NetIncome             decimal.Decimal `json:"netIncome"`
	NetIncomeMargin       decimal.Decimal `json:"netIncomeMargin"`
}

// BalanceSheetReport is the point-in-time balance sheet.
type BalanceSheetReport struct {
	AsOf                time.Time       `json:"asOf"`
	CurrencyCode        string          `json:"currencyCode"`
	CurrentAssets       ReportSection   `json:"currentAssets"`
	FixedAssets         ReportSection   `json:"fixedAssets"`
	CurrentLiabilities  ReportSection   `json:"currentLiabilities"`
	LongTermLiabilities ReportSection   `json:"longTermLiabilities"`
	Equity              ReportSection   `json:"equity"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	TotalEquity         decimal.Decimal `json:"totalEquity"`
	BalanceCheck        bool            `json:"balanceCheck"` // assets == liabilities + equity
}

// CashFlowSection is one of Operating/Investing/Financing.
type CashFlowSection struct {
	Items       []CashFlowItem  `json:"items"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// CashFlowItem is a counterpart-account roll-up of cash movements.
type CashFlowItem struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	Net         decimal.Decimal `json:"net"`
}

// CashFlowReport is the cash flow statement for a date range.
type CashFlowReport struct {
	FromDate           time.Time       `json:"fromDate"`
	ToDate             time.Time       `json:"toDate"`
	CurrencyCode       string          `json:"currencyCode"`
	Operating          CashFlowSection `json:"operating"`
	Investing          CashFlowSection `json:"investing"`
	Financing          CashFlowSection `json:"financing"`
	NetCashFlow        decimal.Decimal `json:"netCashFlow"`
	BeginningCash      decimal.Decimal `json:"beginningCash"`
	EndingCash         decimal.Decimal `json:"endingCash"`
	CashFlowValidation bool            `json:"cashFlowValidation"`
}

// DrillDownTransaction is one underlying transaction behind a reported
// figure.
type DrillDownTransaction struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Amount          decimal.Decimal `json:"amount"` // category-signed net
	ReferenceID     *string         `json:"referenceID,omitempty"`
}

// DrillDownSummary aggregates the returned transaction page.
type DrillDownSummary struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	DateRangeLabel    string          `json:"dateRangeLabel"`
}

// DrillDownResult is the drill-down response for one account of one report.
type DrillDownResult struct {
	ReportType   string                 `json:"reportType"`
	AccountCode  string                 `json:"accountCode"`
	AccountName  string                 `json:"accountName"`
	CurrencyCode string                 `json:"currencyCode"`
	Transactions []DrillDownTransaction `json:"transactions"`
	Summary      DrillDownSummary       `json:"summary"`
	HasMore      bool                   `json:"hasMore"`
}

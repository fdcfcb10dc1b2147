package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DrillDownRequest asks for the transactions behind one reported account.
type DrillDownRequest struct {
	ReportType  string // profit_and_loss | balance_sheet | cash_flow
	AccountCode string
	From        *time.Time
	To          *time.Time
	AsOf        *time.Time
	Limit       int
	Offset      int
}

// ReportLineItemResponse is one account row of a statement section.
type ReportLineItemResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// ReportSectionResponse groups line items with a total.
type ReportSectionResponse struct {
	Items []ReportLineItemResponse `json:"items"`
	Total decimal.Decimal          `json:"total"`
}

// ProfitAndLossResponse is the serialized P&L statement.
type ProfitAndLossResponse struct {
	FromDate          string                `json:"fromDate"`
	ToDate            string                `json:"toDate"`
	Currency          string                `json:"currency"`
	Revenue           ReportSectionResponse `json:"revenue"`
	COGS              ReportSectionResponse `json:"cogs"`
	OperatingExpenses ReportSectionResponse `json:"operatingExpenses"`
	OtherIncome       ReportSectionResponse `json:"otherIncome"`
	OtherExpenses     ReportSectionResponse `json:"otherExpenses"`
	Summary           struct {
		GrossProfit           decimal.Decimal `json:"grossProfit"`
		GrossProfitMargin     decimal.Decimal `json:"grossProfitMargin"`
		OperatingIncome       decimal.Decimal `json:"operatingIncome"`
		OperatingIncomeMargin decimal.Decimal `json:"operatingIncomeMargin"`
		NetIncome             decimal.Decimal `json:"netIncome"`
		NetIncomeMargin       decimal.Decimal `json:"netIncomeMargin"`
	} `json:"summary"`
}

// BalanceSheetResponse is the serialized balance sheet.
type BalanceSheetResponse struct {
	AsOf                string                `json:"asOf"`
	Currency            string                `json:"currency"`
	CurrentAssets       ReportSectionResponse `json:"currentAssets"`
	FixedAssets         ReportSectionResponse `json:"fixedAssets"`
	CurrentLiabilities  ReportSectionResponse `json:"currentLiabilities"`
	LongTermLiabilities ReportSectionResponse `json:"longTermLiabilities"`
	Equity              ReportSectionResponse `json:"equity"`
	Summary             struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		BalanceCheck     bool            `json:"balanceCheck"`
	} `json:"summary"`
}

// CashFlowItemResponse is a counterpart-account roll-up of cash movements.
type CashFlowItemResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	Net         decimal.Decimal `json:"net"`
}

// CashFlowSectionResponse is one of the three cash flow sections.
type CashFlowSectionResponse struct {
	Items       []CashFlowItemResponse `json:"items"`
	NetCashFlow decimal.Decimal        `json:"netCashFlow"`
}

// CashFlowResponse is the serialized cash flow statement.
type CashFlowResponse struct {
	FromDate  string                  `json:"fromDate"`
	ToDate    string                  `json:"toDate"`
	Currency  string                  `json:"currency"`
	Operating CashFlowSectionResponse `json:"operating"`
	Investing CashFlowSectionResponse `json:"investing"`
	Financing CashFlowSectionResponse `json:"financing"`
	Summary   struct {
		NetCashFlow        decimal.Decimal `json:"netCashFlow"`
		BeginningCash      decimal.Decimal `json:"beginningCash"`
		EndingCash         decimal.Decimal `json:"endingCash"`
		CashFlowValidation bool            `json:"cashFlowValidation"`
	} `json:"summary"`
}

// DrillDownTransactionResponse is one underlying transaction.
type DrillDownTransactionResponse struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       string          `json:"entryDate"`
	Description     string          `json:"description"`
	TransactionType string          `json:"transactionType"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceID     *string         `json:"referenceID,omitempty"`
}

// DrillDownResponse is the serialized drill-down result.
type DrillDownResponse struct {
	ReportType   string                         `json:"reportType"`
	AccountCode  string                         `json:"accountCode"`
	AccountName  string                         `json:"accountName"`
	Currency     string                         `json:"currency"`
	Transactions []DrillDownTransactionResponse `json:"transactions"`
	Summary      struct {
		TotalTransactions int             `json:"totalTransactions"`
		TotalAmount       decimal.Decimal `json:"totalAmount"`
		TotalDebit        decimal.Decimal `json:"totalDebit"`
		TotalCredit       decimal.Decimal `json:"totalCredit"`
		DateRangeLabel    string          `json:"dateRangeLabel"`
	} `json:"summary"`
	HasMore bool `json:"hasMore"`
}

const dateFormat = "2006-01-02"

func toSectionResponse(s domain.ReportSection) ReportSectionResponse {
	resp := ReportSectionResponse{
		Items: make([]ReportLineItemResponse, len(s.Items)),
		Total: s.Total,
	}
	for i, item := range s.Items {
		resp.Items[i] = ReportLineItemResponse{
			AccountCode: item.AccountCode,
			AccountName: item.AccountName,
			Amount:      item.Amount,
			Percentage:  item.Percentage,
		}
	}
	return resp
}

// ToProfitAndLossResponse converts a domain P&L report to its API shape.
func ToProfitAndLossResponse(r *domain.ProfitAndLossReport) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate:          r.FromDate.Format(dateFormat),
		ToDate:            r.ToDate.Format(dateFormat),
		Currency:          r.CurrencyCode,
		Revenue:           toSectionResponse(r.Revenue),
		COGS:              toSectionResponse(r.COGS),
		OperatingExpenses: toSectionResponse(r.OperatingExpenses),
		OtherIncome:       toSectionResponse(r.OtherIncome),
		OtherExpenses:     toSectionResponse(r.OtherExpenses),
	}
	resp.Summary.GrossProfit = r.GrossProfit
	resp.Summary.GrossProfitMargin = r.GrossProfitMargin
	resp.Summary.OperatingIncome = r.OperatingIncome
	resp.Summary.OperatingIncomeMargin = r.OperatingIncomeMargin
	resp.Summary.NetIncome = r.NetIncome
	resp.Summary.NetIncomeMargin = r.NetIncomeMargin
	return resp
}

// ToBalanceSheetResponse converts a domain balance sheet to its API shape.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:                r.AsOf.Format(dateFormat),
		Currency:            r.CurrencyCode,
		CurrentAssets:       toSectionResponse(r.CurrentAssets),
		FixedAssets:         toSectionResponse(r.FixedAssets),
		CurrentLiabilities:  toSectionResponse(r.CurrentLiabilities),
		LongTermLiabilities: toSectionResponse(r.LongTermLiabilities),
		Equity:              toSectionResponse(r.Equity),
	}
	resp.Summary.TotalAssets = r.TotalAssets
	resp.Summary.TotalLiabilities = r.TotalLiabilities
	resp.Summary.TotalEquity = r.TotalEquity
	resp.Summary.BalanceCheck = r.BalanceCheck
	return resp
}

func toCashFlowSectionResponse(s domain.CashFlowSection) CashFlowSectionResponse {
	resp := CashFlowSectionResponse{
		Items:       make([]CashFlowItemResponse, len(s.Items)),
		NetCashFlow: s.NetCashFlow,
	}
	for i, item := range s.Items {
		resp.Items[i] = CashFlowItemResponse{
			AccountCode: item.AccountCode,
			AccountName: item.AccountName,
			Inflow:      item.Inflow,
			Outflow:     item.Outflow,
			Net:         item.Net,
		}
	}
	return resp
}

// ToCashFlowResponse converts a domain cash flow report to its API shape.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	resp := CashFlowResponse{
		FromDate:  r.FromDate.Format(dateFormat),
		ToDate:    r.ToDate.Format(dateFormat),
		Currency:  r.CurrencyCode,
		Operating: toCashFlowSectionResponse(r.Operating),
		Investing: toCashFlowSectionResponse(r.Investing),
		Financing: toCashFlowSectionResponse(r.Financing),
	}
	resp.Summary.NetCashFlow = r.NetCashFlow
	resp.Summary.BeginningCash = r.BeginningCash
	resp.Summary.EndingCash = r.EndingCash
	resp.Summary.CashFlowValidation = r.CashFlowValidation
	return resp
}

// ToDrillDownResponse converts a domain drill-down result to its API shape.
func ToDrillDownResponse(r *domain.DrillDownResult) DrillDownResponse {
	resp := DrillDownResponse{
		ReportType:   r.ReportType,
		AccountCode:  r.AccountCode,
		AccountName:  r.AccountName,
		Currency:     r.CurrencyCode,
		Transactions: make([]DrillDownTransactionResponse, len(r.Transactions)),
		HasMore:      r.HasMore,
	}
	for i, t := range r.Transactions {
		resp.Transactions[i] = DrillDownTransactionResponse{
			EntryID:         t.EntryID,
			EntryNumber:     t.EntryNumber,
			EntryDate:       t.EntryDate.Format(dateFormat),
			Description:     t.Description,
			TransactionType: string(t.TransactionType),
			Debit:           t.Debit,
			Credit:          t.Credit,
			Amount:          t.Amount,
			ReferenceID:     t.ReferenceID,
		}
	}
	resp.Summary.TotalTransactions = r.Summary.TotalTransactions
	resp.Summary.TotalAmount = r.Summary.TotalAmount
	resp.Summary.TotalDebit = r.Summary.TotalDebit
	resp.Summary.TotalCredit = r.Summary.TotalCredit
	resp.Summary.DateRangeLabel = r.Summary.DateRangeLabel
	return resp
}

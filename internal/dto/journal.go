package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one debit or credit movement in a create request.
// Exactly one of Debit/Credit should be non-zero; the service validates.
type CreateLineRequest struct {
	AccountCode   string          `json:"accountCode" binding:"required,accountcode"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	ReferenceType *string         `json:"referenceType,omitempty"`
}

// CreateEntryRequest creates a balanced journal entry.
type CreateEntryRequest struct {
	EntryDate       time.Time           `json:"entryDate" binding:"required"`
	Description     string              `json:"description" binding:"required"`
	TransactionType string              `json:"transactionType"`
	ReferenceID     *string             `json:"referenceID,omitempty"`
	ReferenceType   *string             `json:"referenceType,omitempty"`
	Lines           []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// InvoiceIssuedRequest records a sales invoice: debit receivable, credit
// revenue (and VAT payable when VATAmount is set).
type InvoiceIssuedRequest struct {
	InvoiceID    string          `json:"invoiceID" binding:"required"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	IssuedAt     time.Time       `json:"issuedAt" binding:"required"`
	Description  string          `json:"description"`
}

// PaymentReceivedRequest records a customer payment: debit cash or bank by
// payment method, credit receivable.
type PaymentReceivedRequest struct {
	ReceiptID     string               `json:"receiptID" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank_transfer"`
	ReceivedAt    time.Time            `json:"receivedAt" binding:"required"`
	Description   string               `json:"description"`
}

// BillReceivedRequest records a supplier bill: debit expense, credit
// payable.
type BillReceivedRequest struct {
	BillID             string          `json:"billID" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	ExpenseAccountCode string          `json:"expenseAccountCode" binding:"omitempty,accountcode"`
	ReceivedAt         time.Time       `json:"receivedAt" binding:"required"`
	Description        string          `json:"description"`
}

// ExpensePaidRequest records a directly paid expense: debit expense,
// credit cash or bank.
type ExpensePaidRequest struct {
	ExpenseID          string               `json:"expenseID" binding:"required"`
	Amount             decimal.Decimal      `json:"amount" binding:"required"`
	ExpenseAccountCode string               `json:"expenseAccountCode" binding:"omitempty,accountcode"`
	PaymentMethod      domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank_transfer"`
	PaidAt             time.Time            `json:"paidAt" binding:"required"`
	Description        string               `json:"description"`
}

// VendorPaidRequest records settling a supplier bill: debit payable,
// credit cash or bank.
type VendorPaidRequest struct {
	PaymentID     string               `json:"paymentID" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank_transfer"`
	PaidAt        time.Time            `json:"paidAt" binding:"required"`
	Description   string               `json:"description"`
}

// ListEntriesParams holds cursor pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// LineResponse is the API shape of a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse is the API shape of a journal entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	TransactionType string          `json:"transactionType"`
	Status          string          `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	CurrencyCode    string          `json:"currencyCode"`
	OriginalEntryID *string         `json:"originalEntryID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	Lines           []LineResponse  `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of journal entries with the next cursor.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain line to its API shape.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain entry (with any loaded lines) to its
// API shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		TransactionType: string(e.TransactionType),
		Status:          string(e.Status),
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		CurrencyCode:    e.CurrencyCode,
		OriginalEntryID: e.OriginalEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// TransactionType tags a journal entry with the business event that
// produced it.
type TransactionType string

const (
	TxnInvoice       TransactionType = "invoice"
	TxnReceipt       TransactionType = "receipt"
	TxnPayment       TransactionType = "payment"
	TxnExpense       TransactionType = "expense"
	TxnBill          TransactionType = "bill"
	TxnAdjustment    TransactionType = "adjustment"
	TxnReversal      TransactionType = "reversal"
	TxnJournalEntry  TransactionType = "journal_entry"
	TxnOpeningEntry  TransactionType = "opening_balance"
	TxnAssetPurchase TransactionType = "asset_purchase"
)

// NormalizeTransactionType maps a stored transaction-type string to a known
// tag. Legacy or unknown values degrade to journal_entry.
func NormalizeTransactionType(raw string) TransactionType {
	switch t := TransactionType(raw); t {
	case TxnInvoice, TxnReceipt, TxnPayment, TxnExpense, TxnBill,
		TxnAdjustment, TxnReversal, TxnJournalEntry, TxnOpeningEntry, TxnAssetPurchase:
		return t
	default:
		return TxnJournalEntry
	}
}

// PaymentMethod selects the cash or bank account for money movements.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// JournalEntry is the header of a balanced double-entry record. An entry is
// immutable once posted; undoing it means posting a reversing entry, never
// deleting.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber     string          `json:"entryNumber"` // Human-readable, date-stamped
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	ReferenceID     *string         `json:"referenceID,omitempty"`   // Originating business object
	ReferenceType   *string         `json:"referenceType,omitempty"` // e.g. "invoice", "receipt_voucher"
	Status          EntryStatus     `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	CurrencyCode    string          `json:"currencyCode"`
	// Reversal links. OriginalEntryID is set on the reversing entry,
	// ReversingEntryID on the entry that got reversed.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalLine is a single debit or credit movement against one account
// within a journal entry. Exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	LineID        string          `json:"lineID"`  // Primary key (UUID)
	EntryID       string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	ReferenceType *string         `json:"referenceType,omitempty"`
	AuditFields
}

// BalanceEpsilon is the tolerance for debit/credit equality checks.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// IsBalanced reports whether total debits equal total credits within
// BalanceEpsilon.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().LessThanOrEqual(BalanceEpsilon)
}

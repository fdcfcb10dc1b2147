package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the persistence model for a journal entry header.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	EntryNumber      string          `db:"entry_number"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	TransactionType  string          `db:"transaction_type"`
	ReferenceID      *string         `db:"reference_id"`
	ReferenceType    *string         `db:"reference_type"`
	Status           EntryStatus     `db:"status"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	CurrencyCode     string          `db:"currency_code"`
	OriginalEntryID  *string         `db:"original_entry_id"`
	ReversingEntryID *string         `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine is the persistence model for a journal entry line.
type JournalLine struct {
	LineID        string          `db:"line_id"`
	EntryID       string          `db:"entry_id"`
	AccountCode   string          `db:"account_code"`
	AccountName   string          `db:"account_name"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	ReferenceID   *string         `db:"reference_id"`
	ReferenceType *string         `db:"reference_type"`
	AuditFields
}

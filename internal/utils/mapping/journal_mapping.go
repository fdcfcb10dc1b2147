package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain journal entry header to its
// persistence model. Lines are persisted separately.
func ToModelJournalEntry(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		TransactionType:  string(e.TransactionType),
		ReferenceID:      e.ReferenceID,
		ReferenceType:    e.ReferenceType,
		Status:           models.EntryStatus(e.Status),
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		CurrencyCode:     e.CurrencyCode,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		AuditFields:      ToModelAuditFields(e.AuditFields),
	}
}

// ToDomainJournalEntry converts a persistence journal entry header to the
// domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		TransactionType:  domain.TransactionType(m.TransactionType),
		ReferenceID:      m.ReferenceID,
		ReferenceType:    m.ReferenceType,
		Status:           domain.EntryStatus(m.Status),
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		CurrencyCode:     m.CurrencyCode,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain line to its persistence model.
func ToModelJournalLine(l domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:        l.LineID,
		EntryID:       l.EntryID,
		AccountCode:   l.AccountCode,
		AccountName:   l.AccountName,
		Debit:         l.Debit,
		Credit:        l.Credit,
		Description:   l.Description,
		ReferenceID:   l.ReferenceID,
		ReferenceType: l.ReferenceType,
		AuditFields:   ToModelAuditFields(l.AuditFields),
	}
}

// ToDomainJournalLine converts a persistence line to the domain shape.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		AccountCode:   m.AccountCode,
		AccountName:   m.AccountName,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of persistence lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainJournalLine(m)
	}
	return lines
}

// ToDomainChartAccount converts a persistence chart account row.
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		AccountCode: m.AccountCode,
		Name:        m.Name,
		Category:    domain.Category(m.Category),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

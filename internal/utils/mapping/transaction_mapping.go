package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction header to its model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		OrganizationID:    d.OrganizationID,
		TransactionNumber: d.TransactionNumber,
		TransactionDate:   d.TransactionDate,
		TransactionType:   string(d.TransactionType),
		Description:       d.Description,
		Status:            models.TransactionStatus(d.Status),
		SourceDocumentID:  d.SourceDocumentID,
		ReversalOfID:      d.ReversalOfID,
		ReversedByID:      d.ReversedByID,
		ReversalReason:    d.ReversalReason,
		TotalDebits:       d.TotalDebits,
		TotalCredits:      d.TotalCredits,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to its domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		OrganizationID:    m.OrganizationID,
		TransactionNumber: m.TransactionNumber,
		TransactionDate:   m.TransactionDate,
		TransactionType:   domain.TransactionType(m.TransactionType),
		Description:       m.Description,
		Status:            domain.TransactionStatus(m.Status),
		SourceDocumentID:  m.SourceDocumentID,
		ReversalOfID:      m.ReversalOfID,
		ReversedByID:      m.ReversedByID,
		ReversalReason:    m.ReversalReason,
		TotalDebits:       m.TotalDebits,
		TotalCredits:      m.TotalCredits,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain LedgerEntry to its model.
func ToModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:                d.EntryID,
		TransactionID:          d.TransactionID,
		AccountID:              d.AccountID,
		EntryType:              models.EntryType(d.EntryType),
		Amount:                 d.Amount,
		CurrencyCode:           d.CurrencyCode,
		BaseAmount:             d.BaseAmount,
		Description:            d.Description,
		RunningBalance:         d.RunningBalance,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		TransactionDate:        d.TransactionDate,
		TransactionNumber:      d.TransactionNumber,
		TransactionDescription: d.TransactionDescription,
	}
}

// ToDomainEntry converts a model LedgerEntry to its domain representation.
func ToDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:                m.EntryID,
		TransactionID:          m.TransactionID,
		AccountID:              m.AccountID,
		EntryType:              domain.EntryType(m.EntryType),
		Amount:                 m.Amount,
		CurrencyCode:           m.CurrencyCode,
		BaseAmount:             m.BaseAmount,
		Description:            m.Description,
		RunningBalance:         m.RunningBalance,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		TransactionDate:        m.TransactionDate,
		TransactionNumber:      m.TransactionNumber,
		TransactionDescription: m.TransactionDescription,
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

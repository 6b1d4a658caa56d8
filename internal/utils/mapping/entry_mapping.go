package mapping

import (
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:         d.EntryID,
		UserID:          d.UserID,
		SourceAccountID: d.SourceAccountID,
		TargetAccountID: d.TargetAccountID,
		CategoryID:      d.CategoryID,
		Amount:          d.Amount,
		Kind:            models.EntryKind(d.Kind),
		OccurredAt:      d.OccurredAt,
		Note:            d.Note,
		FeeRate:         d.FeeRate,
		FeeAmount:       d.FeeAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:         m.EntryID,
		UserID:          m.UserID,
		SourceAccountID: m.SourceAccountID,
		TargetAccountID: m.TargetAccountID,
		CategoryID:      m.CategoryID,
		Amount:          m.Amount,
		Kind:            domain.EntryKind(m.Kind),
		OccurredAt:      m.OccurredAt,
		Note:            m.Note,
		FeeRate:         m.FeeRate,
		FeeAmount:       m.FeeAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind mirrors domain.EntryKind at the storage layer.
type EntryKind string

// Entry is the entries table row.
type Entry struct {
	EntryID         string          `db:"entry_id"`
	UserID          string          `db:"user_id"`
	SourceAccountID string          `db:"source_account_id"`
	TargetAccountID *string         `db:"target_account_id"`
	CategoryID      string          `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Kind            EntryKind       `db:"kind"`
	OccurredAt      time.Time       `db:"occurred_at"`
	Note            string          `db:"note"`

	FeeRate   *decimal.Decimal `db:"fee_rate"`
	FeeAmount *decimal.Decimal `db:"fee_amount"`

	AuditFields
}

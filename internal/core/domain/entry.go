package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryIncome   EntryKind = "INCOME"
	EntryExpense  EntryKind = "EXPENSE"
	EntryTransfer EntryKind = "TRANSFER"
)

// Entry is one recorded money movement. Amount is always stored positive;
// the sign of the balance effect is determined by Kind:
//
//	INCOME   credits the source account
//	EXPENSE  debits the source account
//	TRANSFER debits the source account and credits the target account
//
// TargetAccountID is set only for transfers.
type Entry struct {
	EntryID         string          `json:"entryID"`
	UserID          string          `json:"userID"`
	SourceAccountID string          `json:"sourceAccountID"`
	TargetAccountID *string         `json:"targetAccountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	Kind            EntryKind       `json:"kind"`
	OccurredAt      time.Time       `json:"occurredAt"`
	Note            string          `json:"note"`

	// Credit-card settlement fees, recorded on system-generated fee entries.
	FeeRate   *decimal.Decimal `json:"feeRate"`
	FeeAmount *decimal.Decimal `json:"feeAmount"`

	AuditFields
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// CreateEntryRequest defines the data needed to record a new ledger entry.
type CreateEntryRequest struct {
	Kind            domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	SourceAccountID string           `json:"sourceAccountID" binding:"required"`
	TargetAccountID *string          `json:"targetAccountID"`
	CategoryID      string           `json:"categoryID" binding:"required"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	OccurredAt      time.Time        `json:"occurredAt" binding:"required"`
	Note            string           `json:"note" binding:"max=500"`
}

// UpdateEntryRequest defines the data allowed for amending an entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateEntryRequest struct {
	Kind            *domain.EntryKind `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	SourceAccountID *string           `json:"sourceAccountID"`
	TargetAccountID *string           `json:"targetAccountID"`
	CategoryID      *string           `json:"categoryID"`
	Amount          *decimal.Decimal  `json:"amount"`
	OccurredAt      *time.Time        `json:"occurredAt"`
	Note            *string           `json:"note" binding:"omitempty,max=500"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	AccountID  *string `form:"accountID"`
	CategoryID *string `form:"categoryID"`
	Kind       *string `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID         string           `json:"entryID"`
	Kind            domain.EntryKind `json:"kind"`
	SourceAccountID string           `json:"sourceAccountID"`
	TargetAccountID *string          `json:"targetAccountID"`
	CategoryID      string           `json:"categoryID"`
	Amount          decimal.Decimal  `json:"amount"`
	OccurredAt      time.Time        `json:"occurredAt"`
	Note            string           `json:"note"`
	FeeRate         *decimal.Decimal `json:"feeRate,omitempty"`
	FeeAmount       *decimal.Decimal `json:"feeAmount,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		Kind:            e.Kind,
		SourceAccountID: e.SourceAccountID,
		TargetAccountID: e.TargetAccountID,
		CategoryID:      e.CategoryID,
		Amount:          e.Amount,
		OccurredAt:      e.OccurredAt,
		Note:            e.Note,
		FeeRate:         e.FeeRate,
		FeeAmount:       e.FeeAmount,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ListEntriesResponse wraps a page of entries with the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a slice of domain.Entry to a ListEntriesResponse
func ToListEntriesResponse(entries []domain.Entry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}

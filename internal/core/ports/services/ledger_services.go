package services

import (
	"context"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific entry, verifying ownership.
	GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a paginated list of the user's entries, newest first.
	ListEntries(ctx context.Context, userID string, filter repositories.EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// LedgerWriterSvc defines write operations for ledger entries
type LedgerWriterSvc interface {
	// RecordEntry validates and persists a new entry, applying its balance
	// effect atomically.
	RecordEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.Entry, error)

	// AmendEntry replaces an entry's fields, reverting the stored effect and
	// applying the new one in a single transaction.
	AmendEntry(ctx context.Context, userID string, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error)

	// DeleteEntry removes an entry, reverting its balance effect atomically.
	DeleteEntry(ctx context.Context, userID string, entryID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

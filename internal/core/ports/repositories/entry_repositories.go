package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// EntryListFilter narrows ListEntriesByUser results.
type EntryListFilter struct {
	AccountID  *string
	CategoryID *string
	Kind       *domain.EntryKind
	From       *time.Time
	To         *time.Time
}

// EntryReader defines read operations for entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByUser retrieves a paginated list of entries for a user using
	// token-based pagination, newest first. It returns the entries, a token
	// for the next page, and an error.
	ListEntriesByUser(ctx context.Context, userID string, filter EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for entry data
type EntryWriter interface {
	// SaveEntry persists a new entry and applies its balance deltas to the
	// affected accounts within a single transaction.
	SaveEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) error

	// UpdateEntry replaces an entry and applies the combined revert+apply
	// deltas within a single transaction.
	UpdateEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) error

	// DeleteEntry removes an entry and reverts its balance deltas within a
	// single transaction.
	DeleteEntry(ctx context.Context, entryID string, userID string, deltas map[string]decimal.Decimal, now time.Time) error
}

// EntryTransactionSupport defines operations used when an entry is written as
// part of a larger transaction, such as an installment payment.
type EntryTransactionSupport interface {
	// InsertEntryInTx inserts an entry row within a given transaction without
	// touching account balances.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryTransactionSupport
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}

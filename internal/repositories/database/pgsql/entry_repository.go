package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/tvhoang/wallet_ledger_app/internal/models"
	"github.com/tvhoang/wallet_ledger_app/internal/utils/mapping"
	"github.com/tvhoang/wallet_ledger_app/internal/utils/pagination"
)

const entryColumns = `entry_id, user_id, source_account_id, target_account_id, category_id, amount, kind,
	occurred_at, note, fee_rate, fee_amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPgxEntryRepository creates a new repository for ledger entry data.
func NewPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) *PgxEntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxEntryRepository implements the entry facade
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

func scanEntryRow(row rowScanner) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.SourceAccountID,
		&m.TargetAccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Kind,
		&m.OccurredAt,
		&m.Note,
		&m.FeeRate,
		&m.FeeAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// InsertEntryInTx inserts an entry row within an existing transaction without
// touching account balances. Used by flows that manage balances themselves.
func (r *PgxEntryRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.SourceAccountID,
		m.TargetAccountID,
		m.CategoryID,
		m.Amount,
		m.Kind,
		m.OccurredAt,
		m.Note,
		m.FeeRate,
		m.FeeAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}
	return nil
}

// SaveEntry persists a new entry and applies its balance deltas to the
// affected accounts. The insert, the row locks and the balance updates all
// happen in one transaction so an entry can never exist without its effect.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		accountIDs := make([]string, 0, len(deltas))
		for accID := range deltas {
			accountIDs = append(accountIDs, accID)
		}

		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for update", err)
		}

		if err := r.InsertEntryInTx(ctx, tx, entry); err != nil {
			return err
		}

		if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, entry.CreatedBy, entry.CreatedAt); err != nil {
			return apperrors.NewAppError(500, "failed to apply balance deltas", err)
		}
		return nil
	})
}

// UpdateEntry replaces an entry's fields and applies the combined
// revert-plus-apply deltas in one transaction.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		accountIDs := make([]string, 0, len(deltas))
		for accID := range deltas {
			accountIDs = append(accountIDs, accID)
		}

		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for update", err)
		}

		m := mapping.ToModelEntry(entry)
		query := `
			UPDATE entries
			SET source_account_id = $2, target_account_id = $3, category_id = $4, amount = $5,
				kind = $6, occurred_at = $7, note = $8, last_updated_at = $9, last_updated_by = $10
			WHERE entry_id = $1;
		`
		cmdTag, err := tx.Exec(ctx, query,
			m.EntryID,
			m.SourceAccountID,
			m.TargetAccountID,
			m.CategoryID,
			m.Amount,
			m.Kind,
			m.OccurredAt,
			m.Note,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
			return apperrors.NewAppError(500, "failed to apply balance deltas", err)
		}
		return nil
	})
}

// DeleteEntry removes an entry and reverts its balance effect in one
// transaction.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string, userID string, deltas map[string]decimal.Decimal, now time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		accountIDs := make([]string, 0, len(deltas))
		for accID := range deltas {
			accountIDs = append(accountIDs, accID)
		}

		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for update", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID)
		if err != nil {
			return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
			return apperrors.NewAppError(500, "failed to revert balance deltas", err)
		}
		return nil
	})
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	e := mapping.ToDomainEntry(m)
	return &e, nil
}

// ListEntriesByUser retrieves a page of the user's entries, newest first,
// using an (occurred_at, created_at) keyset token.
func (r *PgxEntryRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1`
	args := []any{userID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND (source_account_id = $%d OR target_account_id = $%d)", len(args), len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND occurred_at < $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, occurredAt, createdAt)
		query += fmt.Sprintf(" AND (occurred_at, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for user %s: %w", userID, err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for user %s: %w", userID, err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		token = &t
	}

	return entries, token, nil
}

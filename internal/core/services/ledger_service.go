package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
)

var (
	ErrAmountNotPositive  = errors.New("entry amount must be positive")
	ErrTargetRequired     = errors.New("transfer requires a target account")
	ErrTargetForbidden    = errors.New("only transfers may carry a target account")
	ErrSameAccount        = errors.New("transfer source and target must differ")
	ErrAccountLocked      = errors.New("account is locked and accepts no entries")
	ErrCategoryKind       = errors.New("category kind does not match entry kind")
	ErrCurrencyMismatch   = errors.New("transfer accounts must share a currency")
	ErrNotEntryOwner      = errors.New("entry does not belong to this user")
	ErrSystemCategoryUsed = errors.New("system categories are reserved for generated entries")
)

// ledgerService provides atomic entry recording, amendment and removal.
type ledgerService struct {
	entryRepo    portsrepo.EntryRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryWithTx
	categoryRepo portsrepo.CategoryRepositoryFacade
	clock        clock.Clock
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryWithTx, categoryRepo portsrepo.CategoryRepositoryFacade, clk clock.Clock) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entryRepo:    entryRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		clock:        clk,
	}
}

// Ensure ledgerService implements the ledger facade
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// entryEffect computes the signed balance deltas an entry applies to its
// accounts:
//
//	INCOME   +amount to the source account
//	EXPENSE  -amount from the source account
//	TRANSFER -amount from the source, +amount to the target
func entryEffect(e domain.Entry) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, 2)
	switch e.Kind {
	case domain.EntryIncome:
		deltas[e.SourceAccountID] = e.Amount
	case domain.EntryExpense:
		deltas[e.SourceAccountID] = e.Amount.Neg()
	case domain.EntryTransfer:
		deltas[e.SourceAccountID] = e.Amount.Neg()
		if e.TargetAccountID != nil {
			deltas[*e.TargetAccountID] = e.Amount
		}
	}
	return deltas
}

// mergeDeltas sums two delta maps account by account, dropping zero results.
func mergeDeltas(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(a)+len(b))
	for accID, d := range a {
		merged[accID] = d
	}
	for accID, d := range b {
		merged[accID] = merged[accID].Add(d)
	}
	for accID, d := range merged {
		if d.IsZero() {
			delete(merged, accID)
		}
	}
	return merged
}

// negateDeltas returns the exact inverse of a delta map, used to revert a
// stored entry's effect.
func negateDeltas(deltas map[string]decimal.Decimal) map[string]decimal.Decimal {
	negated := make(map[string]decimal.Decimal, len(deltas))
	for accID, d := range deltas {
		negated[accID] = d.Neg()
	}
	return negated
}

// validateEntry checks an entry's shape and its references: accounts must
// exist, belong to the user and be active; the category must exist and match
// the entry kind.
func (s *ledgerService) validateEntry(ctx context.Context, userID string, e domain.Entry) error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	switch e.Kind {
	case domain.EntryTransfer:
		if e.TargetAccountID == nil || *e.TargetAccountID == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTargetRequired)
		}
		if *e.TargetAccountID == e.SourceAccountID {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
		}
	case domain.EntryIncome, domain.EntryExpense:
		if e.TargetAccountID != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTargetForbidden)
		}
	default:
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, e.Kind)
	}

	accountIDs := []string{e.SourceAccountID}
	if e.TargetAccountID != nil {
		accountIDs = append(accountIDs, *e.TargetAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return err
	}
	for _, accID := range accountIDs {
		acc, ok := accounts[accID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accID)
		}
		if acc.UserID != userID {
			return fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accID)
		}
		if acc.Status == domain.AccountLocked {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrAccountLocked)
		}
	}
	if e.Kind == domain.EntryTransfer {
		src := accounts[e.SourceAccountID]
		dst := accounts[*e.TargetAccountID]
		if src.CurrencyCode != dst.CurrencyCode {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCurrencyMismatch)
		}
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, e.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, e.CategoryID)
		}
		return err
	}
	if category.IsSystem {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSystemCategoryUsed)
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category %s", apperrors.ErrForbidden, e.CategoryID)
	}
	// Transfers carry no flow direction, so any category kind is accepted.
	if e.Kind == domain.EntryIncome && category.Kind != domain.CategoryIncome ||
		e.Kind == domain.EntryExpense && category.Kind != domain.CategoryExpense {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCategoryKind)
	}

	return nil
}

// RecordEntry validates and persists a new entry, applying its balance
// effect in the same transaction as the insert.
func (s *ledgerService) RecordEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	entry := domain.Entry{
		EntryID:         uuid.NewString(),
		UserID:          userID,
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Kind:            req.Kind,
		OccurredAt:      req.OccurredAt.UTC(),
		Note:            req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.validateEntry(ctx, userID, entry); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, entryEffect(entry)); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	logger.Info("Entry recorded", slog.String("entry_id", entry.EntryID), slog.String("kind", string(entry.Kind)))
	return &entry, nil
}

// AmendEntry replaces an entry's fields. The stored effect is reverted and
// the new effect applied as one combined delta set, inside one transaction,
// so balances can never drift between the two steps.
func (s *ledgerService) AmendEntry(ctx context.Context, userID string, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if stored.UserID != userID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotEntryOwner)
	}
	if stored.FeeRate != nil || stored.FeeAmount != nil {
		return nil, fmt.Errorf("%w: generated entries cannot be amended", apperrors.ErrInvalidState)
	}

	now := s.clock.Now()
	amended := *stored
	if req.Kind != nil {
		amended.Kind = *req.Kind
	}
	if req.SourceAccountID != nil {
		amended.SourceAccountID = *req.SourceAccountID
	}
	if req.TargetAccountID != nil {
		amended.TargetAccountID = req.TargetAccountID
	}
	if amended.Kind != domain.EntryTransfer {
		amended.TargetAccountID = nil
	}
	if req.CategoryID != nil {
		amended.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		amended.Amount = *req.Amount
	}
	if req.OccurredAt != nil {
		amended.OccurredAt = req.OccurredAt.UTC()
	}
	if req.Note != nil {
		amended.Note = *req.Note
	}
	amended.LastUpdatedAt = now
	amended.LastUpdatedBy = userID

	if err := s.validateEntry(ctx, userID, amended); err != nil {
		return nil, err
	}

	// Revert what the stored row actually did, not what it would do with
	// today's fields.
	deltas := mergeDeltas(negateDeltas(entryEffect(*stored)), entryEffect(amended))

	if err := s.entryRepo.UpdateEntry(ctx, amended, deltas); err != nil {
		logger.Error("Failed to amend entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Entry amended", slog.String("entry_id", entryID))
	return &amended, nil
}

// DeleteEntry removes an entry and reverts its balance effect atomically.
func (s *ledgerService) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotEntryOwner)
	}

	deltas := negateDeltas(entryEffect(*stored))
	if err := s.entryRepo.DeleteEntry(ctx, entryID, userID, deltas, s.clock.Now()); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	return nil
}

// GetEntryByID retrieves an entry, verifying ownership.
func (s *ledgerService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotEntryOwner)
	}
	return entry, nil
}

// ListEntries retrieves a page of the user's entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, userID string, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	entries, token, err := s.entryRepo.ListEntriesByUser(ctx, userID, filter, limit, nextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return entries, token, nil
}

// systemEntry builds a generated entry rooted at one of the seeded system
// categories. Shared by the debt and settlement flows.
func systemEntry(userID string, kind domain.EntryKind, accountID string, categoryID string, amount decimal.Decimal, note string, now time.Time) domain.Entry {
	return domain.Entry{
		EntryID:         uuid.NewString(),
		UserID:          userID,
		SourceAccountID: accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Kind:            kind,
		OccurredAt:      now,
		Note:            note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
)

// accountService provides account management and the credit billing cycle.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	entryRepo   portsrepo.EntryRepositoryFacade
	clock       clock.Clock
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, entryRepo portsrepo.EntryRepositoryFacade, clk clock.Clock) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		clock:       clk,
	}
}

// Ensure accountService implements the account facade
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. The balance starts at the declared
// initial balance and from then on only moves through ledger entries.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Kind:           req.Kind,
		Balance:        req.InitialBalance,
		InitialBalance: req.InitialBalance,
		CurrencyCode:   req.CurrencyCode,
		Status:         domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.Kind == domain.AccountCredit {
		if req.CreditLimit == nil || !req.CreditLimit.IsPositive() {
			return nil, fmt.Errorf("%w: credit accounts need a positive credit limit", apperrors.ErrValidation)
		}
		if req.StatementDay == nil || req.PaymentDueDay == nil {
			return nil, fmt.Errorf("%w: credit accounts need statement and payment due days", apperrors.ErrValidation)
		}
		account.CreditLimit = *req.CreditLimit
		account.StatementDay = *req.StatementDay
		account.PaymentDueDay = *req.PaymentDueDay
		if req.InterestRate != nil {
			account.InterestRate = *req.InterestRate
		}
		if req.AnnualFee != nil {
			account.AnnualFee = *req.AnnualFee
		}
		if req.SettlementFeeRate != nil {
			account.SettlementFeeRate = *req.SettlementFeeRate
		}
		if req.LinkedAccountID != nil {
			linked, err := s.accountRepo.FindAccountByID(ctx, *req.LinkedAccountID)
			if err != nil {
				return nil, fmt.Errorf("%w: linked account %s", apperrors.ErrNotFound, *req.LinkedAccountID)
			}
			if linked.UserID != userID || !linked.IsCredit() {
				return nil, fmt.Errorf("%w: linked account must be the user's own credit card", apperrors.ErrValidation)
			}
			account.LinkedAccountID = req.LinkedAccountID
		}
	} else if req.CreditLimit != nil || req.StatementDay != nil || req.PaymentDueDay != nil {
		return nil, fmt.Errorf("%w: billing fields are only valid on credit accounts", apperrors.ErrValidation)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// findOwnedAccount loads an account and verifies the caller owns it.
func (s *accountService) findOwnedAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountID)
	}
	return account, nil
}

// GetAccountByID retrieves an account, verifying ownership.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

// ListAccounts retrieves all accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates an account's mutable details.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if !account.IsCredit() && (req.CreditLimit != nil || req.StatementDay != nil || req.PaymentDueDay != nil || req.SettlementFeeRate != nil) {
		return nil, fmt.Errorf("%w: billing fields are only valid on credit accounts", apperrors.ErrValidation)
	}
	if req.CreditLimit != nil {
		account.CreditLimit = *req.CreditLimit
	}
	if req.StatementDay != nil {
		account.StatementDay = *req.StatementDay
	}
	if req.PaymentDueDay != nil {
		account.PaymentDueDay = *req.PaymentDueDay
	}
	if req.InterestRate != nil {
		account.InterestRate = *req.InterestRate
	}
	if req.AnnualFee != nil {
		account.AnnualFee = *req.AnnualFee
	}
	if req.SettlementFeeRate != nil {
		account.SettlementFeeRate = *req.SettlementFeeRate
	}
	account.LastUpdatedAt = s.clock.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account. Accounts still referenced by entries are
// refused so past balances stay reconstructible.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountEntriesForAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account has %d entries; delete or reassign them first", apperrors.ErrInvalidState, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// SettleStatement settles a credit card's outstanding balance.
//
// PAY_FULL posts a transfer of the whole outstanding amount from the funding
// account onto the card; the card's balance-delta mirror clears the
// outstanding balance in the same update. REFINANCE leaves the outstanding
// amount rolled over and charges the card's settlement fee as a generated
// expense on the card itself.
func (s *accountService) SettleStatement(ctx context.Context, userID string, accountID string, req dto.SettleStatementRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	card, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if !card.IsCredit() {
		return nil, fmt.Errorf("%w: account %s is not a credit card", apperrors.ErrValidation, accountID)
	}
	if !card.OutstandingBalance.IsPositive() {
		return nil, fmt.Errorf("%w: card has no outstanding balance to settle", apperrors.ErrInvalidState)
	}

	var entry domain.Entry
	switch req.Mode {
	case domain.SettleFull:
		from, err := s.findOwnedAccount(ctx, userID, req.FromAccountID)
		if err != nil {
			return nil, err
		}
		if from.AccountID == card.AccountID {
			return nil, fmt.Errorf("%w: a card cannot settle itself", apperrors.ErrValidation)
		}
		if from.Status == domain.AccountLocked {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrAccountLocked)
		}
		if from.CurrencyCode != card.CurrencyCode {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCurrencyMismatch)
		}

		entry = systemEntry(userID, domain.EntryTransfer, from.AccountID, domain.SystemCategoryCardSettlement,
			card.OutstandingBalance, fmt.Sprintf("Statement settlement for %s", card.Name), now)
		entry.TargetAccountID = &card.AccountID

	case domain.SettleRefinance:
		// SettlementFeeRate is a fraction of the rolled-over amount.
		fee := card.OutstandingBalance.Mul(card.SettlementFeeRate)
		if !fee.IsPositive() {
			return nil, fmt.Errorf("%w: card has no settlement fee rate configured", apperrors.ErrInvalidState)
		}

		rate := card.SettlementFeeRate
		entry = systemEntry(userID, domain.EntryExpense, card.AccountID, domain.SystemCategorySettlementFee,
			fee, fmt.Sprintf("Refinance fee for %s", card.Name), now)
		entry.FeeRate = &rate
		entry.FeeAmount = &fee

	default:
		return nil, fmt.Errorf("%w: unknown settlement mode %q", apperrors.ErrValidation, req.Mode)
	}

	err = s.accountRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		accountIDs := make([]string, 0, 2)
		for accID := range entryEffect(entry) {
			accountIDs = append(accountIDs, accID)
		}
		if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return err
		}
		if err := s.entryRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
			return err
		}
		return s.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, entryEffect(entry), userID, now)
	})
	if err != nil {
		logger.Error("Failed to settle statement", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("mode", string(req.Mode)))
		return nil, err
	}

	logger.Info("Statement settled", slog.String("account_id", accountID), slog.String("mode", string(req.Mode)))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

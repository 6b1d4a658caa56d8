package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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
	ErrInstallmentTermsIncomplete = errors.New("installment debts need start date, total months, monthly payment and payment day")
	ErrNotInstallmentDebt         = errors.New("debt has no installment schedule")
	ErrDebtCompleted              = errors.New("debt is already completed")
	ErrNoPendingInstallment       = errors.New("debt has no pending installment")
	ErrNotDebtOwner               = errors.New("debt does not belong to this user")
)

// debtService provides debt tracking and installment settlement.
type debtService struct {
	debtRepo    portsrepo.DebtRepositoryWithTx
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryWithTx
	clock       clock.Clock
}

// NewDebtService creates a new debt service.
func NewDebtService(debtRepo portsrepo.DebtRepositoryWithTx, entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryWithTx, clk clock.Clock) portssvc.DebtSvcFacade {
	return &debtService{
		debtRepo:    debtRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		clock:       clk,
	}
}

// Ensure debtService implements the debt facade
var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt persists a new debt. Installment debts get their schedule
// materialized immediately: already-elapsed periods come out PAID, the next
// period PENDING, and the remaining amount reflects the elapsed history.
func (s *debtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: debt total must be positive", apperrors.ErrValidation)
	}

	debt := domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          userID,
		PartnerName:     req.PartnerName,
		Kind:            req.Kind,
		TotalAmount:     req.TotalAmount,
		RemainingAmount: req.TotalAmount,
		Status:          domain.DebtOngoing,
		IsInstallment:   req.IsInstallment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var installments []domain.Installment
	if req.IsInstallment {
		if req.StartDate == nil || req.TotalMonths == nil || req.MonthlyPayment == nil || req.PaymentDay == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInstallmentTermsIncomplete)
		}
		if !req.MonthlyPayment.IsPositive() {
			return nil, fmt.Errorf("%w: monthly payment must be positive", apperrors.ErrValidation)
		}
		start := req.StartDate.UTC()
		debt.StartDate = &start
		debt.TotalMonths = *req.TotalMonths
		debt.MonthlyPayment = *req.MonthlyPayment
		debt.PaymentDay = *req.PaymentDay

		installments = GenerateSchedule(&debt, now, userID, now)
	} else if req.PaymentDay != nil {
		// Non-installment debts may still carry a recurring payment day so
		// the due-date projection can surface them.
		debt.PaymentDay = *req.PaymentDay
	}

	if err := s.debtRepo.SaveDebtWithInstallments(ctx, debt, installments); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()), slog.String("debt_id", debt.DebtID))
		return nil, err
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID), slog.String("kind", string(debt.Kind)), slog.Int("installments", len(installments)))
	return &debt, nil
}

// selectInstallment picks the installment a payment settles. Without an
// explicit id this is the debt's single pending installment; with one, the
// named installment must exist on this debt and still be payable.
func selectInstallment(installments []domain.Installment, installmentID *string) (*domain.Installment, error) {
	if installmentID != nil {
		for i := range installments {
			if installments[i].InstallmentID != *installmentID {
				continue
			}
			if installments[i].Status == domain.InstallmentPaid {
				return nil, fmt.Errorf("%w: installment %s is already paid", apperrors.ErrInvalidState, *installmentID)
			}
			return &installments[i], nil
		}
		return nil, fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, *installmentID)
	}
	for i := range installments {
		if installments[i].Status == domain.InstallmentPending {
			return &installments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrNoPendingInstallment)
}

// findOwnedDebt loads a debt and verifies the caller owns it.
func (s *debtService) findOwnedDebt(ctx context.Context, userID string, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.UserID != userID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotDebtOwner)
	}
	return debt, nil
}

// GetDebtByID retrieves a debt and its installments. Pending installments
// whose due date has passed are reported OVERDUE; the classification is
// never written back.
func (s *debtService) GetDebtByID(ctx context.Context, userID string, debtID string) (*domain.Debt, []domain.Installment, error) {
	debt, err := s.findOwnedDebt(ctx, userID, debtID)
	if err != nil {
		return nil, nil, err
	}

	installments, err := s.debtRepo.FindInstallmentsByDebtID(ctx, debtID)
	if err != nil {
		return nil, nil, err
	}

	today := truncateToDay(s.clock.Now())
	for i := range installments {
		if installments[i].Status == domain.InstallmentPending && installments[i].DueDate.Before(today) {
			installments[i].Status = domain.InstallmentOverdue
		}
	}

	return debt, installments, nil
}

// ListDebts retrieves the user's debts, optionally filtered by status.
func (s *debtService) ListDebts(ctx context.Context, userID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	debts, err := s.debtRepo.ListDebtsByUser(ctx, userID, status)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list debts", slog.String("error", err.Error()))
		return nil, err
	}
	return debts, nil
}

// UpdateDebt updates a debt's non-structural details. Payment terms of an
// installment debt only take effect for periods generated after the current
// pending one; the materialized schedule itself is never rewritten. The
// payment day alone may also be set on non-installment debts to move their
// recurring due date.
func (s *debtService) UpdateDebt(ctx context.Context, userID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debt, err := s.findOwnedDebt(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}

	if req.MonthlyPayment != nil && !debt.IsInstallment {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotInstallmentDebt)
	}

	if req.PartnerName != nil {
		debt.PartnerName = *req.PartnerName
	}
	if req.MonthlyPayment != nil {
		if !req.MonthlyPayment.IsPositive() {
			return nil, fmt.Errorf("%w: monthly payment must be positive", apperrors.ErrValidation)
		}
		debt.MonthlyPayment = *req.MonthlyPayment
	}
	if req.PaymentDay != nil {
		debt.PaymentDay = *req.PaymentDay
	}
	debt.LastUpdatedAt = s.clock.Now()
	debt.LastUpdatedBy = userID

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		logger.Error("Failed to update debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, err
	}

	return debt, nil
}

// DeleteDebt removes a debt and its installments. Entries already posted by
// past payments stay in the ledger untouched.
func (s *debtService) DeleteDebt(ctx context.Context, userID string, debtID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedDebt(ctx, userID, debtID); err != nil {
		return err
	}

	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		logger.Error("Failed to delete debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return err
	}

	logger.Info("Debt deleted", slog.String("debt_id", debtID))
	return nil
}

// PayInstallment settles an installment of a debt from an account, the
// pending one by default or the one named in the request.
// Everything the payment touches moves in one transaction: the generated
// ledger entry, the account balance, the installment state, the debt's
// progress and, while the debt stays ongoing, the next pending installment.
func (s *debtService) PayInstallment(ctx context.Context, userID string, debtID string, req dto.PayInstallmentRequest) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	debt, err := s.findOwnedDebt(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	if debt.Status == domain.DebtCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrDebtCompleted)
	}
	if !debt.IsInstallment {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrNotInstallmentDebt)
	}

	installments, err := s.debtRepo.FindInstallmentsByDebtID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	pending, err := selectInstallment(installments, req.InstallmentID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, req.AccountID)
	}
	if account.Status == domain.AccountLocked {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrAccountLocked)
	}

	amount := pending.Amount
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		amount = *req.Amount
	}

	// Paying back a loan is an expense; collecting a lend is an income.
	entryKind := domain.EntryExpense
	if debt.Kind == domain.DebtLend {
		entryKind = domain.EntryIncome
	}
	note := fmt.Sprintf("Installment %d/%d for %s", debt.PaidMonths+1, debt.TotalMonths, debt.PartnerName)
	entry := systemEntry(userID, entryKind, req.AccountID, domain.SystemCategoryDebtPayment, amount, note, now)

	updated := *debt
	updated.PaidMonths++
	updated.RemainingAmount = updated.RemainingAmount.Sub(amount)
	if updated.RemainingAmount.IsNegative() {
		updated.RemainingAmount = decimal.Zero
	}
	if updated.PaidMonths >= updated.TotalMonths || updated.RemainingAmount.IsZero() {
		updated.Status = domain.DebtCompleted
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	err = s.debtRepo.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.AccountID}); err != nil {
			return err
		}

		if err := s.entryRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
			return err
		}

		if err := s.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, entryEffect(entry), userID, now); err != nil {
			return err
		}

		if err := s.debtRepo.MarkInstallmentPaidInTx(ctx, tx, pending.InstallmentID, req.AccountID, now, userID); err != nil {
			return err
		}

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, updated); err != nil {
			return err
		}

		if updated.Status == domain.DebtOngoing {
			next := domain.Installment{
				InstallmentID: uuid.NewString(),
				DebtID:        debtID,
				DueDate:       monthsAfter(*updated.StartDate, updated.PaidMonths, updated.PaymentDay),
				Amount:        updated.MonthlyPayment,
				Status:        domain.InstallmentPending,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}
			if err := s.debtRepo.InsertInstallmentInTx(ctx, tx, next); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to pay installment", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, err
	}

	logger.Info("Installment paid",
		slog.String("debt_id", debtID),
		slog.String("installment_id", pending.InstallmentID),
		slog.Int("paid_months", updated.PaidMonths),
		slog.String("status", string(updated.Status)),
	)
	return &updated, nil
}

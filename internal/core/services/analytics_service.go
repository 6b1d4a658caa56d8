package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
)

// analyticsService provides aggregation and due-date projection over the ledger.
type analyticsService struct {
	analyticsRepo portsrepo.AnalyticsRepository
	accountRepo   portsrepo.AccountRepositoryWithTx
	debtRepo      portsrepo.DebtRepositoryWithTx
	userRepo      portsrepo.UserRepositoryFacade
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analyticsRepo portsrepo.AnalyticsRepository, accountRepo portsrepo.AccountRepositoryWithTx, debtRepo portsrepo.DebtRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade) portssvc.AnalyticsSvc {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		accountRepo:   accountRepo,
		debtRepo:      debtRepo,
		userRepo:      userRepo,
	}
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) GetMonthlyOverview(ctx context.Context, userID string, asOf time.Time) (*domain.MonthlyOverview, error) {
	return s.analyticsRepo.GetMonthlyOverview(ctx, userID, asOf)
}

func (s *analyticsService) GetDailyFlow(ctx context.Context, userID string, asOf time.Time) ([]domain.DailyFlow, error) {
	return s.analyticsRepo.GetDailyFlow(ctx, userID, asOf)
}

func (s *analyticsService) GetTrend(ctx context.Context, userID string, asOf time.Time, months int) ([]domain.TrendPoint, error) {
	return s.analyticsRepo.GetTrend(ctx, userID, asOf, months)
}

func (s *analyticsService) GetCategoryBreakdown(ctx context.Context, userID string, asOf time.Time) ([]domain.CategoryBreakdownRow, error) {
	return s.analyticsRepo.GetCategoryBreakdown(ctx, userID, asOf)
}

// GetSpendingWarning compares month-to-date spending with the user's limit.
// A zero limit means no warning is ever raised.
func (s *analyticsService) GetSpendingWarning(ctx context.Context, userID string, asOf time.Time) (*domain.SpendingWarning, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	spent, err := s.analyticsRepo.GetMonthExpenseTotal(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	warning := domain.SpendingWarning{
		Limit:     user.MonthlyLimit,
		Spent:     spent,
		UsedRatio: decimal.Zero,
	}
	if user.MonthlyLimit.IsPositive() {
		warning.Exceeded = spent.GreaterThan(user.MonthlyLimit)
		warning.UsedRatio = spent.Div(user.MonthlyLimit)
	}
	return &warning, nil
}

func (s *analyticsService) GetCardFees(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error) {
	return s.analyticsRepo.GetMonthCardFeesTotal(ctx, userID, asOf)
}

func (s *analyticsService) GetDebtStatus(ctx context.Context, userID string) ([]domain.DebtStatusSummary, error) {
	return s.analyticsRepo.GetDebtStatusSummary(ctx, userID)
}

// GetUpcomingPayments merges credit card payment due dates, recurring
// non-installment debts and pending debt installments into a single
// projection, nearest due first. Cards without an outstanding balance owe
// nothing and are skipped; anything past due or due within the ten-day window
// is surfaced, the rest stays silent.
func (s *analyticsService) GetUpcomingPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.UpcomingPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	upcoming := []domain.UpcomingPayment{}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if !acc.IsCredit() || !acc.OutstandingBalance.IsPositive() {
			continue
		}
		dueDate := NextOccurrence(asOf, acc.PaymentDueDay)
		days := DaysRemaining(asOf, dueDate)
		level := AlertLevelFor(days)
		if level == domain.AlertNone {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingPayment{
			Kind:          domain.UpcomingCreditCard,
			Name:          acc.Name,
			Amount:        acc.OutstandingBalance,
			DueDate:       dueDate,
			DaysRemaining: days,
			AlertLevel:    level,
			ReferenceID:   acc.AccountID,
		})
	}

	debts, err := s.debtRepo.ListDebtsByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	nameByDebt := make(map[string]string, len(debts))
	for _, d := range debts {
		nameByDebt[d.DebtID] = d.PartnerName

		// Debts without a materialized schedule project off their recurring
		// payment day, like a card does.
		if d.IsInstallment || d.Status != domain.DebtOngoing || d.PaymentDay == 0 {
			continue
		}
		dueDate := NextOccurrence(asOf, d.PaymentDay)
		days := DaysRemaining(asOf, dueDate)
		level := AlertLevelFor(days)
		if level == domain.AlertNone {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingPayment{
			Kind:          domain.UpcomingDebt,
			Name:          d.PartnerName,
			Amount:        d.RemainingAmount,
			DueDate:       dueDate,
			DaysRemaining: days,
			AlertLevel:    level,
			ReferenceID:   d.DebtID,
		})
	}

	installments, err := s.debtRepo.FindPendingInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, in := range installments {
		// A materialized installment keeps its own due date; once that
		// date passes it goes straight to RED rather than falling out
		// of the window.
		days := DaysRemaining(asOf, in.DueDate)
		level := AlertLevelFor(days)
		if level == domain.AlertNone {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingPayment{
			Kind:          domain.UpcomingDebt,
			Name:          nameByDebt[in.DebtID],
			Amount:        in.Amount,
			DueDate:       in.DueDate,
			DaysRemaining: days,
			AlertLevel:    level,
			ReferenceID:   in.DebtID,
		})
	}

	// Stable so cards keep preceding debts on equal days remaining.
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysRemaining < upcoming[j].DaysRemaining
	})

	logger.Debug("Upcoming payments projected", slog.Int("count", len(upcoming)))
	return upcoming, nil
}

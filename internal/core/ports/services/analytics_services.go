package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// AnalyticsSvc defines aggregation and projection queries over the ledger
type AnalyticsSvc interface {
	// GetMonthlyOverview aggregates income, expense and net for the month
	// containing asOf.
	GetMonthlyOverview(ctx context.Context, userID string, asOf time.Time) (*domain.MonthlyOverview, error)

	// GetDailyFlow aggregates per-day flows for the month containing asOf.
	GetDailyFlow(ctx context.Context, userID string, asOf time.Time) ([]domain.DailyFlow, error)

	// GetTrend aggregates the trailing months window of income vs expense.
	GetTrend(ctx context.Context, userID string, asOf time.Time, months int) ([]domain.TrendPoint, error)

	// GetCategoryBreakdown aggregates expense totals per category for the
	// month containing asOf.
	GetCategoryBreakdown(ctx context.Context, userID string, asOf time.Time) ([]domain.CategoryBreakdownRow, error)

	// GetSpendingWarning compares month-to-date spending with the user's
	// monthly limit.
	GetSpendingWarning(ctx context.Context, userID string, asOf time.Time) (*domain.SpendingWarning, error)

	// GetCardFees returns the total of generated card fees for the month
	// containing asOf.
	GetCardFees(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error)

	// GetDebtStatus aggregates ongoing debts per kind.
	GetDebtStatus(ctx context.Context, userID string) ([]domain.DebtStatusSummary, error)

	// GetUpcomingPayments merges credit card due dates and pending debt
	// installments into one list sorted by days remaining, nearest first.
	// Only payments due within the alert window are included.
	GetUpcomingPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.UpcomingPayment, error)
}

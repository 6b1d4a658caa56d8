package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// AnalyticsRepository defines operations for retrieving aggregated ledger data
type AnalyticsRepository interface {
	// GetMonthlyOverview aggregates income and expense for the month
	// containing asOf.
	GetMonthlyOverview(ctx context.Context, userID string, asOf time.Time) (*domain.MonthlyOverview, error)

	// GetDailyFlow aggregates per-day income and expense for the month
	// containing asOf. Days without entries are omitted.
	GetDailyFlow(ctx context.Context, userID string, asOf time.Time) ([]domain.DailyFlow, error)

	// GetTrend aggregates per-month income and expense for the trailing
	// months window ending at asOf.
	GetTrend(ctx context.Context, userID string, asOf time.Time, months int) ([]domain.TrendPoint, error)

	// GetCategoryBreakdown aggregates expense totals per category for the
	// month containing asOf, largest first.
	GetCategoryBreakdown(ctx context.Context, userID string, asOf time.Time) ([]domain.CategoryBreakdownRow, error)

	// GetMonthExpenseTotal returns the total expense for the month containing
	// asOf, used by the spending warning.
	GetMonthExpenseTotal(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error)

	// GetMonthCardFeesTotal returns the total of generated fee amounts for
	// the month containing asOf.
	GetMonthCardFeesTotal(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error)

	// GetDebtStatusSummary aggregates ongoing debts per kind.
	GetDebtStatusSummary(ctx context.Context, userID string) ([]domain.DebtStatusSummary, error)
}

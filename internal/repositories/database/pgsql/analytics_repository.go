package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
)

type PgxAnalyticsRepository struct {
	BaseRepository
}

// NewPgxAnalyticsRepository creates a new repository for aggregated ledger data.
func NewPgxAnalyticsRepository(pool *pgxpool.Pool) *PgxAnalyticsRepository {
	return &PgxAnalyticsRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAnalyticsRepository implements the analytics port
var _ portsrepo.AnalyticsRepository = (*PgxAnalyticsRepository)(nil)

// monthBounds returns the half-open [start, end) interval of the month
// containing asOf, in UTC.
func monthBounds(asOf time.Time) (time.Time, time.Time) {
	t := asOf.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// GetMonthlyOverview aggregates income and expense for the month containing asOf.
// Transfers move money between the user's own accounts and are excluded.
func (r *PgxAnalyticsRepository) GetMonthlyOverview(ctx context.Context, userID string, asOf time.Time) (*domain.MonthlyOverview, error) {
	start, end := monthBounds(asOf)

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0) AS expense
		FROM entries
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3;
	`

	var overview domain.MonthlyOverview
	err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&overview.Income, &overview.Expense)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly overview for user %s: %w", userID, err)
	}
	overview.Net = overview.Income.Sub(overview.Expense)
	return &overview, nil
}

// GetDailyFlow aggregates per-day income and expense for the month containing
// asOf. Days without entries produce no row.
func (r *PgxAnalyticsRepository) GetDailyFlow(ctx context.Context, userID string, asOf time.Time) ([]domain.DailyFlow, error) {
	start, end := monthBounds(asOf)

	query := `
		SELECT
			date_trunc('day', occurred_at) AS day,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0) AS expense
		FROM entries
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3 AND kind <> 'TRANSFER'
		GROUP BY day
		ORDER BY day;
	`

	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily flow for user %s: %w", userID, err)
	}
	defer rows.Close()

	flows := []domain.DailyFlow{}
	for rows.Next() {
		var f domain.DailyFlow
		if err := rows.Scan(&f.Date, &f.Income, &f.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan daily flow row for user %s: %w", userID, err)
		}
		f.Day = f.Date.Day()
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily flow rows for user %s: %w", userID, err)
	}
	return flows, nil
}

// GetTrend aggregates per-month income and expense for the trailing months
// window ending at the month containing asOf. Months without entries are
// filled with zeroes so chart series stay aligned.
func (r *PgxAnalyticsRepository) GetTrend(ctx context.Context, userID string, asOf time.Time, months int) ([]domain.TrendPoint, error) {
	if months <= 0 {
		months = 6
	}
	endStart, end := monthBounds(asOf)
	start := endStart.AddDate(0, -(months - 1), 0)

	query := `
		SELECT
			date_trunc('month', occurred_at) AS month,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0) AS expense
		FROM entries
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3 AND kind <> 'TRANSFER'
		GROUP BY month
		ORDER BY month;
	`

	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trend for user %s: %w", userID, err)
	}
	defer rows.Close()

	byMonth := make(map[time.Time]domain.TrendPoint)
	for rows.Next() {
		var month time.Time
		var income, expense decimal.Decimal
		if err := rows.Scan(&month, &income, &expense); err != nil {
			return nil, fmt.Errorf("failed to scan trend row for user %s: %w", userID, err)
		}
		month = month.UTC()
		byMonth[month] = domain.TrendPoint{Year: month.Year(), Month: month.Month(), Income: income, Expense: expense}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend rows for user %s: %w", userID, err)
	}

	points := make([]domain.TrendPoint, 0, months)
	for cursor := start; cursor.Before(end); cursor = cursor.AddDate(0, 1, 0) {
		if p, ok := byMonth[cursor]; ok {
			points = append(points, p)
			continue
		}
		points = append(points, domain.TrendPoint{
			Year:    cursor.Year(),
			Month:   cursor.Month(),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}
	return points, nil
}

// GetCategoryBreakdown aggregates expense totals per category for the month
// containing asOf, largest share first.
func (r *PgxAnalyticsRepository) GetCategoryBreakdown(ctx context.Context, userID string, asOf time.Time) ([]domain.CategoryBreakdownRow, error) {
	start, end := monthBounds(asOf)

	query := `
		SELECT e.category_id, c.name, COALESCE(SUM(e.amount), 0) AS total
		FROM entries e
		JOIN categories c ON c.category_id = e.category_id
		WHERE e.user_id = $1 AND e.kind = 'EXPENSE' AND e.occurred_at >= $2 AND e.occurred_at < $3
		GROUP BY e.category_id, c.name
		ORDER BY total DESC;
	`

	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category breakdown for user %s: %w", userID, err)
	}
	defer rows.Close()

	breakdown := []domain.CategoryBreakdownRow{}
	for rows.Next() {
		var row domain.CategoryBreakdownRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown row for user %s: %w", userID, err)
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category breakdown rows for user %s: %w", userID, err)
	}
	return breakdown, nil
}

// GetMonthExpenseTotal returns the total expense for the month containing asOf.
func (r *PgxAnalyticsRepository) GetMonthExpenseTotal(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error) {
	start, end := monthBounds(asOf)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM entries
		WHERE user_id = $1 AND kind = 'EXPENSE' AND occurred_at >= $2 AND occurred_at < $3;
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate month expense total for user %s: %w", userID, err)
	}
	return total, nil
}

// GetMonthCardFeesTotal returns the total of generated fee amounts for the
// month containing asOf. Only system-generated entries carry a fee amount.
func (r *PgxAnalyticsRepository) GetMonthCardFeesTotal(ctx context.Context, userID string, asOf time.Time) (decimal.Decimal, error) {
	start, end := monthBounds(asOf)

	query := `
		SELECT COALESCE(SUM(fee_amount), 0)
		FROM entries
		WHERE user_id = $1 AND fee_amount IS NOT NULL AND occurred_at >= $2 AND occurred_at < $3;
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate card fees total for user %s: %w", userID, err)
	}
	return total, nil
}

// GetDebtStatusSummary aggregates ongoing debts per kind.
func (r *PgxAnalyticsRepository) GetDebtStatusSummary(ctx context.Context, userID string) ([]domain.DebtStatusSummary, error) {
	query := `
		SELECT kind, COALESCE(SUM(remaining_amount), 0) AS total_remaining, COUNT(*) AS count
		FROM debts
		WHERE user_id = $1 AND status = 'ONGOING'
		GROUP BY kind
		ORDER BY kind;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate debt status for user %s: %w", userID, err)
	}
	defer rows.Close()

	summaries := []domain.DebtStatusSummary{}
	for rows.Next() {
		var s domain.DebtStatusSummary
		if err := rows.Scan(&s.Kind, &s.TotalRemaining, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan debt status row for user %s: %w", userID, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt status rows for user %s: %w", userID, err)
	}
	return summaries, nil
}

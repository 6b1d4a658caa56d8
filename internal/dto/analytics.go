package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// AnalyticsMonthParams selects the month for month-scoped analytics queries.
// Defaults to the current month when omitted.
type AnalyticsMonthParams struct {
	Year  *int `form:"year" binding:"omitempty,min=2000,max=2200"`
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
}

// TrendParams selects the trailing window for the income-vs-expense trend.
type TrendParams struct {
	Months int `form:"months,default=6" binding:"omitempty,min=1,max=24"`
}

// MonthlyOverviewResponse is the aggregated flow of one month.
type MonthlyOverviewResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// DailyFlowResponse is one day of aggregated flows.
type DailyFlowResponse struct {
	Day     int             `json:"day"`
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TrendPointResponse is one month of the trend series.
type TrendPointResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryBreakdownResponse is one category's expense share.
type CategoryBreakdownResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// DebtStatusResponse aggregates ongoing debts of one kind.
type DebtStatusResponse struct {
	Kind           domain.DebtKind `json:"kind"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	Count          int             `json:"count"`
}

// SpendingWarningResponse compares month-to-date spending with the limit.
type SpendingWarningResponse struct {
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Exceeded  bool            `json:"exceeded"`
	UsedRatio decimal.Decimal `json:"usedRatio"`
}

// UpcomingPaymentResponse is one row of the merged due-date projection.
type UpcomingPaymentResponse struct {
	Kind          domain.UpcomingKind `json:"kind"`
	Name          string              `json:"name"`
	Amount        decimal.Decimal     `json:"amount"`
	DueDate       time.Time           `json:"dueDate"`
	DaysRemaining int                 `json:"daysRemaining"`
	AlertLevel    domain.AlertLevel   `json:"alertLevel"`
	ReferenceID   string              `json:"referenceID"`
}

// ToMonthlyOverviewResponse converts a domain.MonthlyOverview
func ToMonthlyOverviewResponse(o *domain.MonthlyOverview) MonthlyOverviewResponse {
	return MonthlyOverviewResponse{Income: o.Income, Expense: o.Expense, Net: o.Net}
}

// ToDailyFlowResponses converts a slice of domain.DailyFlow
func ToDailyFlowResponses(flows []domain.DailyFlow) []DailyFlowResponse {
	res := make([]DailyFlowResponse, len(flows))
	for i, f := range flows {
		res[i] = DailyFlowResponse{Day: f.Day, Date: f.Date, Income: f.Income, Expense: f.Expense}
	}
	return res
}

// ToTrendPointResponses converts a slice of domain.TrendPoint
func ToTrendPointResponses(points []domain.TrendPoint) []TrendPointResponse {
	res := make([]TrendPointResponse, len(points))
	for i, p := range points {
		res[i] = TrendPointResponse{Year: p.Year, Month: int(p.Month), Income: p.Income, Expense: p.Expense}
	}
	return res
}

// ToCategoryBreakdownResponses converts a slice of domain.CategoryBreakdownRow
func ToCategoryBreakdownResponses(rows []domain.CategoryBreakdownRow) []CategoryBreakdownResponse {
	res := make([]CategoryBreakdownResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryBreakdownResponse{CategoryID: r.CategoryID, CategoryName: r.CategoryName, Total: r.Total}
	}
	return res
}

// ToDebtStatusResponses converts a slice of domain.DebtStatusSummary
func ToDebtStatusResponses(rows []domain.DebtStatusSummary) []DebtStatusResponse {
	res := make([]DebtStatusResponse, len(rows))
	for i, r := range rows {
		res[i] = DebtStatusResponse{Kind: r.Kind, TotalRemaining: r.TotalRemaining, Count: r.Count}
	}
	return res
}

// ToSpendingWarningResponse converts a domain.SpendingWarning
func ToSpendingWarningResponse(w *domain.SpendingWarning) SpendingWarningResponse {
	return SpendingWarningResponse{Limit: w.Limit, Spent: w.Spent, Exceeded: w.Exceeded, UsedRatio: w.UsedRatio}
}

// ToUpcomingPaymentResponses converts a slice of domain.UpcomingPayment
func ToUpcomingPaymentResponses(ups []domain.UpcomingPayment) []UpcomingPaymentResponse {
	res := make([]UpcomingPaymentResponse, len(ups))
	for i, u := range ups {
		res[i] = UpcomingPaymentResponse{
			Kind:          u.Kind,
			Name:          u.Name,
			Amount:        u.Amount,
			DueDate:       u.DueDate,
			DaysRemaining: u.DaysRemaining,
			AlertLevel:    u.AlertLevel,
			ReferenceID:   u.ReferenceID,
		}
	}
	return res
}

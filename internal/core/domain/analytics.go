package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertLevel is the categorical proximity-to-due-date band.
type AlertLevel string

const (
	AlertRed    AlertLevel = "RED"    // due within 3 days
	AlertOrange AlertLevel = "ORANGE" // due within 7 days
	AlertYellow AlertLevel = "YELLOW" // due within 10 days
	AlertNone   AlertLevel = ""       // outside the surfaced window
)

// UpcomingKind tags the source of an upcoming-payment alert.
type UpcomingKind string

const (
	UpcomingCreditCard UpcomingKind = "CREDIT_CARD"
	UpcomingDebt       UpcomingKind = "DEBT"
)

// UpcomingPayment is one row of the merged due-date projection.
type UpcomingPayment struct {
	Kind          UpcomingKind    `json:"kind"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	DaysRemaining int             `json:"daysRemaining"`
	AlertLevel    AlertLevel      `json:"alertLevel"`
	ReferenceID   string          `json:"referenceID"` // account or debt ID
}

// MonthlyOverview aggregates the current month's flows.
type MonthlyOverview struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// DailyFlow is one day of aggregated income/expense, for charts.
// Only days with at least one entry are reported.
type DailyFlow struct {
	Day     int             `json:"day"`
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TrendPoint is one month of the income-vs-expense trend.
type TrendPoint struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryBreakdownRow is one category's expense share for a month.
type CategoryBreakdownRow struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// DebtStatusSummary aggregates ongoing debts per kind.
type DebtStatusSummary struct {
	Kind           DebtKind        `json:"kind"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	Count          int             `json:"count"`
}

// SpendingWarning compares month-to-date spending with the user's limit.
type SpendingWarning struct {
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Exceeded  bool            `json:"exceeded"`
	UsedRatio decimal.Decimal `json:"usedRatio"` // spent/limit, zero when no limit
}

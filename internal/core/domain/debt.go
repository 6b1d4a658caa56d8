package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind distinguishes money the user owes from money owed to the user.
type DebtKind string

const (
	DebtLoan DebtKind = "LOAN" // user borrowed, pays back with expenses
	DebtLend DebtKind = "LEND" // user lent, is repaid with incomes
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtOngoing   DebtStatus = "ONGOING"
	DebtCompleted DebtStatus = "COMPLETED"
)

// Debt is a tracked loan or lend obligation, optionally amortized into
// monthly installments. RemainingAmount decreases monotonically toward zero
// as periods are paid and is never negative.
type Debt struct {
	DebtID          string          `json:"debtID"`
	UserID          string          `json:"userID"`
	PartnerName     string          `json:"partnerName"`
	Kind            DebtKind        `json:"kind"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          DebtStatus      `json:"status"`

	// Installment terms. Structural fields (IsInstallment, TotalMonths,
	// StartDate) are frozen once the schedule is active.
	IsInstallment  bool            `json:"isInstallment"`
	StartDate      *time.Time      `json:"startDate"`
	TotalMonths    int             `json:"totalMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	PaymentDay     int             `json:"paymentDay"` // recurring day of month, 1-31
	PaidMonths     int             `json:"paidMonths"`

	AuditFields
}

// InstallmentStatus is the state of one scheduled period.
// OVERDUE is a read-time classification; it is never stored.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
	InstallmentOverdue InstallmentStatus = "OVERDUE"
)

// Installment is one scheduled due period of a Debt. At most one PENDING
// installment exists per debt at any time.
type Installment struct {
	InstallmentID     string            `json:"installmentID"`
	DebtID            string            `json:"debtID"`
	DueDate           time.Time         `json:"dueDate"`
	Amount            decimal.Decimal   `json:"amount"`
	Status            InstallmentStatus `json:"status"`
	PaidAt            *time.Time        `json:"paidAt"`
	SettlingAccountID *string           `json:"settlingAccountID"`

	AuditFields
}

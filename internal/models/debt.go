package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind mirrors domain.DebtKind at the storage layer.
type DebtKind string

// DebtStatus mirrors domain.DebtStatus at the storage layer.
type DebtStatus string

// InstallmentStatus mirrors domain.InstallmentStatus at the storage layer.
type InstallmentStatus string

// Debt is the debts table row.
type Debt struct {
	DebtID          string          `db:"debt_id"`
	UserID          string          `db:"user_id"`
	PartnerName     string          `db:"partner_name"`
	Kind            DebtKind        `db:"kind"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	Status          DebtStatus      `db:"status"`

	IsInstallment  bool            `db:"is_installment"`
	StartDate      *time.Time      `db:"start_date"`
	TotalMonths    int             `db:"total_months"`
	MonthlyPayment decimal.Decimal `db:"monthly_payment"`
	PaymentDay     int             `db:"payment_day"`
	PaidMonths     int             `db:"paid_months"`

	AuditFields
}

// Installment is the debt_installments table row.
type Installment struct {
	InstallmentID     string            `db:"installment_id"`
	DebtID            string            `db:"debt_id"`
	DueDate           time.Time         `db:"due_date"`
	Amount            decimal.Decimal   `db:"amount"`
	Status            InstallmentStatus `db:"status"`
	PaidAt            *time.Time        `db:"paid_at"`
	SettlingAccountID *string           `db:"settling_account_id"`

	AuditFields
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// CreateDebtRequest defines the data needed to track a new debt.
type CreateDebtRequest struct {
	PartnerName string          `json:"partnerName" binding:"required,max=100"`
	Kind        domain.DebtKind `json:"kind" binding:"required,oneof=LOAN LEND"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`

	// Installment terms, required together when IsInstallment is true.
	// PaymentDay alone is also accepted on non-installment debts as a
	// recurring due day for reminders.
	IsInstallment  bool             `json:"isInstallment"`
	StartDate      *time.Time       `json:"startDate"`
	TotalMonths    *int             `json:"totalMonths" binding:"omitempty,min=1"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment"`
	PaymentDay     *int             `json:"paymentDay" binding:"omitempty,dayofmonth"`
}

// UpdateDebtRequest defines the data allowed for updating a debt.
// Structural installment terms cannot change once the schedule is active.
type UpdateDebtRequest struct {
	PartnerName    *string          `json:"partnerName" binding:"omitempty,max=100"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment"`
	PaymentDay     *int             `json:"paymentDay" binding:"omitempty,dayofmonth"`
}

// PayInstallmentRequest defines the data needed to settle an installment of a
// debt. When InstallmentID is omitted the pending installment is settled.
type PayInstallmentRequest struct {
	AccountID     string           `json:"accountID" binding:"required"`
	Amount        *decimal.Decimal `json:"amount"` // defaults to the scheduled amount
	InstallmentID *string          `json:"installmentID"`
}

// InstallmentResponse defines the data returned for one installment.
type InstallmentResponse struct {
	InstallmentID     string                   `json:"installmentID"`
	DueDate           time.Time                `json:"dueDate"`
	Amount            decimal.Decimal          `json:"amount"`
	Status            domain.InstallmentStatus `json:"status"`
	PaidAt            *time.Time               `json:"paidAt,omitempty"`
	SettlingAccountID *string                  `json:"settlingAccountID,omitempty"`
}

// DebtResponse defines the data returned for a debt, optionally with its
// installment schedule.
type DebtResponse struct {
	DebtID          string            `json:"debtID"`
	PartnerName     string            `json:"partnerName"`
	Kind            domain.DebtKind   `json:"kind"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	Status          domain.DebtStatus `json:"status"`
	IsInstallment   bool              `json:"isInstallment"`
	StartDate       *time.Time        `json:"startDate,omitempty"`
	TotalMonths     int               `json:"totalMonths,omitempty"`
	MonthlyPayment  decimal.Decimal   `json:"monthlyPayment"`
	PaymentDay      int               `json:"paymentDay,omitempty"`
	PaidMonths      int               `json:"paidMonths"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`

	Installments []InstallmentResponse `json:"installments,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment to InstallmentResponse DTO
func ToInstallmentResponse(in *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:     in.InstallmentID,
		DueDate:           in.DueDate,
		Amount:            in.Amount,
		Status:            in.Status,
		PaidAt:            in.PaidAt,
		SettlingAccountID: in.SettlingAccountID,
	}
}

// ToDebtResponse converts a domain.Debt and its installments to DebtResponse DTO
func ToDebtResponse(d *domain.Debt, installments []domain.Installment) DebtResponse {
	resp := DebtResponse{
		DebtID:          d.DebtID,
		PartnerName:     d.PartnerName,
		Kind:            d.Kind,
		TotalAmount:     d.TotalAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status,
		IsInstallment:   d.IsInstallment,
		StartDate:       d.StartDate,
		TotalMonths:     d.TotalMonths,
		MonthlyPayment:  d.MonthlyPayment,
		PaymentDay:      d.PaymentDay,
		PaidMonths:      d.PaidMonths,
		CreatedAt:       d.CreatedAt,
		LastUpdatedAt:   d.LastUpdatedAt,
	}
	if len(installments) > 0 {
		resp.Installments = make([]InstallmentResponse, len(installments))
		for i, in := range installments {
			resp.Installments[i] = ToInstallmentResponse(&in)
		}
	}
	return resp
}

// ToListDebtResponse converts a slice of domain.Debt to a slice of DebtResponse DTOs
func ToListDebtResponse(debts []domain.Debt) []DebtResponse {
	res := make([]DebtResponse, len(debts))
	for i, d := range debts {
		res[i] = ToDebtResponse(&d, nil)
	}
	return res
}

// ListDebtsParams defines query parameters for listing debts.
type ListDebtsParams struct {
	Status *string `form:"status" binding:"omitempty,oneof=ONGOING COMPLETED"`
}

// ListDebtsResponse wraps the list of debts.
type ListDebtsResponse struct {
	Debts []DebtResponse `json:"debts"`
}

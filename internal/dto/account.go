package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=CASH BANK SAVING DEBIT PREPAID CREDIT"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`

	// Credit card fields, required when Kind is CREDIT.
	CreditLimit       *decimal.Decimal `json:"creditLimit"`
	StatementDay      *int             `json:"statementDay" binding:"omitempty,dayofmonth"`
	PaymentDueDay     *int             `json:"paymentDueDay" binding:"omitempty,dayofmonth"`
	InterestRate      *decimal.Decimal `json:"interestRate"`
	AnnualFee         *decimal.Decimal `json:"annualFee"`
	SettlementFeeRate *decimal.Decimal `json:"settlementFeeRate"`
	LinkedAccountID   *string          `json:"linkedAccountID"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name              *string              `json:"name"`
	Status            *domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE LOCKED"`
	CreditLimit       *decimal.Decimal     `json:"creditLimit"`
	StatementDay      *int                 `json:"statementDay" binding:"omitempty,dayofmonth"`
	PaymentDueDay     *int                 `json:"paymentDueDay" binding:"omitempty,dayofmonth"`
	InterestRate      *decimal.Decimal     `json:"interestRate"`
	AnnualFee         *decimal.Decimal     `json:"annualFee"`
	SettlementFeeRate *decimal.Decimal     `json:"settlementFeeRate"`
}

// SettleStatementRequest defines the data needed to settle a credit card
// statement.
type SettleStatementRequest struct {
	Mode          domain.SettlementMode `json:"mode" binding:"required,oneof=PAY_FULL REFINANCE"`
	FromAccountID string                `json:"fromAccountID" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Name               string             `json:"name"`
	Kind               domain.AccountKind `json:"kind"`
	Balance            decimal.Decimal    `json:"balance"`
	InitialBalance     decimal.Decimal    `json:"initialBalance"`
	CurrencyCode       string             `json:"currencyCode"`
	Status             domain.AccountStatus `json:"status"`
	CreditLimit        decimal.Decimal    `json:"creditLimit"`
	StatementDay       int                `json:"statementDay"`
	PaymentDueDay      int                `json:"paymentDueDay"`
	OutstandingBalance decimal.Decimal    `json:"outstandingBalance"`
	InterestRate       decimal.Decimal    `json:"interestRate"`
	AnnualFee          decimal.Decimal    `json:"annualFee"`
	SettlementFeeRate  decimal.Decimal    `json:"settlementFeeRate"`
	LinkedAccountID    *string            `json:"linkedAccountID"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Name:               acc.Name,
		Kind:               acc.Kind,
		Balance:            acc.Balance,
		InitialBalance:     acc.InitialBalance,
		CurrencyCode:       acc.CurrencyCode,
		Status:             acc.Status,
		CreditLimit:        acc.CreditLimit,
		StatementDay:       acc.StatementDay,
		PaymentDueDay:      acc.PaymentDueDay,
		OutstandingBalance: acc.OutstandingBalance,
		InterestRate:       acc.InterestRate,
		AnnualFee:          acc.AnnualFee,
		SettlementFeeRate:  acc.SettlementFeeRate,
		LinkedAccountID:    acc.LinkedAccountID,
		CreatedAt:          acc.CreatedAt,
		LastUpdatedAt:      acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

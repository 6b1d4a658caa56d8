package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind at the storage layer.
type AccountKind string

// AccountStatus mirrors domain.AccountStatus at the storage layer.
type AccountStatus string

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Kind           AccountKind     `db:"kind"`
	Balance        decimal.Decimal `db:"balance"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrencyCode   string          `db:"currency_code"`
	Status         AccountStatus   `db:"status"`

	CreditLimit        decimal.Decimal `db:"credit_limit"`
	StatementDay       int             `db:"statement_day"`
	PaymentDueDay      int             `db:"payment_due_day"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	InterestRate       decimal.Decimal `db:"interest_rate"`
	AnnualFee          decimal.Decimal `db:"annual_fee"`
	SettlementFeeRate  decimal.Decimal `db:"settlement_fee_rate"`
	LinkedAccountID    *string         `db:"linked_account_id"`

	AuditFields
}

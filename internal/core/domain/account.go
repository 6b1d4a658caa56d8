package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies an account (wallet, bank account or card).
type AccountKind string

const (
	AccountCash    AccountKind = "CASH"
	AccountBank    AccountKind = "BANK"
	AccountSaving  AccountKind = "SAVING"
	AccountDebit   AccountKind = "DEBIT"
	AccountPrepaid AccountKind = "PREPAID"
	AccountCredit  AccountKind = "CREDIT"
)

// AccountStatus indicates whether an account accepts new entries.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountLocked AccountStatus = "LOCKED"
)

// Account represents a wallet, bank account or credit card holding a balance.
// Balance always equals InitialBalance plus the signed sum of every
// non-reverted entry effect applied to this account; it is mutated only
// through the ledger's apply/revert calls.
type Account struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrencyCode   string          `json:"currencyCode"`
	Status         AccountStatus   `json:"status"`

	// Credit-card specific fields. OutstandingBalance is the amount
	// currently owed against the limit; it mirrors balance deltas and is
	// clamped at zero.
	CreditLimit        decimal.Decimal `json:"creditLimit"`
	StatementDay       int             `json:"statementDay"`   // day of month, 1-31
	PaymentDueDay      int             `json:"paymentDueDay"`  // day of month, 1-31
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	InterestRate       decimal.Decimal `json:"interestRate"` // %/year
	AnnualFee          decimal.Decimal `json:"annualFee"`
	SettlementFeeRate  decimal.Decimal `json:"settlementFeeRate"`
	LinkedAccountID    *string         `json:"linkedAccountID"` // supplementary card link

	AuditFields
}

// IsCredit reports whether the account participates in the credit billing cycle.
func (a Account) IsCredit() bool {
	return a.Kind == AccountCredit
}

// SettlementMode selects how a credit card statement is settled.
type SettlementMode string

const (
	// SettleFull pays the whole outstanding balance from another account.
	SettleFull SettlementMode = "PAY_FULL"
	// SettleRefinance rolls the outstanding balance over, charging the
	// card's settlement fee as a system expense.
	SettleRefinance SettlementMode = "REFINANCE"
)

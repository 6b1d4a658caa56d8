package domain

import "github.com/shopspring/decimal"

// User is an authenticated owner of accounts, entries and debts.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`

	// MonthlyLimit is the spending ceiling consumed by the spending-warning
	// analytics; zero means no limit configured.
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`

	AuditFields
}

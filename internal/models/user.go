package models

import "github.com/shopspring/decimal"

// User is the users table row.
type User struct {
	UserID       string          `db:"user_id"`
	Email        string          `db:"email"`
	Name         string          `db:"name"`
	PasswordHash string          `db:"password_hash"`
	MonthlyLimit decimal.Decimal `db:"monthly_limit"`

	AuditFields
}

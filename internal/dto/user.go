package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user profile.
type UpdateUserRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string          `json:"userID"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// LoginResponse carries the issued token alongside the user profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		MonthlyLimit: u.MonthlyLimit,
		CreatedAt:    u.CreatedAt,
	}
}

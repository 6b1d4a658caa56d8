package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
	"github.com/tvhoang/wallet_ledger_app/internal/utils"
)

// ErrInvalidCredentials is returned for a bad email/password pair without
// revealing which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

const defaultCashAccountName = "Cash"

// userService provides registration, authentication and profile management.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryWithTx
	clock       clock.Clock
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryWithTx, clk clock.Clock) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, accountRepo: accountRepo, clock: clk}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user with a bcrypt password hash and seeds
// their default cash account so the first entry can land somewhere.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		MonthlyLimit: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "", // self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: "",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	cash := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         user.UserID,
		Name:           defaultCashAccountName,
		Kind:           domain.AccountCash,
		Balance:        decimal.Zero,
		InitialBalance: decimal.Zero,
		CurrencyCode:   "VND",
		Status:         domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, cash); err != nil {
		// The user exists either way; a missing default account is no reason
		// to fail registration.
		logger.Warn("Failed to seed default cash account", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies credentials. Unknown emails and wrong passwords
// return the same error.
func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateUser updates a user's profile.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.MonthlyLimit != nil {
		if req.MonthlyLimit.IsNegative() {
			return nil, fmt.Errorf("%w: monthly limit cannot be negative", apperrors.ErrValidation)
		}
		user.MonthlyLimit = *req.MonthlyLimit
	}
	user.LastUpdatedAt = s.clock.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

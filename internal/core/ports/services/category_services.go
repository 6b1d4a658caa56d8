package services

import (
	"context"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
)

// CategorySvcFacade defines operations for category management
type CategorySvcFacade interface {
	// GetCategoryByID retrieves a specific category, verifying ownership.
	// System categories are visible to every user.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the user's categories plus system categories.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory updates an existing category. System categories are
	// refused.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category. System categories and categories
	// referenced by entries are refused.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

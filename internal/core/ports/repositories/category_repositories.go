package repositories

import (
	"context"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByUser retrieves the user's categories plus the seeded
	// system categories.
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)

	// CountEntriesForCategory reports how many entries reference the category.
	CountEntriesForCategory(ctx context.Context, categoryID string) (int64, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category that has no entries referencing it.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

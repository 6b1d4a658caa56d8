package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
)

// categoryService provides category management.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	clock        clock.Clock
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, clk clock.Clock) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo, clock: clk}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsSystem && category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrForbidden, categoryID)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Kind:       req.Kind,
		Icon:       req.Icon,
		Color:      req.Color,
		IsSystem:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.IsSystem {
		return nil, fmt.Errorf("%w: system categories cannot be edited", apperrors.ErrInvalidState)
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrForbidden, categoryID)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = s.clock.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.IsSystem {
		return fmt.Errorf("%w: system categories cannot be deleted", apperrors.ErrInvalidState)
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category %s", apperrors.ErrForbidden, categoryID)
	}

	count, err := s.categoryRepo.CountEntriesForCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category has %d entries; reassign them first", apperrors.ErrInvalidState, count)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

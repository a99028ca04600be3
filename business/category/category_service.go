package category

import (
	"context"
	"fmt"
	"strings"

	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/gosimple/slug"
)

const FeaturedLimit = 8

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindWithCourseCounts(ctx context.Context, limit int) ([]domain.CategoryWithCount, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CountCourses(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

// FeaturedCategories returns the categories with the most published courses.
func (s *categoryService) FeaturedCategories(ctx context.Context) ([]domain.CategoryWithCount, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get featured categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindWithCourseCounts(ctx, FeaturedLimit)
	if err != nil {
		logger.Error("Failed to count category courses", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category by id")
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) normalize(ctx context.Context, category *domain.Category, excludeID string) error {
	category.Name = strings.TrimSpace(category.Name)
	if len(category.Name) < 2 {
		logger.Error("Invalid category data: name is required")
		return fmt.Errorf("%w: category name must be at least 2 characters", domain.ErrInvalidInput)
	}

	category.Slug = slug.Make(category.Slug)
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}

	taken, err := s.categoryRepo.SlugTaken(ctx, category.Slug, excludeID)
	if err != nil {
		logger.Error("Failed to check category slug", err)
		return err
	}
	if taken {
		return domain.ErrCategoryExists
	}

	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.normalize(ctx, category, ""); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created successfully", "slug", category.Slug)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Verify category exists
	if _, err := s.categoryRepo.FindByID(ctx, category.ID); err != nil {
		logger.Error("category not found", err)
		return nil, err
	}

	if err := s.normalize(ctx, category, category.ID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updatedCategory, err := s.categoryRepo.FindByID(ctx, category.ID)
	if err != nil {
		logger.Error("failed to fetch updated category", err)
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	logger.Info("category updated successfully", "category_id", category.ID)

	return &updatedCategory, nil
}

// DeleteCategory refuses to delete a category that still files courses.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting category")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("category not found", err)
		return err
	}

	n, err := s.categoryRepo.CountCourses(ctx, id)
	if err != nil {
		logger.Error("failed to count category courses", err)
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted successfully", "category_id", id)

	return nil
}

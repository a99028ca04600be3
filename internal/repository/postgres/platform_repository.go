package postgres

import (
	"context"
	"errors"
	"fmt"

	"skillCompare/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlatformRepository struct {
	DB *gorm.DB
}

func NewPlatformRepository(db *gorm.DB) *PlatformRepository {
	return &PlatformRepository{
		DB: db,
	}
}

func (r *PlatformRepository) Create(ctx context.Context, platform *domain.Platform) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(platform).Error; err != nil {
		return fmt.Errorf("failed to create platform: %w", err)
	}

	return nil
}

func (r *PlatformRepository) FindByID(ctx context.Context, id string) (domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		return domain.Platform{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.Platform{}, domain.ErrPlatformNotFound
	}

	var platform domain.Platform
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&platform).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Platform{}, domain.ErrPlatformNotFound
		}
		return domain.Platform{}, fmt.Errorf("failed to find platform: %w", err)
	}

	return platform, nil
}

func (r *PlatformRepository) FindAll(ctx context.Context) ([]domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var platforms []domain.Platform
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("failed to find platforms: %w", err)
	}

	return platforms, nil
}

func (r *PlatformRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Platform{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check platform slug: %w", err)
	}

	return count > 0, nil
}

func (r *PlatformRepository) CountCourses(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Course{}).Where("platform_id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count platform courses: %w", err)
	}

	return count, nil
}

func (r *PlatformRepository) Update(ctx context.Context, platform *domain.Platform) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        platform.Name,
		"slug":        platform.Slug,
		"website_url": platform.WebsiteURL,
		"description": platform.Description,
		"logo_url":    platform.LogoURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Platform{}).Where("id = ?", platform.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update platform: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPlatformNotFound
	}

	return nil
}

func (r *PlatformRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Platform{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete platform: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPlatformNotFound
	}

	return nil
}

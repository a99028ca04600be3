package postgres

import (
	"context"
	"fmt"

	"skillCompare/domain"

	"gorm.io/gorm"
)

type ComparisonHistoryRepository struct {
	DB *gorm.DB
}

func NewComparisonHistoryRepository(db *gorm.DB) *ComparisonHistoryRepository {
	return &ComparisonHistoryRepository{DB: db}
}

func (r *ComparisonHistoryRepository) Create(ctx context.Context, history *domain.ComparisonHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(history).Error; err != nil {
		return fmt.Errorf("failed to record comparison: %w", err)
	}

	return nil
}

func (r *ComparisonHistoryRepository) Recent(ctx context.Context, userID string, limit int) ([]domain.ComparisonHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var histories []domain.ComparisonHistory
	err := r.DB.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Courses.Course").
		Preload("Courses.Course.Platform").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&histories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comparisons: %w", err)
	}

	return histories, nil
}

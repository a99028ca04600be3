package postgres

import (
	"context"
	"fmt"

	"skillCompare/domain"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		DB: db,
	}
}

// Toggle adds the course to the user's wishlist, or removes it when it
// is already there. It reports whether the course is wishlisted after.
func (r *WishlistRepository) Toggle(ctx context.Context, userID, courseID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var wishlisted bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&domain.Wishlist{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove wishlist entry: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			wishlisted = false
			return nil
		}

		entry := &domain.Wishlist{UserID: userID, CourseID: courseID}
		if err := tx.Omit("Course").Create(entry).Error; err != nil {
			return fmt.Errorf("failed to add wishlist entry: %w", err)
		}
		wishlisted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return wishlisted, nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Wishlist{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}

	return count > 0, nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.Wishlist
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Preload("Course.Platform").
		Preload("Course.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist: %w", err)
	}

	return items, nil
}

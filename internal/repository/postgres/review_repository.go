package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillCompare/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

// Upsert writes the user's review of a course (one per user and course)
// and refreshes the course rating in the same transaction.
func (r *ReviewRepository) Upsert(ctx context.Context, review *domain.Review) (domain.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("context error: %w", err)
	}

	var agg domain.RatingAggregate
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Review
		err := tx.Where("user_id = ? AND course_id = ?", review.UserID, review.CourseID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit("User").Create(review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to find review: %w", err)
		default:
			review.ID = existing.ID
			review.CreatedAt = existing.CreatedAt
			review.UpdatedAt = time.Now()
			updateData := map[string]interface{}{
				"rating":     review.Rating,
				"title":      review.Title,
				"body":       review.Body,
				"updated_at": review.UpdatedAt,
			}
			if err := tx.Model(&domain.Review{}).Where("id = ?", existing.ID).Updates(updateData).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
		}

		agg, err = refreshCourseRating(tx, review.CourseID)
		return err
	})
	if err != nil {
		return domain.RatingAggregate{}, err
	}

	return agg, nil
}

// Delete removes a review and refreshes its course rating. The course id
// is returned for logging.
func (r *ReviewRepository) Delete(ctx context.Context, id string) (string, domain.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.RatingAggregate{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return "", domain.RatingAggregate{}, domain.ErrReviewNotFound
	}

	var (
		courseID string
		agg      domain.RatingAggregate
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review domain.Review
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReviewNotFound
			}
			return fmt.Errorf("failed to find review: %w", err)
		}
		courseID = review.CourseID

		if err := tx.Where("id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		var err error
		agg, err = refreshCourseRating(tx, courseID)
		return err
	})
	if err != nil {
		return "", domain.RatingAggregate{}, err
	}

	return courseID, agg, nil
}

func refreshCourseRating(tx *gorm.DB, courseID string) (domain.RatingAggregate, error) {
	var row struct {
		Avg   float64
		Count int
	}
	err := tx.Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&row).Error
	if err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	agg := domain.AggregateRatings(row.Avg, row.Count)
	err = tx.Model(&domain.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"rating":       agg.Rating,
		"review_count": agg.ReviewCount,
	}).Error
	if err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("failed to update course rating: %w", err)
	}

	return agg, nil
}

func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}

// ListAll is the admin moderation listing, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context, limit int) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}

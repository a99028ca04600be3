package postgres

import (
	"context"
	"fmt"

	"skillCompare/domain"

	"gorm.io/gorm"
)

// StatsRepository answers the dashboard counters.
type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) count(ctx context.Context, model interface{}, where string, args ...interface{}) (int64, error) {
	query := r.DB.WithContext(ctx).Model(model)
	if where != "" {
		query = query.Where(where, args...)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StatsRepository) UserCounts(ctx context.Context, userID string) (domain.UserDashboard, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserDashboard{}, fmt.Errorf("context error: %w", err)
	}

	var (
		d   domain.UserDashboard
		err error
	)
	if d.WishlistCount, err = r.count(ctx, &domain.Wishlist{}, "user_id = ?", userID); err != nil {
		return d, fmt.Errorf("failed to count wishlist: %w", err)
	}
	if d.ComparisonCount, err = r.count(ctx, &domain.ComparisonHistory{}, "user_id = ?", userID); err != nil {
		return d, fmt.Errorf("failed to count comparisons: %w", err)
	}
	if d.ReviewCount, err = r.count(ctx, &domain.Review{}, "user_id = ?", userID); err != nil {
		return d, fmt.Errorf("failed to count reviews: %w", err)
	}

	return d, nil
}

func (r *StatsRepository) Overview(ctx context.Context) (domain.AdminOverview, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminOverview{}, fmt.Errorf("context error: %w", err)
	}

	var (
		o   domain.AdminOverview
		err error
	)
	if o.UserCount, err = r.count(ctx, &domain.User{}, ""); err != nil {
		return o, fmt.Errorf("failed to count users: %w", err)
	}
	if o.CourseCount, err = r.count(ctx, &domain.Course{}, ""); err != nil {
		return o, fmt.Errorf("failed to count courses: %w", err)
	}
	if o.ReviewCount, err = r.count(ctx, &domain.Review{}, ""); err != nil {
		return o, fmt.Errorf("failed to count reviews: %w", err)
	}
	if o.PlatformCount, err = r.count(ctx, &domain.Platform{}, ""); err != nil {
		return o, fmt.Errorf("failed to count platforms: %w", err)
	}

	return o, nil
}

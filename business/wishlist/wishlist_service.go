package wishlist

import (
	"context"
	"fmt"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
)

type WishlistRepository interface {
	Toggle(ctx context.Context, userID, courseID string) (bool, error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Wishlist, error)
}

type CourseRepository interface {
	FindPublishedByID(ctx context.Context, id string) (domain.Course, error)
}

type wishlistService struct {
	wishlistRepo WishlistRepository
	courseRepo   CourseRepository
}

func NewWishlistService(wishlistRepo WishlistRepository, courseRepo CourseRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		courseRepo:   courseRepo,
	}
}

// Toggle flips the course in or out of the user's wishlist and reports
// the new state.
func (s *wishlistService) Toggle(ctx context.Context, userID, courseID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when toggle wishlist")
		return false, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.courseRepo.FindPublishedByID(ctx, courseID); err != nil {
		logger.Error("Wishlist toggle for unknown course", err)
		return false, err
	}

	wishlisted, err := s.wishlistRepo.Toggle(ctx, userID, courseID)
	if err != nil {
		logger.Error("failed to toggle wishlist", err)
		return false, err
	}

	return wishlisted, nil
}

func (s *wishlistService) List(ctx context.Context, userID string) ([]domain.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list wishlist")
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to list wishlist", err)
		return nil, err
	}
	if items == nil {
		items = []domain.Wishlist{}
	}

	return items, nil
}

func (s *wishlistService) IsWishlisted(ctx context.Context, userID, courseID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when check wishlist")
		return false, fmt.Errorf("context error: %w", err)
	}

	return s.wishlistRepo.Exists(ctx, userID, courseID)
}

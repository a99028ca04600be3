package review

import (
	"context"
	"fmt"
	"strings"

	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *domain.Review) (domain.RatingAggregate, error)
	Delete(ctx context.Context, id string) (string, domain.RatingAggregate, error)
	ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Review, error)
	ListAll(ctx context.Context, limit int) ([]domain.Review, error)
}

type CourseRepository interface {
	FindPublishedByID(ctx context.Context, id string) (domain.Course, error)
}

type ReviewInput struct {
	CourseID string `json:"course_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Title    string `json:"title" validate:"max=120"`
	Body     string `json:"body" validate:"required,min=10,max=5000"`
}

type reviewService struct {
	reviewRepo ReviewRepository
	courseRepo CourseRepository
	validate   *validator.Validate
}

func NewReviewService(reviewRepo ReviewRepository, courseRepo CourseRepository, validate *validator.Validate) *reviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		courseRepo: courseRepo,
		validate:   validate,
	}
}

// SubmitReview creates or replaces the user's review of a published
// course and returns the course's refreshed rating.
func (s *reviewService) SubmitReview(ctx context.Context, userID string, in ReviewInput) (domain.Review, domain.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when submit review")
		return domain.Review{}, domain.RatingAggregate{}, fmt.Errorf("context error: %w", err)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid review data", err)
		return domain.Review{}, domain.RatingAggregate{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if _, err := s.courseRepo.FindPublishedByID(ctx, in.CourseID); err != nil {
		logger.Error("Review for unknown course", err)
		return domain.Review{}, domain.RatingAggregate{}, err
	}

	review := domain.Review{
		UserID:   userID,
		CourseID: in.CourseID,
		Rating:   in.Rating,
		Title:    in.Title,
		Body:     in.Body,
	}

	agg, err := s.reviewRepo.Upsert(ctx, &review)
	if err != nil {
		logger.Error("failed to save review", err)
		return domain.Review{}, domain.RatingAggregate{}, err
	}

	logger.Info("review saved", "course_id", in.CourseID, "rating", agg.Rating, "review_count", agg.ReviewCount)
	return review, agg, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) (domain.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete review")
		return domain.RatingAggregate{}, fmt.Errorf("context error: %w", err)
	}

	courseID, agg, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("failed to delete review", err)
		return domain.RatingAggregate{}, err
	}

	logger.Info("review deleted", "course_id", courseID, "rating", agg.Rating, "review_count", agg.ReviewCount)
	return agg, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

func (s *reviewService) ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list reviews")
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews, err := s.reviewRepo.ListByCourse(ctx, courseID, clampLimit(limit))
	if err != nil {
		logger.Error("failed to list reviews", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

func (s *reviewService) ListAll(ctx context.Context, limit int) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list all reviews")
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews, err := s.reviewRepo.ListAll(ctx, clampLimit(limit))
	if err != nil {
		logger.Error("failed to list reviews", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"skillCompare/business/review"
	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, userID string, in review.ReviewInput) (domain.Review, domain.RatingAggregate, error)
	DeleteReview(ctx context.Context, id string) (domain.RatingAggregate, error)
	ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Review, error)
	ListAll(ctx context.Context, limit int) ([]domain.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		timeout:       10 * time.Second,
	}
}

func (h *ReviewHandler) Submit(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var in review.ReviewInput
	if err := c.Bind(&in); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, agg, err := h.reviewService.SubmitReview(ctx, userID, in)
	if err != nil {
		logger.Error("Failed to submit review", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "review saved",
		"review":       saved,
		"rating":       agg.Rating,
		"review_count": agg.ReviewCount,
	})
}

func (h *ReviewHandler) ListByCourse(c echo.Context) error {
	courseID := c.QueryParam("course_id")
	if courseID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "course_id is required"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListByCourse(ctx, courseID, limit)
	if err != nil {
		logger.Error("Failed to list reviews", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get reviews",
		"reviews": reviews,
	})
}

func (h *ReviewHandler) ListAll(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListAll(ctx, limit)
	if err != nil {
		logger.Error("Failed to list reviews", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get reviews",
		"reviews": reviews,
	})
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	agg, err := h.reviewService.DeleteReview(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to delete review", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "review successfully deleted",
		"rating":       agg.Rating,
		"review_count": agg.ReviewCount,
	})
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"skillCompare/business/comparison"
	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ComparisonService interface {
	State(ctx context.Context, visitorID string) (comparison.State, error)
	AddCourse(ctx context.Context, visitorID, courseID string) (comparison.State, bool, error)
	RemoveCourse(ctx context.Context, visitorID, courseID string) (comparison.State, error)
	Clear(ctx context.Context, visitorID string) (comparison.State, error)
	SetVisible(ctx context.Context, visitorID string, open bool) (comparison.State, error)
	Compare(ctx context.Context, visitorID, userID string) (comparison.View, error)
}

type CompareHandler struct {
	comparisonService ComparisonService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewCompareHandler(comparisonService ComparisonService) *CompareHandler {
	return &CompareHandler{
		comparisonService: comparisonService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type AddCompareRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type CompareVisibilityRequest struct {
	Open *bool `json:"open" validate:"required"`
}

func (h *CompareHandler) GetState(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.comparisonService.State(ctx, visitorID)
	if err != nil {
		logger.Error("Failed to get comparison state", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get comparison",
		"selection": state,
	})
}

func (h *CompareHandler) AddCourse(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	var req AddCompareRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate compare request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, added, err := h.comparisonService.AddCourse(ctx, visitorID, req.CourseID)
	switch {
	case errors.Is(err, comparison.ErrCapacityExceeded):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"message":   err.Error(),
			"selection": state,
		})
	case errors.Is(err, domain.ErrCourseNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case err != nil:
		logger.Error("Failed to add course to comparison", err)
		return errorJSON(c, err)
	case !added:
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":   "course already in comparison",
			"selection": state,
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "course added to comparison",
		"selection": state,
	})
}

func (h *CompareHandler) RemoveCourse(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.comparisonService.RemoveCourse(ctx, visitorID, c.Param("id"))
	if err != nil {
		logger.Error("Failed to remove course from comparison", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "course removed from comparison",
		"selection": state,
	})
}

func (h *CompareHandler) Clear(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.comparisonService.Clear(ctx, visitorID)
	if err != nil {
		logger.Error("Failed to clear comparison", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "comparison cleared",
		"selection": state,
	})
}

func (h *CompareHandler) SetVisibility(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	var req CompareVisibilityRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate visibility request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.comparisonService.SetVisible(ctx, visitorID, *req.Open)
	if err != nil {
		logger.Error("Failed to toggle comparison bar", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "comparison visibility updated",
		"selection": state,
	})
}

// Matrix renders the comparison page. Signed-in users get the view
// recorded in their history.
func (h *CompareHandler) Matrix(c echo.Context) error {
	visitorID := currentVisitorID(c)
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor session"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.comparisonService.Compare(ctx, visitorID, currentUserID(c))
	if err != nil {
		logger.Error("Failed to build comparison", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully build comparison",
		"comparison": view,
	})
}

package rest

import (
	"context"
	"errors"
	"net/http"

	"skillCompare/business/comparison"
	"skillCompare/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrPlatformNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, comparison.ErrCapacityExceeded),
		errors.Is(err, domain.ErrCourseExists),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrPlatformExists),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrPlatformInUse):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func errorJSON(c echo.Context, err error) error {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		return c.JSON(code, ResponseError{Message: "internal server error"})
	}
	return c.JSON(code, ResponseError{Message: err.Error()})
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func currentVisitorID(c echo.Context) string {
	id, _ := c.Get("visitor_id").(string)
	return id
}

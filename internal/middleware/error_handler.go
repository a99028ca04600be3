package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"skillCompare/pkg/logger"

	jsonres "skillCompare/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorHandler is installed as the echo HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := jsonres.Error("INTERNAL_SERVER_ERROR", "Internal server error", nil)

	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		body = jsonres.Error(statusCode(code), fmt.Sprint(httpErr.Message), nil)
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		body = jsonres.Error("VALIDATION_ERROR", "Validation failed", details)
	default:
		logger.Error("unhandled error", "path", c.Request().URL.Path, err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}

func statusCode(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"skillCompare/business/comparison"
	"skillCompare/domain"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name too short", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrBadCredentials, http.StatusUnauthorized},
		{domain.ErrCourseNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", domain.ErrReviewNotFound), http.StatusNotFound},
		{comparison.ErrCapacityExceeded, http.StatusConflict},
		{domain.ErrEmailExists, http.StatusConflict},
		{domain.ErrCategoryInUse, http.StatusConflict},
		{fmt.Errorf("context error: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errorStatus(tc.err), tc.err.Error())
	}
}

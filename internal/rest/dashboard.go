package rest

import (
	"context"
	"net/http"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	UserDashboard(ctx context.Context, userID string) (domain.UserDashboard, error)
	AdminOverview(ctx context.Context) (domain.AdminOverview, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
	timeout          time.Duration
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          10 * time.Second,
	}
}

func (h *DashboardHandler) User(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	d, err := h.dashboardService.UserDashboard(ctx, currentUserID(c))
	if err != nil {
		logger.Error("Failed to load user dashboard", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(d))
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	o, err := h.dashboardService.AdminOverview(ctx)
	if err != nil {
		logger.Error("Failed to load admin overview", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(o))
}

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

type WishlistService interface {
	Toggle(ctx context.Context, userID, courseID string) (bool, error)
	List(ctx context.Context, userID string) ([]domain.Wishlist, error)
	IsWishlisted(ctx context.Context, userID, courseID string) (bool, error)
}

type WishlistHandler struct {
	wishlistService WishlistService
	timeout         time.Duration
}

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		timeout:         10 * time.Second,
	}
}

func (h *WishlistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.wishlistService.List(ctx, currentUserID(c))
	if err != nil {
		logger.Error("Failed to list wishlist", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *WishlistHandler) Toggle(c echo.Context) error {
	courseID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	wishlisted, err := h.wishlistService.Toggle(ctx, currentUserID(c), courseID)
	if err != nil {
		logger.Error("Failed to toggle wishlist", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"course_id":  courseID,
		"wishlisted": wishlisted,
	})
}

func (h *WishlistHandler) Status(c echo.Context) error {
	courseID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	wishlisted, err := h.wishlistService.IsWishlisted(ctx, currentUserID(c), courseID)
	if err != nil {
		logger.Error("Failed to check wishlist", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"course_id":  courseID,
		"wishlisted": wishlisted,
	})
}

package rest

import (
	"context"
	"net/http"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PlatformService interface {
	GetAllPlatforms(ctx context.Context) ([]domain.Platform, error)
	GetPlatformByID(ctx context.Context, id string) (domain.Platform, error)
	CreatePlatform(ctx context.Context, platform *domain.Platform) (*domain.Platform, error)
	UpdatePlatform(ctx context.Context, platform *domain.Platform) (*domain.Platform, error)
	DeletePlatform(ctx context.Context, id string) error
}

type PlatformHandler struct {
	platformService PlatformService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPlatformHandler(platformService PlatformService) *PlatformHandler {
	return &PlatformHandler{
		platformService: platformService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type PlatformRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

func (r PlatformRequest) toDomain(id string) *domain.Platform {
	return &domain.Platform{
		ID:          id,
		Name:        r.Name,
		Slug:        r.Slug,
		WebsiteURL:  r.WebsiteURL,
		Description: r.Description,
		LogoURL:     r.LogoURL,
	}
}

func (h *PlatformHandler) GetAllPlatforms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	platforms, err := h.platformService.GetAllPlatforms(ctx)
	if err != nil {
		logger.Error("Failed to find all platforms", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get all platforms",
		"platforms": platforms,
	})
}

func (h *PlatformHandler) GetPlatformByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	platform, err := h.platformService.GetPlatformByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to find platform", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get platform",
		"platform": platform,
	})
}

func (h *PlatformHandler) CreatePlatform(c echo.Context) error {
	var req PlatformRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate platform request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	platform, err := h.platformService.CreatePlatform(ctx, req.toDomain(""))
	if err != nil {
		logger.Error("Failed to create platform", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "platform successfully created",
		"platform": platform,
	})
}

func (h *PlatformHandler) UpdatePlatform(c echo.Context) error {
	var req PlatformRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate platform request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	platform, err := h.platformService.UpdatePlatform(ctx, req.toDomain(c.Param("id")))
	if err != nil {
		logger.Error("Failed to update platform", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update platform",
		"platform": platform,
	})
}

func (h *PlatformHandler) DeletePlatform(c echo.Context) error {
	platformID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.platformService.DeletePlatform(ctx, platformID); err != nil {
		logger.Error("Failed to delete platform", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "platform successfully deleted",
		"platform_id": platformID,
	})
}

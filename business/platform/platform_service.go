package platform

import (
	"context"
	"fmt"
	"strings"

	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

type PlatformRepository interface {
	Create(ctx context.Context, platform *domain.Platform) error
	FindByID(ctx context.Context, id string) (domain.Platform, error)
	FindAll(ctx context.Context) ([]domain.Platform, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CountCourses(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, platform *domain.Platform) error
	Delete(ctx context.Context, id string) error
}

type platformService struct {
	platformRepo PlatformRepository
	validate     *validator.Validate
}

func NewPlatformService(platformRepo PlatformRepository, validate *validator.Validate) *platformService {
	return &platformService{
		platformRepo: platformRepo,
		validate:     validate,
	}
}

func (s *platformService) GetAllPlatforms(ctx context.Context) ([]domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all platforms")
		return nil, fmt.Errorf("context error: %w", err)
	}

	platforms, err := s.platformRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all platforms", err)
		return nil, err
	}

	return platforms, nil
}

func (s *platformService) GetPlatformByID(ctx context.Context, id string) (domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get platform by id")
		return domain.Platform{}, fmt.Errorf("context error: %w", err)
	}

	platform, err := s.platformRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find platform", err)
		return domain.Platform{}, err
	}

	return platform, nil
}

func (s *platformService) normalize(ctx context.Context, platform *domain.Platform, excludeID string) error {
	platform.Name = strings.TrimSpace(platform.Name)
	if len(platform.Name) < 2 {
		logger.Error("Invalid platform data: name is required")
		return fmt.Errorf("%w: platform name must be at least 2 characters", domain.ErrInvalidInput)
	}

	if platform.WebsiteURL != "" {
		if err := s.validate.Var(platform.WebsiteURL, "url"); err != nil {
			logger.Error("Invalid platform website", err)
			return fmt.Errorf("%w: website_url must be a valid url", domain.ErrInvalidInput)
		}
	}

	platform.Slug = slug.Make(platform.Slug)
	if platform.Slug == "" {
		platform.Slug = slug.Make(platform.Name)
	}

	taken, err := s.platformRepo.SlugTaken(ctx, platform.Slug, excludeID)
	if err != nil {
		logger.Error("Failed to check platform slug", err)
		return err
	}
	if taken {
		return domain.ErrPlatformExists
	}

	return nil
}

func (s *platformService) CreatePlatform(ctx context.Context, platform *domain.Platform) (*domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create platform")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.normalize(ctx, platform, ""); err != nil {
		return nil, err
	}

	if err := s.platformRepo.Create(ctx, platform); err != nil {
		logger.Error("failed to create new platform", err)
		return nil, fmt.Errorf("failed to create platform: %w", err)
	}

	logger.Info("platform created successfully", "slug", platform.Slug)

	return platform, nil
}

func (s *platformService) UpdatePlatform(ctx context.Context, platform *domain.Platform) (*domain.Platform, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating platform")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.platformRepo.FindByID(ctx, platform.ID); err != nil {
		logger.Error("platform not found", err)
		return nil, err
	}

	if err := s.normalize(ctx, platform, platform.ID); err != nil {
		return nil, err
	}

	if err := s.platformRepo.Update(ctx, platform); err != nil {
		logger.Error("failed to update platform", err)
		return nil, fmt.Errorf("failed to update platform: %w", err)
	}

	updated, err := s.platformRepo.FindByID(ctx, platform.ID)
	if err != nil {
		logger.Error("failed to fetch updated platform", err)
		return nil, fmt.Errorf("failed to fetch updated platform: %w", err)
	}

	return &updated, nil
}

func (s *platformService) DeletePlatform(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting platform")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.platformRepo.FindByID(ctx, id); err != nil {
		logger.Error("platform not found", err)
		return err
	}

	n, err := s.platformRepo.CountCourses(ctx, id)
	if err != nil {
		logger.Error("failed to count platform courses", err)
		return err
	}
	if n > 0 {
		return domain.ErrPlatformInUse
	}

	if err := s.platformRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete platform", err)
		return fmt.Errorf("failed to delete platform: %w", err)
	}

	logger.Info("platform deleted successfully", "platform_id", id)

	return nil
}

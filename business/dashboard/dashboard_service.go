package dashboard

import (
	"context"
	"fmt"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
)

const RecentComparisons = 5

type StatsRepository interface {
	UserCounts(ctx context.Context, userID string) (domain.UserDashboard, error)
	Overview(ctx context.Context) (domain.AdminOverview, error)
}

type HistoryRepository interface {
	Recent(ctx context.Context, userID string, limit int) ([]domain.ComparisonHistory, error)
}

type dashboardService struct {
	statsRepo   StatsRepository
	historyRepo HistoryRepository
}

func NewDashboardService(statsRepo StatsRepository, historyRepo HistoryRepository) *dashboardService {
	return &dashboardService{
		statsRepo:   statsRepo,
		historyRepo: historyRepo,
	}
}

func (s *dashboardService) UserDashboard(ctx context.Context, userID string) (domain.UserDashboard, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get user dashboard")
		return domain.UserDashboard{}, fmt.Errorf("context error: %w", err)
	}

	d, err := s.statsRepo.UserCounts(ctx, userID)
	if err != nil {
		logger.Error("failed to count user activity", err)
		return domain.UserDashboard{}, err
	}

	recent, err := s.historyRepo.Recent(ctx, userID, RecentComparisons)
	if err != nil {
		logger.Error("failed to load recent comparisons", err)
		return domain.UserDashboard{}, err
	}
	if recent == nil {
		recent = []domain.ComparisonHistory{}
	}
	d.RecentComparisons = recent

	return d, nil
}

func (s *dashboardService) AdminOverview(ctx context.Context) (domain.AdminOverview, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get admin overview")
		return domain.AdminOverview{}, fmt.Errorf("context error: %w", err)
	}

	o, err := s.statsRepo.Overview(ctx)
	if err != nil {
		logger.Error("failed to count admin overview", err)
		return domain.AdminOverview{}, err
	}

	return o, nil
}

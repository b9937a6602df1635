package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// StatsService exposes the point-in-time content counters.
type StatsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

func (s *StatsService) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	var snap models.StatsSnapshot
	err := cache.Aside(ctx, cache.StatsKey, &snap, cache.StatsTTL, func() error {
		fresh, err := s.statsRepo.Snapshot(ctx)
		if err != nil {
			return err
		}
		snap = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

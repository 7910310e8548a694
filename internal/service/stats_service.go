package service

import (
	"context"

	"nocturne/internal/cache"
	"nocturne/internal/models"
	"nocturne/internal/repository"
)

// StatsService is the read-only aggregator for a post's engagement numbers.
type StatsService struct {
	statRepo repository.StatRepository
}

func NewStatsService(statRepo repository.StatRepository) *StatsService {
	return &StatsService{statRepo: statRepo}
}

// GetStats returns {views, likes, hasLiked} for a slug. viewerID 0 means
// anonymous; anonymous reads go through the cache since they carry no
// viewer-specific state. Reads may trail an in-flight write slightly.
func (s *StatsService) GetStats(ctx context.Context, slug string, viewerID uint) (*models.PostStats, error) {
	if viewerID == 0 {
		stats := &models.PostStats{}
		err := cache.Aside(ctx, cache.StatsKey(slug), stats, cache.StatsTTL, func() error {
			fresh, err := s.statRepo.GetStats(ctx, slug, 0)
			if err != nil {
				return err
			}
			*stats = *fresh
			return nil
		})
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return stats, nil
	}

	stats, err := s.statRepo.GetStats(ctx, slug, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

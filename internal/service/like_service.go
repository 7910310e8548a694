package service

import (
	"context"

	"nocturne/internal/cache"
	"nocturne/internal/models"
	"nocturne/internal/repository"
)

// LikeService toggles the per-user liked relation.
type LikeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

// ToggleLike flips the user's like for a slug and reports the new state.
// Two consecutive calls by the same user return to the original state.
func (s *LikeService) ToggleLike(ctx context.Context, userID uint, slug string) (bool, error) {
	if userID == 0 {
		return false, models.NewUnauthorizedError("Sign in to like posts")
	}
	if slug == "" {
		return false, models.NewValidationError("Slug is required")
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, slug)
	if err != nil {
		return false, models.NewInternalError(err)
	}

	// Cached renderings of this post are stale now.
	cache.InvalidatePost(ctx, slug)

	return liked, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nocturne/internal/cache"
	"nocturne/internal/middleware"
	"nocturne/internal/models"
	"nocturne/internal/repository"
)

// TagService maintains community-voted tags with a per-user budget.
type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// NormalizeTagName trims the raw name and truncates it to the stored length.
func NormalizeTagName(raw string) string {
	name := strings.TrimSpace(raw)
	runes := []rune(name)
	if len(runes) > models.MaxTagNameLen {
		name = string(runes[:models.MaxTagNameLen])
	}
	return name
}

// VoteTag casts the user's ballot for a tag on a slug. An empty name after
// normalization is a silent no-op; re-voting an already-backed tag is
// idempotent; the third distinct tag fails with a budget error.
func (s *TagService) VoteTag(ctx context.Context, userID uint, slug, rawName string) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Sign in to vote on tags")
	}
	if slug == "" {
		return models.NewValidationError("Slug is required")
	}

	name := NormalizeTagName(rawName)
	if name == "" {
		return nil
	}

	if err := s.tagRepo.Vote(ctx, userID, slug, name); err != nil {
		if errors.Is(err, repository.ErrVoteBudgetExceeded) {
			middleware.TagVotesRejected.Inc()
			return models.NewBudgetExceededError(fmt.Sprintf(
				"You can add or support at most %d tags per post", models.TagVoteBudget))
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateTags(ctx, slug)
	return nil
}

// ListTags returns the slug's tags by count descending with the viewer's
// vote state. viewerID 0 means anonymous.
func (s *TagService) ListTags(ctx context.Context, slug string, viewerID uint) ([]models.TagListing, error) {
	listings, err := s.tagRepo.List(ctx, slug, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

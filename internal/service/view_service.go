// Package service implements the engagement operations on top of the
// repository layer, mapping store outcomes onto the application error
// taxonomy.
package service

import (
	"context"
	"log/slog"

	"nocturne/internal/middleware"
	"nocturne/internal/repository"
)

// ViewService counts page views, deduplicated per origin address.
type ViewService struct {
	statRepo repository.StatRepository
}

func NewViewService(statRepo repository.StatRepository) *ViewService {
	return &ViewService{statRepo: statRepo}
}

// RecordView counts one view for slug from the given origin address. View
// counting is best-effort: store failures are logged and swallowed so a page
// render is never blocked by its own counter.
func (s *ViewService) RecordView(ctx context.Context, slug, originAddress string) {
	if slug == "" {
		return
	}
	if originAddress == "" {
		originAddress = "unknown"
	}

	counted, err := s.statRepo.IncrementView(ctx, slug, originAddress)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "view count failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return
	}

	outcome := "deduplicated"
	if counted {
		outcome = "counted"
	}
	middleware.ViewsCounted.WithLabelValues(outcome).Inc()
}

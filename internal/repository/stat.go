// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"nocturne/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatRepository defines the interface for view counting and stats reads.
type StatRepository interface {
	// IncrementView counts one view for (slug, ip) unless the same origin
	// already produced a counted view inside the dedup window. Reports
	// whether the stored counter was actually incremented.
	IncrementView(ctx context.Context, slug, ip string) (counted bool, err error)
	// GetStats returns views, derived like count and the viewer's like state.
	// viewerID 0 means anonymous.
	GetStats(ctx context.Context, slug string, viewerID uint) (*models.PostStats, error)
	// DeleteExpiredViews removes dedup records older than cutoff and returns
	// the number of rows removed.
	DeleteExpiredViews(ctx context.Context, cutoff time.Time) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

// NewStatRepository creates a new stat repository
func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

// ensurePostStat lazily creates the per-slug anchor row without touching the
// view counter. ON CONFLICT DO NOTHING makes concurrent creation safe.
func ensurePostStat(tx *gorm.DB, slug string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostStat{Slug: slug}).Error
}

func (r *statRepository) IncrementView(ctx context.Context, slug, ip string) (bool, error) {
	counted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		windowStart := time.Now().Add(-models.ViewDedupWindow)

		var existing models.PostView
		err := tx.Where("post_slug = ? AND ip = ? AND viewed_at >= ?", slug, ip, windowStart).
			First(&existing).Error
		if err == nil {
			// Already counted inside the window.
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Update-then-create keeps the upsert portable across dialects.
		res := tx.Model(&models.PostStat{}).
			Where("slug = ?", slug).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.PostStat{Slug: slug, Views: 1}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.PostView{
			PostSlug: slug,
			IP:       ip,
			ViewedAt: time.Now(),
		}).Error; err != nil {
			return err
		}

		counted = true
		return nil
	})
	return counted, err
}

func (r *statRepository) GetStats(ctx context.Context, slug string, viewerID uint) (*models.PostStats, error) {
	stats := &models.PostStats{}

	var stat models.PostStat
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&stat).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	stats.Views = stat.Views

	// Like count is always derived from Like rows so it can never drift.
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_slug = ?", slug).
		Count(&stats.Likes).Error; err != nil {
		return nil, err
	}

	if viewerID != 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND post_slug = ?", viewerID, slug).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.HasLiked = count > 0
	}

	return stats, nil
}

func (r *statRepository) DeleteExpiredViews(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("viewed_at < ?", cutoff).
		Delete(&models.PostView{})
	return res.RowsAffected, res.Error
}

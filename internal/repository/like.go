package repository

import (
	"context"
	"errors"

	"nocturne/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like toggling.
type LikeRepository interface {
	// Toggle flips the user's like for a slug inside one transaction and
	// reports the resulting state (true when the post is now liked).
	Toggle(ctx context.Context, userID uint, slug string) (liked bool, err error)
	// IsLiked reports whether a like row exists for (user, slug).
	IsLiked(ctx context.Context, userID uint, slug string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID uint, slug string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePostStat(tx, slug); err != nil {
			return err
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND post_slug = ?", userID, slug).
			First(&existing).Error
		switch {
		case err == nil:
			// Unlike: hard-delete the row, it is the sole source of truth.
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Like. ON CONFLICT DO NOTHING absorbs a concurrent toggle
			// racing on the (user_id, post_slug) unique index.
			liked = true
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: userID, PostSlug: slug}).Error
		default:
			return err
		}
	})
	return liked, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uint, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_slug = ?", userID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

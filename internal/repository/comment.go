package repository

import (
	"context"
	"errors"

	"nocturne/internal/models"

	"gorm.io/gorm"
)

// ErrParentNotFound is returned when a reply targets a comment that does not
// exist on the same post.
var ErrParentNotFound = errors.New("parent comment not found")

// ErrReplyDepth is returned when a reply targets a comment that is itself a
// reply; threads stay at one reply level.
var ErrReplyDepth = errors.New("replies to replies are not allowed")

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	// Create inserts a comment after validating its parent inside the same
	// transaction. Comments are immutable once created.
	Create(ctx context.Context, comment *models.Comment) error
	// ListBySlug returns a post's comments oldest first, with authors loaded.
	ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePostStat(tx, comment.PostSlug); err != nil {
			return err
		}

		if comment.ParentID != nil {
			var parent models.Comment
			err := tx.First(&parent, *comment.ParentID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			if err != nil {
				return err
			}
			if parent.PostSlug != comment.PostSlug {
				return ErrParentNotFound
			}
			if parent.ParentID != nil {
				return ErrReplyDepth
			}
		}

		return tx.Create(comment).Error
	})
}

func (r *commentRepository) ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_slug = ?", slug).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

package service

import (
	"context"
	"errors"
	"strings"

	"nocturne/internal/cache"
	"nocturne/internal/models"
	"nocturne/internal/repository"
)

const maxCommentLen = 10000

// CommentService maintains single-level comment threads per post.
type CommentService struct {
	commentRepo repository.CommentRepository
}

type PostCommentInput struct {
	UserID   uint
	Slug     string
	Content  string
	ParentID *uint
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// PostComment inserts a comment. Blank content is a silent no-op (nil comment,
// nil error); a missing or cross-post parent fails with NotFound; replying to
// a reply fails validation.
func (s *CommentService) PostComment(ctx context.Context, in PostCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Sign in to comment")
	}
	if in.Slug == "" {
		return nil, models.NewValidationError("Slug is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, nil
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		PostSlug: in.Slug,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrParentNotFound):
			return nil, models.NewNotFoundError("Parent comment", derefID(in.ParentID))
		case errors.Is(err, repository.ErrReplyDepth):
			return nil, models.NewValidationError("Replies to replies are not allowed")
		default:
			return nil, models.NewInternalError(err)
		}
	}

	cache.InvalidatePost(ctx, in.Slug)

	return comment, nil
}

// ListComments returns a post's comments oldest first, each carrying its
// author's display name and avatar.
func (s *CommentService) ListComments(ctx context.Context, slug string) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

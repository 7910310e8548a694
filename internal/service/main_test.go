package service

import (
	"context"
	"testing"
	"time"

	"nocturne/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statRepoStub is a stub for repository.StatRepository.
type statRepoStub struct {
	incrementViewFn      func(context.Context, string, string) (bool, error)
	getStatsFn           func(context.Context, string, uint) (*models.PostStats, error)
	deleteExpiredViewsFn func(context.Context, time.Time) (int64, error)
}

func (s *statRepoStub) IncrementView(ctx context.Context, slug, ip string) (bool, error) {
	return s.incrementViewFn(ctx, slug, ip)
}
func (s *statRepoStub) GetStats(ctx context.Context, slug string, viewerID uint) (*models.PostStats, error) {
	return s.getStatsFn(ctx, slug, viewerID)
}
func (s *statRepoStub) DeleteExpiredViews(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteExpiredViewsFn(ctx, cutoff)
}

func noopStatRepo() *statRepoStub {
	return &statRepoStub{
		incrementViewFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		getStatsFn: func(_ context.Context, _ string, _ uint) (*models.PostStats, error) {
			return &models.PostStats{}, nil
		},
		deleteExpiredViewsFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn  func(context.Context, uint, string) (bool, error)
	isLikedFn func(context.Context, uint, string) (bool, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID uint, slug string) (bool, error) {
	return s.toggleFn(ctx, userID, slug)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID uint, slug string) (bool, error) {
	return s.isLikedFn(ctx, userID, slug)
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	voteFn func(context.Context, uint, string, string) error
	listFn func(context.Context, string, uint) ([]models.TagListing, error)
}

func (s *tagRepoStub) Vote(ctx context.Context, userID uint, slug, name string) error {
	return s.voteFn(ctx, userID, slug, name)
}
func (s *tagRepoStub) List(ctx context.Context, slug string, viewerID uint) ([]models.TagListing, error) {
	return s.listFn(ctx, slug, viewerID)
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listBySlugFn func(context.Context, string) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error) {
	return s.listBySlugFn(ctx, slug)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.User, error)
	upsertFn  func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) Upsert(ctx context.Context, user *models.User) error {
	return s.upsertFn(ctx, user)
}

// assertAppErrorCode asserts that err is an AppError carrying the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

package repository

import (
	"context"
	"testing"

	"nocturne/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggle_FlipsState(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	createTestUser(t, db, 1, "Iris")

	liked, err := repo.Toggle(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := repo.IsLiked(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	assert.True(t, isLiked)

	liked, err = repo.Toggle(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	assert.False(t, liked)

	isLiked, err = repo.IsLiked(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	assert.False(t, isLiked)

	// Unlike hard-deletes, so no tombstone rows remain.
	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestLikeToggle_CreatesStatAnchorWithoutViews(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	stats := NewStatRepository(db)
	ctx := context.Background()

	createTestUser(t, db, 1, "Iris")

	liked, err := repo.Toggle(ctx, 1, "poetry/unvisited")
	require.NoError(t, err)
	assert.True(t, liked)

	// Liking a never-viewed post anchors the stat row at zero views.
	var stat models.PostStat
	require.NoError(t, db.First(&stat, "slug = ?", "poetry/unvisited").Error)
	assert.Equal(t, int64(0), stat.Views)

	got, err := stats.GetStats(ctx, "poetry/unvisited", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)
	assert.Equal(t, int64(1), got.Likes)
	assert.True(t, got.HasLiked)
}

func TestLikeToggle_UsersAreIndependent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	createTestUser(t, db, 1, "Iris")
	createTestUser(t, db, 2, "Theo")

	_, err := repo.Toggle(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, 2, "poetry/first-light")
	require.NoError(t, err)

	// User 1 unliking leaves user 2's like untouched.
	liked, err := repo.Toggle(ctx, 1, "poetry/first-light")
	require.NoError(t, err)
	assert.False(t, liked)

	isLiked, err := repo.IsLiked(ctx, 2, "poetry/first-light")
	require.NoError(t, err)
	assert.True(t, isLiked)
}

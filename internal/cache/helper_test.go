package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedStats struct {
	Views int64 `json:"views"`
	Likes int64 `json:"likes"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })

	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedStats
	err := Aside(ctx, StatsKey("poetry/first-light"), &got, StatsTTL, func() error {
		fetches++
		got = cachedStats{Views: 12, Likes: 3}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, int64(12), got.Views)

	// Second read is served from the cache.
	var again cachedStats
	err = Aside(ctx, StatsKey("poetry/first-light"), &again, StatsTTL, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, int64(12), again.Views)

	assert.True(t, mr.Exists("stats:poetry/first-light"))
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var got cachedStats
	err := Aside(ctx, StatsKey("poetry/first-light"), &got, StatsTTL, func() error {
		return errors.New("store down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("stats:poetry/first-light"))
}

func TestAside_WithoutRedisFallsThrough(t *testing.T) {
	SetClient(nil)

	fetches := 0
	var got cachedStats
	err := Aside(context.Background(), StatsKey("poetry/first-light"), &got, StatsTTL, func() error {
		fetches++
		got.Views = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, int64(5), got.Views)
}

func TestSetJSON_AppliesTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, StatsKey("poetry/first-light"), cachedStats{Views: 1}, time.Minute))
	require.True(t, mr.Exists("stats:poetry/first-light"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("stats:poetry/first-light"))
}

func TestInvalidatePost_DropsStatsAndPage(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, StatsKey("poetry/first-light"), cachedStats{}, time.Minute))
	require.NoError(t, SetJSON(ctx, PageKey("poetry/first-light"), "body", time.Minute))
	require.NoError(t, SetJSON(ctx, TagsKey("poetry/first-light"), []string{"mist"}, time.Minute))

	InvalidatePost(ctx, "poetry/first-light")

	assert.False(t, mr.Exists("stats:poetry/first-light"))
	assert.False(t, mr.Exists("page:poetry/first-light"))
	// Tag listings are invalidated separately, by tag votes.
	assert.True(t, mr.Exists("tags:poetry/first-light"))
}

func TestInvalidateTags_DropsTagsAndPage(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, TagsKey("poetry/first-light"), []string{"mist"}, time.Minute))
	require.NoError(t, SetJSON(ctx, PageKey("poetry/first-light"), "body", time.Minute))

	InvalidateTags(ctx, "poetry/first-light")

	assert.False(t, mr.Exists("tags:poetry/first-light"))
	assert.False(t, mr.Exists("page:poetry/first-light"))
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	StatsKeyPrefix = "stats:%s"
	PageKeyPrefix  = "page:%s"
	TagsKeyPrefix  = "tags:%s"
)

const (
	// StatsTTL is short: anonymous readers may see slightly stale counters,
	// which the read path explicitly tolerates.
	StatsTTL = 1 * time.Minute
	PageTTL  = 10 * time.Minute
	TagsTTL  = 5 * time.Minute
)

func StatsKey(slug string) string {
	return fmt.Sprintf(StatsKeyPrefix, slug)
}

func PageKey(slug string) string {
	return fmt.Sprintf(PageKeyPrefix, slug)
}

func TagsKey(slug string) string {
	return fmt.Sprintf(TagsKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops every cached rendering derived from a post's
// engagement state. Called after each successful engagement write.
func InvalidatePost(ctx context.Context, slug string) {
	Invalidate(ctx, StatsKey(slug))
	Invalidate(ctx, PageKey(slug))
}

func InvalidateTags(ctx context.Context, slug string) {
	Invalidate(ctx, TagsKey(slug))
	Invalidate(ctx, PageKey(slug))
}

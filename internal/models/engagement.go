// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// PostStat is the per-slug anchor row for all engagement data. It is created
// lazily on the first engagement write for a slug and never deleted. Views is
// the only stored counter; the like count is always derived from Like rows.
type PostStat struct {
	Slug      string    `gorm:"primaryKey;size:191" json:"slug"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostView records a single counted view for (slug, ip). Rows exist only for
// deduplication: at most one counted view per slug per origin address per
// rolling 24-hour window. The sweeper deletes rows older than the window.
type PostView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostSlug string    `gorm:"size:191;not null;index:idx_post_views_slug_ip" json:"post_slug"`
	IP       string    `gorm:"size:64;not null;index:idx_post_views_slug_ip" json:"ip"`
	ViewedAt time.Time `gorm:"not null;index" json:"viewed_at"`
}

// Like marks that a user likes a post. Row existence is the sole source of
// truth; rows are created and hard-deleted by the like toggle, never updated.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_slug" json:"user_id"`
	PostSlug  string    `gorm:"size:191;not null;uniqueIndex:idx_likes_user_slug" json:"post_slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is an immutable comment on a post. ParentID, when set, references a
// root comment on the same slug (one reply level).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"author"`
	PostSlug  string    `gorm:"size:191;not null;index" json:"post_slug"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is a community-nominated label, globally unique by name. Names are
// trimmed and at most 10 characters; created on first use by anyone.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:10;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTag links a tag to a post and carries the vote count. Count must equal
// the number of UserTagVote rows referencing it; both are written in the same
// transaction.
type PostTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostSlug  string    `gorm:"size:191;not null;uniqueIndex:idx_post_tags_slug_tag" json:"post_slug"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_post_tags_slug_tag" json:"tag_id"`
	Tag       Tag       `gorm:"foreignKey:TagID" json:"tag"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// UserTagVote is the ballot backing a PostTag's count, unique per
// (user, post-tag). A user holds at most two ballots per slug.
type UserTagVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_tag_votes" json:"user_id"`
	PostTagID uint      `gorm:"not null;uniqueIndex:idx_user_tag_votes" json:"post_tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TagVoteBudget is the maximum number of distinct tags a single user may back
// on a single post.
const TagVoteBudget = 2

// MaxTagNameLen is the length tag names are truncated to before storage.
const MaxTagNameLen = 10

// ViewDedupWindow is the rolling period within which repeat views from the
// same origin address are not re-counted.
const ViewDedupWindow = 24 * time.Hour

// PostStats is the read model returned to the UI for a single post.
type PostStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	HasLiked bool  `json:"has_liked"`
}

// TagListing is one entry of a post's tag list, ordered by count descending.
type TagListing struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	HasVoted bool   `json:"has_voted"`
}

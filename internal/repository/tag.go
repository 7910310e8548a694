package repository

import (
	"context"
	"errors"

	"nocturne/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVoteBudgetExceeded is returned when a vote would take a user past the
// per-post tag vote budget.
var ErrVoteBudgetExceeded = errors.New("tag vote budget exceeded")

// TagRepository defines the interface for collaborative tag voting.
type TagRepository interface {
	// Vote records one ballot for (user, slug, tag name) inside a single
	// transaction: tag and post-tag rows are created on first use, the
	// ballot and the stored count move together, and re-voting a tag the
	// user already backs is a no-op. Returns ErrVoteBudgetExceeded once the
	// user holds the maximum number of ballots for the slug.
	Vote(ctx context.Context, userID uint, slug, name string) error
	// List returns the slug's tags ordered by count descending, annotated
	// with the viewer's vote state. viewerID 0 means anonymous.
	List(ctx context.Context, slug string, viewerID uint) ([]models.TagListing, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Vote(ctx context.Context, userID uint, slug, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePostStat(tx, slug); err != nil {
			return err
		}

		// Serialize votes per slug on the stat row so two concurrent votes
		// by one user cannot both pass the budget check. SQLite runs write
		// transactions serially already and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			var stat models.PostStat
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("slug = ?", slug).
				First(&stat).Error; err != nil {
				return err
			}
		}

		var ballots int64
		if err := tx.Model(&models.UserTagVote{}).
			Joins("JOIN post_tags ON post_tags.id = user_tag_votes.post_tag_id").
			Where("user_tag_votes.user_id = ? AND post_tags.post_slug = ?", userID, slug).
			Count(&ballots).Error; err != nil {
			return err
		}
		if ballots >= models.TagVoteBudget {
			return ErrVoteBudgetExceeded
		}

		var tag models.Tag
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}

		var postTag models.PostTag
		if err := tx.Where("post_slug = ? AND tag_id = ?", slug, tag.ID).
			FirstOrCreate(&postTag, models.PostTag{PostSlug: slug, TagID: tag.ID}).Error; err != nil {
			return err
		}

		var existing models.UserTagVote
		err := tx.Where("user_id = ? AND post_tag_id = ?", userID, postTag.ID).
			First(&existing).Error
		if err == nil {
			// Already voted for this tag; idempotent.
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Ballot and stored count commit together or not at all.
		if err := tx.Create(&models.UserTagVote{UserID: userID, PostTagID: postTag.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.PostTag{}).
			Where("id = ?", postTag.ID).
			UpdateColumn("count", gorm.Expr("count + ?", 1)).Error
	})
}

func (r *tagRepository) List(ctx context.Context, slug string, viewerID uint) ([]models.TagListing, error) {
	var postTags []models.PostTag
	if err := r.db.WithContext(ctx).
		Preload("Tag").
		Where("post_slug = ?", slug).
		Order("count DESC, id ASC").
		Find(&postTags).Error; err != nil {
		return nil, err
	}

	voted := map[uint]bool{}
	if viewerID != 0 && len(postTags) > 0 {
		ids := make([]uint, 0, len(postTags))
		for _, pt := range postTags {
			ids = append(ids, pt.ID)
		}
		var votedIDs []uint
		if err := r.db.WithContext(ctx).
			Model(&models.UserTagVote{}).
			Where("user_id = ? AND post_tag_id IN ?", viewerID, ids).
			Pluck("post_tag_id", &votedIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range votedIDs {
			voted[id] = true
		}
	}

	listings := make([]models.TagListing, 0, len(postTags))
	for _, pt := range postTags {
		listings = append(listings, models.TagListing{
			ID:       pt.ID,
			Name:     pt.Tag.Name,
			Count:    pt.Count,
			HasVoted: voted[pt.ID],
		})
	}
	return listings, nil
}

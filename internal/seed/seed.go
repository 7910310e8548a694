// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"nocturne/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	ViewsPerPost int
	ShouldClean  bool
}

var tagPool = []string{
	"golang", "poetry", "night", "drafts", "mist", "fog", "rain",
	"quiet", "city", "memory", "winter", "sea", "lamplight", "ink",
}

// Seeder populates the engagement tables with demo data for a set of
// content slugs.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Seed populates the database with test engagement data for the given slugs.
func (s *Seeder) Seed(slugs []string, opts Options) error {
	log.Printf("🌱 Starting engagement seeding for %d posts with %d users...", len(slugs), opts.NumUsers)

	if len(slugs) == 0 {
		return fmt.Errorf("no content slugs to seed against")
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	for _, slug := range slugs {
		if err := s.seedViews(slug, opts.ViewsPerPost); err != nil {
			return fmt.Errorf("failed to seed views for %s: %w", slug, err)
		}
		if err := s.seedLikes(slug, users); err != nil {
			return fmt.Errorf("failed to seed likes for %s: %w", slug, err)
		}
		if err := s.seedComments(slug, users); err != nil {
			return fmt.Errorf("failed to seed comments for %s: %w", slug, err)
		}
		if err := s.seedTagVotes(slug, users); err != nil {
			return fmt.Errorf("failed to seed tag votes for %s: %w", slug, err)
		}
	}
	log.Printf("✓ %d posts seeded", len(slugs))

	log.Println("🎉 Engagement seeding completed successfully!")
	return nil
}

// ClearAll truncates every engagement table.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE user_tag_votes, post_tags, tags, comments, likes, post_views, post_stats, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			ID:        uint(i + 1),
			Name:      gofakeit.Name(),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", user.Name, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// seedViews writes the stat counter and a spread of recent dedup rows. Only
// views inside the dedup window keep their PostView row, mirroring what the
// sweeper would leave behind.
func (s *Seeder) seedViews(slug string, count int) error {
	if count <= 0 {
		count = s.r.Intn(400) + 20
	}

	stat := models.PostStat{Slug: slug, Views: int64(count)}
	if err := s.db.Create(&stat).Error; err != nil {
		return err
	}

	recent := s.r.Intn(10) + 1
	for i := 0; i < recent; i++ {
		view := models.PostView{
			PostSlug: slug,
			IP:       gofakeit.IPv4Address(),
			ViewedAt: time.Now().Add(-time.Duration(s.r.Intn(23)) * time.Hour),
		}
		if err := s.db.Create(&view).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedLikes(slug string, users []models.User) error {
	for _, user := range users {
		if s.r.Float32() > 0.4 {
			continue
		}
		like := models.Like{UserID: user.ID, PostSlug: slug}
		if err := s.db.Create(&like).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedComments(slug string, users []models.User) error {
	numRoots := s.r.Intn(5)
	for i := 0; i < numRoots; i++ {
		author := users[s.r.Intn(len(users))]
		root := models.Comment{
			Content:  gofakeit.Sentence(s.r.Intn(12) + 3),
			UserID:   author.ID,
			PostSlug: slug,
		}
		if err := s.db.Create(&root).Error; err != nil {
			return err
		}

		numReplies := s.r.Intn(3)
		for j := 0; j < numReplies; j++ {
			replier := users[s.r.Intn(len(users))]
			reply := models.Comment{
				Content:  gofakeit.Sentence(s.r.Intn(8) + 2),
				UserID:   replier.ID,
				PostSlug: slug,
				ParentID: &root.ID,
			}
			if err := s.db.Create(&reply).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// seedTagVotes nominates a few tags per slug and casts ballots, respecting
// the per-user budget so the seeded data satisfies the same constraints as
// live traffic.
func (s *Seeder) seedTagVotes(slug string, users []models.User) error {
	numTags := s.r.Intn(4) + 1
	names := s.pickTagNames(numTags)

	ballots := make(map[uint]int, len(users))

	for _, name := range names {
		var tag models.Tag
		if err := s.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}

		postTag := models.PostTag{PostSlug: slug, TagID: tag.ID}
		if err := s.db.Create(&postTag).Error; err != nil {
			return err
		}

		count := 0
		for _, user := range users {
			if ballots[user.ID] >= models.TagVoteBudget || s.r.Float32() > 0.3 {
				continue
			}
			vote := models.UserTagVote{UserID: user.ID, PostTagID: postTag.ID}
			if err := s.db.Create(&vote).Error; err != nil {
				return err
			}
			ballots[user.ID]++
			count++
		}

		if err := s.db.Model(&models.PostTag{}).
			Where("id = ?", postTag.ID).
			UpdateColumn("count", count).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) pickTagNames(n int) []string {
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		name := tagPool[s.r.Intn(len(tagPool))]
		if seen[name] {
			continue
		}
		seen[name] = true
		picked = append(picked, strings.TrimSpace(name))
	}
	return picked
}

// Command main runs the engagement seeder for Nocturne.
package main

import (
	"flag"
	"log"

	"nocturne/internal/config"
	"nocturne/internal/content"
	"nocturne/internal/database"
	"nocturne/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	viewsPerPost := flag.Int("views", 0, "Views per post (0 = random)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Engagement Seeder")
	log.Println("====================")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Seed against real content slugs so the dev UI lines up.
	store := content.NewStore(cfg.ContentDir)
	categories, err := store.Categories()
	if err != nil {
		log.Fatalf("Failed to scan content directory: %v", err)
	}

	var slugs []string
	for _, category := range categories {
		posts, err := store.List(category)
		if err != nil {
			log.Fatalf("Failed to list %s: %v", category, err)
		}
		for _, p := range posts {
			slugs = append(slugs, p.Slug)
		}
	}
	if len(slugs) == 0 {
		log.Println("⚠️  No content found; seeding against placeholder slugs")
		slugs = []string{"poetry/first-light", "essays/on-quiet", "notes/hello"}
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(slugs, seed.Options{
		NumUsers:     *numUsers,
		ViewsPerPost: *viewsPerPost,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Engagement tables are populated with test data.")
}

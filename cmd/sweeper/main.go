// Command main purges expired view-dedup rows. It is intended to run on a
// schedule (cron or a container job) as an alternative to hitting the
// key-protected cleanup endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"nocturne/internal/config"
	"nocturne/internal/database"
	"nocturne/internal/models"
	"nocturne/internal/repository"
)

func main() {
	window := flag.Duration("window", models.ViewDedupWindow, "Dedup window; rows older than this are deleted")
	timeout := flag.Duration("timeout", 2*time.Minute, "Abort the sweep after this long")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cutoff := time.Now().Add(-*window)
	deleted, err := repository.NewStatRepository(db).DeleteExpiredViews(ctx, cutoff)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	log.Printf("Swept %d expired view records (older than %s)", deleted, cutoff.Format(time.RFC3339))
}

// Command seed populates the database with demo users, images, and
// engagement data for local development.
package main

import (
	"context"
	"flag"
	"log"

	"photostream/internal/config"
	"photostream/internal/database"
	"photostream/internal/seed"
	"photostream/internal/storage"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numImages := flag.Int("images", 100, "Number of images to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d images, clean=%v", *numUsers, *numImages, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store, err := storage.NewMinioStore(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	if err != nil {
		log.Fatalf("Failed to set up object storage: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, store)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(ctx, *numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedProfiles(ctx, users); err != nil {
		log.Fatalf("Profile seeding failed: %v", err)
	}
	images, err := s.SeedImages(ctx, users, *numImages)
	if err != nil {
		log.Fatalf("Image seeding failed: %v", err)
	}
	if err := s.SeedEngagement(ctx, users, images); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}

// Command seed fills the database with demo users, categories, posts and engagement.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Delete existing data before seeding")
	categoriesPath := flag.String("categories", "", "YAML category fixture (defaults to the built-in list)")
	maxLikes := flag.Int("max-likes", 10, "Upper bound of likes per post")
	maxComments := flag.Int("max-comments", 6, "Upper bound of comments per post")
	drafts := flag.Float64("drafts", 0.1, "Share of posts saved as drafts")
	fast := flag.Bool("fast", false, "Hash the shared password with the minimum bcrypt cost")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.ApplySchema(context.Background(), db, cfg); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	categories, err := seed.DefaultCategories()
	if *categoriesPath != "" {
		categories, err = seed.LoadCategories(*categoriesPath)
	}
	if err != nil {
		log.Fatalf("Failed to load categories: %v", err)
	}

	seeder, err := seed.NewSeeder(db, seed.Options{SkipBcrypt: *fast, DraftRatio: *drafts})
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	result, err := seeder.Run(seed.Plan{
		Users:              *numUsers,
		Posts:              *numPosts,
		Clean:              *shouldClean,
		Categories:         categories,
		MaxLikesPerPost:    *maxLikes,
		MaxCommentsPerPost: *maxComments,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d categories, %d posts, %d likes, %d comments",
		result.Users, result.Categories, result.Posts, result.Likes, result.Comments)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}

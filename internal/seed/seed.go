package seed

import (
	"fmt"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

const batchSize = 100

// Plan describes one seeding run.
type Plan struct {
	Users      int
	Posts      int
	Clean      bool
	Categories []CategoryFixture
	// MaxLikesPerPost and MaxCommentsPerPost bound the engagement per post.
	MaxLikesPerPost    int
	MaxCommentsPerPost int
}

// Result counts what a run created.
type Result struct {
	Users      int
	Categories int
	Posts      int
	Likes      int
	Comments   int
}

// Seeder populates a database with demo blog data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	factory, err := NewFactory(db, opts)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll deletes every row, children before parents.
func (s *Seeder) ClearAll() error {
	middleware.Logger.Info("clearing existing data")
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.Category{},
		&models.Profile{},
		&models.User{},
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run executes plan and reports what it created.
func (s *Seeder) Run(plan Plan) (*Result, error) {
	if plan.Clean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	result := &Result{}

	categories, err := SeedCategories(s.db, plan.Categories)
	if err != nil {
		return nil, err
	}
	result.Categories = len(categories)

	users, err := s.SeedUsers(plan.Users)
	if err != nil {
		return nil, err
	}
	result.Users = len(users)
	if len(users) == 0 {
		return result, nil
	}

	posts, err := s.SeedPosts(users, categories, plan.Posts)
	if err != nil {
		return nil, err
	}
	result.Posts = len(posts)

	likes, comments, err := s.SeedEngagement(users, posts, plan.MaxLikesPerPost, plan.MaxCommentsPerPost)
	if err != nil {
		return nil, err
	}
	result.Likes = likes
	result.Comments = comments

	middleware.Logger.Info("seeding complete",
		slog.Int("users", result.Users),
		slog.Int("categories", result.Categories),
		slog.Int("posts", result.Posts),
		slog.Int("likes", result.Likes),
		slog.Int("comments", result.Comments),
	)
	return result, nil
}

// SeedUsers creates count users with profiles.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			// generated usernames can collide; skip the duplicate
			middleware.Logger.Warn("skipping seed user", slog.String("error", err.Error()))
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts spreads count posts over random authors and categories. About
// one post in five has no category.
func (s *Seeder) SeedPosts(users []*models.User, categories []*models.Category, count int) ([]*models.Post, error) {
	rng := s.factory.rng
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rng.Intn(len(users))]
		var category *models.Category
		if len(categories) > 0 && rng.Intn(5) != 0 {
			category = categories[rng.Intn(len(categories))]
		}
		posts = append(posts, s.factory.BuildPost(author, category))
	}
	if err := s.factory.CreatePostsBatch(posts, batchSize); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	return posts, nil
}

// SeedEngagement adds likes and threaded comments to published posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post, maxLikes, maxComments int) (int, int, error) {
	rng := s.factory.rng
	likes, comments := 0, 0

	for _, post := range posts {
		if !post.IsPublished() {
			continue
		}

		if maxLikes > 0 {
			n := rng.Intn(min(maxLikes, len(users)) + 1)
			for _, idx := range rng.Perm(len(users))[:n] {
				if err := s.factory.CreateLike(users[idx], post); err != nil {
					return likes, comments, fmt.Errorf("create like: %w", err)
				}
				likes++
			}
		}

		if maxComments > 0 {
			var thread []*models.Comment
			for n := rng.Intn(maxComments + 1); n > 0; n-- {
				var parent *models.Comment
				if len(thread) > 0 && rng.Intn(3) == 0 {
					parent = thread[rng.Intn(len(thread))]
				}
				comment, err := s.factory.CreateComment(users[rng.Intn(len(users))], post, parent)
				if err != nil {
					return likes, comments, fmt.Errorf("create comment: %w", err)
				}
				thread = append(thread, comment)
				comments++
			}
		}
	}
	return likes, comments, nil
}

// Package seed provides helpers to create demo data for the blog database.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "Passw0rd!seed"

// Options tunes the generated data.
type Options struct {
	// SkipBcrypt hashes with the minimum cost, for fast local runs and tests.
	SkipBcrypt bool
	// MaxDays spreads post and comment dates over this many past days.
	MaxDays int
	// DraftRatio is the share of posts saved as drafts.
	DraftRatio float64
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

// Factory builds blog entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	hash string
}

// NewFactory creates a Factory bound to db.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	cost := bcrypt.DefaultCost
	if opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:   db,
		opts: opts,
		// #nosec G404: acceptable for seeding
		rng:  rand.New(rand.NewSource(seed)),
		hash: string(hash),
	}, nil
}

// pastTime returns a random moment within the configured window.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rng.Int63n(int64(f.opts.MaxDays) * int64(24*time.Hour)))
	return time.Now().Add(-back)
}

// CreateUser persists a user with a filled-in profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username())
	username = fmt.Sprintf("%s%d", strings.Map(keepUsernameRune, username), gofakeit.Number(100, 9999))
	if len(username) > 30 {
		username = username[len(username)-30:]
	}

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: f.hash,
		Profile: &models.Profile{
			Bio:      gofakeit.Sentence(12),
			Avatar:   models.DefaultAvatar,
			Website:  "https://" + gofakeit.DomainName(),
			Location: gofakeit.City(),
		},
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func keepUsernameRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		return r
	default:
		return -1
	}
}

// BuildPost constructs an unsaved post by author, optionally in category.
func (f *Factory) BuildPost(author *models.User, category *models.Category, overrides ...func(*models.Post)) *models.Post {
	paragraphs := 2 + f.rng.Intn(6)
	post := &models.Post{
		Title:      strings.TrimSuffix(gofakeit.Sentence(3+f.rng.Intn(6)), "."),
		Content:    gofakeit.Paragraph(paragraphs, 4, 12, "\n\n"),
		AuthorID:   author.ID,
		Status:     models.PostStatusPublished,
		Views:      uint(f.rng.Intn(500)),
		DatePosted: f.pastTime(),
	}
	if category != nil {
		post.CategoryID = &category.ID
	}
	if f.rng.Float64() < f.opts.DraftRatio {
		post.Status = models.PostStatusDraft
		post.Views = 0
	}
	if f.rng.Float64() < 0.4 {
		post.Image = fmt.Sprintf("post_images/%s.jpg", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists posts in one statement per batch.
func (f *Factory) CreatePostsBatch(posts []*models.Post, batchSize int) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("Author", "Category").CreateInBatches(posts, batchSize).Error
}

// CreateComment persists a comment, or a reply when parent is set.
func (f *Factory) CreateComment(author *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    gofakeit.Sentence(6 + f.rng.Intn(20)),
		AuthorID:   author.ID,
		PostID:     post.ID,
		DatePosted: f.pastTime(),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
		if comment.DatePosted.Before(parent.DatePosted) {
			comment.DatePosted = parent.DatePosted.Add(time.Duration(1+f.rng.Intn(600)) * time.Minute)
		}
	}
	if comment.DatePosted.Before(post.DatePosted) {
		comment.DatePosted = post.DatePosted.Add(time.Duration(1+f.rng.Intn(600)) * time.Minute)
	}

	if err := f.db.Omit("Author", "Post", "Replies").Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Omit("User", "Post").Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

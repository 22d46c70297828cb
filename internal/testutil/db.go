// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"fmt"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plaintext password of every user made by CreateUser.
const Password = "Str0ng!Passw0rd"

// NewTestDB returns a private in-memory SQLite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser inserts a user with a default profile.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Omit("Profile").Create(user).Error)

	profile := models.NewProfile(user.ID)
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

// PostOption customizes a post made by CreatePost.
type PostOption func(*models.Post)

// WithStatus sets the post status.
func WithStatus(status models.PostStatus) PostOption {
	return func(p *models.Post) { p.Status = status }
}

// WithCategory files the post under category.
func WithCategory(category *models.Category) PostOption {
	return func(p *models.Post) { p.CategoryID = &category.ID }
}

// WithContent replaces the default body.
func WithContent(content string) PostOption {
	return func(p *models.Post) { p.Content = content }
}

// WithViews presets the view counter.
func WithViews(views uint) PostOption {
	return func(p *models.Post) { p.Views = views }
}

// CreatePost inserts a published post by author.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, title string, opts ...PostOption) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    title,
		Content:  "Body of " + title,
		AuthorID: author.ID,
		Status:   models.PostStatusPublished,
	}
	for _, opt := range opts {
		opt(post)
	}
	require.NoError(t, db.Omit("Author", "Category").Create(post).Error)
	return post
}

// CreateComment inserts a comment, optionally as a reply to parent.
func CreateComment(t *testing.T, db *gorm.DB, post *models.Post, author *models.User, content string, parent *models.Comment) *models.Comment {
	t.Helper()

	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: content}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	require.NoError(t, db.Omit("Post", "Author", "Replies").Create(comment).Error)
	return comment
}

// CreateLike inserts a like.
func CreateLike(t *testing.T, db *gorm.DB, user *models.User, post *models.Post) {
	t.Helper()
	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error)
}

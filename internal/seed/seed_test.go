package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	categories, err := DefaultCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	slugs := map[string]string{}
	for _, c := range categories {
		slugs[c.Name] = c.Slug
	}
	assert.Equal(t, "technology", slugs["Technology"])
	assert.Equal(t, "cafe-culture", slugs["Café Culture"])
}

func TestParseCategoriesRejectsBadFixtures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "categories:\n  - slug: x\n"},
		{"duplicate slug", "categories:\n  - name: Go\n  - name: GO\n"},
		{"invalid slug", "categories:\n  - name: Go\n    slug: Not A Slug\n"},
		{"unknown field", "categories:\n  - name: Go\n    colour: blue\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategories(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Go Tips\n    description: Small things\n"), 0o600))

	categories, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "go-tips", categories[0].Slug)

	_, err = LoadCategories(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	fixtures := []CategoryFixture{{Name: "Go", Slug: "go", Description: "v1"}}

	first, err := SeedCategories(db, fixtures)
	require.NoError(t, err)

	fixtures[0].Description = "v2"
	second, err := SeedCategories(db, fixtures)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)

	var stored []models.Category
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "v2", stored[0].Description)
}

func TestSeederRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	categories, err := DefaultCategories()
	require.NoError(t, err)

	seeder, err := NewSeeder(db, Options{SkipBcrypt: true, Seed: 42, DraftRatio: 0.2})
	require.NoError(t, err)

	plan := Plan{
		Users:              8,
		Posts:              30,
		Categories:         categories,
		MaxLikesPerPost:    5,
		MaxCommentsPerPost: 4,
	}
	result, err := seeder.Run(plan)
	require.NoError(t, err)
	assert.Equal(t, len(categories), result.Categories)
	assert.Equal(t, 30, result.Posts)

	var users, profiles, posts, likes, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(result.Users), users)
	assert.Equal(t, users, profiles, "every seeded user has a profile")
	assert.Equal(t, int64(30), posts)
	assert.Equal(t, int64(result.Likes), likes)
	assert.Equal(t, int64(result.Comments), comments)

	var orphanReplies int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(*) FROM comments c JOIN comments p ON p.id = c.parent_id WHERE p.post_id <> c.post_id`,
	).Scan(&orphanReplies).Error)
	assert.Zero(t, orphanReplies, "replies stay on their parent's post")

	var draftLikes int64
	require.NoError(t, db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.status = ?", models.PostStatusDraft).
		Count(&draftLikes).Error)
	assert.Zero(t, draftLikes)

	t.Run("clean run starts over", func(t *testing.T) {
		plan.Clean = true
		plan.Posts = 5
		result, err := seeder.Run(plan)
		require.NoError(t, err)

		var posts int64
		require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
		assert.Equal(t, int64(5), posts)
		assert.Equal(t, 5, result.Posts)
	})
}

func TestSeederWithoutUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	seeder, err := NewSeeder(db, Options{SkipBcrypt: true})
	require.NoError(t, err)

	result, err := seeder.Run(Plan{Posts: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Posts)
}

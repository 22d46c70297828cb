package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory_GeneratesSlug(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(noopCategoryRepo())

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "  Café Culture ", Description: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, "Café Culture", category.Name)
	assert.Equal(t, "cafe-culture", category.Slug)
}

func TestCategoryService_CreateCategory_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(noopCategoryRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCategoryInput
		field string
	}{
		{name: "empty name", input: CreateCategoryInput{Name: " "}, field: "name"},
		{name: "long name", input: CreateCategoryInput{Name: strings.Repeat("n", 101)}, field: "name"},
		{name: "unsluggable name", input: CreateCategoryInput{Name: "!!!"}, field: "name"},
		{name: "bad slug", input: CreateCategoryInput{Name: "Go", Slug: "Not A Slug"}, field: "slug"},
		{name: "long description", input: CreateCategoryInput{Name: "Go", Description: strings.Repeat("d", 301)}, field: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, tt.input)
			assertFieldError(t, err, tt.field)
		})
	}
}

func TestCategoryService_CreateCategory_Conflict(t *testing.T) {
	t.Parallel()

	repo := noopCategoryRepo()
	repo.createFn = func(_ context.Context, _ *models.Category) error {
		return models.NewConflictError("Category already exists", nil)
	}
	svc := NewCategoryService(repo)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Go"})
	assertAppError(t, err, models.CodeConflict)
}

func TestDashboardService_GetDashboard(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.authorStatsFn = func(_ context.Context, _ uint) (*models.AuthorStats, error) {
		return &models.AuthorStats{TotalPosts: 2, TotalViews: 7}, nil
	}
	var orders []string
	posts.listByAuthorFn = func(_ context.Context, authorID uint, order repository.PostOrder, limit int) ([]*models.Post, error) {
		assert.Equal(t, uint(3), authorID)
		assert.Equal(t, DashboardLimit, limit)
		orders = append(orders, string(order))
		return []*models.Post{}, nil
	}
	svc := NewDashboardService(posts)

	dashboard, err := svc.GetDashboard(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.TotalPosts)
	assert.Equal(t, int64(7), dashboard.TotalViews)
	assert.Equal(t, []string{"newest", "most_viewed"}, orders)
}

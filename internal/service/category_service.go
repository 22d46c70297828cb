package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/slug"
)

const (
	maxCategoryNameLen        = 100
	maxCategoryDescriptionLen = 300
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}

// CreateCategory adds a category; the slug is derived from the name when omitted.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewFieldError("name", "Name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, models.NewFieldError("name", "Name too long (max 100 characters)")
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxCategoryDescriptionLen {
		return nil, models.NewFieldError("description", "Description too long (max 300 characters)")
	}

	categorySlug := strings.TrimSpace(in.Slug)
	if categorySlug == "" {
		categorySlug = slug.Generate(name)
		if categorySlug == "" {
			return nil, models.NewFieldError("name", "Name must contain at least one letter or digit")
		}
	} else if !slug.Valid(categorySlug) {
		return nil, models.NewFieldError("slug", "Slug may only contain lowercase letters, digits, hyphens and underscores")
	}

	category := &models.Category{
		Name:        name,
		Slug:        categorySlug,
		Description: description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return nil, models.NewConflictError("A category with this name or slug already exists", err)
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category; its posts become uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, slug string) error {
	return s.categoryRepo.DeleteBySlug(ctx, slug)
}

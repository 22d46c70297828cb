package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/slug"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed categories.yml
var defaultCategories []byte

// CategoryFixture is one entry of a categories YAML file.
type CategoryFixture struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type categoryFile struct {
	Categories []CategoryFixture `yaml:"categories"`
}

// DefaultCategories returns the built-in category fixture.
func DefaultCategories() ([]CategoryFixture, error) {
	return ParseCategories(bytes.NewReader(defaultCategories))
}

// LoadCategories reads a category fixture from a YAML file.
func LoadCategories(path string) ([]CategoryFixture, error) {
	f, err := os.Open(path) // #nosec G304: operator-supplied fixture path
	if err != nil {
		return nil, fmt.Errorf("open category fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseCategories(f)
}

// ParseCategories decodes a category fixture. Missing slugs are generated
// from the name.
func ParseCategories(r io.Reader) ([]CategoryFixture, error) {
	var file categoryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode category fixture: %w", err)
	}

	seen := make(map[string]bool, len(file.Categories))
	for i := range file.Categories {
		c := &file.Categories[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("category %d: name is required", i+1)
		}
		if c.Slug == "" {
			c.Slug = slug.Generate(c.Name)
		}
		if !slug.Valid(c.Slug) {
			return nil, fmt.Errorf("category %q: invalid slug %q", c.Name, c.Slug)
		}
		if seen[c.Slug] {
			return nil, fmt.Errorf("category %q: duplicate slug %q", c.Name, c.Slug)
		}
		seen[c.Slug] = true
	}
	return file.Categories, nil
}

// SeedCategories upserts the fixtures by slug and returns the stored rows.
func SeedCategories(db *gorm.DB, fixtures []CategoryFixture) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(fixtures))
	for _, item := range fixtures {
		category := &models.Category{
			Name:        item.Name,
			Slug:        item.Slug,
			Description: item.Description,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(category).Error; err != nil {
			return nil, fmt.Errorf("seed category %s: %w", item.Slug, err)
		}
		if category.ID == 0 {
			if err := db.Where("slug = ?", item.Slug).First(category).Error; err != nil {
				return nil, err
			}
		}
		categories = append(categories, category)
	}
	return categories, nil
}

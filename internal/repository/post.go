package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows published post listings. Zero values match everything.
type PostFilter struct {
	// Query is matched case-insensitively against title, content and author username.
	Query        string
	CategorySlug string
	AuthorID     uint
	// IncludeDrafts also matches drafts. It is ignored unless AuthorID is set.
	IncludeDrafts bool
}

// PostOrder selects the ordering of an author's own posts.
type PostOrder string

const (
	OrderNewest     PostOrder = "newest"
	OrderMostViewed PostOrder = "most_viewed"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListPublished(ctx context.Context, filter PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	Popular(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, order PostOrder, limit int) ([]*models.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	AuthorStats(ctx context.Context, authorID uint) (*models.AuthorStats, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return translateError(err, "Post", post.Title)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.withRelations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
		First(&post, id).Error
	if err != nil {
		return nil, translateError(err, "Post", id)
	}
	return &post, nil
}

// ListPublished returns one page of published posts matching filter, newest
// first, together with the total number of matches. An author filter with
// IncludeDrafts lists that author's drafts as well.
func (r *postRepository) ListPublished(
	ctx context.Context,
	filter PostFilter,
	limit, offset int,
	currentUserID uint,
) ([]*models.Post, int64, error) {
	scope := postsMatching(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []*models.Post{}
	if total == 0 {
		return posts, 0, nil
	}
	err := r.withRelations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
		Scopes(scope).
		Order("posts.date_posted DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Popular returns the most viewed published posts; ties go to the newest.
func (r *postRepository) Popular(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.withRelations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
		Scopes(postsMatching(PostFilter{})).
		Order("posts.views DESC, posts.date_posted DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListByAuthor returns an author's posts of any status, as seen by the author.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, order PostOrder, limit int) ([]*models.Post, error) {
	posts := []*models.Post{}
	q := r.withRelations(r.applyPostDetails(r.db.WithContext(ctx), authorID)).
		Where("posts.author_id = ?", authorID)
	switch order {
	case OrderMostViewed:
		q = q.Order("posts.views DESC, posts.date_posted DESC, posts.id DESC")
	default:
		q = q.Order("posts.date_posted DESC, posts.id DESC")
	}
	err := q.Limit(limit).Find(&posts).Error
	return posts, err
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// readers never lose a count. date_updated is left alone.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return requireAffected(tx, "Post", id)
}

// Update writes the editable columns only; views are never overwritten here.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	tx := r.db.WithContext(ctx).
		Model(post).
		Omit(clause.Associations).
		Select("title", "content", "image", "category_id", "status", "author_id", "date_updated").
		Updates(post)
	return requireAffected(tx, "Post", post.ID)
}

// Delete removes the post; comments and likes cascade.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Post{}, id), "Post", id)
}

func (r *postRepository) AuthorStats(ctx context.Context, authorID uint) (*models.AuthorStats, error) {
	db := r.db.WithContext(ctx)

	var stats models.AuthorStats
	err := db.Model(&models.Post{}).
		Select(
			"COUNT(*) AS total_posts, "+
				"CAST(COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS BIGINT) AS published_posts, "+
				"CAST(COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS BIGINT) AS draft_posts, "+
				"CAST(COALESCE(SUM(views), 0) AS BIGINT) AS total_views",
			string(models.PostStatusPublished), string(models.PostStatusDraft),
		).
		Where("author_id = ?", authorID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	if err := db.Table("likes").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.author_id = ?", authorID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}
	if err := db.Table("comments").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.author_id = ?", authorID).
		Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS total_comments, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS total_likes"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked", currentUserID)
	}

	return db.Select(selectQuery + ", false AS liked")
}

func (r *postRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", authorColumns).
		Preload("Author.Profile").
		Preload("Category")
}

// postsMatching scopes a query to published posts matching filter. It is
// applied separately to the count and the page query.
func postsMatching(filter PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !filter.IncludeDrafts || filter.AuthorID == 0 {
			db = db.Where("posts.status = ?", string(models.PostStatusPublished))
		}
		if filter.Query != "" {
			pattern := containsPattern(filter.Query)
			db = db.Where(
				`LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\' OR `+
					`posts.author_id IN (SELECT users.id FROM users WHERE LOWER(users.username) LIKE ? ESCAPE '\')`,
				pattern, pattern, pattern,
			)
		}
		if filter.CategorySlug != "" {
			db = db.Where("posts.category_id IN (SELECT categories.id FROM categories WHERE categories.slug = ?)", filter.CategorySlug)
		}
		if filter.AuthorID != 0 {
			db = db.Where("posts.author_id = ?", filter.AuthorID)
		}
		return db
	}
}

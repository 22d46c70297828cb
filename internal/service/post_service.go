package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// PostsPerPage is the page size of every public post listing.
	PostsPerPage = 6
	// PopularLimit is the number of posts in the popular sidebar.
	PopularLimit = 5

	maxTitleLen   = 200
	maxContentLen = 50000
)

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
}

type ListPostsInput struct {
	Query         string
	CategorySlug  string
	Page          int
	CurrentUserID uint
}

// PostListing is the home page: one page of posts plus sidebar data.
type PostListing struct {
	models.PostPage
	Categories   []*models.Category `json:"categories"`
	PopularPosts []*models.Post     `json:"popular_posts"`
}

// CategoryPosts is one page of a category's published posts.
type CategoryPosts struct {
	Category *models.Category `json:"category"`
	models.PostPage
}

// AuthorPosts is one page of an author's published posts.
type AuthorPosts struct {
	Author *models.User `json:"author"`
	models.PostPage
}

// PostDetail is a post with its comment thread.
type PostDetail struct {
	*models.Post
	Comments []*models.Comment `json:"comments"`
}

type CreatePostInput struct {
	AuthorID   uint
	Title      string
	Content    string
	Image      string
	CategoryID *uint
	Status     models.PostStatus
}

type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Title      string
	Content    string
	Image      string
	CategoryID *uint
	Status     models.PostStatus
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
	}
}

// ListPosts returns a page of published posts with the category list and popular posts.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostListing, error) {
	filter := repository.PostFilter{
		Query:        strings.TrimSpace(in.Query),
		CategorySlug: strings.TrimSpace(in.CategorySlug),
	}
	page, err := s.page(ctx, filter, in.Page, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.postRepo.Popular(ctx, PopularLimit, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	return &PostListing{
		PostPage:     *page,
		Categories:   categories,
		PopularPosts: popular,
	}, nil
}

func (s *PostService) PopularPosts(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.Popular(ctx, PopularLimit, currentUserID)
}

// ListByCategory pages through a category's published posts.
func (s *PostService) ListByCategory(ctx context.Context, slug string, pageNum int, currentUserID uint) (*CategoryPosts, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, repository.PostFilter{CategorySlug: category.Slug}, pageNum, currentUserID)
	if err != nil {
		return nil, err
	}
	return &CategoryPosts{Category: category, PostPage: *page}, nil
}

// ListByAuthor pages through an author's published posts.
func (s *PostService) ListByAuthor(ctx context.Context, username string, pageNum int, currentUserID uint) (*AuthorPosts, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, repository.PostFilter{AuthorID: author.ID}, pageNum, currentUserID)
	if err != nil {
		return nil, err
	}
	author.Email = ""
	return &AuthorPosts{Author: author, PostPage: *page}, nil
}

// ListOwnPosts pages through every post the user wrote, drafts included.
func (s *PostService) ListOwnPosts(ctx context.Context, userID uint, pageNum int) (*models.PostPage, error) {
	filter := repository.PostFilter{AuthorID: userID, IncludeDrafts: true}
	return s.page(ctx, filter, pageNum, userID)
}

// page loads one page of published posts. Pages below 1 become 1 and pages
// past the end become the last page.
func (s *PostService) page(ctx context.Context, filter repository.PostFilter, pageNum int, currentUserID uint) (*models.PostPage, error) {
	if pageNum < 1 {
		pageNum = 1
	}

	meta := models.NewPage(pageNum, PostsPerPage, 0)
	posts, total, err := s.postRepo.ListPublished(ctx, filter, PostsPerPage, meta.Offset(), currentUserID)
	if err != nil {
		return nil, err
	}

	meta = models.NewPage(pageNum, PostsPerPage, total)
	if pageNum > meta.TotalPages {
		meta = models.NewPage(meta.TotalPages, PostsPerPage, total)
		posts, total, err = s.postRepo.ListPublished(ctx, filter, PostsPerPage, meta.Offset(), currentUserID)
		if err != nil {
			return nil, err
		}
		meta = models.NewPage(meta.Page, PostsPerPage, total)
	}

	return &models.PostPage{Posts: posts, Pagination: meta}, nil
}

// GetPost returns the post with its comment thread and counts one view.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*PostDetail, error) {
	post, err := s.visiblePost(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	post.Views++
	observability.PostViewsTotal.Inc()

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: models.BuildThread(comments)}, nil
}

// visiblePost loads a post; drafts exist only for their author, so a stranger
// touching a draft gets NotFound before any ownership check.
func (s *PostService) visiblePost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() && post.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Status == "" {
		in.Status = models.PostStatusPublished
	}
	post := &models.Post{AuthorID: in.AuthorID}
	if err := s.applyForm(ctx, post, in.Title, in.Content, in.Image, in.CategoryID, in.Status); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

// UpdatePost replaces the editable fields of the actor's own post. An empty
// image or status keeps the current one.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.visiblePost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	image := in.Image
	if strings.TrimSpace(image) == "" {
		image = post.Image
	}
	status := in.Status
	if status == "" {
		status = post.Status
	}
	if err := s.applyForm(ctx, post, in.Title, in.Content, image, in.CategoryID, status); err != nil {
		return nil, err
	}
	post.AuthorID = in.UserID

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.visiblePost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// applyForm validates the post form and copies it onto post.
func (s *PostService) applyForm(
	ctx context.Context,
	post *models.Post,
	title, content, image string,
	categoryID *uint,
	status models.PostStatus,
) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.NewFieldError("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return models.NewFieldError("title", "Title too long (max 200 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewFieldError("content", "Content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return models.NewFieldError("content", "Content too long (max 50000 characters)")
	}
	if !status.Valid() {
		return models.NewFieldError("status", "Status must be draft or published")
	}
	image = strings.TrimSpace(image)
	if err := validation.ValidateMediaPath("image", image); err != nil {
		return models.NewFieldError("image", err.Error())
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				return models.NewFieldError("category_id", "Category does not exist")
			}
			return err
		}
	}

	post.Title = title
	post.Content = content
	post.Image = image
	post.CategoryID = categoryID
	post.Category = nil
	post.Status = status
	return nil
}

// ToggleLike flips the user's like on a visible post. A concurrent toggle that
// wins the insert race is absorbed by re-running the toggle once.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.LikeResult, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ToggleLike", observability.PostAttrs(postID, userID)...)
	defer span.End()

	post, err := s.visiblePost(ctx, postID, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	result, err := s.likeRepo.Toggle(ctx, userID, postID)
	if models.HasCode(err, models.CodeConflict) {
		observability.LikeToggleRetries.Inc()
		result, err = s.likeRepo.Toggle(ctx, userID, postID)
	}
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	outcome := "unliked"
	if result.Liked {
		outcome = "liked"
	}
	observability.LikeTogglesTotal.WithLabelValues(outcome).Inc()
	result.PostAuthorID = post.AuthorID
	span.AddAttributes(attribute.Bool("like.liked", result.Liked), attribute.Int64("like.total", result.TotalLikes))
	return result, nil
}

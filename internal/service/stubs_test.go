package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	listPublishedFn  func(context.Context, repository.PostFilter, int, int, uint) ([]*models.Post, int64, error)
	popularFn        func(context.Context, int, uint) ([]*models.Post, error)
	listByAuthorFn   func(context.Context, uint, repository.PostOrder, int) ([]*models.Post, error)
	incrementViewsFn func(context.Context, uint) error
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	authorStatsFn    func(context.Context, uint) (*models.AuthorStats, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) ListPublished(ctx context.Context, filter repository.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.listPublishedFn(ctx, filter, limit, offset, currentUserID)
}
func (s *postRepoStub) Popular(ctx context.Context, limit int, currentUserID uint) ([]*models.Post, error) {
	return s.popularFn(ctx, limit, currentUserID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, order repository.PostOrder, limit int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, order, limit)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) AuthorStats(ctx context.Context, authorID uint) (*models.AuthorStats, error) {
	return s.authorStatsFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostStatusPublished}, nil
		},
		listPublishedFn: func(_ context.Context, _ repository.PostFilter, _, _ int, _ uint) ([]*models.Post, int64, error) {
			return []*models.Post{}, 0, nil
		},
		popularFn: func(_ context.Context, _ int, _ uint) ([]*models.Post, error) { return []*models.Post{}, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _ repository.PostOrder, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		authorStatsFn:    func(_ context.Context, _ uint) (*models.AuthorStats, error) { return &models.AuthorStats{}, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn         func(context.Context) ([]*models.Category, error)
	getBySlugFn    func(context.Context, string) (*models.Category, error)
	getByIDFn      func(context.Context, uint) (*models.Category, error)
	createFn       func(context.Context, *models.Category) error
	deleteBySlugFn func(context.Context, string) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) DeleteBySlug(ctx context.Context, slug string) error {
	return s.deleteBySlugFn(ctx, slug)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn: func(_ context.Context) ([]*models.Category, error) { return []*models.Category{}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 1, Slug: slug}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		createFn:       func(_ context.Context, _ *models.Category) error { return nil },
		deleteBySlugFn: func(_ context.Context, _ string) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	saveFn          func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, int, int) ([]*models.User, error)
	setAdminFn      func(context.Context, uint, bool) error
	deleteFn        func(context.Context, uint) error
	getProfileFn    func(context.Context, uint) (*models.Profile, error)
	updateProfileFn func(context.Context, *models.Profile) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Save(ctx context.Context, user *models.User) error {
	return s.saveFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) SetAdmin(ctx context.Context, id uint, admin bool) error {
	return s.setAdminFn(ctx, id, admin)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getProfileFn(ctx, userID)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.updateProfileFn(ctx, profile)
}

func noopUserRepo() *userRepoStub {
	getUser := func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "user", Profile: models.NewProfile(id)}, nil
	}
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			u.Profile = models.NewProfile(1)
			return nil
		},
		saveFn:    func(_ context.Context, u *models.User) error { u.Profile = models.NewProfile(u.ID); return nil },
		getByIDFn: getUser,
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
		listFn:          func(_ context.Context, _, _ int) ([]*models.User, error) { return nil, nil },
		setAdminFn:      func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		getProfileFn:    func(_ context.Context, id uint) (*models.Profile, error) { return models.NewProfile(id), nil },
		updateProfileFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn func(context.Context, uint, uint) (*models.LikeResult, error)
	existsFn func(context.Context, uint, uint) (bool, error)
	countFn  func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, postID uint) (*models.LikeResult, error) {
	return s.toggleFn(ctx, userID, postID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}
func (s *likeRepoStub) Count(ctx context.Context, postID uint) (int64, error) {
	return s.countFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ uint) (*models.LikeResult, error) {
			return &models.LikeResult{Liked: true, TotalLikes: 1}, nil
		},
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// assertFieldError asserts a VALIDATION_ERROR bound to field.
func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	appErr := assertAppError(t, err, models.CodeValidation)
	assert.Equal(t, field, appErr.Field)
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxBioLen      = 500
	maxLocationLen = 100
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	hashCost int
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileInput carries optional profile changes; nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID   uint
	Bio      *string
	Avatar   *string
	Website  *string
	Location *string
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an account together with its default profile.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewFieldError("username", err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewFieldError("email", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewFieldError("password", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return nil, models.NewConflictError("Username or email already taken", err)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a username or email plus password to a user.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, login)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SaveUser persists the user and re-saves its profile.
func (s *UserService) SaveUser(ctx context.Context, user *models.User) error {
	return s.userRepo.Save(ctx, user)
}

// DeleteUser removes the account and everything it owns.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) SetAdmin(ctx context.Context, id uint, admin bool) (*models.User, error) {
	if err := s.userRepo.SetAdmin(ctx, id, admin); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// IsAdmin reports whether the user holds admin rights.
func (s *UserService) IsAdmin(ctx context.Context, id uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		// accounts created before profiles existed get theirs on first read
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.profileView(ctx, user, user.Profile)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile
	if profile == nil {
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		profile = user.Profile
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if err := validation.MaxLength("bio", bio, maxBioLen); err != nil {
			return nil, models.NewFieldError("bio", err.Error())
		}
		profile.Bio = bio
	}
	if in.Avatar != nil {
		avatar := strings.TrimSpace(*in.Avatar)
		if err := validation.ValidateMediaPath("avatar", avatar); err != nil {
			return nil, models.NewFieldError("avatar", err.Error())
		}
		if avatar == "" {
			avatar = models.DefaultAvatar
		}
		profile.Avatar = avatar
	}
	if in.Website != nil {
		website := strings.TrimSpace(*in.Website)
		if err := validation.ValidateWebsite(website); err != nil {
			return nil, models.NewFieldError("website", err.Error())
		}
		profile.Website = website
	}
	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if err := validation.MaxLength("location", location, maxLocationLen); err != nil {
			return nil, models.NewFieldError("location", err.Error())
		}
		profile.Location = location
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileView(ctx, user, profile)
}

func (s *UserService) profileView(ctx context.Context, user *models.User, profile *models.Profile) (*models.ProfileView, error) {
	stats, err := s.postRepo.AuthorStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view := &models.ProfileView{
		User:          user,
		Profile:       profile,
		TotalPosts:    stats.TotalPosts,
		TotalLikes:    stats.TotalLikes,
		TotalComments: stats.TotalComments,
	}
	user.Profile = nil
	return view, nil
}

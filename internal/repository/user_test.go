package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       uint
		mockBehavior func()
		expectedUser *models.User
		expectedCode string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE "profiles"."user_id" = $1`)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "avatar"}).AddRow(3, 1, models.DefaultAvatar))
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedCode != "" {
				assert.True(t, models.HasCode(err, tt.expectedCode), "got %v", err)
			} else if assert.NoError(t, err) && assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				require.NotNil(t, user.Profile)
				assert.Equal(t, models.DefaultAvatar, user.Profile.Avatar)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_CreateAddsExactlyOneProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotNil(t, user.Profile)
	assert.Equal(t, models.DefaultAvatar, user.Profile.Avatar)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_CreateDuplicateRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}))

	err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "hash"})
	assert.True(t, models.HasCode(err, models.CodeConflict), "got %v", err)

	var users, profiles int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), profiles)
}

func TestUserRepository_SaveRecreatesMissingProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "legacy")
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error)

	user.Email = "legacy@new.example.com"
	require.NoError(t, repo.Save(ctx, user))
	require.NotNil(t, user.Profile)

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAvatar, profile.Avatar)

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "legacy@new.example.com", reloaded.Email)
}

func TestUserRepository_SaveKeepsProfileFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "bob")
	user.Profile.Bio = "hello"
	require.NoError(t, repo.UpdateProfile(ctx, user.Profile))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fresh))

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", profile.Bio)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	post := testutil.CreatePost(t, db, author, "Hello")
	testutil.CreateLike(t, db, reader, post)
	testutil.CreateComment(t, db, post, reader, "nice", nil)

	require.NoError(t, repo.Delete(ctx, author.ID))

	for _, model := range []interface{}{&models.Profile{}, &models.Post{}, &models.Like{}, &models.Comment{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		if _, ok := model.(*models.Profile); ok {
			assert.Equal(t, int64(1), n, "reader keeps a profile")
			continue
		}
		assert.Zero(t, n, "%T", model)
	}

	err := repo.Delete(ctx, author.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUserRepository_SetAdminAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "zed")
	amy := testutil.CreateUser(t, db, "amy")

	require.NoError(t, repo.SetAdmin(ctx, amy.ID, true))
	users, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "amy", users[0].Username)
	assert.True(t, users[0].IsAdmin)

	assert.True(t, models.HasCode(repo.SetAdmin(ctx, 999, true), models.CodeNotFound))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "carol")

	user, err := repo.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	require.NotNil(t, user.Profile)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUserRepository_GetByEmailIgnoresCase(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)

	testutil.CreateUser(t, db, "dave")

	user, err := repo.GetByEmail(context.Background(), "DAVE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)
}

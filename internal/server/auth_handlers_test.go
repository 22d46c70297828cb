package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ts := newTestServer(t, nil)

	body := map[string]string{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": testutil.Password,
	}

	var resp authResponse
	ts.doJSON(t, http.MethodPost, "/api/auth/signup", "", body, http.StatusCreated, &resp)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	userID, err := middleware.ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	var profiles int64
	require.NoError(t, ts.db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)

	t.Run("duplicate is a conflict", func(t *testing.T) {
		status, raw := ts.do(t, http.MethodPost, "/api/auth/signup", "", body)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeConflict, decodeError(t, raw).Code)
	})
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"bad username", map[string]string{"username": "a", "email": "a@example.com", "password": testutil.Password}, "username"},
		{"bad email", map[string]string{"username": "alice", "email": "nope", "password": testutil.Password}, "email"},
		{"weak password", map[string]string{"username": "alice", "email": "a@example.com", "password": "password"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := ts.do(t, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			resp := decodeError(t, raw)
			assert.Equal(t, models.CodeValidation, resp.Code)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil)
		req.Header.Set("Content-Type", "application/json")
		resp, err := ts.app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, nil)
	user := testutil.CreateUser(t, ts.db, "alice")

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"by username", map[string]string{"login": "alice", "password": testutil.Password}, http.StatusOK},
		{"by email", map[string]string{"login": user.Email, "password": testutil.Password}, http.StatusOK},
		{"email field", map[string]string{"email": user.Email, "password": testutil.Password}, http.StatusOK},
		{"wrong password", map[string]string{"login": "alice", "password": "Wr0ng!Password"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"login": "nobody", "password": testutil.Password}, http.StatusUnauthorized},
		{"missing fields", map[string]string{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.status != http.StatusOK {
				status, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
				assert.Equal(t, tt.status, status)
				return
			}
			var resp authResponse
			ts.doJSON(t, http.MethodPost, "/api/auth/login", "", tt.body, http.StatusOK, &resp)
			id, err := middleware.ParseToken(testSecret, resp.Token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, id)
		})
	}
}

func TestIssueWSTicketWithoutRedis(t *testing.T) {
	ts := newTestServer(t, nil)
	user := testutil.CreateUser(t, ts.db, "alice")

	status, _ := ts.do(t, http.MethodPost, "/api/ws/ticket", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = ts.do(t, http.MethodPost, "/api/ws/ticket", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWebSocketAuth(t *testing.T) {
	rdb := newTestRedis(t)
	ts := newTestServer(t, rdb)
	user := testutil.CreateUser(t, ts.db, "alice")

	// Exercise the auth middleware alone, without an upgrade.
	app := fiber.New()
	app.Get("/ws", ts.srv.WebSocketAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})
	whoami := func(query, token string) (int, uint) {
		req := httptest.NewRequest(http.MethodGet, "/ws"+query, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		var body struct {
			UserID uint `json:"user_id"`
		}
		if resp.StatusCode == http.StatusOK {
			require.NoError(t, decodeBody(resp, &body))
		}
		return resp.StatusCode, body.UserID
	}

	var ticket struct {
		Ticket    string `json:"ticket"`
		ExpiresIn int    `json:"expires_in"`
	}
	ts.doJSON(t, http.MethodPost, "/api/ws/ticket", tokenFor(t, user), nil, http.StatusOK, &ticket)
	require.NotEmpty(t, ticket.Ticket)
	assert.Equal(t, 30, ticket.ExpiresIn)

	ttl, err := rdb.TTL(context.Background(), wsTicketPrefix+ticket.Ticket).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	status, id := whoami("?ticket="+ticket.Ticket, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, id)

	status, _ = whoami("?ticket="+ticket.Ticket, "")
	assert.Equal(t, http.StatusUnauthorized, status, "tickets are single-use")

	status, id = whoami("", tokenFor(t, user))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, id)

	status, id = whoami("", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, id, "anonymous subscribers are allowed")
}

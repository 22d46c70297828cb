package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	_ = os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type testServer struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret, Env: "test", Port: "0"}
	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	t.Cleanup(srv.shutdownFn)

	return &testServer{srv: srv, app: srv.App(), db: db}
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, user.ID, user.Username, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a request and returns the status and raw body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON sends a request, asserts the status and decodes the body into dst.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any, wantStatus int, dst any) {
	t.Helper()
	status, raw := ts.do(t, method, path, token, body)
	require.Equal(t, wantStatus, status, string(raw))
	if dst != nil {
		require.NoError(t, json.Unmarshal(raw, dst), string(raw))
	}
}

func decodeError(t *testing.T, raw []byte) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &resp), string(raw))
	return resp
}

func decodeBody(resp *http.Response, dst any) error {
	return json.NewDecoder(resp.Body).Decode(dst)
}

func TestNewServerWithDepsRequiresDatabase(t *testing.T) {
	_, err := NewServerWithDeps(&config.Config{}, nil, nil)
	assert.Error(t, err)
}

func TestHealthChecks(t *testing.T) {
	ts := newTestServer(t, nil)

	status, _ := ts.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	ts.doJSON(t, http.MethodGet, "/health/ready", "", nil, http.StatusOK, &ready)
	assert.Equal(t, "healthy", ready.Status)
	assert.Equal(t, "healthy", ready.Checks["database"])
	assert.Equal(t, "disabled", ready.Checks["redis"])
}

func TestReadinessReportsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ts := newTestServer(t, rdb)

	var ready struct {
		Checks map[string]string `json:"checks"`
	}
	ts.doJSON(t, http.MethodGet, "/health/ready", "", nil, http.StatusOK, &ready)
	assert.Equal(t, "healthy", ready.Checks["redis"])

	mr.Close()
	status, _ := ts.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.do(t, http.MethodGet, "/health/live", "", nil)
	status, raw := ts.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	body := string(raw)
	assert.Contains(t, body, "inkwell_post_views_total")
	assert.Contains(t, body, "inkwell_websocket_connections")
	assert.Contains(t, body, "http_requests_total")
}

func TestSwaggerDocServed(t *testing.T) {
	ts := newTestServer(t, nil)

	status, raw := ts.do(t, http.MethodGet, "/api/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "/posts/{id}/like")
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t, nil)

	status, raw := ts.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, decodeError(t, raw).Error)
}

func TestAdminRequired(t *testing.T) {
	ts := newTestServer(t, nil)
	user := testutil.CreateUser(t, ts.db, "reader")
	admin := testutil.CreateUser(t, ts.db, "editor")
	require.NoError(t, ts.db.Model(admin).Update("is_admin", true).Error)

	body := map[string]string{"name": "Go Tips"}

	status, raw := ts.do(t, http.MethodPost, "/api/admin/categories", "", body)
	assert.Equal(t, http.StatusUnauthorized, status, string(raw))

	status, raw = ts.do(t, http.MethodPost, "/api/admin/categories", tokenFor(t, user), body)
	assert.Equal(t, http.StatusForbidden, status, string(raw))
	assert.Equal(t, models.CodeForbidden, decodeError(t, raw).Code)

	var category models.Category
	ts.doJSON(t, http.MethodPost, "/api/admin/categories", tokenFor(t, admin), body, http.StatusCreated, &category)
	assert.Equal(t, "go-tips", category.Slug)

	// A token for a deleted account no longer passes the admin check.
	require.NoError(t, ts.db.Delete(&models.User{}, admin.ID).Error)
	status, _ = ts.do(t, http.MethodPost, "/api/admin/categories", tokenFor(t, admin), body)
	assert.Equal(t, http.StatusUnauthorized, status)
}

package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentThread(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := testutil.CreateUser(t, ts.db, "alice")
	bob := testutil.CreateUser(t, ts.db, "bob")
	post := testutil.CreatePost(t, ts.db, alice, "Hello")
	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	var first models.Comment
	ts.doJSON(t, http.MethodPost, commentsPath, tokenFor(t, bob), map[string]any{
		"content": "Nice post",
	}, http.StatusCreated, &first)
	assert.Equal(t, "bob", first.Author.Username)
	assert.Nil(t, first.ParentID)

	var reply models.Comment
	ts.doJSON(t, http.MethodPost, commentsPath, tokenFor(t, alice), map[string]any{
		"content":   "Thanks!",
		"parent_id": first.ID,
	}, http.StatusCreated, &reply)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, first.ID, *reply.ParentID)

	var second models.Comment
	ts.doJSON(t, http.MethodPost, commentsPath, tokenFor(t, bob), map[string]any{
		"content": "One more thing",
	}, http.StatusCreated, &second)

	var thread []*models.Comment
	ts.doJSON(t, http.MethodGet, commentsPath, "", nil, http.StatusOK, &thread)
	require.Len(t, thread, 2)
	assert.Equal(t, second.ID, thread[0].ID, "newest top-level comment first")
	assert.Empty(t, thread[0].Replies)
	require.Len(t, thread[1].Replies, 1)
	assert.Equal(t, reply.ID, thread[1].Replies[0].ID)

	t.Run("only the author deletes", func(t *testing.T) {
		path := fmt.Sprintf("/api/comments/%d", first.ID)
		status, raw := ts.do(t, http.MethodDelete, path, tokenFor(t, alice), nil)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, models.CodeForbidden, decodeError(t, raw).Code)

		status, _ = ts.do(t, http.MethodDelete, path, tokenFor(t, bob), nil)
		assert.Equal(t, http.StatusNoContent, status)

		ts.doJSON(t, http.MethodGet, commentsPath, "", nil, http.StatusOK, &thread)
		require.Len(t, thread, 1, "replies go with their parent")
		assert.Equal(t, second.ID, thread[0].ID)

		status, _ = ts.do(t, http.MethodDelete, path, tokenFor(t, bob), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCreateCommentValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := testutil.CreateUser(t, ts.db, "alice")
	post := testutil.CreatePost(t, ts.db, alice, "Hello")
	other := testutil.CreatePost(t, ts.db, alice, "Other")
	elsewhere := testutil.CreateComment(t, ts.db, other, alice, "Elsewhere", nil)
	token := tokenFor(t, alice)
	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		field  string
	}{
		{"empty content", map[string]any{"content": "   "}, http.StatusBadRequest, "content"},
		{"parent on another post", map[string]any{"content": "hi", "parent_id": elsewhere.ID}, http.StatusBadRequest, "parent_id"},
		{"missing parent", map[string]any{"content": "hi", "parent_id": 999}, http.StatusBadRequest, "parent_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := ts.do(t, http.MethodPost, commentsPath, token, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.field, decodeError(t, raw).Field)
		})
	}

	t.Run("unknown post", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPost, "/api/posts/999/comments", token, map[string]any{"content": "hi"})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("requires auth", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodPost, commentsPath, "", map[string]any{"content": "hi"})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestCommentsOnDraftAreHidden(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := testutil.CreateUser(t, ts.db, "alice")
	bob := testutil.CreateUser(t, ts.db, "bob")
	draft := testutil.CreatePost(t, ts.db, alice, "Secret", testutil.WithStatus(models.PostStatusDraft))
	path := fmt.Sprintf("/api/posts/%d/comments", draft.ID)

	status, _ := ts.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = ts.do(t, http.MethodPost, path, tokenFor(t, bob), map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, status)

	ts.doJSON(t, http.MethodPost, path, tokenFor(t, alice), map[string]any{"content": "note to self"}, http.StatusCreated, nil)
}

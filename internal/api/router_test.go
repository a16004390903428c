package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialapi/socialapi/internal/auth"
	"github.com/socialapi/socialapi/internal/catalog"
	"github.com/socialapi/socialapi/internal/social"
	"github.com/socialapi/socialapi/pkg/config"
)

type fakeCheck struct{ err error }

func (f fakeCheck) Health(ctx context.Context) error { return f.err }

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	social *social.Service
}

func newTestServer(t *testing.T, checks map[string]HealthChecker) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager(config.AuthConfig{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
		Issuer:    "socialapi-test",
	})
	socialSvc := social.NewService(social.NewMemoryStore(), nil)
	router := NewRouter(
		socialSvc,
		catalog.NewService(catalog.NewMemoryStore()),
		tokens,
		checks,
	)
	return &testServer{t: t, engine: router.NewEngine(config.CORSConfig{}), social: socialSvc}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// register creates a user and returns its id and token
func (s *testServer) register(username string) (int64, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "password123",
		"password2": "password123",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(s.t, rec)
	user := body["user"].(map[string]interface{})
	return int64(user["id"].(float64)), body["token"].(string)
}

// registerAs creates a user holding role
func (s *testServer) registerAs(username, role string) (int64, string) {
	s.t.Helper()
	id, token := s.register(username)
	_, err := s.social.GrantRole(context.Background(), id, role)
	require.NoError(s.t, err)
	return id, token
}

func (s *testServer) createPost(token, title string, tags ...string) int64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/posts", token, gin.H{
		"title":   title,
		"content": "content of " + title,
		"tags":    tags,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode(s.t, rec)["id"].(float64))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, map[string]HealthChecker{"database": fakeCheck{}})
	for _, path := range []string{"/health", "/.well-known/healthcheck.json"} {
		rec := srv.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", decode(t, rec)["status"])
	}

	srv = newTestServer(t, map[string]HealthChecker{"cache": fakeCheck{err: errors.New("connection refused")}})
	rec := srv.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "DEGRADED", decode(t, rec)["status"])
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestAccounts(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.register("alice")

	t.Run("password mismatch", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username":  "bob",
			"email":     "bob@example.com",
			"password":  "password123",
			"password2": "password456",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password", decode(t, rec)["field"])
	})

	t.Run("duplicate username", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username":  "alice",
			"email":     "other@example.com",
			"password":  "password123",
			"password2": "password123",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username", decode(t, rec)["field"])
	})

	t.Run("short password", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username":  "carol",
			"email":     "carol@example.com",
			"password":  "short",
			"password2": "short",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password", decode(t, rec)["field"])
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		long := strings.Repeat("p", 100)
		rec := srv.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username":  "dave",
			"email":     "dave@example.com",
			"password":  long,
			"password2": long,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "password", decode(t, rec)["field"])
	})

	t.Run("multibyte password over 72 bytes", func(t *testing.T) {
		// 40 characters, 80 bytes: passes the character limit, not bcrypt's
		long := strings.Repeat("é", 40)
		rec := srv.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username":  "erin",
			"email":     "erin@example.com",
			"password":  long,
			"password2": long,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "password", decode(t, rec)["field"])
	})

	t.Run("login", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "password123"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["token"])

		rec = srv.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = srv.do(http.MethodGet, "/api/v1/auth/profile", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = srv.do(http.MethodPatch, "/api/v1/auth/profile", token, gin.H{"bio": "reader"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "reader", body["bio"])
		assert.Equal(t, float64(0), body["followers_count"])
		assert.Equal(t, float64(0), body["following_count"])
		assert.NotContains(t, body, "password_hash")
	})
}

func TestFollowAndFeed(t *testing.T) {
	srv := newTestServer(t, nil)
	aliceID, alice := srv.register("alice")
	bobID, bob := srv.register("bob")
	srv.createPost(bob, "first post")

	follow := fmt.Sprintf("/api/v1/users/%d/follow", bobID)
	unfollow := fmt.Sprintf("/api/v1/users/%d/unfollow", bobID)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), alice, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, follow, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodPost, "/api/v1/users/999/follow", alice, nil).Code)

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, follow, alice, nil).Code)
	assert.Equal(t, http.StatusConflict, srv.do(http.MethodPost, follow, alice, nil).Code)

	rec := srv.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bobID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["followers_count"])

	rec = srv.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/following", aliceID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = srv.do(http.MethodGet, "/api/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, unfollow, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodPost, unfollow, alice, nil).Code)

	rec = srv.do(http.MethodGet, "/api/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestPosts(t *testing.T) {
	srv := newTestServer(t, nil)
	_, alice := srv.register("alice")
	_, bob := srv.register("bob")
	postID := srv.createPost(alice, "Go generics", "Go", "programming")
	srv.createPost(bob, "Gardening")
	path := fmt.Sprintf("/api/v1/posts/%d", postID)

	rec := srv.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []interface{}{"go", "programming"}, body["tags"])
	assert.Equal(t, "alice", body["author"].(map[string]interface{})["username"])

	tests := []struct {
		name   string
		query  string
		expect float64
	}{
		{"all", "", 2},
		{"tag", "?tag=go", 1},
		{"search title", "?search=garden", 1},
		{"search tag", "?search=programming", 1},
		{"no match", "?search=nothing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(http.MethodGet, "/api/v1/posts"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expect, decode(t, rec)["count"])
		})
	}

	accented := strings.Repeat("é", 150)
	rec = srv.do(http.MethodPost, "/api/v1/posts", alice, gin.H{"title": accented, "content": "x"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, accented, decode(t, rec)["title"])
	rec = srv.do(http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, float64(3), decode(t, rec)["count"])

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/api/v1/posts", alice, gin.H{"title": "no content"}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/api/v1/posts", alice, gin.H{"title": "  ", "content": "x"}).Code)
	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodPatch, path, bob, gin.H{"title": "mine now"}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, path, alice, gin.H{"title": "only title"}).Code)

	rec = srv.do(http.MethodPatch, path, alice, gin.H{"title": "Go generics, revised"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Go generics, revised", decode(t, rec)["title"])

	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodDelete, path, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/v1/posts/abc", "", nil).Code)
}

func TestLikesCommentsAndNotifications(t *testing.T) {
	srv := newTestServer(t, nil)
	_, alice := srv.register("alice")
	_, bob := srv.register("bob")
	postID := srv.createPost(bob, "hello")

	like := fmt.Sprintf("/api/v1/posts/%d/like", postID)
	rec := srv.do(http.MethodPost, like, alice, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["likes_count"])
	assert.Equal(t, true, body["liked"])

	assert.Equal(t, http.StatusConflict, srv.do(http.MethodPost, like, alice, nil).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, like, bob, nil).Code)

	rec = srv.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/likes", postID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["liked"])

	rec = srv.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), alice, gin.H{"content": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	commentID := int64(decode(t, rec)["id"].(float64))

	comment := fmt.Sprintf("/api/v1/comments/%d", commentID)
	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodPut, comment, bob, gin.H{"content": "edited"}).Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodPut, comment, alice, gin.H{"content": "edited"}).Code)

	rec = srv.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments", postID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	// bob has a like and a comment to read, alice has nothing
	rec = srv.do(http.MethodGet, "/api/v1/notifications/unread", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, float64(2), body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})

	rec = srv.do(http.MethodGet, "/api/v1/notifications/unread", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	read := fmt.Sprintf("/api/v1/notifications/%d/read", int64(first["id"].(float64)))
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodPost, read, alice, nil).Code)
	for i := 0; i < 2; i++ {
		rec = srv.do(http.MethodPost, read, bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode(t, rec)["read"])
	}

	rec = srv.do(http.MethodPost, "/api/v1/notifications/read-all", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["marked"])

	rec = srv.do(http.MethodGet, "/api/v1/notifications", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["count"])

	rec = srv.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/unlike", postID), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["likes_count"])
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.registerAs("admin", "admin")

	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/v1/authors", "", gin.H{"name": "Ursula K. Le Guin"}).Code)

	rec := srv.do(http.MethodPost, "/api/v1/authors", token, gin.H{"name": "Ursula K. Le Guin"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	authorID := int64(decode(t, rec)["id"].(float64))

	book := gin.H{"title": "The Dispossessed", "publication_year": 1974, "author": authorID}
	rec = srv.do(http.MethodPost, "/api/v1/books", token, book)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bookID := int64(decode(t, rec)["id"].(float64))
	assert.Equal(t, http.StatusConflict, srv.do(http.MethodPost, "/api/v1/books", token, book).Code)

	future := time.Now().Year() + 1
	rec = srv.do(http.MethodPost, "/api/v1/books", token, gin.H{"title": "Later", "publication_year": future, "author": authorID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "publication_year", decode(t, rec)["field"])

	rec = srv.do(http.MethodPost, "/api/v1/books", token, gin.H{"title": "Earthsea", "publication_year": 1968, "author": authorID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/books?ordering=-publication_year", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode(t, rec)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "The Dispossessed", results[0].(map[string]interface{})["title"])

	rec = srv.do(http.MethodGet, "/api/v1/books?year=1970", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = srv.do(http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", authorID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["book_count"])

	rec = srv.do(http.MethodPost, "/api/v1/libraries", token, gin.H{"name": "Central"})
	require.Equal(t, http.StatusCreated, rec.Code)
	libraryID := int64(decode(t, rec)["id"].(float64))
	library := fmt.Sprintf("/api/v1/libraries/%d", libraryID)

	rec = srv.do(http.MethodPost, library+"/books", token, gin.H{"book_id": bookID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["books"], 1)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodPost, library+"/books", token, gin.H{"book_id": 999}).Code)

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, library+"/librarian", "", nil).Code)
	assert.Equal(t, http.StatusCreated, srv.do(http.MethodPost, library+"/librarian", token, gin.H{"name": "Sam"}).Code)
	assert.Equal(t, http.StatusConflict, srv.do(http.MethodPost, library+"/librarian", token, gin.H{"name": "Alex"}).Code)

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, fmt.Sprintf("/api/v1/authors/%d", authorID), token, nil).Code)
	rec = srv.do(http.MethodGet, library+"/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestCatalogPermissions(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.registerAs("admin", "admin")
	librarianID, librarian := srv.registerAs("lib", "librarian")
	memberID, member := srv.register("member")

	rec := srv.do(http.MethodPost, "/api/v1/libraries", admin, gin.H{"name": "Central"})
	require.Equal(t, http.StatusCreated, rec.Code)
	libraryID := int64(decode(t, rec)["id"].(float64))

	rec = srv.do(http.MethodPost, "/api/v1/authors", librarian, gin.H{"name": "Octavia E. Butler"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	authorID := int64(decode(t, rec)["id"].(float64))

	rec = srv.do(http.MethodPost, "/api/v1/books", librarian, gin.H{"title": "Kindred", "publication_year": 1979, "author": authorID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bookID := int64(decode(t, rec)["id"].(float64))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		member int
		lib    int
	}{
		{"create author", http.MethodPost, "/api/v1/authors", gin.H{"name": "N. K. Jemisin"}, http.StatusForbidden, http.StatusCreated},
		{"update book", http.MethodPut, fmt.Sprintf("/api/v1/books/%d", bookID), gin.H{"title": "Kindred", "publication_year": 1979, "author": authorID}, http.StatusForbidden, http.StatusOK},
		{"stock library", http.MethodPost, fmt.Sprintf("/api/v1/libraries/%d/books", libraryID), gin.H{"book_id": bookID}, http.StatusForbidden, http.StatusOK},
		{"create library", http.MethodPost, "/api/v1/libraries", gin.H{"name": "Branch"}, http.StatusForbidden, http.StatusForbidden},
		{"assign librarian", http.MethodPost, fmt.Sprintf("/api/v1/libraries/%d/librarian", libraryID), gin.H{"name": "Sam"}, http.StatusForbidden, http.StatusForbidden},
		{"delete book", http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), nil, http.StatusForbidden, http.StatusForbidden},
		{"change role", http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", memberID), gin.H{"role": "admin"}, http.StatusForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, srv.do(tt.method, tt.path, "", tt.body).Code)
			assert.Equal(t, tt.member, srv.do(tt.method, tt.path, member, tt.body).Code)
			rec := srv.do(tt.method, tt.path, librarian, tt.body)
			assert.Equal(t, tt.lib, rec.Code, rec.Body.String())
		})
	}

	// Reads stay public
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%d", bookID), "", nil).Code)

	// A role change applies to tokens already issued
	rec = srv.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", memberID), admin, gin.H{"role": "librarian"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "librarian", decode(t, rec)["role"])
	assert.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/v1/authors", member, gin.H{"name": "Ted Chiang"}).Code)

	rec = srv.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", librarianID), admin, gin.H{"role": "wizard"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "role", decode(t, rec)["field"])

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), admin, nil).Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adirao/pixelforge/internal/auth"
)

var secret = []byte("test-secret")

func protected(called *bool, gotUserID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*gotUserID, _ = r.Context().Value("user_id").(string)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tok, err := auth.IssueToken("user-123", secret)
	require.NoError(t, err)

	var called bool
	var userID string
	handler := RequireAuth(secret)(protected(&called, &userID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/getUser", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "user-123", userID)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	var called bool
	var userID string
	handler := RequireAuth(secret)(protected(&called, &userID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-image", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
	assert.False(t, called, "handler must not run without a token")
}

func TestRequireAuth_NotBearer(t *testing.T) {
	var called bool
	var userID string
	handler := RequireAuth(secret)(protected(&called, &userID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/getUser", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuth_BadToken(t *testing.T) {
	otherSecret, err := auth.IssueToken("user-123", []byte("other-secret"))
	require.NoError(t, err)

	for _, tok := range []string{"garbage", otherSecret} {
		var called bool
		var userID string
		handler := RequireAuth(secret)(protected(&called, &userID))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/getUser", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired token")
		assert.False(t, called)
	}
}

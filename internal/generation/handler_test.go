package generation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adirao/pixelforge/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedRequest(method, target, body, userID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(context.WithValue(req.Context(), "user_id", userID))
}

func TestGenerateImage_Success(t *testing.T) {
	st := newMemStore()
	st.addUser("u1", 40)
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.GenerateImage(rec, authedRequest(http.MethodPost, "/api/v1/generate-image", `{"prompt":"a red fox"}`, "u1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool              `json:"success"`
		Message  string            `json:"message"`
		ImageURL string            `json:"imageUrl"`
		User     models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Image generated and uploaded successfully!", resp.Message)
	assert.Contains(t, resp.ImageURL, "generated-images/")
	assert.Equal(t, 35, resp.User.Credits)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGenerateImage_NoPrompt(t *testing.T) {
	st := newMemStore()
	st.addUser("u1", 40)
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.GenerateImage(rec, authedRequest(http.MethodPost, "/api/v1/generate-image", `{"prompt":"  "}`, "u1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Please Provide Prompt."}`, rec.Body.String())
}

func TestGenerateImage_NoCredits(t *testing.T) {
	st := newMemStore()
	st.addUser("u1", 0)
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.GenerateImage(rec, authedRequest(http.MethodPost, "/api/v1/generate-image", `{"prompt":"a red fox"}`, "u1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Not enough credits. Please Try After 12 A.M."}`, rec.Body.String())
}

func TestGenerateImage_UnknownUser(t *testing.T) {
	st := newMemStore()
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.GenerateImage(rec, authedRequest(http.MethodPost, "/api/v1/generate-image", `{"prompt":"a red fox"}`, "ghost"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found."}`, rec.Body.String())
}

func TestListGenerations_Pagination(t *testing.T) {
	st := newMemStore()
	st.addUser("u1", 40)
	for i := 0; i < 20; i++ {
		st.ledgers["u1"] = append(st.ledgers["u1"], models.GenerationRecord{Prompt: "p", Image: "i"})
	}
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.ListGenerations(rec, authedRequest(http.MethodGet, "/api/v1/generations?page=0&limit=8", "", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 8)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, 1, *resp.NextCursor)

	// last partial page: cursor key must be absent, not null
	rec = httptest.NewRecorder()
	h.ListGenerations(rec, authedRequest(http.MethodGet, "/api/v1/generations?page=2&limit=8", "", "u1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "nextCursor")
}

func TestListGenerations_EmptyAccount(t *testing.T) {
	st := newMemStore()
	st.addUser("u1", 40)
	h := NewHandler(newTestService(st, &fakeModel{}, &fakeAssets{}), testLogger())

	rec := httptest.NewRecorder()
	h.ListGenerations(rec, authedRequest(http.MethodGet, "/api/v1/generations", "", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

package generation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adirao/pixelforge/internal/models"
	"github.com/adirao/pixelforge/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Handler holds the generation HTTP handlers.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// historyResponse is the body of GET /api/v1/generations. NextCursor is
// omitted entirely on the last page.
type historyResponse struct {
	Success    bool                      `json:"success"`
	Data       []models.GenerationRecord `json:"data"`
	NextCursor *int                      `json:"nextCursor,omitempty"`
}

// GenerateImage runs the credit-gated workflow for the authenticated account.
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please Provide Prompt.")
		return
	}

	imageURL, user, err := h.svc.Generate(r.Context(), userID, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPrompt):
			writeError(w, http.StatusBadRequest, "Please Provide Prompt.")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, ErrInsufficientCredits):
			writeError(w, http.StatusForbidden, "Not enough credits. Please Try After 12 A.M.")
		case errors.Is(err, ErrGenerationFailed):
			h.log.Error("image generation failed", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Image generation failed or returned no image data.")
		case errors.Is(err, ErrUploadFailed):
			h.log.Error("image upload failed", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Image upload failed.")
		default:
			h.log.Error("generation error", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Image generated and uploaded successfully!",
		"imageUrl": imageURL,
		"user":     user.Public(),
	})
}

// ListGenerations returns one page of the account's generation history.
func (h *Handler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)

	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", DefaultPageSize)

	records, next, err := h.svc.History(r.Context(), userID, page, limit)
	if err != nil {
		h.log.Error("history fetch failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Server Error",
		})
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Success:    true,
		Data:       records,
		NextCursor: next,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

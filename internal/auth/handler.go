package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/adirao/pixelforge/internal/models"
	"github.com/adirao/pixelforge/internal/store"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore defines the interface for account persistence.
type UserStore interface {
	Create(ctx context.Context, name, email, hashedPw, avatar string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	secret []byte
	log    *slog.Logger
}

func NewHandler(users UserStore, secret []byte, log *slog.Logger) *Handler {
	return &Handler{users: users, secret: secret, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// validateCredentials applies the shared password and email checks used by
// both signup and login.
func validateCredentials(email, password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !emailRe.MatchString(email) {
		return "Provide a valid email address"
	}
	return ""
}

// Signup registers a new account and returns a signed token for it.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"avatar", req.Avatar},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Provide %s", f.name))
			return
		}
	}
	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, string(hashed), req.Avatar)
	if errors.Is(err, store.ErrDuplicateEmail) {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		h.log.Error("signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := IssueToken(user.ID.Hex(), h.secret)
	if err != nil {
		h.log.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login authenticates an account and returns a signed token for it.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := []struct{ name, value string }{
		{"email", req.Email},
		{"password", req.Password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Provide %s", f.name))
			return
		}
	}
	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "User Not Found.")
		return
	}
	if err != nil {
		h.log.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	token, err := IssueToken(user.ID.Hex(), h.secret)
	if err != nil {
		h.log.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// GetUser returns the authenticated account.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "User Not Found.")
		return
	}
	if err != nil {
		h.log.Error("get user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user": user.Public(),
	})
}

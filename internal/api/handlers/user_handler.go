package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/auth"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// UserHandler handles registration, login and token endpoints.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshPayload carries the refresh token to exchange.
type RefreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// MeResponse is the public view of the authenticated user.
type MeResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	pair, err := h.service.Register(r.Context(), payload.Username, payload.Email, payload.Password)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, pair)
	case errors.Is(err, common.ErrDuplicateUsername):
		respond.Detail(w, http.StatusBadRequest, "Username already registered")
	case errors.Is(err, common.ErrDuplicateEmail):
		respond.Detail(w, http.StatusBadRequest, "Email already registered")
	default:
		writeError(w, r, err)
	}
}

// Login authenticates form-encoded credentials and returns a token pair.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	switch {
	case username == "":
		respond.Detail(w, http.StatusUnprocessableEntity, "username is required")
		return
	case password == "":
		respond.Detail(w, http.StatusUnprocessableEntity, "password is required")
		return
	}

	pair, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			hlog.FromRequest(r).Warn().Str("username", username).Msg("Failed authentication attempt")
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Detail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, pair)
}

// GetMe returns the user named by the access token, re-read from the store.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		writeError(w, r, common.ErrUnauthenticated)
		return
	}

	user, err := h.service.Me(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, MeResponse{Username: user.Username, Email: user.Email})
}

// Refresh exchanges a refresh token for a new token pair.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RefreshToken == "" {
		respond.Detail(w, http.StatusBadRequest, "Refresh token missing")
		return
	}

	pair, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, pair)
	case errors.Is(err, common.ErrExpiredToken):
		respond.Detail(w, http.StatusUnauthorized, "Refresh token expired")
	case errors.Is(err, common.ErrMalformedToken):
		respond.Detail(w, http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, common.ErrUserNotFound):
		respond.Detail(w, http.StatusNotFound, "User not found")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to refresh token")
		respond.Detail(w, http.StatusInternalServerError, "Unable to refresh token")
	}
}

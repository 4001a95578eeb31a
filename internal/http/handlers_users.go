package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/proseware/auth-api/internal/domain/user"
	apperrors "github.com/proseware/auth-api/internal/errors"
	"github.com/proseware/auth-api/internal/ports"
	"github.com/proseware/auth-api/internal/service"
)

// UserHandlers provides HTTP handlers for registration, login, logout,
// and profile operations.
type UserHandlers struct {
	Svc          *service.UserService
	Tokens       ports.TokenIssuer
	CookieDomain string
	// IsDev relaxes the Secure cookie attribute and is the only
	// concession made to local development.
	IsDev  bool
	Errors *ErrorRenderer
	Logger *slog.Logger
}

func (h *UserHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the login endpoint's request body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new account creation.
// POST /api/users.
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if !DecodeJSON(w, r, &req, h.Errors) {
		return
	}

	pub, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	if !h.beginSession(w, r, pub.ID) {
		return
	}

	WriteJSON(w, http.StatusCreated, pub)
}

// Login authenticates a user by email and password.
// POST /api/users/auth.
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req, h.Errors) {
		return
	}

	pub, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	if !h.beginSession(w, r, pub.ID) {
		return
	}

	WriteJSON(w, http.StatusOK, pub)
}

// Logout ends the session by clearing the token cookie. The endpoint is
// deliberately unauthenticated so a client with an expired token can
// still clear its cookie.
// POST /api/users/logout.
func (h *UserHandlers) Logout(w http.ResponseWriter, _ *http.Request) {
	h.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// GetProfile returns the authenticated user's profile, read fresh from
// the store rather than echoed from the token.
// GET /api/users/profile.
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := GetUserFromContext(r.Context())
	if !ok {
		h.Errors.Render(w, r, apperrors.Unauthorized("Not authorized, no token"))
		return
	}

	pub, err := h.Svc.Profile(r.Context(), current.ID)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, pub)
}

// UpdateProfile applies a partial update to the authenticated user's
// profile. Omitted fields keep their stored values.
// PUT /api/users/profile.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := GetUserFromContext(r.Context())
	if !ok {
		h.Errors.Render(w, r, apperrors.Unauthorized("Not authorized, no token"))
		return
	}

	var patch user.ProfileUpdate
	if !DecodeJSON(w, r, &patch, h.Errors) {
		return
	}

	pub, err := h.Svc.UpdateProfile(r.Context(), current.ID, patch)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, pub)
}

// beginSession issues a session token for the given user and writes it
// as the token cookie. Returns false when issuance failed (error
// response already written).
func (h *UserHandlers) beginSession(w http.ResponseWriter, r *http.Request, userID string) bool {
	token, expiresAt, err := h.Tokens.Issue(userID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "token issuance failed", slog.Any("error", err))
		h.Errors.Render(w, r, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal Server Error"))
		return false
	}

	h.setSessionCookie(w, token, expiresAt)
	return true
}

// setSessionCookie writes the session token cookie. The cookie is never
// readable from script and never sent cross-site; Secure is dropped only
// in development where the server speaks plain HTTP.
func (h *UserHandlers) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session token cookie immediately. It
// mirrors the attributes used when setting the cookie to maximize
// compatibility across browsers during deletion.
func (h *UserHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

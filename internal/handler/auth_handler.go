package handler

import (
	"context"
	"net/http"
	"time"

	"membership-api/internal/middleware"
	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type authService interface {
	Register(ctx context.Context, name string, email string, password string) (model.Session, error)
	Login(ctx context.Context, email string, password string) (model.Session, error)
	AccessTTL() time.Duration
}

type authRecorder interface {
	RecordAuthAttempt(operation string, outcome string)
}

type AuthHandler struct {
	service      authService
	metrics      authRecorder
	cookieSecure bool
}

func NewAuthHandler(service authService, metrics authRecorder, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, metrics: metrics, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		h.record("register", err)
		writeError(w, r, err)
		return
	}

	session, err := h.service.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	h.record("register", err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	writeAuthSuccess(w, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		h.record("login", err)
		writeError(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	h.record("login", err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	writeAuthSuccess(w, session)
}

// Logout expires the session cookie. Tokens are stateless, so a bearer
// token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apierror.New(apierror.KindMissingToken, "authentication required", ""))
		return
	}

	writeSuccess(w, http.StatusOK, user.Public())
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.service.AccessTTL() / time.Second),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) record(operation string, err error) {
	if h.metrics == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = string(apierror.KindOf(err))
	}
	h.metrics.RecordAuthAttempt(operation, outcome)
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

// AccessTokenCookie is the cookie that carries the session token.
const AccessTokenCookie = "accessToken"

type TokenSource int

const (
	// TokenSourceAny reads the Authorization header first, then the cookie.
	TokenSourceAny TokenSource = iota
	TokenSourceHeader
	TokenSourceCookie
)

type tokenValidator interface {
	ValidateToken(token string) (*model.Claims, error)
}

type userLookup interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type contextKey string

const (
	authClaimsContextKey contextKey = "auth_claims"
	authUserContextKey   contextKey = "auth_user"
)

// GateOptions selects how a route is protected.
type GateOptions struct {
	Source TokenSource
	// RequiredRole, when set, must equal the caller's role.
	RequiredRole string
	// ReloadUser loads the user named by the token subject and checks the
	// stored role instead of the role in the token.
	ReloadUser bool
}

type AuthMiddleware struct {
	validator tokenValidator
	users     userLookup
}

func NewAuthMiddleware(validator tokenValidator, users userLookup) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, users: users}
}

func (m *AuthMiddleware) Gate(opts GateOptions) func(http.Handler) http.Handler {
	requiredRole := strings.ToLower(strings.TrimSpace(opts.RequiredRole))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, opts.Source)
			if token == "" {
				writeAPIError(w, apierror.New(apierror.KindMissingToken, "missing access token", ""))
				return
			}

			claims, err := m.validator.ValidateToken(token)
			if err != nil {
				writeAPIError(w, apierror.New(apierror.KindInvalidToken, "invalid or expired token", ""))
				return
			}

			ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
			role := claims.Role

			if opts.ReloadUser {
				user, err := m.users.GetUserByEmail(r.Context(), claims.Subject)
				if err != nil {
					var apiErr *apierror.APIError
					if errors.As(err, &apiErr) && apiErr.Kind.Internal() {
						slog.Error("gate user lookup failed", "error", err.Error())
						writeAPIError(w, apiErr)
						return
					}
					writeAPIError(w, apierror.New(apierror.KindInvalidToken, "invalid or expired token", ""))
					return
				}

				role = user.Role
				ctx = context.WithValue(ctx, authUserContextKey, &user)
			}

			if requiredRole != "" && strings.ToLower(role) != requiredRole {
				writeAPIError(w, apierror.New(apierror.KindForbidden, "insufficient permissions", ""))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, source TokenSource) string {
	if source == TokenSourceAny || source == TokenSourceHeader {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
		if source == TokenSourceHeader {
			return ""
		}
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func ClaimsFromContext(ctx context.Context) (*model.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.Claims)
	return claims, ok
}

// UserFromContext returns the user loaded by a gate with ReloadUser set.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(authUserContextKey).(*model.User)
	return user, ok
}

func writeAPIError(w http.ResponseWriter, err *apierror.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus())
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Status: model.StatusError,
		Error:  err.PublicMessage(),
		Code:   string(err.Kind),
	})
}

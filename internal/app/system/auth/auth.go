// Package auth resolves the opaque bearer token in the Authorization
// header to a platform user and makes that user available to handlers
// via the request context. Token issuance is not this service's job;
// tokens already exist in the auth_tokens collection.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"go.uber.org/zap"
)

// TokenUser is the authenticated identity injected into r.Context().
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher loads fresh user data for a token's user ID on each
// request, so role changes and suspensions take effect immediately.
// Implementations return nil when the user is missing or not active.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *TokenUser
}

// TokenResolver maps a bearer token to a user ID. Implementations
// return "" when the token is unknown.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// TokenManager is the middleware bundle handed to route builders.
type TokenManager struct {
	resolver TokenResolver
	fetcher  UserFetcher
	log      *zap.Logger
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(resolver TokenResolver, logger *zap.Logger) *TokenManager {
	return &TokenManager{resolver: resolver, log: logger}
}

// SetUserFetcher installs the per-request user loader.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) { tm.fetcher = f }

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// LoadTokenUser injects the user into context when a valid bearer
// token is presented. Requests without (or with unknown) tokens pass
// through anonymously; enforcement happens in RequireSignedIn /
// RequireRole.
func (tm *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID := tm.resolver.ResolveToken(r.Context(), token)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		if tm.fetcher != nil {
			if u := tm.fetcher.FetchUser(r.Context(), userID); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadTokenUser); otherwise 401 with an error envelope.
func (tm *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apiutil.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the user in context holds one of the allowed
// roles: 401 when anonymous, 403 when signed in with the wrong role.
func (tm *TokenManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apiutil.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apiutil.Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a user directly into the request context,
// bypassing token resolution. For handler tests only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// bearerToken extracts the opaque token from "Authorization: Bearer x".
// A bare token without the scheme is accepted for older clients.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

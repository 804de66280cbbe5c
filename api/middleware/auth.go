// ABOUTME: JWT session authentication middleware for API endpoints
// ABOUTME: Resolves the signed session cookie into a username in the request context

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vodsearch-api/core/interfaces"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the cookie carrying the signed session token
const AuthCookieName = "vodsearch_auth"

var (
	errMissingToken = errors.New("missing session token")
	errInvalidToken = errors.New("invalid session token")
)

// sessionClaims represents the JWT claims for a user session
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type usernameContextKey struct{}

// UsernameFromContext extracts the authenticated username from the
// request context. The second return is false for anonymous requests.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey{}).(string)
	return username, ok
}

// IssueToken signs a session token for the given username. Used at
// login time and by tests.
func IssueToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AuthMiddleware validates session tokens on /api routes
type AuthMiddleware struct {
	secret []byte
	logger interfaces.Logger
}

// NewAuthMiddleware creates a new auth middleware. An empty secret
// disables authentication: every request passes through anonymously.
func NewAuthMiddleware(secret string, logger interfaces.Logger) *AuthMiddleware {
	if secret == "" && logger != nil {
		logger.Warn("AUTH_SECRET not set, authentication is disabled", nil)
	}

	return &AuthMiddleware{
		secret: []byte(secret),
		logger: logger,
	}
}

// Handler wraps the next handler with session validation. Non-/api
// paths (docs, OpenAPI spec, health) are never challenged.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.secret) == 0 || !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		username, err := m.validate(r)
		if err != nil {
			if m.logger != nil {
				m.logger.Debug("rejected unauthenticated request", map[string]interface{}{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validate extracts and verifies the session token, preferring the
// session cookie and falling back to a bearer header.
func (m *AuthMiddleware) validate(r *http.Request) (string, error) {
	tokenStr := ""
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		tokenStr = cookie.Value
	}
	if tokenStr == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenStr = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenStr == "" {
		return "", errMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !parsed.Valid {
		return "", errInvalidToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Username == "" {
		return "", errInvalidToken
	}

	return claims.Username, nil
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bsheremet/unit-info-backend/internal/auth/service"
	"github.com/bsheremet/unit-info-backend/internal/models"
)

type contextKey string

const userKey contextKey = "currentUser"

// UserFinder loads the token subject from storage. The user must still exist
// for the token to be accepted.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware validates the bearer token and loads the calling user into
// the request context
func AuthMiddleware(tokenGenerator *service.TokenGenerator, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			var token string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			email, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					respondUnauthorized(w, "token expired")
					return
				}
				respondUnauthorized(w, "invalid token")
				return
			}

			// The subject must still exist; a deleted account invalidates
			// every token it ever held
			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				respondUnauthorized(w, "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware rejects callers without the admin role. It must run after
// AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			respondUnauthorized(w, "authentication required")
			return
		}

		if !user.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"admin access required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromContext retrieves the authenticated user from context
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying the given user; used by tests
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

type contextKey string

const userKey contextKey = "user"

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Could not validate credentials"
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserResolver loads the user a token subject refers to.
type UserResolver interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header and resolves it to a stored user. Expired, malformed
// and orphaned tokens are rejected with the same response.
func JWTAuth(tokens TokenVerifier, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, msgNotAuthenticated)
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				unauthorized(w, msgInvalidToken)
				return
			}

			user, err := users.FindByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					unauthorized(w, msgInvalidToken)
					return
				}
				slog.Error("resolving token subject", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}

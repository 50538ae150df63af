package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/httputil"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"go.uber.org/zap"
)

type contextKey string

const UserIDContextKey contextKey = "userID"

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDContextKey).(string)
	return id, ok && id != ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

func bearerToken(r *http.Request) (string, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing authorization header"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", "invalid authorization header"
	}
	return parts[1], ""
}

// Authenticated rejects requests without a valid bearer token.
func Authenticated(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, problem := bearerToken(r)
			if problem != "" {
				httputil.WriteErr(w, apperr.Unauthorized(problem), false)
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				logger.Log.Debug("token rejected", zap.Error(err))
				httputil.WriteErr(w, apperr.Unauthorized("invalid or expired token"), false)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the user ID when a valid token is present and lets
// every other request through as anonymous.
func OptionalAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr, problem := bearerToken(r); problem == "" {
				if userID, err := tokens.Verify(tokenStr); err == nil {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

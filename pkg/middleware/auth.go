package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/naturecards/social/pkg/apperrors"
	jwtutil "github.com/naturecards/social/pkg/jwt"
	"github.com/naturecards/social/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware requires a valid bearer token and stores its claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				WriteError(w, apperrors.ErrUnauthorized)
				return
			}

			claims, err := jwtutil.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				logger.Log.WithError(err).Warn("Rejected bearer token")
				WriteError(w, apperrors.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims)))
		})
	}
}

// WithUser returns a copy of ctx carrying claims.
func WithUser(ctx context.Context, claims *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// GetUserFromContext returns the claims stored by AuthMiddleware, or nil.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}

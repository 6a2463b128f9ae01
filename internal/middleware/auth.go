package middleware

import (
	"context"
	"net/http"

	"dukaan-be/internal/auth"
	"dukaan-be/internal/logger"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	uid, ok := ctx.Value(UserIDKey).(uint)
	return uid, ok
}

// RequireAuth rejects requests without a valid session credential.
// Checkout and payment endpoints must never reach their handlers anonymously.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		userID, err := auth.VerifyToken(tokenStr)
		if err != nil {
			logger.FromCtx(r.Context()).Debug("rejected unauthenticated request")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

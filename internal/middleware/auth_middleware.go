package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/habib-153/oddlogy-server/internal/auth"
	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/models"
)

type contextKey string

const (
	ContextUserID contextKey = "userID"
	ContextEmail  contextKey = "userEmail"
	ContextRole   contextKey = "userRole"
)

// RequireRoles validates the bearer token and asserts the role claim is one
// of the given roles. UserID, email and role land in the request context.
func RequireRoles(tm *auth.TokenManager, roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				httpx.WriteError(w, http.StatusUnauthorized, "You are not authorized")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := tm.ValidateJWT(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				httpx.WriteError(w, http.StatusUnauthorized, "You are not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextEmail, claims.Email)
			ctx = context.WithValue(ctx, ContextRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's id from the request context.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(ContextUserID).(string)
	return id
}

// UserEmail returns the authenticated user's email from the request context.
func UserEmail(r *http.Request) string {
	email, _ := r.Context().Value(ContextEmail).(string)
	return email
}

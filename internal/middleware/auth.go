// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"assistant-backend/internal/models"
	"assistant-backend/internal/services"
	apperrors "assistant-backend/pkg/errors"
	"assistant-backend/pkg/utils"
)

type contextKey string

const accountContextKey contextKey = "account"

// AccountFromContext returns the authenticated account placed by Auth.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	acct, ok := ctx.Value(accountContextKey).(*models.Account)
	return acct, ok
}

// WithAccount attaches an account snapshot to the context.
func WithAccount(ctx context.Context, acct *models.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, acct)
}

// Auth validates the Bearer session token and loads the account snapshot
// into the request context. Deactivated accounts are rejected here, before
// any handler runs.
func Auth(authService services.AuthService, loader AccountLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication token not found"))
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("invalid authorization format. Expected: Bearer <token>"))
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("bearer token is empty"))
				return
			}

			claims, err := authService.VerifyToken(tokenString)
			if err != nil {
				utils.SendErrorResponse(w, err)
				return
			}

			acct, err := loader.GetByUserID(r.Context(), claims.UserID)
			if err != nil {
				utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("account no longer exists"))
				return
			}
			if !acct.IsActive {
				utils.SendErrorResponse(w, apperrors.NewAccountDisabledError())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acct)))
		})
	}
}

// AccountLoader is the slice of the account repository the middleware needs.
type AccountLoader interface {
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
}

// AdminOnly rejects requests from accounts without the admin role. The
// finer-grained permission checks live in the admin service.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acct, ok := AccountFromContext(r.Context())
			if !ok {
				utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
				return
			}
			if !acct.IsAdmin() {
				utils.SendErrorResponse(w, apperrors.NewForbiddenError("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a session token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthSession middleware untuk validasi session token UUID
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			// Format: "Bearer <token-uuid>"
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, utils.ErrUnauthorized) {
					logger.Warn("Rejected session", zap.Error(err))
					utils.ResponseUnauthorized(w, err.Error())
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// Set context dengan user info DAN token
			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only callers whose role is one of roles. It must
// run after AuthSession.
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !slices.Contains(roles, entity.UserRole(role)) {
				logger.Warn("Role check failed",
					zap.Int64("user_id", userID),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin - middleware cek role admin
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, entity.RoleAdmin)
}

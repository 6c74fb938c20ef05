package middleware

import (
	"context"
	"net/http"

	"product-admin/internal/domain"

	"go.uber.org/zap"
)

// EditContentMiddleware gates a route group behind the edit-content
// capability. Every failure mode produces the same 403 before any route
// logic runs, so callers cannot distinguish a bad token from an
// under-privileged role.
func EditContentMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseBearerClaims(r, jwtSecret)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondForbidden(w)
				return
			}

			role, _ := claims["role"].(string)
			if !domain.RoleCanEditContent(role) {
				logger.Debug("Caller lacks edit-content capability",
					zap.String("role", role),
				)
				RespondForbidden(w)
				return
			}

			ctx := r.Context()
			if userID, ok := claims["user_id"].(string); ok {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}
			ctx = context.WithValue(ctx, UserRoleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

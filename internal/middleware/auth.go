package middleware

import (
	"strings"

	"nibash_backend/internal/auth"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/models"
	"nibash_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the claims in the gin
// context. Token failures keep their reason (expired, not yet valid,
// malformed) on the way out.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			var appErr *apperrors.AppError
			if apperrors.As(err, &appErr) {
				abortWithError(c, appErr)
			} else {
				abortWithError(c, apperrors.ErrTokenMalformed)
			}
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)

		// Enrich the request context so log lines carry the user id.
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles restricts a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		if !exists {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok || !roleSet[models.UserRole(roleStr)] {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// AdminMiddleware is shorthand for the admin-only surface.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.Abort()
	apperrors.HandleError(c, err)
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
	"github.com/myproparti-blip/My-pro-backend/pkg/contextkeys"
)

// AuthMiddleware resolves the Bearer token to a live account and stores
// the identity in the gin context under "userID", "userRole" and "user".
// Expired, forged and version-stale tokens each get their own error so
// clients know whether to refresh or to log in again.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.AbortWithStatusJSON(apperrors.ErrTokenMissing.HTTPCode, apperrors.ErrorResponse{Error: apperrors.ErrTokenMissing})
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), db, token)
		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.ErrTokenInvalid
			}
			c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Set("user", user)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. Public listings use it so administrators
// see unmoderated entries on the same routes.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.Next()
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), db, token)
		if err != nil {
			// A bad token on a public route reads as anonymous.
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Set("user", user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// AdminOnly rejects requests from non-administrator identities. Must run
// after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != "admin" {
			c.AbortWithStatusJSON(apperrors.ErrNotAuthorized.HTTPCode, apperrors.ErrorResponse{Error: apperrors.ErrNotAuthorized})
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// Websocket clients cannot set headers from the browser; accept the
	// token as a query parameter there.
	return c.Query("token")
}

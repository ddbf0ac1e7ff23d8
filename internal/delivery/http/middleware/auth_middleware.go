package middleware

import (
	"strings"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/auth"
	"go-skillmarket-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

// AuthMiddleware requires a valid bearer token and resolves it to a
// live account, which is stored on the context for handlers.
func AuthMiddleware(tokens *auth.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveBearer(c, tokens, authUC)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		setCurrentUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a usable bearer token is
// present but never rejects: an expired or otherwise unresolvable
// token is treated the same as no token at all.
func OptionalAuth(tokens *auth.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) == "" {
			c.Next()
			return
		}
		user, err := resolveBearer(c, tokens, authUC)
		if err != nil {
			logger.Log.Debug("Ignoring unresolvable bearer token", "path", c.FullPath(), "error", err)
			c.Next()
			return
		}
		setCurrentUser(c, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func resolveBearer(c *gin.Context, tokens *auth.Manager, authUC domain.AuthUsecase) (*domain.User, error) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil, apperror.Unauthorized("Authorization header required")
	}
	subject, err := tokens.Verify(tokenString)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return authUC.ResolveUser(c.Request.Context(), subject)
}

func setCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(currentUserKey, user)
	c.Set(string(domain.KeyUserID), user.ID.Hex())
	c.Set(string(domain.KeyUserRole), user.Role)
}

// CurrentUser returns the resolved account, or nil on anonymous
// requests behind OptionalAuth.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextFullName  = "fullName"
	ContextRoleID    = "roleID"
)

// AuthMiddleware guards routes behind JWT validation
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the access token from the Authorization header and
// places the caller's identity in the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authorization header missing"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid authorization header"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, auth.TokenTypeAccess)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextFullName, claims.FullName)
		c.Set(ContextRoleID, claims.RoleID)

		c.Next()
	}
}

// AccountID returns the authenticated account ID from the context. The
// boolean is false on routes that skipped JWTAuth.
func AccountID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextAccountID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

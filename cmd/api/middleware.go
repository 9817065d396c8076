package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arjunmehta12/mockmate/internal/auth"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaimsFromAuthHeader(c, app.TokenMaker)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		// reject tokens for deleted users
		if _, err := app.Repository.GetUserByID(c.Request.Context(), claims.UserID); err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole gates a route on the role carried in the verified claims. It
// must run after AuthMiddleware.
func (app *application) RequireRole(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("claims")
		claims, ok := v.(*auth.UserClaims)
		if !exists || !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func verifyClaimsFromAuthHeader(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("invalid authorization header")
	}

	claims, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

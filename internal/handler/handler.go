package handler

import (
	"github.com/arjunmehta12/mockmate/internal/auth"
	"github.com/arjunmehta12/mockmate/internal/cache"
	"github.com/arjunmehta12/mockmate/internal/lifecycle"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Logger     *zap.Logger
	Repo       *repository.Repository
	Lifecycle  *lifecycle.Service
	TokenMaker *auth.JWTMaker
	Cache      *cache.Reference
}

// GetClaimsFromContext retrieves the verified token claims set by the auth
// middleware. Nil means the route was reached without authentication.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// uuidParam parses a :param path segment as a UUID, writing the 400 itself
// on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

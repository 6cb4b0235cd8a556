package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and attaches
// the user ID to the request context. Requests without a valid token are
// rejected with 401.
func (m *Authenticate) Handle(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	userID, err := m.authenticateUser(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	ctx := m.contextManager.SetUserIDToContext(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, model.ErrMissingToken
	}

	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}

	if userID == uuid.Nil {
		return uuid.Nil, model.ErrInvalidToken
	}

	return userID, nil
}

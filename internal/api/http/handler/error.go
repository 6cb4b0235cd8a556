package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/opentask-server/internal/model"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognized
// is an internal error with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "User Already Exists"})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, model.ErrMissingToken), errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
	c.Error(err)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/services"
	"github.com/LovationAdmin/pcease-api/utils"
)

// respondError maps service and repository errors onto status codes.
// notFound is the message used for repository.ErrNotFound.
func respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidComponent),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMissingThread),
		errors.Is(err, services.ErrEmptyReply),
		errors.Is(err, services.ErrMissingBuild),
		errors.Is(err, services.ErrInvalidItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.SafeError("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// queryInt reads a non-negative integer query parameter.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return 0, false
	}
	return n, true
}

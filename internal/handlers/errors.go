package handlers

import (
	"errors"
	"net/http"

	"eventeasy/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer sentinel errors to HTTP statuses. Every
// rejection kind gets a distinct status; anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOnlyProvidersCanClaim),
		errors.Is(err, services.ErrNotClaimedByActor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderAlreadyClaimed),
		errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

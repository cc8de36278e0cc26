package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/apperr"
)

// handleError is the single error translator shared by every handler.
// Validation errors surface the aggregated field messages, conflicts and
// not-found surface their own message, anything else becomes a generic 500
// without leaking internals.
func handleError(c *gin.Context, err error) {
	if verr, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Messages})
		return
	}
	switch {
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case apperr.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		log.Printf("handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong. Please try again later."})
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return false
	}
	return true
}

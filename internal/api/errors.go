package api

import (
	"errors"
	"net/http"

	"github.com/comment-dashboard-api/internal/service"
	"github.com/comment-dashboard-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps a service error onto a status code. Store failures are
// answered with fallback and the cause is only logged.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr.Errors[0].Message, verr.Errors)
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func respondValidation(c *gin.Context, message string, details []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"details": details,
	})
}

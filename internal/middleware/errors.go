package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/models"
)

// AbortWithError answers client errors with their status and envelope.
// Anything else is handed to ErrorHandler, which logs it and answers 500.
func AbortWithError(c *gin.Context, err error) {
	apiErr := apperrors.As(err)
	if apiErr.StatusCode >= 500 {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, models.ErrorResponse(apiErr.Code, apiErr.Message))
}

// Package handlers maps HTTP requests onto service calls.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/helpers"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.AbortWithError(c, apperrors.BadRequest("invalid request body: %v", err))
		return false
	}
	return true
}

func param(c *gin.Context, name string) string {
	return helpers.CleanParam(c.Param(name))
}

func query(c *gin.Context, name string) string {
	return helpers.CleanParam(c.Query(name))
}

func respondCreated(c *gin.Context, id, message string) {
	c.JSON(http.StatusCreated, models.SuccessResponse(models.CreatedResponse{ID: id}, message))
}

func respondDeleted(c *gin.Context, n int64) {
	c.JSON(http.StatusOK, models.SuccessResponse(models.DeletedResponse{Deleted: n}, "deleted"))
}

// HealthHandler reports liveness and the service name.
func HealthHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": service,
		})
	}
}

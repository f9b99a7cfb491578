package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unidash/unidash/models"
)

// Recovery returns panic-recovery middleware that responds with the API's
// structured error shape instead of an empty 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.DashboardResponse{
			Success: false,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInternal,
				Message: "internal server error",
			},
		})
	})
}

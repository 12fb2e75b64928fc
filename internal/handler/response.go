package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pomosync/internal/errors"
)

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "internal_error",
				"message": "internal server error",
			},
		})
		return
	}

	errorBody := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Details != nil {
		errorBody["details"] = apiErr.Details
	}

	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": errorBody,
	})
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return false
	}
	return true
}

// NoRoute answers unknown paths in the API error shape.
func NoRoute(c *gin.Context) {
	writeError(c, apperrors.NotFound("route_not_found", "no route for "+c.Request.Method+" "+c.Request.URL.Path))
}

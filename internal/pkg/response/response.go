package response

import (
	"coworkspace/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// List writes a collection with its count and pagination links.
func List(c *gin.Context, statusCode int, data interface{}, count int, pagination interface{}) {
	c.JSON(statusCode, gin.H{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError maps a typed failure to its status and code. Untyped errors
// are recorded on the context for the error logger and reported as 500.
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		_ = c.Error(err)
	}
	Error(c, apperror.HTTPStatus(kind), string(kind), apperror.MessageOf(err))
}

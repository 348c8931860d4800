package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics in request processing into a 500 response. The
// body carries the raw panic text; acceptable for a sample application, a
// production deployment would strip it.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("recovered from panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", fmt.Sprint(r))

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"statusCode":      http.StatusInternalServerError,
					"message":         "An error occurred while processing your request.",
					"detailedMessage": fmt.Sprint(r),
				})
			}
		}()

		c.Next()
	}
}

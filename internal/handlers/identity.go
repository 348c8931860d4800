package handlers

import "github.com/gin-gonic/gin"

// requestUser resolves the acting user for a request. There is no
// authentication in this system; the identity comes from the X-User-Id
// header when present and otherwise falls back to the configured default
// user.
func requestUser(c *gin.Context, fallback string) string {
	if id := c.GetHeader("X-User-Id"); id != "" {
		return id
	}
	return fallback
}

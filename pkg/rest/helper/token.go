package helper

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractTokenFromHeaders returns the bearer token from the Authorization
// header, or "" when the header is missing or malformed.
func ExtractTokenFromHeaders(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

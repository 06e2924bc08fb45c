package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultBodyLimitMB = 2

// BodyLimit 限制请求体大小，maxMB <= 0 时使用默认 2MB。
func BodyLimit(maxMB int) gin.HandlerFunc {
	if maxMB <= 0 {
		maxMB = defaultBodyLimitMB
	}
	maxBytes := int64(maxMB) * 1024 * 1024

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

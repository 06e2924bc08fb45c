package httpx

import (
	"net/http"
	"strconv"

	platformservice "leximind-server/internal/platform/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
// Non-service errors and internal errors are logged with their cause; the client only sees the message.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := platformservice.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			logFailure(c, serviceErr.Message, err)
		}
		c.JSON(status, gin.H{"error": serviceErr.Message})
		return
	}
	logFailure(c, fallbackMessage, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

// WriteError 直接写出错误响应，用于绑定失败等不经过服务层的场景。
func WriteError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ParseIDParam 解析路径中的数字 ID，失败时返回 false。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func serviceErrorStatus(code platformservice.ErrorCode) int {
	switch code {
	case platformservice.ErrorCodeValidation:
		return http.StatusBadRequest
	case platformservice.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case platformservice.ErrorCodeForbidden:
		return http.StatusForbidden
	case platformservice.ErrorCodeConflict:
		return http.StatusConflict
	case platformservice.ErrorCodeNotFound:
		return http.StatusNotFound
	case platformservice.ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func logFailure(c *gin.Context, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	zap.L().Error("❌ 请求处理失败",
		zap.String("path", c.FullPath()),
		zap.String("message", message),
		zap.Error(err),
	)
}

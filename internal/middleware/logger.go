package middleware

import (
	"net/http"
	"time"

	"leximind-server/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 访问日志。5xx 记为 error，4xx 记为 warn。
func Logger(lg *zap.Logger) gin.HandlerFunc {
	if lg == nil {
		lg = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", logger.MaskIP(c.ClientIP())),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			lg.Error("🌐 请求", fields...)
		case status >= http.StatusBadRequest:
			lg.Warn("🌐 请求", fields...)
		default:
			lg.Info("🌐 请求", fields...)
		}
	}
}

// Recovery 捕获处理器 panic，返回 500 而不让进程退出。
func Recovery(lg *zap.Logger) gin.HandlerFunc {
	if lg == nil {
		lg = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		lg.Error("💥 处理请求时发生 panic",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

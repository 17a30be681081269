package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// TraceHeader 请求追踪 ID 的头部
	TraceHeader = "X-Trace-ID"
	// TraceKey gin context 中的键
	TraceKey = "traceID"
)

// TraceMiddleware 添加请求追踪ID
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 上游已带 TraceID 时沿用
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(TraceKey, traceID)
		c.Header(TraceHeader, traceID)

		c.Next()
	}
}

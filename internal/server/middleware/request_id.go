package middleware

import (
	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/id"
)

// RequestIDHeader 请求ID header
const RequestIDHeader = "X-Request-ID"

// RequestIDKey gin.Context 中保存请求ID的 key
const RequestIDKey = "request_id"

// RequestID 请求ID中间件，沿用客户端传入的ID，否则生成新的
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > 64 {
			rid = id.New()
		}
		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

package middleware

import (
	"builderboard/internal/consts"
	"builderboard/pkg/response"
	"builderboard/utils/uuid"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
)

// NoCache 控制客户端不要使用缓存
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, max-age=0, must-revalidate")
		c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
		c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// Options 预检请求直接返回
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToUpper(c.Request.Method) != http.MethodOptions {
			c.Next()
			return
		}
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "origin, content-type, accept, "+strings.ToLower(consts.SessionIdHeader))
		c.Header("Access-Control-Expose-Headers", consts.SessionIdHeader+", "+consts.RequestIdHeader)
		c.Header("Allow", "HEAD,GET,POST,DELETE,OPTIONS")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Expose-Headers", consts.SessionIdHeader+", "+consts.RequestIdHeader)
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// RequestId 用来设置和透传requestId
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.GenRequestID()
		c.Header(consts.RequestIdHeader, requestId)

		// 设置requestId到context中，便于后面调用链的透传
		c.Set(consts.RequestId, requestId)
		c.Next()
	}
}

// AntiDuplicate 防止同一个客户端在阈值内重复触发同一个接口
// 只用在会触发上游请求的写操作上，例如聚合榜单的"加载更多"
func AntiDuplicate(threshold time.Duration) gin.HandlerFunc {
	// 限制缓存的最大大小为 500，且是并发安全的 LRU 缓存
	reqCache, _ := lru.New(500)
	return func(c *gin.Context) {
		// 使用 IP + 会话 + 接口路径 作为key
		key := c.ClientIP() + "|" + c.GetHeader(consts.SessionIdHeader) + "|" + c.Request.URL.Path
		if value, ok := reqCache.Get(key); ok {
			if time.Since(value.(time.Time)) < threshold {
				response.TooManyRequests(c)
				c.Abort()
				return
			}
		}
		reqCache.Add(key, time.Now())
		c.Next()
	}
}

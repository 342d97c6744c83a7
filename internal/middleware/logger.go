package middleware

import (
	"builderboard/internal/consts"
	"builderboard/pkg/logger"
	"builderboard/pkg/response"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger(c *gin.Context) {
	// 请求前
	t := time.Now()
	reqPath := c.Request.URL.Path
	reqId := c.GetString(consts.RequestId)
	method := c.Request.Method
	ip := c.ClientIP()

	logger.Info("[Request Start]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("query", c.Request.URL.RawQuery),
		logger.Pair("method", method))

	c.Next()
	// 请求后
	latency := time.Since(t)
	logger.Info("[Request End]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("status", c.Writer.Status()),
		logger.Pair("cost", latency))
}

// Recovery 捕获 panic，返回统一的错误结构
func Recovery(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Panic]",
				logger.Pair(consts.RequestId, c.GetString(consts.RequestId)),
				logger.Pair("path", c.Request.URL.Path),
				logger.Pair("panic", r),
				logger.Pair("stack", string(debug.Stack())))
			if !c.Writer.Written() {
				response.InternalError(c)
			} else {
				c.Status(http.StatusInternalServerError)
			}
			c.Abort()
		}
	}()
	c.Next()
}

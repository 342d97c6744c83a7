package ping

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping 健康检查，启动时 server 会轮询它
func Ping() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "\r\nSuccess")
	}
}

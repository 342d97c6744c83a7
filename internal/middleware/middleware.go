package middleware

import "github.com/gin-gonic/gin"

// Middleware 全局中间件，实现 api.Router 接口
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// Load 顺序：requestId 最先，日志和 panic 捕获都依赖它
func (m *Middleware) Load(g *gin.Engine) {
	g.Use(RequestId(), Recovery, Logger, Options(), Secure(), NoCache())
}

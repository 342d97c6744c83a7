package router

import (
	"builderboard/internal/consts"
	"builderboard/internal/handler/builder"
	"builderboard/internal/handler/leaderboard"
	"builderboard/internal/handler/ping"
	"builderboard/internal/handler/proxy"
	"builderboard/internal/handler/sponsor"
	"builderboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	sponsorHandler     *sponsor.Handler
	leaderboardHandler *leaderboard.Handler
	builderHandler     *builder.Handler
	proxyHandler       *proxy.Handler
}

func NewApiRouter(sh *sponsor.Handler, lh *leaderboard.Handler, bh *builder.Handler, ph *proxy.Handler) *ApiRouter {
	return &ApiRouter{sponsorHandler: sh, leaderboardHandler: lh, builderHandler: bh, proxyHandler: ph}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	// 同源代理，路径和浏览器端保持一致
	px := g.Group("/api/proxy")
	{
		px.GET("/leaderboard", api.proxyHandler.Leaderboard())
		px.GET("/talent", api.proxyHandler.Talent())
	}

	base := g.Group("/api/v1")

	base.GET("/sponsors", api.sponsorHandler.SponsorsGet())
	p := base.Group("/prices")
	{
		p.GET("", api.sponsorHandler.PricesGet())
		p.GET("/:sponsor", api.sponsorHandler.PriceGet())
	}

	lb := base.Group("/leaderboard")
	{
		lb.GET("", api.leaderboardHandler.LeaderboardGet())
		lb.GET("/all", api.leaderboardHandler.AggregateGet())
		// 每轮都会请求全部赞助方，防止重复点击
		lb.POST("/all/more", middleware.AntiDuplicate(consts.DuplicateThreshold), api.leaderboardHandler.AggregateMore())
		lb.DELETE("/all", api.leaderboardHandler.AggregateReset())
	}

	b := base.Group("/builders")
	{
		b.GET("/profile", api.builderHandler.ProfileGet())
		b.GET("/:id/score", api.builderHandler.ScoreGet())
	}
}

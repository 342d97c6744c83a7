package proxy

import (
	"builderboard/pkg/errors"
	"builderboard/pkg/logger"
	"builderboard/pkg/proxy"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 同源代理，浏览器不直接接触上游密钥
// 成功时原样返回上游 JSON，失败时返回 {error, status}
type Handler struct {
	scoring *proxy.Forwarder
	talent  *proxy.Forwarder
}

func NewHandler(scoring, talent *proxy.Forwarder) *Handler {
	return &Handler{scoring: scoring, talent: talent}
}

func (h *Handler) Leaderboard() gin.HandlerFunc {
	return h.forward(h.scoring)
}

func (h *Handler) Talent() gin.HandlerFunc {
	return h.forward(h.talent)
}

func (h *Handler) forward(f *proxy.Forwarder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")

		query := ctx.Request.URL.Query()
		endpoint := query.Get("endpoint")
		query.Del("endpoint")

		resp, err := f.Forward(ctx, endpoint, query)
		if err != nil {
			var ue *proxy.UpstreamError
			if !errors.As(err, &ue) {
				logger.Warnf("proxy %s: %v", f.Name(), err)
				ue = &proxy.UpstreamError{Kind: proxy.KindNetwork, Status: http.StatusBadGateway, Message: err.Error()}
			}
			ctx.JSON(ue.Status, ue)
			return
		}

		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json; charset=utf-8"
		}
		ctx.Data(resp.Status, contentType, resp.Body)
	}
}

package leaderboard

import (
	"builderboard/internal/aggregate"
	"builderboard/internal/category"
	"builderboard/internal/consts"
	"builderboard/internal/model"
	"builderboard/internal/service"
	"builderboard/internal/session"
	"builderboard/internal/sponsor"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/response"
	"builderboard/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	lbService     service.LeaderboardService
	aggregator    *aggregate.Aggregator
	sessions      *session.Store
	defaultWindow string
}

func NewHandler(lb service.LeaderboardService, agg *aggregate.Aggregator, sessions *session.Store, defaultWindow string) *Handler {
	return &Handler{lbService: lb, aggregator: agg, sessions: sessions, defaultWindow: defaultWindow}
}

// LeaderboardGet 单个赞助方的榜单
func (h *Handler) LeaderboardGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.LeaderboardReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validator.Translate(err), nil)
			return
		}
		res, err := h.lbService.Leaderboard(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// AggregateGet 跨赞助方聚合榜单，本地数据不够时才会请求上游
func (h *Handler) AggregateGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AggregateReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validator.Translate(err), nil)
			return
		}
		window := h.window(req.Window)
		sid, st := h.sessions.GetOrCreate(ctx.GetHeader(consts.SessionIdHeader), window)
		ctx.Header(consts.SessionIdHeader, sid)

		v, err := h.aggregator.Aggregate(ctx, st, window, req.Page, req.Search)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.UpstreamErr, ""), nil)
			return
		}
		response.JSON(ctx, nil, buildRes(sid, v))
	}
}

// AggregateMore 立即为会话拉取一轮，失败的赞助方会在这一轮重试
func (h *Handler) AggregateMore() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AggregateReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validator.Translate(err), nil)
			return
		}
		sid := ctx.GetHeader(consts.SessionIdHeader)
		st, ok := h.sessions.Get(sid)
		if !ok {
			response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, "session not found"), nil)
			return
		}
		ctx.Header(consts.SessionIdHeader, sid)

		_, err := h.aggregator.Round(ctx, st)
		switch {
		case err == nil,
			errors.Is(err, aggregate.ErrRoundInFlight),
			errors.Is(err, aggregate.ErrExhausted),
			errors.Is(err, aggregate.ErrStaleRound):
		default:
			response.JSON(ctx, errors.Wrap(err, ecode.UpstreamErr, ""), nil)
			return
		}
		response.JSON(ctx, nil, buildRes(sid, st.View(req.Page, req.Search)))
	}
}

// AggregateReset 丢弃会话
func (h *Handler) AggregateReset() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sid := ctx.GetHeader(consts.SessionIdHeader)
		response.JSON(ctx, nil, gin.H{"session_id": sid, "deleted": h.sessions.Delete(sid)})
	}
}

func (h *Handler) window(w string) string {
	if w == "" {
		return h.defaultWindow
	}
	return w
}

func buildRes(sid string, v aggregate.View) model.AggregateRes {
	failed := v.FailedSponsors
	if failed == nil {
		failed = []sponsor.ID{}
	}
	return model.AggregateRes{
		SessionID:       sid,
		Epoch:           v.Epoch,
		Window:          v.Window,
		Users:           v.Users,
		Pagination:      v.Pagination,
		HasMoreLocal:    v.HasMoreLocal,
		HasMoreUpstream: v.HasMoreUpstream,
		Loading:         v.Loading,
		FailedSponsors:  failed,
		Categories:      category.Strings(category.Categorize(category.FromBuilders(v.Users))),
	}
}

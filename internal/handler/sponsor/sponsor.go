package sponsor

import (
	"builderboard/internal/model"
	"builderboard/internal/service"
	"builderboard/internal/sponsor"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/response"
	"fmt"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	priceService service.PriceService
}

func NewHandler(ps service.PriceService) *Handler {
	return &Handler{priceService: ps}
}

// SponsorsGet 赞助方、代币和支持的时间窗口
func (h *Handler) SponsorsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		list := make([]model.SponsorRes, 0)
		for _, s := range sponsor.Catalogue() {
			list = append(list, model.SponsorRes{Sponsor: s, Windows: sponsor.Windows(s.ID)})
		}
		response.JSON(ctx, nil, list)
	}
}

// PricesGet 全部赞助方代币的美元价格，顺序固定
func (h *Handler) PricesGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ids := sponsor.All()
		quotes := h.priceService.ResolveAll(ctx, ids)
		list := make([]model.TokenQuote, 0, len(quotes))
		for _, id := range ids {
			if q, ok := quotes[id]; ok {
				list = append(list, q)
			}
		}
		response.JSON(ctx, nil, list)
	}
}

func (h *Handler) PriceGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := sponsor.ID(ctx.Param("sponsor"))
		_, quote := h.priceService.Resolve(ctx, id)
		if quote == nil {
			response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, fmt.Sprintf("unknown sponsor %q", id)), nil)
			return
		}
		response.JSON(ctx, nil, quote)
	}
}

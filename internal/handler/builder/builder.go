package builder

import (
	"builderboard/internal/model"
	"builderboard/internal/service"
	"builderboard/pkg/response"
	"builderboard/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	builderService service.BuilderService
}

func NewHandler(bs service.BuilderService) *Handler {
	return &Handler{builderService: bs}
}

// ScoreGet 单个建设者的声誉分
func (h *Handler) ScoreGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := h.builderService.Score(ctx, ctx.Param("id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// ProfileGet 链上、代码、身份三个面板，单个面板失败时只在该面板里带上 error
func (h *Handler) ProfileGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.BuilderProfileReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validator.Translate(err), nil)
			return
		}
		res, err := h.builderService.Profile(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

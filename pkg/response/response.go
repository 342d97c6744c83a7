package response

import (
	"builderboard/internal/consts"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// HTTPStatus 错误码对应的http状态码
func HTTPStatus(code int) int {
	switch code {
	case ecode.Success:
		return http.StatusOK
	case ecode.ValidateErr:
		return http.StatusBadRequest
	case ecode.NotFoundErr:
		return http.StatusNotFound
	case ecode.RequireAuthErr:
		return http.StatusUnauthorized
	case ecode.TooManyRequestsErr:
		return http.StatusTooManyRequests
	case ecode.UpstreamErr, ecode.UpstreamFormatErr:
		return http.StatusBadGateway
	case ecode.ConfigErr, ecode.Unknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	c.JSON(HTTPStatus(code), ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyRequestsErr,
		Message:   "The request is too frequent. Please try again later.",
		Data:      nil,
	})
}

// 参数错误，返回400
func BadRequests(c *gin.Context, err error) {
	JSON(c, errors.Wrap(err, ecode.ValidateErr, ""), nil)
}

// 服务内部错误，返回500
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.Unknown,
		Message:   ecode.Message(ecode.Unknown),
		Data:      nil,
	})
}

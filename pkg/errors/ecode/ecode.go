package ecode

// 业务错误码，0表示成功
const (
	Success = 0
	Unknown = 10000

	ValidateErr        = 10001
	NotFoundErr        = 10004
	RequireAuthErr     = 10401
	TooManyRequestsErr = 10429

	// 上游服务相关
	UpstreamErr       = 20001
	UpstreamFormatErr = 20002
	ConfigErr         = 20003
)

var messages = map[int]string{
	Success:            "success",
	Unknown:            "unknown error",
	ValidateErr:        "invalid parameters",
	NotFoundErr:        "not found",
	RequireAuthErr:     "authorization required",
	TooManyRequestsErr: "too many requests",
	UpstreamErr:        "upstream service unavailable",
	UpstreamFormatErr:  "unexpected upstream response",
	ConfigErr:          "service not configured",
}

// Message 返回错误码对应的默认提示
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}

package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"
	// SessionId 聚合会话，请求头和 gin context 共用
	SessionId = "session_id"

	RequestIdHeader = "X-Request-Id"
	SessionIdHeader = "X-Session-Id"
	LanguageId      = "T-Language-Id"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

const (
	// 缓存前缀，Redis 和进程内缓存共用
	CachePrefix = "builderboard:"

	// 进程内缓存条目上限
	MemoryCacheSize = 4096

	// 防重复提交的时间窗口
	DuplicateThreshold = 1 * time.Second
)

package proxy

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// ErrorKind 转发失败的分类，决定返回给调用方的状态码
type ErrorKind int

const (
	KindConfig   ErrorKind = iota + 1 // 部署缺少配置
	KindEndpoint                      // endpoint 参数不合法
	KindNetwork                       // 网络错误
	KindStatus                        // 上游非 2xx
	KindFormat                        // 上游返回的不是 JSON
)

// UpstreamError 序列化后就是代理路由返回的 {error, status}
type UpstreamError struct {
	Kind    ErrorKind `json:"-"`
	Status  int       `json:"status"`
	Message string    `json:"error"`
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Response 上游原样返回的内容
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Forwarder 把请求转发到一个固定的上游，并在服务端注入密钥
type Forwarder struct {
	name    string
	baseURL string
	header  string
	value   string
	client  *resty.Client
}

func NewForwarder(name string, cfg conf.UpstreamConfig) *Forwarder {
	value := cfg.ApiKey
	if value != "" && cfg.AuthScheme != "" {
		value = cfg.AuthScheme + " " + value
	}
	client := resty.New().
		SetTimeout(conf.Duration(cfg.Timeout, 15*time.Second)).
		SetRetryCount(cfg.RetryCount).
		SetLogger(logger.Resty{}).
		SetHeader("Accept", "application/json")
	return &Forwarder{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		header:  cfg.AuthHeader,
		value:   value,
		client:  client,
	}
}

func (f *Forwarder) Name() string {
	return f.name
}

// Configured 缺少上游地址时代理路由直接失败
func (f *Forwarder) Configured() bool {
	return f.baseURL != ""
}

// SetClient 测试时替换底层 http 客户端
func (f *Forwarder) SetClient(c *resty.Client) {
	f.client = c
}

// ValidateEndpoint endpoint 只能是上游的绝对路径，不能带 scheme、host 或 ..
func ValidateEndpoint(endpoint string) (string, url.Values, error) {
	if endpoint == "" {
		return "", nil, fmt.Errorf("endpoint is required")
	}
	path, rawQuery, _ := strings.Cut(endpoint, "?")
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "", nil, fmt.Errorf("endpoint must be an absolute path")
	}
	// 按上游解码后的路径再查一遍，%2e%2e 之类的编码不能绕过
	decoded, err := url.PathUnescape(path)
	if err != nil || strings.HasPrefix(decoded, "//") || strings.Contains(strings.ToLower(decoded), "%2e") {
		return "", nil, fmt.Errorf("endpoint %q is not allowed", path)
	}
	for _, p := range []string{path, decoded} {
		if strings.Contains(p, "://") || strings.Contains(p, "..") || strings.ContainsAny(p, "#\\") {
			return "", nil, fmt.Errorf("endpoint %q is not allowed", path)
		}
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("endpoint query: %w", err)
	}
	return path, q, nil
}

// Forward 原样转发 GET 请求
// 非 2xx 和非 JSON 响应都会转成 *UpstreamError
func (f *Forwarder) Forward(ctx context.Context, endpoint string, query url.Values) (*Response, error) {
	if !f.Configured() {
		return nil, &UpstreamError{Kind: KindConfig, Status: http.StatusInternalServerError,
			Message: fmt.Sprintf("%s base url is not configured", f.name)}
	}
	path, extra, err := ValidateEndpoint(endpoint)
	if err != nil {
		return nil, &UpstreamError{Kind: KindEndpoint, Status: http.StatusBadRequest, Message: err.Error()}
	}
	params := url.Values{}
	for k, vs := range extra {
		params[k] = append(params[k], vs...)
	}
	for k, vs := range query {
		params[k] = append(params[k], vs...)
	}

	req := f.client.R().SetContext(ctx).SetQueryParamsFromValues(params)
	if f.header != "" && f.value != "" {
		req.SetHeader(f.header, f.value)
	}
	resp, err := req.Get(f.baseURL + path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Errorf("proxy %s request %s failed: %v", f.name, path, err)
		return nil, &UpstreamError{Kind: KindNetwork, Status: http.StatusBadGateway,
			Message: fmt.Sprintf("%s request failed: %v", f.name, err)}
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &UpstreamError{Kind: KindStatus, Status: resp.StatusCode(),
			Message: upstreamMessage(f.name, resp.Status(), body)}
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Kind: KindFormat, Status: http.StatusBadGateway,
			Message: fmt.Sprintf("%s returned a non-JSON response (content-type %q)", f.name, resp.Header().Get("Content-Type"))}
	}
	return &Response{Status: resp.StatusCode(), ContentType: resp.Header().Get("Content-Type"), Body: body}, nil
}

// GetJSON 转发并解析到 out
func (f *Forwarder) GetJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	resp, err := f.Forward(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &UpstreamError{Kind: KindFormat, Status: http.StatusBadGateway,
			Message: fmt.Sprintf("%s response has unexpected shape: %v", f.name, err)}
	}
	return nil
}

// 尽量从上游 JSON 里取出错误描述
func upstreamMessage(name, status string, body []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if json.Valid(body) && json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return fmt.Sprintf("%s: %s", name, payload.Message)
		}
		if s, ok := payload.Error.(string); ok && s != "" {
			return fmt.Sprintf("%s: %s", name, s)
		}
	}
	return fmt.Sprintf("%s responded %s", name, status)
}

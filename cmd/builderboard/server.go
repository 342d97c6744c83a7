package api

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"builderboard/pkg/validator"
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

const shutdownTimeout = 5 * time.Second

// Router 加载路由，使用侧提供接口，实现侧需要实现该接口
type Router interface {
	Load(engine *gin.Engine)
}

type Server struct {
	config     *conf.Config
	onShutdown []func()
}

func NewServer(c *conf.Config) *Server {
	return &Server{config: c}
}

// RegisterOnShutdown 注册shutdown后的回调，按注册顺序执行
func (s *Server) RegisterOnShutdown(f func()) {
	s.onShutdown = append(s.onShutdown, f)
}

// Run 阻塞直到收到 SIGINT/SIGTERM 或监听失败
func (s *Server) Run(rs ...Router) {
	// 必须在创建gin实例之前
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}
	g := gin.New()
	for _, r := range rs {
		r.Load(g)
	}
	validator.LazyInitGinValidator(s.config.Language)

	srv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           g,
		ReadHeaderTimeout: 10 * time.Second,
	}
	for _, f := range s.onShutdown {
		srv.RegisterOnShutdown(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	go s.awaitReady()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logger.Errorf("server start failed on %s: %v", s.config.Listen, err)
		}
		return
	case <-ctx.Done():
	}

	logger.Infof("server shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("server shutdown err %v", err)
	}
	logger.Infof("server stop on %s", s.config.Listen)
}

// awaitReady 服务能响应 /ping 之后再打印启动信息
func (s *Server) awaitReady() {
	if err := Ping(s.config.Listen, s.config.MaxPingCount); err != nil {
		logger.Fatalf("server no response: %v", err)
	}
	s.logStartup()
}

func (s *Server) logStartup() {
	c := s.config
	lb := c.Leaderboard
	logger.Infof("%s started on %s (mode %s)", c.AppName, c.Listen, gin.Mode())
	logger.Infof("leaderboard: default %s/%s, %d rounds per request, %d sessions max",
		lb.DefaultSponsor, lb.DefaultWindow, lb.MaxRoundsPerRequest, lb.MaxSessions)
	for name, up := range map[string]conf.UpstreamConfig{"scoring": c.Scoring, "talent": c.Talent} {
		switch {
		case up.BaseURL == "":
			logger.Warnf("%s upstream base url is not configured, /api/proxy/%s will answer 500", name, proxyRoute(name))
		case up.ApiKey == "":
			logger.Warnf("%s upstream %s has no api key", name, up.BaseURL)
		default:
			logger.Infof("%s upstream %s", name, up.BaseURL)
		}
	}
}

func proxyRoute(upstream string) string {
	if upstream == "scoring" {
		return "leaderboard"
	}
	return upstream
}

// Ping 轮询本机 /ping，最多等待 maxCount 秒
func Ping(listen string, maxCount int) error {
	if listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	port := listen
	if i := strings.LastIndex(port, ":"); i >= 0 {
		port = port[i:]
	} else {
		port = ":" + port
	}
	if maxCount <= 0 {
		maxCount = 1
	}

	attempt := 0
	resp, err := resty.New().
		SetTimeout(time.Second).
		SetRetryCount(maxCount-1).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			attempt++
			if err != nil || r == nil || r.StatusCode() != http.StatusOK {
				logger.Infof("等待服务在线, 第 %d 次, 最多 %d 次", attempt, maxCount)
				return true
			}
			return false
		}).
		R().Get(fmt.Sprintf("http://localhost%s/ping", port))
	if err != nil {
		return fmt.Errorf("服务启动失败，端口 %s: %w", port, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("服务启动失败，端口 %s: status %d", port, resp.StatusCode())
	}
	return nil
}

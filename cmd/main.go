package main

import (
	"builderboard/cmd/builderboard"
	"builderboard/conf"
	"builderboard/internal/consts"
	"builderboard/internal/middleware"
	"builderboard/pkg/cache"
	"builderboard/pkg/logger"
	"flag"
	"log"
)

// 启动服务
/*
curl "http://localhost:12180/api/v1/leaderboard?sponsor=celo&window=this_week"
curl -i "http://localhost:12180/api/v1/leaderboard/all?page=1"
curl -X POST -H "X-Session-Id: <id>" "http://localhost:12180/api/v1/leaderboard/all/more"
curl "http://localhost:12180/api/proxy/leaderboard?endpoint=/leaderboards&sponsor_slug=base&per_page=5"
*/

func main() {
	configPath := flag.String("c", "conf/config.yaml", "config file path")
	flag.Parse()

	// 加载配置文件
	err := conf.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	// 配置了 redis 就用 redis 缓存，否则用进程内缓存
	var store cache.Store
	if appCfg.Redis.Addr != "" {
		cache.InitRedis(appCfg.Redis)
		store = cache.NewRedisStore(cache.GetRedisClient(), consts.CachePrefix)
		logger.Infof("cache: redis %s", appCfg.Redis.Addr)
	} else {
		store = cache.NewMemoryStore(consts.MemoryCacheSize)
		logger.Infof("cache: in-process lru")
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		cache.CloseRedis()
	})
	srvRouter, err := api.InitRouter(appCfg, store)
	if err != nil {
		logger.Fatalf("init router: %v", err)
	}

	srv.Run(middleware.NewMiddleware(), srvRouter)
}

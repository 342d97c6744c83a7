package api

import (
	"builderboard/conf"
	"builderboard/internal/aggregate"
	"builderboard/internal/handler/builder"
	"builderboard/internal/handler/leaderboard"
	"builderboard/internal/handler/proxy"
	"builderboard/internal/handler/sponsor"
	"builderboard/internal/router"
	"builderboard/internal/service"
	"builderboard/internal/session"
	sp "builderboard/internal/sponsor"
	"builderboard/pkg/cache"
	"builderboard/pkg/coingecko"
	"builderboard/pkg/explorer"
	"builderboard/pkg/github"
	"builderboard/pkg/identity"
	fwd "builderboard/pkg/proxy"
	"builderboard/pkg/talent/rest"
	"time"
)

func InitRouter(cfg conf.Config, store cache.Store) (Router, error) {
	// 两个上游都经由转发器访问，代理路由和服务端拉取共用
	scoring := fwd.NewForwarder("scoring service", cfg.Scoring)
	talent := fwd.NewForwarder("talent service", cfg.Talent)
	talentClient := rest.NewTalentRestClient(scoring, talent)

	ps := service.NewPriceService(coingecko.NewClient(cfg.Price), store, conf.Duration(cfg.Price.CacheTTL, 5*time.Minute))
	ls := service.NewLeaderboardService(talentClient, ps, store, conf.Duration(cfg.Leaderboard.PageCacheTTL, time.Minute),
		service.LeaderboardDefaults{
			Sponsor:  sp.ID(cfg.Leaderboard.DefaultSponsor),
			Window:   cfg.Leaderboard.DefaultWindow,
			PageSize: cfg.Leaderboard.DisplayPageSize,
		})
	bs := service.NewBuilderService(
		explorer.NewClient(cfg.Profile.Explorer, cfg.Profile.ChainID),
		github.NewClient(cfg.Profile.Github),
		identity.NewClient(cfg.Profile.Ens, cfg.Profile.Social),
		talentClient,
		cfg.Profile.Limit,
	)

	sessions, err := session.NewStore(cfg.Leaderboard.MaxSessions)
	if err != nil {
		return nil, err
	}
	agg := aggregate.NewAggregator(ls, ps, cfg.Leaderboard.MaxRoundsPerRequest)

	return router.NewApiRouter(
		sponsor.NewHandler(ps),
		leaderboard.NewHandler(ls, agg, sessions, cfg.Leaderboard.DefaultWindow),
		builder.NewHandler(bs),
		proxy.NewHandler(scoring, talent),
	), nil
}

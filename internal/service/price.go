package service

import (
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"builderboard/pkg/cache"
	"builderboard/pkg/logger"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// fetchTimeout 合并后的现价查询不跟随任何单个调用方的取消
const fetchTimeout = 10 * time.Second

var _ PriceService = (*priceService)(nil)

// TokenPricer 现价来源，coingecko.Client 实现了它
type TokenPricer interface {
	SimplePrice(ctx context.Context, coinID string) (float64, error)
	TokenPrice(ctx context.Context, platform, contract string) (float64, error)
}

type PriceService interface {
	// Resolve 未知赞助方返回 (0, nil)，现价查询失败返回兜底价格，不会报错
	Resolve(ctx context.Context, id sponsor.ID) (float64, *model.TokenQuote)
	// ResolveAll 并发解析，未知赞助方不出现在结果里
	ResolveAll(ctx context.Context, ids []sponsor.ID) map[sponsor.ID]model.TokenQuote
}

type priceService struct {
	pricer TokenPricer
	store  cache.Store
	ttl    time.Duration
	group  singleflight.Group
}

func NewPriceService(pricer TokenPricer, store cache.Store, ttl time.Duration) *priceService {
	return &priceService{pricer: pricer, store: store, ttl: ttl}
}

func priceCacheKey(id sponsor.ID) string {
	return "price:" + string(id)
}

func (s *priceService) Resolve(ctx context.Context, id sponsor.ID) (float64, *model.TokenQuote) {
	sp, ok := sponsor.Lookup(id)
	if !ok {
		return 0, nil
	}

	var cached model.TokenQuote
	if hit, err := cache.GetJSON(ctx, s.store, priceCacheKey(sp.ID), &cached); err != nil {
		logger.Warnf("[price] read cache %s: %v", sp.ID, err)
	} else if hit {
		return cached.Price, &cached
	}

	// 同一赞助方的并发查询合并成一次
	v, _, _ := s.group.Do(string(sp.ID), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.fetch(fctx, sp), nil
	})
	q := v.(model.TokenQuote)
	return q.Price, &q
}

func (s *priceService) fetch(ctx context.Context, sp sponsor.Sponsor) model.TokenQuote {
	q := model.TokenQuote{Sponsor: sp.ID, Token: sp.Token, Price: sp.Token.FallbackPrice}

	var (
		price float64
		err   error
	)
	switch {
	case sp.Token.CoinID != "":
		price, err = s.pricer.SimplePrice(ctx, sp.Token.CoinID)
	case sp.Token.Contract != "":
		price, err = s.pricer.TokenPrice(ctx, sp.Token.Platform, sp.Token.Contract)
	default:
		return q
	}
	if err != nil || price <= 0 {
		logger.Warnf("[price] %s live price unavailable, use fallback %v: %v", sp.ID, sp.Token.FallbackPrice, err)
		return q
	}

	q.Price = price
	q.Live = true
	// 只缓存现价，兜底价格下次还会重试
	if err := cache.SetJSON(ctx, s.store, priceCacheKey(sp.ID), q, s.ttl); err != nil {
		logger.Warnf("[price] write cache %s: %v", sp.ID, err)
	}
	return q
}

func (s *priceService) ResolveAll(ctx context.Context, ids []sponsor.ID) map[sponsor.ID]model.TokenQuote {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[sponsor.ID]model.TokenQuote, len(ids))
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id sponsor.ID) {
			defer wg.Done()
			_, q := s.Resolve(ctx, id)
			if q == nil {
				return
			}
			mu.Lock()
			out[q.Sponsor] = *q
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return out
}

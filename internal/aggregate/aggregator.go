package aggregate

import (
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"builderboard/pkg/errors"
	"builderboard/pkg/logger"
	"context"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrRoundInFlight 同一会话已有一轮在进行
	ErrRoundInFlight = errors.New("aggregate: round already in flight")
	// ErrStaleRound 轮次进行期间会话被重置，结果已丢弃
	ErrStaleRound = errors.New("aggregate: state reset while round was in flight")
	// ErrExhausted 所有赞助方都已拉完
	ErrExhausted = errors.New("aggregate: no sponsor has more pages")
)

// PageFetcher 拉取单个赞助方的一页榜单
type PageFetcher interface {
	FetchPage(ctx context.Context, id sponsor.ID, window string, page, pageSize int) ([]model.LeaderboardUser, model.Pagination, error)
}

// PriceSource 批量解析代币价格，失败时返回兜底价格，不会报错
type PriceSource interface {
	ResolveAll(ctx context.Context, ids []sponsor.ID) map[sponsor.ID]model.TokenQuote
}

// RoundResult 一轮拉取的统计
type RoundResult struct {
	Epoch           uint64
	Fetched         int
	Succeeded       []sponsor.ID
	Failed          []sponsor.ID
	HasMoreUpstream bool
}

// View 一次请求返回给调用方的聚合榜单
type View struct {
	Epoch           uint64
	Window          string
	Users           []model.AggregatedBuilder
	Pagination      model.Pagination
	HasMoreLocal    bool
	HasMoreUpstream bool
	Loading         bool
	FailedSponsors  []sponsor.ID
	Rounds          int
}

type Aggregator struct {
	fetcher   PageFetcher
	prices    PriceSource
	maxRounds int
}

// NewAggregator maxRounds 为单次请求最多触发的拉取轮数
func NewAggregator(fetcher PageFetcher, prices PriceSource, maxRounds int) *Aggregator {
	if maxRounds <= 0 {
		maxRounds = 1
	}
	return &Aggregator{fetcher: fetcher, prices: prices, maxRounds: maxRounds}
}

// Round 对每个还有数据的赞助方并发拉取下一页并合并
// 网络请求在锁外进行，结果写回前会检查 epoch
func (a *Aggregator) Round(ctx context.Context, st *State) (RoundResult, error) {
	plan, err := st.begin()
	if err != nil {
		return RoundResult{Epoch: plan.epoch}, err
	}
	committed := false
	defer func() {
		if !committed {
			st.abort(plan)
		}
	}()

	var prices map[sponsor.ID]model.TokenQuote
	if plan.needPrices {
		prices = a.prices.ResolveAll(ctx, st.sponsors)
	}

	results := make([]sponsorResult, len(plan.order))
	var g errgroup.Group
	for i, id := range plan.order {
		i, id := i, id
		g.Go(func() error {
			users, p, err := a.fetcher.FetchPage(ctx, id, plan.filter, plan.pages[id], FetchPageSize)
			if err != nil {
				logger.Warnf("[aggregate] fetch sponsor %s page %d failed: %v", id, plan.pages[id], err)
			}
			results[i] = sponsorResult{id: id, users: users, pagination: p, err: err}
			// 单个赞助方失败不影响其它赞助方
			return nil
		})
	}
	_ = g.Wait()

	res, err := st.commit(plan, prices, results)
	committed = true
	if errors.Is(err, ErrStaleRound) {
		logger.Infof("[aggregate] discard round of epoch %d", plan.epoch)
	}
	return res, err
}

// Aggregate 返回指定页，本地数据不够填满该页且上游还有数据时，最多拉取 maxRounds 轮
func (a *Aggregator) Aggregate(ctx context.Context, st *State, window string, page int, search string) (View, error) {
	if page < 1 {
		page = 1
	}
	st.Ensure(window)

	for i := 0; i < a.maxRounds; i++ {
		v := st.View(page, search)
		if len(v.Users) >= DisplayPageSize || !v.HasMoreUpstream {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return v, err
		}

		res, err := a.Round(ctx, st)
		if err != nil {
			if errors.Is(err, ErrRoundInFlight) || errors.Is(err, ErrStaleRound) || errors.Is(err, ErrExhausted) {
				return st.View(page, search), nil
			}
			return v, err
		}
		if len(res.Succeeded) == 0 {
			break
		}
	}
	return st.View(page, search), nil
}

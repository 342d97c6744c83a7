package aggregate

import (
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"sync"
)

const (
	// FetchPageSize 每个赞助方每轮拉取的条数
	FetchPageSize = 100
	// DisplayPageSize 聚合榜单每页展示条数
	DisplayPageSize = 30
)

// cursor 单个赞助方的翻页进度
// 失败的轮次不会推进 next，下一轮重试同一页
type cursor struct {
	next int
	done bool
}

// State 一个聚合会话的全部状态
// epoch 每次 Reset 加一，轮次在写回结果前比对 epoch，旧轮次的结果直接丢弃
type State struct {
	mu sync.Mutex

	sponsors        []sponsor.ID
	epoch           uint64
	filter          string
	builders        *Collection
	cursors         map[sponsor.ID]*cursor
	prices          map[sponsor.ID]model.TokenQuote
	hasMoreUpstream bool
	loading         bool
	rounds          int
	failed          []sponsor.ID
}

// NewState sponsors 为空时使用全部赞助方
func NewState(window string, sponsors ...sponsor.ID) *State {
	if len(sponsors) == 0 {
		sponsors = sponsor.All()
	}
	st := &State{sponsors: sponsors}
	st.Reset(window)
	return st
}

// Reset 切换过滤条件并清空已合并的数据
func (st *State) Reset(window string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.reset(window)
}

func (st *State) reset(window string) {
	st.epoch++
	st.filter = window
	st.builders = NewCollection()
	st.cursors = make(map[sponsor.ID]*cursor, len(st.sponsors))
	for _, id := range st.sponsors {
		// 该赞助方没有这个时间窗口的榜单，不参与拉取
		_, ok := sponsor.GrantID(id, window)
		st.cursors[id] = &cursor{next: 1, done: !ok}
	}
	st.prices = nil
	st.hasMoreUpstream = true
	st.loading = false
	st.rounds = 0
	st.failed = nil
}

// Epoch 当前代数
func (st *State) Epoch() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.epoch
}

func (st *State) Filter() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.filter
}

func (st *State) Loading() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.loading
}

func (st *State) HasMoreUpstream() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.hasMoreUpstream
}

// Len 已合并的建设者数量
func (st *State) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.builders.Len()
}

// roundPlan 一轮开始时在锁内拍下的快照
type roundPlan struct {
	epoch      uint64
	filter     string
	pages      map[sponsor.ID]int
	order      []sponsor.ID
	needPrices bool
}

func (st *State) begin() (roundPlan, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.loading {
		return roundPlan{}, ErrRoundInFlight
	}
	plan := roundPlan{
		epoch:      st.epoch,
		filter:     st.filter,
		pages:      make(map[sponsor.ID]int),
		needPrices: st.prices == nil,
	}
	for _, id := range st.sponsors {
		c := st.cursors[id]
		if c.done {
			continue
		}
		plan.pages[id] = c.next
		plan.order = append(plan.order, id)
	}
	if len(plan.order) == 0 {
		st.hasMoreUpstream = false
		return plan, ErrExhausted
	}
	st.loading = true
	return plan, nil
}

// sponsorResult 单个赞助方本轮的结果
type sponsorResult struct {
	id         sponsor.ID
	users      []model.LeaderboardUser
	pagination model.Pagination
	err        error
}

// commit 在锁内写回一轮结果，epoch 已变化时什么都不做
func (st *State) commit(plan roundPlan, prices map[sponsor.ID]model.TokenQuote, results []sponsorResult) (RoundResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.epoch != plan.epoch {
		return RoundResult{Epoch: plan.epoch}, ErrStaleRound
	}
	st.loading = false
	if prices != nil {
		st.prices = prices
	}

	res := RoundResult{Epoch: plan.epoch}
	more := false
	st.failed = nil
	for _, r := range results {
		if r.err != nil {
			st.failed = append(st.failed, r.id)
			res.Failed = append(res.Failed, r.id)
			continue
		}
		st.builders.Merge(r.id, st.quote(r.id), r.users)
		res.Fetched += len(r.users)
		res.Succeeded = append(res.Succeeded, r.id)

		c := st.cursors[r.id]
		current := r.pagination.CurrentPage
		if current < plan.pages[r.id] {
			current = plan.pages[r.id]
		}
		c.next = current + 1
		c.done = current >= r.pagination.LastPage || len(r.users) == 0
		if !c.done {
			more = true
		}
	}
	// 全部失败时游标都没动，保持原来的状态，下次请求还会再拉
	if len(res.Succeeded) > 0 {
		st.hasMoreUpstream = more
	}
	st.rounds++
	res.HasMoreUpstream = st.hasMoreUpstream
	return res, nil
}

// abort 轮次异常结束时释放 loading，只作用于同一代
func (st *State) abort(plan roundPlan) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.epoch == plan.epoch {
		st.loading = false
	}
}

func (st *State) quote(id sponsor.ID) model.TokenQuote {
	if q, ok := st.prices[id]; ok {
		return q
	}
	q := model.TokenQuote{Sponsor: id}
	if t := sponsor.TokenOf(id); t != nil {
		q.Token = *t
		q.Price = t.FallbackPrice
	}
	return q
}

// View 只读视图，不做任何网络请求
func (st *State) View(page int, search string) View {
	st.mu.Lock()
	defer st.mu.Unlock()

	all := FilterBuilders(st.builders.Sorted(), search)
	users, p := Paginate(all, page, DisplayPageSize)
	return View{
		Epoch:           st.epoch,
		Window:          st.filter,
		Users:           users,
		Pagination:      p,
		HasMoreLocal:    p.CurrentPage < p.LastPage,
		HasMoreUpstream: st.hasMoreUpstream,
		Loading:         st.loading,
		FailedSponsors:  append([]sponsor.ID(nil), st.failed...),
		Rounds:          st.rounds,
	}
}

// Quotes 已解析的价格
func (st *State) Quotes() map[sponsor.ID]model.TokenQuote {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make(map[sponsor.ID]model.TokenQuote, len(st.prices))
	for k, v := range st.prices {
		out[k] = v
	}
	return out
}

// Ensure 过滤条件变化时重置，返回是否发生了重置
func (st *State) Ensure(window string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.filter == window {
		return false
	}
	st.reset(window)
	return true
}

package aggregate

import (
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"fmt"
	"sort"
	"strings"
)

// Collection 合并后的建设者集合，按首次出现的顺序记录 key
// 不加锁，由 State 负责互斥
type Collection struct {
	byKey map[string]*model.AggregatedBuilder
	order []string
	// 已合并过的 赞助方+上游id，翻页时用户跨页漂移会让同一条记录出现两次
	seen map[string]struct{}
}

func NewCollection() *Collection {
	return &Collection{
		byKey: make(map[string]*model.AggregatedBuilder),
		seen:  make(map[string]struct{}),
	}
}

func (c *Collection) Len() int {
	return len(c.order)
}

// Get 返回副本
func (c *Collection) Get(key string) (model.AggregatedBuilder, bool) {
	b, ok := c.byKey[key]
	if !ok {
		return model.AggregatedBuilder{}, false
	}
	return clone(b), true
}

// Merge 把一个赞助方的一页记录并入集合
// 已存在的建设者追加一条收益明细并累加总额，分数取大、名次取小，已有明细不会被覆盖
// 同一赞助方的同一条上游记录只计一次
func (c *Collection) Merge(sp sponsor.ID, quote model.TokenQuote, users []model.LeaderboardUser) {
	for _, u := range users {
		rec := fmt.Sprintf("%s:%d", sp, u.ID)
		if _, dup := c.seen[rec]; dup {
			continue
		}
		c.seen[rec] = struct{}{}

		key := IdentityKey(u, sp)
		usd := u.RewardAmount * quote.Price
		entry := model.EarningsEntry{Sponsor: sp, Amount: u.RewardAmount, USD: usd, Symbol: quote.Symbol}

		b, ok := c.byKey[key]
		if !ok {
			nb := &model.AggregatedBuilder{
				Key:              key,
				LeaderboardUser:  u,
				Breakdown:        []model.EarningsEntry{entry},
				TotalEarningsUSD: usd,
				Sponsors:         []sponsor.ID{sp},
			}
			nb.Profile.Tags = append([]string{}, u.Profile.Tags...)
			c.byKey[key] = nb
			c.order = append(c.order, key)
			continue
		}

		b.Breakdown = append(b.Breakdown, entry)
		b.TotalEarningsUSD += usd
		if !b.HasSponsor(sp) {
			b.Sponsors = append(b.Sponsors, sp)
		}
		if u.Profile.Score > b.Profile.Score {
			b.Profile.Score = u.Profile.Score
		}
		if u.LeaderboardPosition > 0 && (b.LeaderboardPosition <= 0 || u.LeaderboardPosition < b.LeaderboardPosition) {
			b.LeaderboardPosition = u.LeaderboardPosition
		}
		if b.RecipientWallet == "" {
			b.RecipientWallet = u.RecipientWallet
		}
		if b.TalentProtocolID == "" {
			b.TalentProtocolID = u.TalentProtocolID
		}
	}
}

// Sorted 按总收益降序排列的副本，收益相同保持首次出现的顺序
func (c *Collection) Sorted() []model.AggregatedBuilder {
	out := make([]model.AggregatedBuilder, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, clone(c.byKey[key]))
	}
	SortByEarnings(out)
	return out
}

// SortByEarnings 稳定排序，对已排好序的列表再次排序结果不变
func SortByEarnings(list []model.AggregatedBuilder) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TotalEarningsUSD > list[j].TotalEarningsUSD
	})
}

// FilterBuilders 按展示名、简介、钱包地址做不区分大小写的子串匹配
func FilterBuilders(list []model.AggregatedBuilder, search string) []model.AggregatedBuilder {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return list
	}
	out := make([]model.AggregatedBuilder, 0)
	for _, b := range list {
		if strings.Contains(strings.ToLower(b.Profile.DisplayName), q) ||
			strings.Contains(strings.ToLower(b.Profile.Bio), q) ||
			strings.Contains(strings.ToLower(b.RecipientWallet), q) {
			out = append(out, b)
		}
	}
	return out
}

// Paginate 切出一页，并把名次重写为在当前列表中的位置（从1开始）
func Paginate(list []model.AggregatedBuilder, page, size int) ([]model.AggregatedBuilder, model.Pagination) {
	if size <= 0 {
		size = DisplayPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(list)
	p := model.Pagination{CurrentPage: page, LastPage: (total + size - 1) / size, Total: total}

	start := (page - 1) * size
	if start >= total {
		return []model.AggregatedBuilder{}, p
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]model.AggregatedBuilder, end-start)
	copy(out, list[start:end])
	for i := range out {
		out[i].LeaderboardPosition = start + i + 1
	}
	return out, p
}

func clone(b *model.AggregatedBuilder) model.AggregatedBuilder {
	cp := *b
	cp.Breakdown = append([]model.EarningsEntry(nil), b.Breakdown...)
	cp.Sponsors = append([]sponsor.ID(nil), b.Sponsors...)
	cp.Profile.Tags = append([]string{}, b.Profile.Tags...)
	return cp
}

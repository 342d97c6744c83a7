package model

import "builderboard/internal/sponsor"

// EarningsEntry 某个赞助方贡献的收益
type EarningsEntry struct {
	Sponsor sponsor.ID `json:"sponsor"`
	Amount  float64    `json:"amount"`
	USD     float64    `json:"usd"`
	Symbol  string     `json:"symbol"`
}

// AggregatedBuilder 跨赞助方合并后的建设者，只存在于会话内存中
// TotalEarningsUSD 始终等于 Breakdown 中 USD 之和
type AggregatedBuilder struct {
	Key string `json:"key"`
	LeaderboardUser
	Breakdown        []EarningsEntry `json:"earnings_breakdown"`
	TotalEarningsUSD float64         `json:"total_earnings_usd"`
	Sponsors         []sponsor.ID    `json:"sponsors"`
}

// HasSponsor 是否已经出现在该赞助方榜单中
func (b *AggregatedBuilder) HasSponsor(id sponsor.ID) bool {
	for _, s := range b.Sponsors {
		if s == id {
			return true
		}
	}
	return false
}

type AggregateReq struct {
	Window string `form:"window" binding:"omitempty,oneof=all_time this_week last_week"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Search string `form:"search" binding:"max=100"`
}

type AggregateRes struct {
	SessionID       string              `json:"session_id"`
	Epoch           uint64              `json:"epoch"`
	Window          string              `json:"window"`
	Users           []AggregatedBuilder `json:"users"`
	Pagination      Pagination          `json:"pagination"`
	HasMoreLocal    bool                `json:"has_more_local"`
	HasMoreUpstream bool                `json:"has_more_upstream"`
	Loading         bool                `json:"loading"`
	FailedSponsors  []sponsor.ID        `json:"failed_sponsors"`
	Categories      map[string][]string `json:"categories"`
}

package types

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Amount 上游的 reward_amount 可能是数字也可能是数字字符串
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && s == "" {
		*a = 0
		return nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fmt.Errorf("invalid reward amount %s: %w", string(data), err)
	}
	*a = Amount(v)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}

// Profile 榜单用户的展示资料
type Profile struct {
	DisplayName         string   `json:"display_name"`
	Bio                 string   `json:"bio"`
	Location            string   `json:"location"`
	ImageURL            string   `json:"image_url"`
	HumanCheckmark      bool     `json:"human_checkmark"`
	VerifiedNationality bool     `json:"verified_nationality"`
	Tags                []string `json:"tags"`
	Score               float64  `json:"score"`
}

// LeaderboardUser 某个赞助方榜单里的一条记录
type LeaderboardUser struct {
	ID                  int64   `json:"id"`
	Profile             Profile `json:"profile"`
	LeaderboardPosition int     `json:"leaderboard_position"`
	RankingChange       int     `json:"ranking_change"`
	RewardAmount        Amount  `json:"reward_amount"`
	RecipientWallet     string  `json:"recipient_wallet,omitempty"`
	TalentProtocolID    string  `json:"talent_protocol_id,omitempty"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

// HasMore 是否还有下一页
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

type LeaderboardResponse struct {
	Users      []LeaderboardUser `json:"users"`
	Pagination Pagination        `json:"pagination"`
}

// LeaderboardQuery 一次分页请求的参数
type LeaderboardQuery struct {
	SponsorSlug string
	GrantID     string
	Page        int
	PerPage     int
}

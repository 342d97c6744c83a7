package model

import (
	"builderboard/internal/sponsor"
	"builderboard/pkg/talent/types"
	"strconv"
)

// BuilderProfile 榜单里展示的资料
type BuilderProfile struct {
	DisplayName         string   `json:"display_name"`
	Bio                 string   `json:"bio"`
	Location            string   `json:"location"`
	ImageURL            string   `json:"image_url"`
	HumanCheckmark      bool     `json:"human_checkmark"`
	VerifiedNationality bool     `json:"verified_nationality"`
	Tags                []string `json:"tags"`
	Score               float64  `json:"score"`
}

// LeaderboardUser 单个赞助方榜单中的一条记录，reward_amount 已经是数字
type LeaderboardUser struct {
	ID                  int64          `json:"id"`
	Profile             BuilderProfile `json:"profile"`
	LeaderboardPosition int            `json:"leaderboard_position"`
	RankingChange       int            `json:"ranking_change"`
	RewardAmount        float64        `json:"reward_amount"`
	RecipientWallet     string         `json:"recipient_wallet,omitempty"`
	TalentProtocolID    string         `json:"talent_protocol_id,omitempty"`
}

// Key 单赞助方榜单内的用户标识
func (u LeaderboardUser) Key() string {
	return strconv.FormatInt(u.ID, 10)
}

func NewLeaderboardUser(w types.LeaderboardUser) LeaderboardUser {
	tags := w.Profile.Tags
	if tags == nil {
		tags = []string{}
	}
	return LeaderboardUser{
		ID: w.ID,
		Profile: BuilderProfile{
			DisplayName:         w.Profile.DisplayName,
			Bio:                 w.Profile.Bio,
			Location:            w.Profile.Location,
			ImageURL:            w.Profile.ImageURL,
			HumanCheckmark:      w.Profile.HumanCheckmark,
			VerifiedNationality: w.Profile.VerifiedNationality,
			Tags:                tags,
			Score:               w.Profile.Score,
		},
		LeaderboardPosition: w.LeaderboardPosition,
		RankingChange:       w.RankingChange,
		RewardAmount:        w.RewardAmount.Float64(),
		RecipientWallet:     w.RecipientWallet,
		TalentProtocolID:    w.TalentProtocolID,
	}
}

func NewLeaderboardUsers(ws []types.LeaderboardUser) []LeaderboardUser {
	out := make([]LeaderboardUser, 0, len(ws))
	for _, w := range ws {
		out = append(out, NewLeaderboardUser(w))
	}
	return out
}

// Pagination 单赞助方时透传上游，聚合时本地计算
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

type LeaderboardReq struct {
	Sponsor string `form:"sponsor"`
	Window  string `form:"window" binding:"omitempty,oneof=all_time this_week last_week"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Search  string `form:"search" binding:"max=100"`
}

type LeaderboardRes struct {
	Sponsor    sponsor.ID          `json:"sponsor"`
	Window     string              `json:"window"`
	Token      *TokenQuote         `json:"token"`
	Users      []LeaderboardUser   `json:"users"`
	Pagination Pagination          `json:"pagination"`
	Categories map[string][]string `json:"categories"`
}

type SponsorRes struct {
	sponsor.Sponsor
	Windows []string `json:"windows"`
}

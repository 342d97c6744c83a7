package category

import (
	"builderboard/internal/model"
	"math"
	"strings"
)

// Label 建设者标签
type Label string

const (
	MostEarningsLabel Label = "most_earnings"
	TrendingLabel     Label = "trending"
	HighestScoreLabel Label = "highest_score"
	FeaturedLabel     Label = "featured"
	SoughtAfterLabel  Label = "sought_after"
)

// Candidate 参与评选的建设者，USD 为折算后的收益
type Candidate struct {
	ID                  string
	USD                 float64
	Score               float64
	Position            int
	RankChange          int
	HumanCheckmark      bool
	VerifiedNationality bool
	Bio                 string
	Location            string
	ImageURL            string
	Tags                int
}

// Preference 返回 candidate 是否优于当前 best
// 必须是严格比较，相等时保留先出现的
type Preference func(candidate, best Candidate) bool

type selector struct {
	label  Label
	prefer Preference
}

// 输出顺序固定
var selectors = []selector{
	{MostEarningsLabel, MostEarnings},
	{TrendingLabel, Trending},
	{HighestScoreLabel, HighestScore},
	{FeaturedLabel, Featured},
	{SoughtAfterLabel, SoughtAfter},
}

// Pick 按偏好函数选出唯一胜者
func Pick(cands []Candidate, prefer Preference) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if prefer(c, best) {
			best = c
		}
	}
	return best, true
}

// Categorize 每个标签最多一个胜者，同一个建设者可以拿多个标签
func Categorize(cands []Candidate) map[string][]Label {
	out := make(map[string][]Label)
	for _, s := range selectors {
		if winner, ok := Pick(cands, s.prefer); ok {
			out[winner.ID] = append(out[winner.ID], s.label)
		}
	}
	return out
}

// Strings 转成接口输出用的结构
func Strings(m map[string][]Label) map[string][]string {
	out := make(map[string][]string, len(m))
	for id, labels := range m {
		ss := make([]string, 0, len(labels))
		for _, l := range labels {
			ss = append(ss, string(l))
		}
		out[id] = ss
	}
	return out
}

func MostEarnings(c, best Candidate) bool {
	return c.USD > best.USD
}

func HighestScore(c, best Candidate) bool {
	return c.Score > best.Score
}

// Trending 排名上升的优先，全部没有上升时在全体中比较
func Trending(c, best Candidate) bool {
	if up, bestUp := c.RankChange > 0, best.RankChange > 0; up != bestUp {
		return up
	}
	return TrendingScore(c) > TrendingScore(best)
}

func Featured(c, best Candidate) bool {
	return FeaturedScore(c) > FeaturedScore(best)
}

func SoughtAfter(c, best Candidate) bool {
	return SoughtAfterScore(c) > SoughtAfterScore(best)
}

func TrendingScore(c Candidate) float64 {
	change := c.RankChange
	if change < 0 {
		change = -change
	}
	bonus := 0.0
	switch {
	case c.Position > 0 && c.Position <= 10:
		bonus = 100
	case c.Position > 0 && c.Position <= 50:
		bonus = 50
	}
	return float64(change)*15 + bonus + c.Score*0.2
}

// Decay 名次衰减系数，第1名接近1，1000名及以后为0.1
func Decay(position int) float64 {
	p := position
	if p < 0 {
		p = 0
	}
	if p > 1000 {
		p = 1000
	}
	return math.Max(0.1, 1-0.9*float64(p)/1000)
}

// MarketWeight 收益、分数、名次和趋势的加权
func MarketWeight(c Candidate) float64 {
	w := c.USD*0.4 + c.Score*3 + c.USD*Decay(c.Position)*0.2
	if c.RankChange > 0 {
		w += float64(c.RankChange) * 5
	}
	if c.ImageURL != "" {
		w += 10
	}
	if c.Location != "" {
		w += 10
	}
	return w + float64(c.Tags)*5
}

func FeaturedScore(c Candidate) float64 {
	s := MarketWeight(c)
	if c.HumanCheckmark {
		s += 150
	}
	if c.VerifiedNationality {
		s += 75
	}
	if hasText(c.Bio) {
		s += 25
	}
	return s
}

// SoughtAfterScore 资料完整度
func SoughtAfterScore(c Candidate) float64 {
	s := float64(c.Tags)*15 + c.Score*0.8
	if c.HumanCheckmark {
		s += 150
	}
	if c.VerifiedNationality {
		s += 75
	}
	if hasText(c.Bio) {
		s += 40
	}
	if hasText(c.Location) {
		s += 30
	}
	if c.ImageURL != "" {
		s += 20
	}
	return s
}

// FromUsers 单赞助方榜单，收益按代币价格折算
func FromUsers(users []model.LeaderboardUser, price float64) []Candidate {
	out := make([]Candidate, 0, len(users))
	for _, u := range users {
		out = append(out, candidate(u.Key(), u, u.RewardAmount*price))
	}
	return out
}

// FromBuilders 聚合榜单，直接使用总收益
func FromBuilders(builders []model.AggregatedBuilder) []Candidate {
	out := make([]Candidate, 0, len(builders))
	for _, b := range builders {
		out = append(out, candidate(b.Key, b.LeaderboardUser, b.TotalEarningsUSD))
	}
	return out
}

func candidate(id string, u model.LeaderboardUser, usd float64) Candidate {
	return Candidate{
		ID:                  id,
		USD:                 usd,
		Score:               u.Profile.Score,
		Position:            u.LeaderboardPosition,
		RankChange:          u.RankingChange,
		HumanCheckmark:      u.Profile.HumanCheckmark,
		VerifiedNationality: u.Profile.VerifiedNationality,
		Bio:                 u.Profile.Bio,
		Location:            u.Profile.Location,
		ImageURL:            u.Profile.ImageURL,
		Tags:                len(u.Profile.Tags),
	}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

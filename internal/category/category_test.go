package category

import (
	"builderboard/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick_FirstSeenWinsTies(t *testing.T) {
	cands := []Candidate{
		{ID: "a", USD: 10},
		{ID: "b", USD: 10},
		{ID: "c", USD: 3},
	}
	got, ok := Pick(cands, MostEarnings)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = Pick(nil, MostEarnings)
	assert.False(t, ok)
}

func TestTrending(t *testing.T) {
	t.Run("prefers rising builders", func(t *testing.T) {
		cands := []Candidate{
			{ID: "falling", RankChange: -20, Position: 3},
			{ID: "rising", RankChange: 1, Position: 400},
		}
		got, _ := Pick(cands, Trending)
		assert.Equal(t, "rising", got.ID)
	})
	t.Run("falls back to everyone", func(t *testing.T) {
		cands := []Candidate{
			{ID: "flat", RankChange: 0, Position: 60},
			{ID: "falling", RankChange: -4, Position: 8},
		}
		// 0 + 0 vs 4*15 + 100
		got, _ := Pick(cands, Trending)
		assert.Equal(t, "falling", got.ID)
	})
	t.Run("positional bonus", func(t *testing.T) {
		assert.Equal(t, 115.0, TrendingScore(Candidate{RankChange: 1, Position: 10}))
		assert.Equal(t, 65.0, TrendingScore(Candidate{RankChange: 1, Position: 50}))
		assert.Equal(t, 25.0, TrendingScore(Candidate{RankChange: -1, Position: 51, Score: 50}))
	})
}

func TestDecay(t *testing.T) {
	assert.InDelta(t, 1.0, Decay(0), 1e-9)
	assert.InDelta(t, 0.55, Decay(500), 1e-9)
	assert.InDelta(t, 0.1, Decay(1000), 1e-9)
	assert.InDelta(t, 0.1, Decay(5000), 1e-9)
}

func TestFeaturedScore(t *testing.T) {
	c := Candidate{
		USD:                 100,
		Score:               10,
		Position:            500,
		RankChange:          2,
		HumanCheckmark:      true,
		VerifiedNationality: true,
		Bio:                 "hi",
		Location:            "Lisbon",
		ImageURL:            "https://img",
		Tags:                3,
	}
	// 40 + 30 + 100*0.55*0.2 + 10 + 10 + 10 + 15 = 126
	assert.InDelta(t, 126.0, MarketWeight(c), 1e-9)
	assert.InDelta(t, 126.0+150+75+25, FeaturedScore(c), 1e-9)
}

func TestSoughtAfterScore(t *testing.T) {
	c := Candidate{HumanCheckmark: true, Bio: "x", Location: "y", ImageURL: "z", Tags: 2, Score: 10}
	assert.InDelta(t, 150+40+30+20+30+8.0, SoughtAfterScore(c), 1e-9)
	assert.InDelta(t, 0.0, SoughtAfterScore(Candidate{Bio: "   "}), 1e-9)
}

func TestCategorize(t *testing.T) {
	users := []model.LeaderboardUser{
		{ID: 1, RewardAmount: 500, RankingChange: -3, LeaderboardPosition: 1, Profile: model.BuilderProfile{Score: 20}},
		{ID: 2, RewardAmount: 10, RankingChange: 7, LeaderboardPosition: 2, Profile: model.BuilderProfile{Score: 95}},
		{ID: 3, RewardAmount: 1, LeaderboardPosition: 3, Profile: model.BuilderProfile{
			Score: 40, HumanCheckmark: true, VerifiedNationality: true, Bio: "dev", Location: "Paris",
			ImageURL: "https://img", Tags: []string{"a", "b"},
		}},
	}
	cands := FromUsers(users, 2)
	got := Categorize(cands)

	// featured 由收益主导，资料完整的 3 号只拿到 sought_after
	assert.Equal(t, []Label{MostEarningsLabel, FeaturedLabel}, got["1"])
	assert.Equal(t, []Label{TrendingLabel, HighestScoreLabel}, got["2"])
	assert.Equal(t, []Label{SoughtAfterLabel}, got["3"])

	total := 0
	for _, labels := range got {
		total += len(labels)
	}
	assert.Equal(t, 5, total)

	// 同样的输入结果不变
	for i := 0; i < 10; i++ {
		assert.Equal(t, got, Categorize(FromUsers(users, 2)))
	}
	assert.Empty(t, Categorize(nil))
}

func TestFromBuilders(t *testing.T) {
	builders := []model.AggregatedBuilder{
		{Key: "talent:x", TotalEarningsUSD: 12.5, LeaderboardUser: model.LeaderboardUser{RewardAmount: 999}},
	}
	cands := FromBuilders(builders)
	require.Len(t, cands, 1)
	assert.Equal(t, "talent:x", cands[0].ID)
	assert.Equal(t, 12.5, cands[0].USD)

	assert.Equal(t, map[string][]string{"talent:x": {"most_earnings", "trending", "highest_score", "featured", "sought_after"}},
		Strings(Categorize(cands)))
}

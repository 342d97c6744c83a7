package types

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`12.5`, 12.5, false},
		{`"12.5"`, 12.5, false},
		{`"0"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.in), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, a.Float64(), 1e-9)
		})
	}
}

func TestLeaderboardResponse_Decode(t *testing.T) {
	body := `{"users":[{"id":7,"leaderboard_position":1,"ranking_change":-2,"reward_amount":"100.25",
	"talent_protocol_id":"tp-7","profile":{"display_name":"Ada","tags":["rust"],"score":88}}],
	"pagination":{"current_page":1,"last_page":3,"total":250}}`

	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Users, 1)
	u := resp.Users[0]
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, 100.25, u.RewardAmount.Float64())
	assert.Equal(t, -2, u.RankingChange)
	assert.Equal(t, "Ada", u.Profile.DisplayName)
	assert.True(t, resp.Pagination.HasMore())
}

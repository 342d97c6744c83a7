package rest

import (
	"builderboard/pkg/proxy"
	"builderboard/pkg/talent/types"
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const maxPerPage = 100

// TalentRestClient 榜单服务和声誉分服务的客户端
// 两个上游都经由 proxy.Forwarder 访问，密钥只在服务端注入
type TalentRestClient struct {
	scoring *proxy.Forwarder
	talent  *proxy.Forwarder
}

func NewTalentRestClient(scoring, talent *proxy.Forwarder) *TalentRestClient {
	return &TalentRestClient{scoring: scoring, talent: talent}
}

// Leaderboard 拉取某个赞助方榜单的一页，保持上游的排名顺序
func (c *TalentRestClient) Leaderboard(ctx context.Context, q types.LeaderboardQuery) (*types.LeaderboardResponse, error) {
	if q.SponsorSlug == "" {
		return nil, fmt.Errorf("sponsor slug is required")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}

	params := url.Values{}
	params.Set("sponsor_slug", q.SponsorSlug)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(q.PerPage))
	if q.GrantID != "" {
		params.Set("grant_id", q.GrantID)
	}

	var res types.LeaderboardResponse
	if err := c.scoring.GetJSON(ctx, "/leaderboards", params, &res); err != nil {
		return nil, err
	}
	if res.Users == nil {
		res.Users = []types.LeaderboardUser{}
	}
	return &res, nil
}

// Score 按钱包地址或 talent id 查询声誉分
func (c *TalentRestClient) Score(ctx context.Context, id string) (*types.Score, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	var res types.ScoreResponse
	if err := c.talent.GetJSON(ctx, "/score", url.Values{"id": {id}}, &res); err != nil {
		return nil, err
	}
	return &res.Score, nil
}

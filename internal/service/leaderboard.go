package service

import (
	"builderboard/internal/category"
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"builderboard/pkg/cache"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/logger"
	"builderboard/pkg/proxy"
	"builderboard/pkg/talent/types"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const maxFetchPageSize = 100

var _ LeaderboardService = (*leaderboardService)(nil)

// LeaderboardSource 榜单上游，rest.TalentRestClient 实现了它
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, q types.LeaderboardQuery) (*types.LeaderboardResponse, error)
}

type LeaderboardService interface {
	// FetchPage 拉取单个赞助方榜单的一页，保持上游顺序
	FetchPage(ctx context.Context, id sponsor.ID, window string, page, pageSize int) ([]model.LeaderboardUser, model.Pagination, error)
	// Leaderboard 单赞助方榜单页，带代币价格和标签
	Leaderboard(ctx context.Context, req model.LeaderboardReq) (model.LeaderboardRes, error)
}

// LeaderboardDefaults 请求未指定时使用的值
type LeaderboardDefaults struct {
	Sponsor  sponsor.ID
	Window   string
	PageSize int
}

type leaderboardService struct {
	source   LeaderboardSource
	prices   PriceService
	store    cache.Store
	ttl      time.Duration
	defaults LeaderboardDefaults
}

func NewLeaderboardService(source LeaderboardSource, prices PriceService, store cache.Store, ttl time.Duration, defaults LeaderboardDefaults) *leaderboardService {
	if defaults.Sponsor == "" {
		defaults.Sponsor = sponsor.Base
	}
	if defaults.PageSize <= 0 {
		defaults.PageSize = 30
	}
	return &leaderboardService{source: source, prices: prices, store: store, ttl: ttl, defaults: defaults}
}

type cachedPage struct {
	Users      []model.LeaderboardUser `json:"users"`
	Pagination model.Pagination        `json:"pagination"`
}

func (s *leaderboardService) FetchPage(ctx context.Context, id sponsor.ID, window string, page, pageSize int) ([]model.LeaderboardUser, model.Pagination, error) {
	sp, ok := sponsor.Lookup(id)
	if !ok {
		return nil, model.Pagination{}, errors.WithCode(ecode.ValidateErr, fmt.Sprintf("unknown sponsor %q", id))
	}
	if page < 1 {
		return nil, model.Pagination{}, errors.WithCode(ecode.ValidateErr, "page must be >= 1")
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxFetchPageSize {
		pageSize = maxFetchPageSize
	}
	grantID, ok := sponsor.GrantID(sp.ID, window)
	if !ok {
		return nil, model.Pagination{}, errors.WithCode(ecode.ValidateErr, fmt.Sprintf("sponsor %s has no %q leaderboard", sp.ID, window))
	}

	key := fmt.Sprintf("leaderboard:%s:%s:%d:%d", sp.ID, grantID, page, pageSize)
	var cached cachedPage
	if hit, err := cache.GetJSON(ctx, s.store, key, &cached); err != nil {
		logger.Warnf("[leaderboard] read cache %s: %v", key, err)
	} else if hit {
		return cached.Users, cached.Pagination, nil
	}

	res, err := s.source.Leaderboard(ctx, types.LeaderboardQuery{
		SponsorSlug: string(sp.ID),
		GrantID:     grantID,
		Page:        page,
		PerPage:     pageSize,
	})
	if err != nil {
		return nil, model.Pagination{}, wrapUpstream(err, "fetch %s leaderboard page %d", sp.ID, page)
	}

	cached = cachedPage{
		Users: model.NewLeaderboardUsers(res.Users),
		Pagination: model.Pagination{
			CurrentPage: res.Pagination.CurrentPage,
			LastPage:    res.Pagination.LastPage,
			Total:       res.Pagination.Total,
		},
	}
	if err := cache.SetJSON(ctx, s.store, key, cached, s.ttl); err != nil {
		logger.Warnf("[leaderboard] write cache %s: %v", key, err)
	}
	return cached.Users, cached.Pagination, nil
}

func (s *leaderboardService) Leaderboard(ctx context.Context, req model.LeaderboardReq) (res model.LeaderboardRes, err error) {
	id := sponsor.ID(strings.ToLower(strings.TrimSpace(req.Sponsor)))
	if id == "" {
		id = s.defaults.Sponsor
	}
	window := req.Window
	if window == "" {
		window = s.defaults.Window
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = s.defaults.PageSize
	}

	users, pagination, err := s.FetchPage(ctx, id, window, page, perPage)
	if err != nil {
		return
	}
	users = filterUsers(users, req.Search)

	price, quote := s.prices.Resolve(ctx, id)
	res.Sponsor = id
	res.Window = window
	res.Token = quote
	res.Users = users
	res.Pagination = pagination
	res.Categories = category.Strings(category.Categorize(category.FromUsers(users, price)))
	return
}

// filterUsers 展示名、简介、钱包地址的子串匹配，不区分大小写
// 单赞助方榜单是上游的一页，leaderboard_position 保留赞助方给出的名次，不按过滤结果重排
func filterUsers(users []model.LeaderboardUser, search string) []model.LeaderboardUser {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return users
	}
	out := make([]model.LeaderboardUser, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Profile.DisplayName), q) ||
			strings.Contains(strings.ToLower(u.Profile.Bio), q) ||
			strings.Contains(strings.ToLower(u.RecipientWallet), q) {
			out = append(out, u)
		}
	}
	return out
}

// wrapUpstream 按转发失败的类型给出错误码
func wrapUpstream(err error, format string, args ...interface{}) error {
	code := ecode.UpstreamErr
	var ue *proxy.UpstreamError
	if errors.As(err, &ue) {
		switch ue.Kind {
		case proxy.KindConfig:
			code = ecode.ConfigErr
		case proxy.KindFormat:
			code = ecode.UpstreamFormatErr
		case proxy.KindEndpoint:
			code = ecode.ValidateErr
		case proxy.KindStatus:
			if ue.Status == http.StatusNotFound {
				code = ecode.NotFoundErr
			}
		}
	}
	return errors.Wrapf(err, code, format, args...)
}

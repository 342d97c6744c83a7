package identity

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// EnsRecord 地址反查得到的主域名
type EnsRecord struct {
	Address string `json:"address"`
	Name    string `json:"ens_primary"`
	Avatar  string `json:"avatar"`
}

// SocialProfile web3.bio 聚合的一个平台身份
type SocialProfile struct {
	Platform    string `json:"platform"`
	Identity    string `json:"identity"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
	Social      struct {
		Follower  int `json:"follower"`
		Following int `json:"following"`
	} `json:"social"`
}

// Client 去中心化身份查询：ENS 反查和社交图谱
type Client struct {
	ensURL     string
	socialURL  string
	httpClient *resty.Client
}

func NewClient(ens, social conf.UpstreamConfig) *Client {
	return &Client{
		ensURL:    strings.TrimRight(ens.BaseURL, "/"),
		socialURL: strings.TrimRight(social.BaseURL, "/"),
		httpClient: resty.New().
			SetTimeout(conf.Duration(ens.Timeout, 10*time.Second)).
			SetLogger(logger.Resty{}),
	}
}

// ReverseLookup 地址没有主域名时返回 nil, nil
func (c *Client) ReverseLookup(ctx context.Context, address string) (*EnsRecord, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.ensURL + "/" + url.PathEscape(address))
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ens lookup: unexpected status code: %d", resp.StatusCode())
	}
	var rec EnsRecord
	if err := json.Unmarshal(resp.Body(), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if rec.Name == "" {
		return nil, nil
	}
	return &rec, nil
}

// SocialProfiles 按地址、ENS 或用户名查询关联的社交身份
func (c *Client) SocialProfiles(ctx context.Context, identity string) ([]SocialProfile, error) {
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.socialURL + "/profile/" + url.PathEscape(identity))
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return []SocialProfile{}, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("social lookup: unexpected status code: %d", resp.StatusCode())
	}
	var profiles []SocialProfile
	if err := json.Unmarshal(resp.Body(), &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return profiles, nil
}

package coingecko

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

const vsCurrency = "usd"

var ErrPriceNotFound = errors.New("coingecko: price not found")

// Client 现价查询，只用到 simple 接口
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewClient(cfg conf.PriceConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.ApiKey,
		httpClient: resty.New().
			SetTimeout(conf.Duration(cfg.Timeout, 10*time.Second)).
			SetLogger(logger.Resty{}),
	}
}

// SimplePrice 按 coin id 查询，例如 ethereum、celo
func (c *Client) SimplePrice(ctx context.Context, coinID string) (float64, error) {
	coinID = strings.ToLower(coinID)
	url := fmt.Sprintf("%s/simple/price", c.baseURL)
	prices, err := c.get(ctx, url, map[string]string{"ids": coinID, "vs_currencies": vsCurrency})
	if err != nil {
		return 0, err
	}
	return pick(prices, coinID)
}

// TokenPrice 按链上合约地址查询
func (c *Client) TokenPrice(ctx context.Context, platform, contract string) (float64, error) {
	contract = strings.ToLower(contract)
	url := fmt.Sprintf("%s/simple/token_price/%s", c.baseURL, platform)
	prices, err := c.get(ctx, url, map[string]string{"contract_addresses": contract, "vs_currencies": vsCurrency})
	if err != nil {
		return 0, err
	}
	return pick(prices, contract)
}

func (c *Client) get(ctx context.Context, url string, params map[string]string) (map[string]map[string]float64, error) {
	req := c.httpClient.R().SetContext(ctx).SetQueryParams(params)
	if c.apiKey != "" {
		req.SetHeader("x-cg-demo-api-key", c.apiKey)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result map[string]map[string]float64
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func pick(prices map[string]map[string]float64, key string) (float64, error) {
	for k, v := range prices {
		if strings.EqualFold(k, key) {
			if p, ok := v[vsCurrency]; ok && p > 0 {
				return p, nil
			}
		}
	}
	return 0, ErrPriceNotFound
}

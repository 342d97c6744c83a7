package explorer

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// Transaction etherscan 风格 txlist 的一条记录，数值字段上游都是字符串
type Transaction struct {
	Hash            string `json:"hash"`
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	ContractAddress string `json:"contractAddress"`
	IsError         string `json:"isError"`
	FunctionName    string `json:"functionName"`
}

// Time 交易时间，解析失败返回零值
func (t Transaction) Time() time.Time {
	sec, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// IsDeployment 创建合约的交易 to 为空
func (t Transaction) IsDeployment() bool {
	return t.To == "" && t.ContractAddress != ""
}

type txListResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type Client struct {
	baseURL    string
	apiKey     string
	chainID    int64
	httpClient *resty.Client
}

func NewClient(cfg conf.UpstreamConfig, chainID int64) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.ApiKey,
		chainID: chainID,
		httpClient: resty.New().
			SetTimeout(conf.Duration(cfg.Timeout, 10*time.Second)).
			SetRetryCount(cfg.RetryCount).
			SetLogger(logger.Resty{}),
	}
}

// Transactions 最近的交易，按时间倒序
func (c *Client) Transactions(ctx context.Context, address string, limit int) ([]Transaction, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if limit <= 0 {
		limit = 20
	}
	params := map[string]string{
		"chainid": strconv.FormatInt(c.chainID, 10),
		"module":  "account",
		"action":  "txlist",
		"address": address,
		"page":    "1",
		"offset":  strconv.Itoa(limit),
		"sort":    "desc",
	}
	if c.apiKey != "" {
		params["apikey"] = c.apiKey
	}

	resp, err := c.httpClient.R().SetContext(ctx).SetQueryParams(params).Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result txListResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Status != "1" {
		// 没有交易时上游返回 status=0
		if strings.HasPrefix(result.Message, "No transactions found") {
			return []Transaction{}, nil
		}
		var reason string
		_ = json.Unmarshal(result.Result, &reason)
		return nil, fmt.Errorf("explorer error: %s %s", result.Message, reason)
	}

	var txs []Transaction
	if err := json.Unmarshal(result.Result, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// ContractDeployments 从交易里筛出合约部署
func ContractDeployments(txs []Transaction) []Transaction {
	out := make([]Transaction, 0)
	for _, tx := range txs {
		if tx.IsDeployment() {
			out = append(out, tx)
		}
	}
	return out
}

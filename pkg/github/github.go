package github

import (
	"builderboard/conf"
	"builderboard/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

type Repo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	Fork            bool      `json:"fork"`
	PushedAt        time.Time `json:"pushed_at"`
}

type Commit struct {
	Repo      string    `json:"repo"`
	SHA       string    `json:"sha"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Repos    int    `json:"repos"`
}

type event struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Commits []struct {
			SHA     string `json:"sha"`
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	baseURL    string
	httpClient *resty.Client
}

func NewClient(cfg conf.UpstreamConfig) *Client {
	hc := resty.New().
		SetTimeout(conf.Duration(cfg.Timeout, 10*time.Second)).
		SetRetryCount(cfg.RetryCount).
		SetLogger(logger.Resty{}).
		SetHeader("Accept", "application/vnd.github+json")
	if cfg.ApiKey != "" {
		hc.SetAuthToken(cfg.ApiKey)
	}
	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), httpClient: hc}
}

func (c *Client) User(ctx context.Context, username string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+url.PathEscape(username), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Repos 最近更新的仓库
func (c *Client) Repos(ctx context.Context, username string, limit int) ([]Repo, error) {
	var repos []Repo
	params := map[string]string{"sort": "pushed", "per_page": fmt.Sprint(clamp(limit))}
	if err := c.get(ctx, "/users/"+url.PathEscape(username)+"/repos", params, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// RecentCommits 从公开的 PushEvent 里取最近的提交
func (c *Client) RecentCommits(ctx context.Context, username string, limit int) ([]Commit, error) {
	var events []event
	params := map[string]string{"per_page": "100"}
	if err := c.get(ctx, "/users/"+url.PathEscape(username)+"/events/public", params, &events); err != nil {
		return nil, err
	}
	limit = clamp(limit)
	commits := make([]Commit, 0, limit)
	for _, e := range events {
		if e.Type != "PushEvent" {
			continue
		}
		for _, cm := range e.Payload.Commits {
			commits = append(commits, Commit{Repo: e.Repo.Name, SHA: cm.SHA, Message: firstLine(cm.Message), CreatedAt: e.CreatedAt})
			if len(commits) == limit {
				return commits, nil
			}
		}
	}
	return commits, nil
}

// LanguageHistogram 按主语言统计自有仓库数量，fork 不计入
func LanguageHistogram(repos []Repo) []LanguageCount {
	counts := map[string]int{}
	for _, r := range repos {
		if r.Fork || r.Language == "" {
			continue
		}
		counts[r.Language]++
	}
	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Repos: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Repos != out[j].Repos {
			return out[i].Repos > out[j].Repos
		}
		return out[i].Language < out[j].Language
	})
	return out
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	resp, err := c.httpClient.R().SetContext(ctx).SetQueryParams(params).Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("github %s: unexpected status code: %d", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func clamp(limit int) int {
	if limit <= 0 || limit > 100 {
		return 30
	}
	return limit
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

package conf

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// 配置加载（上游地址、API密钥等）

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

// UpstreamConfig 一个需要注入密钥的上游服务
type UpstreamConfig struct {
	BaseURL    string `yaml:"base-url"`
	ApiKey     string `yaml:"api-key"`
	AuthHeader string `yaml:"auth-header"` // 例如 Authorization 或 X-API-KEY
	AuthScheme string `yaml:"auth-scheme"` // 例如 Bearer，可为空
	Timeout    int    `yaml:"timeout"`     // 秒
	RetryCount int    `yaml:"retry-count"`
}

type LeaderboardConfig struct {
	DefaultSponsor      string `yaml:"default-sponsor"`
	DefaultWindow       string `yaml:"default-window"`
	DisplayPageSize     int    `yaml:"display-page-size"` // 单赞助方榜单默认每页条数
	MaxRoundsPerRequest int    `yaml:"max-rounds-per-request"`
	PageCacheTTL        int    `yaml:"page-cache-ttl"` // 秒
	MaxSessions         int    `yaml:"max-sessions"`
}

type PriceConfig struct {
	BaseURL  string `yaml:"base-url"`
	ApiKey   string `yaml:"api-key"`
	CacheTTL int    `yaml:"cache-ttl"` // 秒
	Timeout  int    `yaml:"timeout"`
}

type ProfileConfig struct {
	Explorer UpstreamConfig `yaml:"explorer"`
	ChainID  int64          `yaml:"chain-id"`
	Github   UpstreamConfig `yaml:"github"`
	Ens      UpstreamConfig `yaml:"ens"`
	Social   UpstreamConfig `yaml:"social"`
	Limit    int            `yaml:"limit"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Log         LogConfig         `yaml:"log"`
	Redis       RedisConfig       `yaml:"redis"`
	Scoring     UpstreamConfig    `yaml:"scoring"`
	Talent      UpstreamConfig    `yaml:"talent"`
	Price       PriceConfig       `yaml:"price"`
	Profile     ProfileConfig     `yaml:"profile"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	// .env 可选，不存在时忽略
	_ = godotenv.Load()
	AppConfig.applyEnv()
	AppConfig.applyDefaults()
	return nil
}

// 环境变量优先于配置文件，部署时注入密钥
func (c *Config) applyEnv() {
	setString(&c.Scoring.BaseURL, "SCORING_API_URL")
	setString(&c.Scoring.ApiKey, "SCORING_API_KEY")
	setString(&c.Talent.BaseURL, "TALENT_API_URL")
	setString(&c.Talent.ApiKey, "TALENT_API_KEY")
	setString(&c.Price.ApiKey, "COINGECKO_API_KEY")
	setString(&c.Profile.Explorer.ApiKey, "EXPLORER_API_KEY")
	setString(&c.Profile.Github.ApiKey, "GITHUB_TOKEN")
	setString(&c.Leaderboard.DefaultSponsor, "DEFAULT_SPONSOR")
	setString(&c.Leaderboard.DefaultWindow, "DEFAULT_WINDOW")

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	if redisHost != "" && redisPort != "" {
		c.Redis.Addr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		c.Redis.Db = cast.ToInt(v)
	}
	if v := os.Getenv("LISTEN"); v != "" {
		c.Listen = v
	}
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "builderboard"
	}
	if c.Listen == "" {
		c.Listen = ":12180"
	}
	if c.MaxPingCount <= 0 {
		c.MaxPingCount = 10
	}
	if c.Scoring.AuthHeader == "" {
		c.Scoring.AuthHeader = "Authorization"
		c.Scoring.AuthScheme = "Bearer"
	}
	if c.Talent.AuthHeader == "" {
		c.Talent.AuthHeader = "X-API-KEY"
	}
	lb := &c.Leaderboard
	if lb.DisplayPageSize <= 0 || lb.DisplayPageSize > 100 {
		lb.DisplayPageSize = 30
	}
	if lb.DefaultWindow == "" {
		lb.DefaultWindow = "all_time"
	}
	if lb.MaxRoundsPerRequest <= 0 {
		lb.MaxRoundsPerRequest = 3
	}
	if lb.PageCacheTTL <= 0 {
		lb.PageCacheTTL = 60
	}
	if lb.MaxSessions <= 0 {
		lb.MaxSessions = 1000
	}
	if c.Price.BaseURL == "" {
		c.Price.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Price.CacheTTL <= 0 {
		c.Price.CacheTTL = 300
	}
	if c.Profile.Limit <= 0 {
		c.Profile.Limit = 20
	}
	if c.Profile.ChainID == 0 {
		c.Profile.ChainID = 8453
	}
}

// Duration 把秒数配置转换为 time.Duration，0 使用默认值
func Duration(seconds int, def time.Duration) time.Duration {
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds) * time.Second
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

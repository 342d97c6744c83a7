package sponsor

import (
	"sort"
	"strings"
)

// ID 赞助方标识，同时也是榜单服务的 sponsor_slug
type ID string

const (
	Base           ID = "base"
	Celo           ID = "celo"
	WalletConnect  ID = "walletconnect"
	TalentProtocol ID = "talent-protocol"
	Syndicate      ID = "syndicate"
	Divvi          ID = "divvi"
)

// 时间窗口
const (
	WindowAllTime  = "all_time"
	WindowThisWeek = "this_week"
	WindowLastWeek = "last_week"
)

// Token 赞助方的奖励代币
type Token struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	FallbackPrice float64 `json:"fallback_price"`
	// 原生代币按 coingecko id 查价
	CoinID string `json:"coin_id,omitempty"`
	// 合约代币按 平台 + 合约地址 查价
	Platform string `json:"platform,omitempty"`
	Contract string `json:"contract,omitempty"`
}

// Sponsor 一个独立的奖励计划
type Sponsor struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Token Token  `json:"token"`
	// 窗口 -> grant id
	Grants map[string]string `json:"grants"`
}

var table = map[ID]Sponsor{
	Base: {
		ID:   Base,
		Name: "Base",
		Token: Token{Symbol: "ETH", Name: "Ether", FallbackPrice: 3000, CoinID: "ethereum"},
		Grants: map[string]string{
			WindowThisWeek: "98",
			WindowLastWeek: "97",
		},
	},
	Celo: {
		ID:   Celo,
		Name: "Celo",
		Token: Token{Symbol: "CELO", Name: "Celo", FallbackPrice: 0.5, CoinID: "celo"},
		Grants: map[string]string{
			WindowThisWeek: "102",
			WindowLastWeek: "101",
		},
	},
	WalletConnect: {
		ID:   WalletConnect,
		Name: "WalletConnect",
		Token: Token{
			Symbol:        "WCT",
			Name:          "WalletConnect Token",
			FallbackPrice: 0.1,
			Platform:      "optimistic-ethereum",
			Contract:      "0xef4461891dfb3ac8572ccf7c794664a8dd927945",
		},
		Grants: map[string]string{
			WindowThisWeek: "105",
			WindowLastWeek: "104",
		},
	},
	TalentProtocol: {
		ID:   TalentProtocol,
		Name: "Talent Protocol",
		Token: Token{
			Symbol:        "TALENT",
			Name:          "Talent Protocol",
			FallbackPrice: 0.02,
			Platform:      "base",
			Contract:      "0x9a33406165f562e16c3abd82fd1185482e01b49a",
		},
		Grants: map[string]string{
			WindowThisWeek: "110",
			WindowLastWeek: "109",
		},
	},
	Syndicate: {
		ID:   Syndicate,
		Name: "Syndicate",
		Token: Token{Symbol: "SYND", Name: "Syndicate", FallbackPrice: 0.2, CoinID: "syndicate-3"},
		Grants: map[string]string{
			WindowThisWeek: "114",
		},
	},
	Divvi: {
		ID:   Divvi,
		Name: "Divvi",
		Token: Token{Symbol: "DIVVI", Name: "Divvi", FallbackPrice: 0.01, CoinID: "divvi"},
		Grants: map[string]string{
			WindowThisWeek: "118",
		},
	},
}

// order 固定顺序，聚合时按此顺序发起请求、合并结果
var order = []ID{Base, Celo, WalletConnect, TalentProtocol, Syndicate, Divvi}

// All 返回全部赞助方，顺序固定
func All() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

func Lookup(id ID) (Sponsor, bool) {
	s, ok := table[ID(strings.ToLower(string(id)))]
	return s, ok
}

// TokenOf 未知赞助方返回 nil
func TokenOf(id ID) *Token {
	s, ok := Lookup(id)
	if !ok {
		return nil
	}
	t := s.Token
	return &t
}

// GrantID 把时间窗口映射为 grant id
// 空窗口或 all_time 返回 ("", true)，表示不带 grant 参数
func GrantID(id ID, window string) (string, bool) {
	s, ok := Lookup(id)
	if !ok {
		return "", false
	}
	if window == "" || window == WindowAllTime {
		return "", true
	}
	g, ok := s.Grants[window]
	return g, ok
}

// Windows 赞助方支持的时间窗口，all_time 总在第一个
func Windows(id ID) []string {
	s, ok := Lookup(id)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(s.Grants)+1)
	for w := range s.Grants {
		out = append(out, w)
	}
	sort.Strings(out)
	return append([]string{WindowAllTime}, out...)
}

// Catalogue 全部赞助方信息，供前端展示
func Catalogue() []Sponsor {
	out := make([]Sponsor, 0, len(order))
	for _, id := range order {
		out = append(out, table[id])
	}
	return out
}

package model

import "builderboard/internal/sponsor"

// TokenQuote 赞助方代币的美元价格
type TokenQuote struct {
	Sponsor sponsor.ID `json:"sponsor"`
	sponsor.Token
	Price float64 `json:"price"`
	// Live 为 false 表示使用了兜底价格
	Live bool `json:"live"`
}

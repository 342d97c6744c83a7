package types

// Score 声誉分服务返回的单条记录
type Score struct {
	Points           float64 `json:"points"`
	RankPosition     int     `json:"rank_position"`
	LastCalculatedAt string  `json:"last_calculated_at"`
	Slug             string  `json:"slug"`
}

type ScoreResponse struct {
	Score Score `json:"score"`
}

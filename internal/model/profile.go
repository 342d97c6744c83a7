package model

import (
	"builderboard/pkg/explorer"
	"builderboard/pkg/github"
	"builderboard/pkg/identity"
	"builderboard/pkg/talent/types"
)

type BuilderProfileReq struct {
	Wallet   string `form:"wallet" binding:"omitempty,max=64"`
	Github   string `form:"github" binding:"omitempty,max=39"`
	Identity string `form:"identity" binding:"omitempty,max=128"`
}

// Panel 每个面板独立的加载结果，失败只影响自己
type Panel[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

type OnchainActivity struct {
	Transactions []explorer.Transaction `json:"transactions"`
	Deployments  []explorer.Transaction `json:"deployments"`
}

type CodeActivity struct {
	User      *github.User           `json:"user"`
	Commits   []github.Commit        `json:"commits"`
	Languages []github.LanguageCount `json:"languages"`
}

type IdentityInfo struct {
	Ens    *identity.EnsRecord      `json:"ens"`
	Social []identity.SocialProfile `json:"social"`
}

type BuilderProfileRes struct {
	Wallet   string                  `json:"wallet"`
	Onchain  *Panel[OnchainActivity] `json:"onchain,omitempty"`
	Code     *Panel[CodeActivity]    `json:"code,omitempty"`
	Identity *Panel[IdentityInfo]    `json:"identity,omitempty"`
}

type BuilderScoreRes struct {
	ID    string      `json:"id"`
	Score types.Score `json:"score"`
}

package service

import (
	"builderboard/internal/model"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/explorer"
	"builderboard/pkg/github"
	"builderboard/pkg/identity"
	"builderboard/pkg/logger"
	"builderboard/pkg/talent/types"
	"context"
	"strings"
	"sync"
)

var _ BuilderService = (*builderService)(nil)

type ChainExplorer interface {
	Transactions(ctx context.Context, address string, limit int) ([]explorer.Transaction, error)
}

type CodeHost interface {
	User(ctx context.Context, username string) (*github.User, error)
	Repos(ctx context.Context, username string, limit int) ([]github.Repo, error)
	RecentCommits(ctx context.Context, username string, limit int) ([]github.Commit, error)
}

type IdentityResolver interface {
	ReverseLookup(ctx context.Context, address string) (*identity.EnsRecord, error)
	SocialProfiles(ctx context.Context, identity string) ([]identity.SocialProfile, error)
}

type ScoreSource interface {
	Score(ctx context.Context, id string) (*types.Score, error)
}

type BuilderService interface {
	// Profile 并发查询链上、代码、身份三个面板，互不影响
	Profile(ctx context.Context, req model.BuilderProfileReq) (model.BuilderProfileRes, error)
	Score(ctx context.Context, id string) (model.BuilderScoreRes, error)
}

type builderService struct {
	explorer ChainExplorer
	code     CodeHost
	identity IdentityResolver
	scores   ScoreSource
	limit    int
}

func NewBuilderService(ex ChainExplorer, code CodeHost, id IdentityResolver, scores ScoreSource, limit int) *builderService {
	if limit <= 0 {
		limit = 20
	}
	return &builderService{explorer: ex, code: code, identity: id, scores: scores, limit: limit}
}

func (s *builderService) Profile(ctx context.Context, req model.BuilderProfileReq) (res model.BuilderProfileRes, err error) {
	wallet := strings.TrimSpace(req.Wallet)
	username := strings.TrimSpace(req.Github)
	ident := strings.TrimSpace(req.Identity)
	if wallet == "" && username == "" && ident == "" {
		err = errors.WithCode(ecode.ValidateErr, "one of wallet, github or identity is required")
		return
	}
	if ident == "" {
		ident = wallet
	}
	res.Wallet = wallet

	var wg sync.WaitGroup
	if wallet != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Onchain = s.onchain(ctx, wallet)
		}()
	}
	if username != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Code = s.codeActivity(ctx, username)
		}()
	}
	if ident != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Identity = s.identityInfo(ctx, wallet, ident)
		}()
	}
	wg.Wait()
	return
}

func (s *builderService) onchain(ctx context.Context, wallet string) *model.Panel[model.OnchainActivity] {
	p := &model.Panel[model.OnchainActivity]{Data: model.OnchainActivity{
		Transactions: []explorer.Transaction{},
		Deployments:  []explorer.Transaction{},
	}}
	txs, err := s.explorer.Transactions(ctx, wallet, s.limit)
	if err != nil {
		logger.Warnf("[builder] explorer %s: %v", wallet, err)
		p.Error = err.Error()
		return p
	}
	p.Data.Transactions = txs
	p.Data.Deployments = explorer.ContractDeployments(txs)
	return p
}

// codeActivity 部分查询失败时保留已拿到的数据
func (s *builderService) codeActivity(ctx context.Context, username string) *model.Panel[model.CodeActivity] {
	p := &model.Panel[model.CodeActivity]{Data: model.CodeActivity{
		Commits:   []github.Commit{},
		Languages: []github.LanguageCount{},
	}}

	user, userErr := s.code.User(ctx, username)
	if userErr == nil {
		p.Data.User = user
	}
	repos, reposErr := s.code.Repos(ctx, username, 100)
	if reposErr == nil {
		p.Data.Languages = github.LanguageHistogram(repos)
	}
	commits, commitsErr := s.code.RecentCommits(ctx, username, s.limit)
	if commitsErr == nil {
		p.Data.Commits = commits
	}

	if err := errors.Combine(userErr, reposErr, commitsErr); err != nil {
		logger.Warnf("[builder] github %s: %v", username, err)
		p.Error = err.Error()
	}
	return p
}

func (s *builderService) identityInfo(ctx context.Context, wallet, ident string) *model.Panel[model.IdentityInfo] {
	p := &model.Panel[model.IdentityInfo]{Data: model.IdentityInfo{Social: []identity.SocialProfile{}}}

	var ensErr error
	if wallet != "" {
		p.Data.Ens, ensErr = s.identity.ReverseLookup(ctx, wallet)
	}
	social, socialErr := s.identity.SocialProfiles(ctx, ident)
	if socialErr == nil {
		p.Data.Social = social
	}

	if err := errors.Combine(ensErr, socialErr); err != nil {
		logger.Warnf("[builder] identity %s: %v", ident, err)
		p.Error = err.Error()
	}
	return p
}

func (s *builderService) Score(ctx context.Context, id string) (res model.BuilderScoreRes, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		err = errors.WithCode(ecode.ValidateErr, "id is required")
		return
	}
	score, err := s.scores.Score(ctx, id)
	if err != nil {
		err = wrapUpstream(err, "score of %s", id)
		return
	}
	res.ID = id
	res.Score = *score
	return
}

package service

import (
	"builderboard/internal/model"
	"builderboard/pkg/errors"
	"builderboard/pkg/errors/ecode"
	"builderboard/pkg/explorer"
	"builderboard/pkg/github"
	"builderboard/pkg/identity"
	"builderboard/pkg/proxy"
	"builderboard/pkg/talent/types"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplorer struct {
	txs []explorer.Transaction
	err error
}

func (f fakeExplorer) Transactions(ctx context.Context, address string, limit int) ([]explorer.Transaction, error) {
	return f.txs, f.err
}

type fakeCodeHost struct {
	userErr error
}

func (f fakeCodeHost) User(ctx context.Context, username string) (*github.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &github.User{Login: username, Followers: 12, PublicRepos: 3}, nil
}

func (f fakeCodeHost) Repos(ctx context.Context, username string, limit int) ([]github.Repo, error) {
	return []github.Repo{{Name: "a", Language: "Go"}, {Name: "b", Language: "Go"}, {Name: "c", Language: "Rust"}}, nil
}

func (f fakeCodeHost) RecentCommits(ctx context.Context, username string, limit int) ([]github.Commit, error) {
	return []github.Commit{{Repo: username + "/a", SHA: "abc", Message: "init"}}, nil
}

type fakeIdentity struct {
	ens       *identity.EnsRecord
	socialErr error
}

func (f fakeIdentity) ReverseLookup(ctx context.Context, address string) (*identity.EnsRecord, error) {
	return f.ens, nil
}

func (f fakeIdentity) SocialProfiles(ctx context.Context, id string) ([]identity.SocialProfile, error) {
	if f.socialErr != nil {
		return nil, f.socialErr
	}
	return []identity.SocialProfile{{Platform: "farcaster", Identity: id}}, nil
}

type fakeScores struct {
	score *types.Score
	err   error
}

func (f fakeScores) Score(ctx context.Context, id string) (*types.Score, error) {
	return f.score, f.err
}

func TestBuilderService_ProfileAllPanels(t *testing.T) {
	s := NewBuilderService(
		fakeExplorer{txs: []explorer.Transaction{{Hash: "0x1", To: "0xb"}, {Hash: "0x2", ContractAddress: "0xc"}}},
		fakeCodeHost{},
		fakeIdentity{ens: &identity.EnsRecord{Name: "alice.eth"}},
		fakeScores{}, 10)

	res, err := s.Profile(context.Background(), model.BuilderProfileReq{Wallet: "0xabc", Github: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", res.Wallet)

	require.NotNil(t, res.Onchain)
	assert.Empty(t, res.Onchain.Error)
	assert.Len(t, res.Onchain.Data.Transactions, 2)
	require.Len(t, res.Onchain.Data.Deployments, 1)
	assert.Equal(t, "0x2", res.Onchain.Data.Deployments[0].Hash)

	require.NotNil(t, res.Code)
	assert.Empty(t, res.Code.Error)
	assert.Equal(t, 12, res.Code.Data.User.Followers)
	assert.Equal(t, []github.LanguageCount{{Language: "Go", Repos: 2}, {Language: "Rust", Repos: 1}}, res.Code.Data.Languages)

	require.NotNil(t, res.Identity)
	assert.Equal(t, "alice.eth", res.Identity.Data.Ens.Name)
	require.Len(t, res.Identity.Data.Social, 1)
	assert.Equal(t, "0xabc", res.Identity.Data.Social[0].Identity)
}

func TestBuilderService_ProfilePanelsFailIndependently(t *testing.T) {
	s := NewBuilderService(
		fakeExplorer{err: errors.New("explorer down")},
		fakeCodeHost{userErr: errors.New("rate limited")},
		fakeIdentity{socialErr: errors.New("social down")},
		fakeScores{}, 10)

	res, err := s.Profile(context.Background(), model.BuilderProfileReq{Wallet: "0xabc", Github: "alice"})
	require.NoError(t, err)

	assert.Contains(t, res.Onchain.Error, "explorer down")
	assert.NotNil(t, res.Onchain.Data.Transactions)

	// 用户信息失败，仓库和提交仍然返回
	assert.Contains(t, res.Code.Error, "rate limited")
	assert.Nil(t, res.Code.Data.User)
	assert.Len(t, res.Code.Data.Commits, 1)

	assert.Contains(t, res.Identity.Error, "social down")
	assert.Nil(t, res.Identity.Data.Ens)
}

func TestBuilderService_ProfileOnlyRequestedPanels(t *testing.T) {
	s := NewBuilderService(fakeExplorer{}, fakeCodeHost{}, fakeIdentity{}, fakeScores{}, 10)

	res, err := s.Profile(context.Background(), model.BuilderProfileReq{Github: "alice"})
	require.NoError(t, err)
	assert.Nil(t, res.Onchain)
	assert.Nil(t, res.Identity)
	assert.NotNil(t, res.Code)

	_, err = s.Profile(context.Background(), model.BuilderProfileReq{})
	assert.Equal(t, ecode.ValidateErr, errors.Code(err))
}

func TestBuilderService_Score(t *testing.T) {
	s := NewBuilderService(nil, nil, nil, fakeScores{score: &types.Score{Points: 88, RankPosition: 4}}, 10)
	res, err := s.Score(context.Background(), " 0xabc ")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", res.ID)
	assert.Equal(t, 88.0, res.Score.Points)

	_, err = s.Score(context.Background(), "")
	assert.Equal(t, ecode.ValidateErr, errors.Code(err))

	s = NewBuilderService(nil, nil, nil, fakeScores{err: &proxy.UpstreamError{Kind: proxy.KindStatus, Status: http.StatusNotFound}}, 10)
	_, err = s.Score(context.Background(), "0xabc")
	assert.Equal(t, ecode.NotFoundErr, errors.Code(err))
}

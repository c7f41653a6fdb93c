package forum

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum/forumtest"
	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

func TestAskQuestionAndFilterByProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	profile := env.createProfile(t, forum).UserProfile.Address

	questions, err := env.client.FetchAllQuestions(ctx, &profile)
	require.NoError(t, err)
	require.NotNil(t, questions)
	require.Empty(t, questions)

	params := sampleQuestion()
	res, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), params)
	require.NoError(t, err)
	require.Equal(t, profile, res.UserProfile.Address)

	want, err := FindQuestionPDA(env.client.ProgramID(), forum, profile, res.QuestionSeed)
	require.NoError(t, err)
	require.Equal(t, want, res.Question)

	questions, err = env.client.FetchAllQuestions(ctx, &profile)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	q := questions[0]
	require.Equal(t, res.Question.Address, q.Address)
	require.Equal(t, params.Title, q.Account.Title)
	require.Equal(t, params.Content, q.Account.Content)
	require.Equal(t, params.Tag, q.Account.Tags)
	require.Equal(t, params.BountyAmount, q.Account.BountyAmount)
	require.Equal(t, forum, q.Account.Forum)
	require.Equal(t, res.QuestionSeed, q.Account.QuestionSeed)
	require.False(t, q.Account.BountyAwarded)

	// a second asker's questions are filtered out
	other := newFundedKey(env.ledger)
	_, err = env.client.CreateUserProfile(ctx, forum, KeypairAuthority(other))
	require.NoError(t, err)
	_, err = env.client.AskQuestion(ctx, forum, KeypairAuthority(other), params)
	require.NoError(t, err)

	questions, err = env.client.FetchAllQuestions(ctx, &profile)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	all, err := env.client.FetchAllQuestions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	owner, err := env.client.FetchUserProfile(ctx, profile)
	require.NoError(t, err)
	require.Equal(t, uint64(1), owner.Account.QuestionsAsked)
}

func TestAskQuestionRoutesFeeAndBountyToTreasury(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	_, before, err := env.client.FetchTreasuryBalance(ctx, forum)
	require.NoError(t, err)
	params := sampleQuestion()
	params.BountyAmount = 7_000_000
	res, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), params)
	require.NoError(t, err)

	_, after, err := env.client.FetchTreasuryBalance(ctx, forum)
	require.NoError(t, err)
	require.Equal(t, testFees.QuestionFee+params.BountyAmount, after-before)
	require.Equal(t, forumtest.RentExemptMinimum(QuestionAccountSize), env.ledger.Balance(res.Question.Address))
}

func TestAskQuestionBelowMinimumBounty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	before := env.ledger.Snapshot()
	params := sampleQuestion()
	params.BountyAmount = testFees.BountyMinimum - 1
	res, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), params)
	require.ErrorIs(t, err, ErrPreconditionViolation)

	var perr *ProgramError
	require.True(t, errors.As(err, &perr))
	require.NotNil(t, perr.Code)
	require.Equal(t, forum_program.ErrorCode_BountyBelowMinimum, *perr.Code)
	require.NotEmpty(t, perr.Logs)

	require.NotNil(t, res)
	_, ok := env.ledger.Account(res.Question.Address)
	require.False(t, ok)
	require.Equal(t, before, env.ledger.Snapshot())
}

func TestAskQuestionWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	forum, _ := env.initForum(t, testFees)

	_, err := env.client.AskQuestion(context.Background(), forum, env.client.WalletAuthority(), sampleQuestion())
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestAskQuestionWithExplicitSeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	profile := env.createProfile(t, forum).UserProfile.Address

	seed := solana.NewWallet().PublicKey()
	params := sampleQuestion()
	params.QuestionSeed = &seed
	res, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), params)
	require.NoError(t, err)
	require.Equal(t, seed, res.QuestionSeed)

	want, err := FindQuestionPDA(env.client.ProgramID(), forum, profile, seed)
	require.NoError(t, err)
	require.Equal(t, want.Address, res.Question.Address)

	// reusing the seed collides with the existing question
	_, err = env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), params)
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestAskQuestionGeneratesDistinctSeeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	first, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), sampleQuestion())
	require.NoError(t, err)
	second, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), sampleQuestion())
	require.NoError(t, err)
	require.NotEqual(t, first.QuestionSeed, second.QuestionSeed)
	require.NotEqual(t, first.Question.Address, second.Question.Address)
}

func TestAskQuestionValidatesLocally(t *testing.T) {
	env := newTestEnv(t)
	forum := solana.NewWallet().PublicKey()
	owner := env.client.WalletAuthority()

	cases := map[string]struct {
		mutate func(*AskQuestionParams)
		want   error
	}{
		"unknown tag":    {func(p *AskQuestionParams) { p.Tag = Tag(forum_program.TagsCount) }, ErrInvalidTag},
		"empty title":    {func(p *AskQuestionParams) { p.Title = "" }, ErrInvalidParams},
		"long title":     {func(p *AskQuestionParams) { p.Title = strings.Repeat("x", forum_program.MAX_TITLE_LENGTH+1) }, ErrInvalidParams},
		"long content":   {func(p *AskQuestionParams) { p.Content = strings.Repeat("x", forum_program.MAX_CONTENT_LENGTH+1) }, ErrInvalidParams},
		"missing signer": {func(p *AskQuestionParams) { owner = Authority{} }, ErrInvalidParams},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			owner = env.client.WalletAuthority()
			params := sampleQuestion()
			tc.mutate(&params)
			_, err := env.client.AskQuestion(context.Background(), forum, owner, params)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Zero(t, env.ledger.SendCount())
}

func TestParseTag(t *testing.T) {
	tag, err := ParseTag("development")
	require.NoError(t, err)
	require.Equal(t, TagDevelopment, tag)

	tag, err = ParseTag(" DeFi ")
	require.NoError(t, err)
	require.Equal(t, TagDeFi, tag)

	_, err = ParseTag("Cooking")
	require.ErrorIs(t, err, ErrInvalidTag)

	require.Len(t, AllTags(), forum_program.TagsCount)
	for _, tag := range AllTags() {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, parsed)
	}
}

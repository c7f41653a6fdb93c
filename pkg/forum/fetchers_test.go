package forum

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum/forumtest"
	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

func TestFetchAllForumsByManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first, managerA := env.initForum(t, testFees)
	env.initForum(t, testFees)
	third, err := env.client.InitForum(ctx, nil, KeypairAuthority(managerA), testFees)
	require.NoError(t, err)

	manager := managerA.PublicKey()
	forums, err := env.client.FetchAllForums(ctx, &manager)
	require.NoError(t, err)
	var got []solana.PublicKey
	for _, f := range forums {
		got = append(got, f.Address)
		require.Equal(t, manager, f.Account.ForumManager)
	}
	require.ElementsMatch(t, []solana.PublicKey{first, third.Forum}, got)

	all, err := env.client.FetchAllForums(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	nobody := solana.NewWallet().PublicKey()
	none, err := env.client.FetchAllForums(ctx, &nobody)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestFetchAllUserProfilesByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	mine := env.createProfile(t, forum)
	other := newFundedKey(env.ledger)
	_, err := env.client.CreateUserProfile(ctx, forum, KeypairAuthority(other))
	require.NoError(t, err)

	owner := env.wallet.PublicKey()
	profiles, err := env.client.FetchAllUserProfiles(ctx, &owner)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, mine.UserProfile.Address, profiles[0].Address)

	all, err := env.client.FetchAllUserProfiles(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestFetchAllChunksLargeResults(t *testing.T) {
	env := newTestEnv(t)
	const count = 2*maxAccountsPerRequest + 5

	want := make(map[solana.PublicKey]forum_program.UserProfile, count)
	for i := 0; i < count; i++ {
		owner := solana.NewWallet().PublicKey()
		pda, err := FindUserProfilePDA(env.client.ProgramID(), owner)
		require.NoError(t, err)
		profile := forum_program.UserProfile{ProfileOwner: owner, QuestionsAsked: uint64(i)}
		data, err := forum_program.MarshalAccount(profile, UserProfileAccountSize)
		require.NoError(t, err)
		env.ledger.SetAccount(pda.Address, forumtest.AccountState{
			Lamports: forumtest.RentExemptMinimum(UserProfileAccountSize),
			Owner:    env.client.ProgramID(),
			Data:     data,
		})
		want[pda.Address] = profile
	}

	profiles, err := env.client.FetchAllUserProfiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, profiles, count)
	for _, p := range profiles {
		w, ok := want[p.Address]
		require.True(t, ok)
		if diff := cmp.Diff(&w, p.Account); diff != "" {
			t.Fatalf("profile %s mismatch (-want +got):\n%s", p.Address, diff)
		}
	}
}

func TestFetchNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)

	_, err := env.client.FetchForum(ctx, solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrAccountNotFound)

	// a system account is not a forum
	_, err = env.client.FetchForum(ctx, env.wallet.PublicKey())
	require.ErrorIs(t, err, ErrAccountNotFound)

	// a forum is not a profile or a question
	_, err = env.client.FetchUserProfile(ctx, forum)
	require.ErrorIs(t, err, ErrAccountNotFound)
	_, err = env.client.FetchQuestion(ctx, forum)
	require.ErrorIs(t, err, ErrAccountNotFound)

	_, err = env.client.FetchUserProfileByOwner(ctx, solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFetchIgnoresAccountsOfOtherPrograms(t *testing.T) {
	env := newTestEnv(t)
	forum, _ := env.initForum(t, testFees)
	stored, ok := env.ledger.Account(forum)
	require.True(t, ok)

	// same bytes, foreign owner
	foreign := solana.NewWallet().PublicKey()
	env.ledger.SetAccount(foreign, forumtest.AccountState{Lamports: stored.Lamports, Owner: solana.NewWallet().PublicKey(), Data: stored.Data})

	_, err := env.client.FetchForum(context.Background(), foreign)
	require.ErrorIs(t, err, ErrAccountNotFound)
	all, err := env.client.FetchAllForums(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestFetchQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)
	res, err := env.client.AskQuestion(ctx, forum, env.client.WalletAuthority(), sampleQuestion())
	require.NoError(t, err)

	q, err := env.client.FetchQuestion(ctx, res.Question.Address)
	require.NoError(t, err)
	require.Equal(t, res.UserProfile.Address, q.Account.UserProfile)
	require.Equal(t, sampleQuestion().Title, q.Account.Title)
}

func TestMinimumBalanceForRentExemption(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.client.MinimumBalanceForRentExemption(context.Background(), TreasuryRentBytes)
	require.NoError(t, err)
	require.Equal(t, forumtest.RentExemptMinimum(TreasuryRentBytes), got)

	balance, err := env.client.FetchBalance(context.Background(), env.wallet.PublicKey())
	require.NoError(t, err)
	require.Equal(t, 100*sol, balance)
}

package forum

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum/forumtest"
)

func TestCreateUserProfileRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)

	res := env.createProfile(t, forum)
	want, err := FindUserProfilePDA(env.client.ProgramID(), env.wallet.PublicKey())
	require.NoError(t, err)
	require.Equal(t, want, res.UserProfile)

	profile, err := env.client.FetchUserProfileByOwner(ctx, env.wallet.PublicKey())
	require.NoError(t, err)
	require.Equal(t, res.UserProfile.Address, profile.Address)
	require.Equal(t, env.wallet.PublicKey(), profile.Account.ProfileOwner)
	require.Nil(t, profile.Account.NftPfpTokenMint)
	require.NotZero(t, profile.Account.ProfileCreatedTs)

	got, err := env.client.FetchForum(ctx, forum)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.Account.ForumCounts.ForumProfileCount)
}

func TestCreateUserProfileRoutesFeeToTreasury(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, manager := env.initForum(t, testFees)

	_, before, err := env.client.FetchTreasuryBalance(ctx, forum)
	require.NoError(t, err)
	managerBefore := env.ledger.Balance(manager.PublicKey())
	walletBefore := env.ledger.Balance(env.wallet.PublicKey())

	res := env.createProfile(t, forum)

	_, after, err := env.client.FetchTreasuryBalance(ctx, forum)
	require.NoError(t, err)
	require.Equal(t, testFees.ProfileFee, after-before)
	require.Equal(t, managerBefore, env.ledger.Balance(manager.PublicKey()))

	rent := forumtest.RentExemptMinimum(UserProfileAccountSize)
	require.Equal(t, walletBefore-testFees.ProfileFee-rent-forumtest.LamportsPerSignature, env.ledger.Balance(env.wallet.PublicKey()))
	require.Equal(t, rent, env.ledger.Balance(res.UserProfile.Address))
}

func TestCreateUserProfileTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	_, err := env.client.CreateUserProfile(context.Background(), forum, env.client.WalletAuthority())
	require.ErrorIs(t, err, ErrPreconditionViolation)
	var perr *ProgramError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "AccountAlreadyInUse", perr.Name)
}

func TestConcurrentCreateUserProfileOneWins(t *testing.T) {
	env := newTestEnv(t)
	forum, _ := env.initForum(t, testFees)

	const racers = 4
	errs := make([]error, racers)
	var g errgroup.Group
	for i := 0; i < racers; i++ {
		i := i
		g.Go(func() error {
			_, errs[i] = env.client.CreateUserProfile(context.Background(), forum, env.client.WalletAuthority())
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var won int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, ErrPreconditionViolation)
	}
	require.Equal(t, 1, won)

	profiles, err := env.client.FetchAllUserProfiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
}

func TestCreateUserProfileUnknownForum(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.client.CreateUserProfile(context.Background(), solana.NewWallet().PublicKey(), env.client.WalletAuthority())
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestEditUserProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	created := env.createProfile(t, forum)

	mint := solana.NewWallet().PublicKey()
	res, err := env.client.EditUserProfile(ctx, env.client.WalletAuthority(), mint)
	require.NoError(t, err)
	require.Equal(t, created.UserProfile, res.UserProfile)

	profile, err := env.client.FetchUserProfile(ctx, res.UserProfile.Address)
	require.NoError(t, err)
	require.NotNil(t, profile.Account.NftPfpTokenMint)
	require.Equal(t, mint, *profile.Account.NftPfpTokenMint)
}

func TestEditUserProfileWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.client.EditUserProfile(context.Background(), env.client.WalletAuthority(), solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestDeleteUserProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	created := env.createProfile(t, forum)
	deposit := env.ledger.Balance(created.UserProfile.Address)

	receiver := solana.NewWallet().PublicKey()
	res, err := env.client.DeleteUserProfile(ctx, forum, env.client.WalletAuthority(), receiver)
	require.NoError(t, err)
	require.Equal(t, created.UserProfile, res.UserProfile)
	require.Equal(t, deposit, env.ledger.Balance(receiver))

	_, err = env.client.FetchUserProfileByOwner(ctx, env.wallet.PublicKey())
	require.ErrorIs(t, err, ErrAccountNotFound)

	got, err := env.client.FetchForum(ctx, forum)
	require.NoError(t, err)
	require.Zero(t, got.Account.ForumCounts.ForumProfileCount)
}

func TestDeleteUserProfileOfAnotherOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	// a different signer derives a different, nonexistent profile
	other := newFundedKey(env.ledger)
	_, err := env.client.DeleteUserProfile(ctx, forum, KeypairAuthority(other), other.PublicKey())
	require.Error(t, err)

	_, err = env.client.FetchUserProfileByOwner(ctx, env.wallet.PublicKey())
	require.NoError(t, err)
}

package forum

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum/forumtest"
	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

func TestInitForum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := newFundedKey(env.ledger)
	forumKey := solana.NewWallet().PrivateKey

	res, err := env.client.InitForum(ctx, forumKey, KeypairAuthority(manager), DefaultFees())
	require.NoError(t, err)
	require.Equal(t, forumKey.PublicKey(), res.Forum)
	require.False(t, res.Signature.IsZero())
	require.False(t, res.DryRun)

	authority, err := FindForumAuthorityPDA(env.client.ProgramID(), res.Forum)
	require.NoError(t, err)
	treasury, err := FindForumTreasuryPDA(env.client.ProgramID(), res.Forum)
	require.NoError(t, err)
	require.Equal(t, authority, res.ForumAuthority)
	require.Equal(t, treasury, res.ForumTreasury)
	require.Equal(t, []PDA{authority}, res.Signers.ProgramDerived())
	require.ElementsMatch(t, []solana.PublicKey{forumKey.PublicKey(), manager.PublicKey()}, res.Signers.External())

	forum, err := env.client.FetchForum(ctx, res.Forum)
	require.NoError(t, err)
	require.Equal(t, manager.PublicKey(), forum.Account.ForumManager)
	require.Equal(t, authority.Address, forum.Account.ForumAuthority)
	require.Equal(t, res.Forum, forum.Account.ForumAuthoritySeed)
	require.Equal(t, authority.Bump, forum.Account.ForumAuthorityBumpSeed[0])
	require.Equal(t, forum_program.FORUM_ACCOUNT_VERSION, forum.Account.Version)
	require.Equal(t, DefaultFees(), forum.Fees())

	_, balance, err := env.client.FetchTreasuryBalance(ctx, res.Forum)
	require.NoError(t, err)
	require.Equal(t, forumtest.RentExemptMinimum(TreasuryRentBytes), balance)
}

func TestInitForumGeneratesIdentity(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.client.InitForum(context.Background(), nil, env.client.WalletAuthority(), testFees)
	require.NoError(t, err)
	require.False(t, res.Forum.IsZero())

	_, err = env.client.FetchForum(context.Background(), res.Forum)
	require.NoError(t, err)
}

func TestInitForumRejectsUsedIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forumKey := solana.NewWallet().PrivateKey
	_, err := env.client.InitForum(ctx, forumKey, env.client.WalletAuthority(), testFees)
	require.NoError(t, err)

	_, err = env.client.InitForum(ctx, forumKey, env.client.WalletAuthority(), testFees)
	require.ErrorIs(t, err, ErrPreconditionViolation)
	var perr *ProgramError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "AccountAlreadyInUse", perr.Name)
}

func TestUpdateForumParams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, manager := env.initForum(t, testFees)

	updated := Fees{ProfileFee: 7, QuestionFee: 8, BountyMinimum: 9}
	_, err := env.client.UpdateForumParams(ctx, forum, KeypairAuthority(manager), updated)
	require.NoError(t, err)

	got, err := env.client.FetchForum(ctx, forum)
	require.NoError(t, err)
	require.Equal(t, updated, got.Fees())
	require.Equal(t, manager.PublicKey(), got.Account.ForumManager)
}

func TestUpdateForumParamsRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	impostor := newFundedKey(env.ledger)

	_, err := env.client.UpdateForumParams(ctx, forum, KeypairAuthority(impostor), Fees{})
	require.ErrorIs(t, err, ErrAuthorizationMismatch)

	var oe *OpError
	require.True(t, errors.As(err, &oe))
	require.Equal(t, "updateForumParams", oe.Op)
	require.Equal(t, forum, oe.Address)

	got, err := env.client.FetchForum(ctx, forum)
	require.NoError(t, err)
	require.Equal(t, testFees, got.Fees())
}

func TestPayoutFromTreasuryRetainsRentMinimum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, manager := env.initForum(t, testFees)
	env.createProfile(t, forum)

	receiver := solana.NewWallet().PublicKey()
	res, err := env.client.PayoutFromTreasury(ctx, forum, KeypairAuthority(manager), receiver, 0)
	require.NoError(t, err)

	rent := forumtest.RentExemptMinimum(TreasuryRentBytes)
	require.Equal(t, rent, res.MinimumBalanceForRentExemption)
	require.Equal(t, testFees.ProfileFee, env.ledger.Balance(receiver))
	require.Equal(t, rent, env.ledger.Balance(res.ForumTreasury.Address))

	// nothing left above the minimum
	_, err = env.client.PayoutFromTreasury(ctx, forum, KeypairAuthority(manager), receiver, 0)
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestPayoutFromTreasuryRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, _ := env.initForum(t, testFees)
	env.createProfile(t, forum)

	_, err := env.client.PayoutFromTreasury(ctx, forum, env.client.WalletAuthority(), env.wallet.PublicKey(), 0)
	require.ErrorIs(t, err, ErrAuthorizationMismatch)
}

func TestCloseForum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum, manager := env.initForum(t, testFees)
	env.createProfile(t, forum)

	treasury, treasuryBalance, err := env.client.FetchTreasuryBalance(ctx, forum)
	require.NoError(t, err)
	forumBalance := env.ledger.Balance(forum)

	receiver := solana.NewWallet().PublicKey()
	res, err := env.client.CloseForum(ctx, forum, KeypairAuthority(manager), receiver)
	require.NoError(t, err)
	require.Equal(t, treasury, res.ForumTreasury)
	require.Equal(t, treasuryBalance+forumBalance, env.ledger.Balance(receiver))

	_, err = env.client.FetchForum(ctx, forum)
	require.ErrorIs(t, err, ErrAccountNotFound)
	_, ok := env.ledger.Account(treasury.Address)
	require.False(t, ok)
}

func TestCloseForumRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	forum, _ := env.initForum(t, testFees)

	_, err := env.client.CloseForum(context.Background(), forum, env.client.WalletAuthority(), env.wallet.PublicKey())
	require.ErrorIs(t, err, ErrAuthorizationMismatch)
	_, err = env.client.FetchForum(context.Background(), forum)
	require.NoError(t, err)
}

func TestManagerOperationsValidateInputs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	forum := solana.NewWallet().PublicKey()

	_, err := env.client.InitForum(ctx, nil, Authority{}, testFees)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = env.client.UpdateForumParams(ctx, forum, Authority{}, testFees)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = env.client.PayoutFromTreasury(ctx, forum, env.client.WalletAuthority(), solana.PublicKey{}, 0)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = env.client.CloseForum(ctx, forum, env.client.WalletAuthority(), solana.PublicKey{})
	require.ErrorIs(t, err, ErrInvalidParams)
	require.Zero(t, env.ledger.SendCount())
}

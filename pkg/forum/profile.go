package forum

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// CreateUserProfile creates the owner's profile. The forum's profile fee is charged
// into that forum's treasury.
func (c *Client) CreateUserProfile(ctx context.Context, forum solana.PublicKey, owner Authority, opts ...ExecOption) (*CreateUserProfileResult, error) {
	const op = "createUserProfile"
	if owner.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: profile owner not set", ErrInvalidParams))
	}
	authority, err := c.derive(ForumAuthoritySeeds(forum))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	treasury, err := c.derive(ForumTreasurySeeds(forum))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	profile, err := c.derive(UserProfileSeeds(owner.PublicKey()))
	if err != nil {
		return nil, opError(op, owner.PublicKey(), err)
	}
	c.logger.Info("creating user profile",
		zap.Stringer("userProfile", profile.Address),
		zap.Stringer("owner", owner.PublicKey()),
		zap.Stringer("forum", forum))

	ix, err := forum_program.NewCreateUserProfileInstruction(
		forum_program.CreateUserProfileArgs{ForumAuthBump: authority.Bump, ForumTreasuryBump: treasury.Bump},
		forum_program.CreateUserProfileAccounts{
			Forum:          forum,
			ForumAuthority: authority.Address,
			ForumTreasury:  treasury.Address,
			ProfileOwner:   owner.PublicKey(),
			UserProfile:    profile.Address,
			SystemProgram:  SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, profile.Address, err)
	}
	var signers SignerSet
	signers.addAuthority(owner)
	signers.addProgramDerived(authority)

	receipt, err := c.execute(ctx, plan{op: op, address: profile.Address, ix: ix, signers: signers}, opts)
	return &CreateUserProfileResult{
		ForumAuthority: authority,
		ForumTreasury:  treasury,
		UserProfile:    profile,
		Receipt:        receipt,
	}, err
}

// EditUserProfile sets the profile-picture token mint of the owner's profile.
func (c *Client) EditUserProfile(ctx context.Context, owner Authority, nftPfpTokenMint solana.PublicKey, opts ...ExecOption) (*EditUserProfileResult, error) {
	const op = "editUserProfile"
	if owner.IsZero() || nftPfpTokenMint.IsZero() {
		return nil, opError(op, owner.PublicKey(), fmt.Errorf("%w: profile owner and token mint are required", ErrInvalidParams))
	}
	profile, err := c.derive(UserProfileSeeds(owner.PublicKey()))
	if err != nil {
		return nil, opError(op, owner.PublicKey(), err)
	}
	c.logger.Info("editing user profile",
		zap.Stringer("userProfile", profile.Address),
		zap.Stringer("nftPfpTokenMint", nftPfpTokenMint))

	ix, err := forum_program.NewEditUserProfileInstruction(
		forum_program.UserProfileBumpArgs{UserProfileBump: profile.Bump},
		forum_program.EditUserProfileAccounts{
			ProfileOwner:    owner.PublicKey(),
			UserProfile:     profile.Address,
			NftPfpTokenMint: nftPfpTokenMint,
			SystemProgram:   SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, profile.Address, err)
	}
	var signers SignerSet
	signers.addAuthority(owner)

	receipt, err := c.execute(ctx, plan{op: op, address: profile.Address, ix: ix, signers: signers}, opts)
	return &EditUserProfileResult{UserProfile: profile, Receipt: receipt}, err
}

// DeleteUserProfile closes the owner's profile and refunds its deposit to receiver.
func (c *Client) DeleteUserProfile(ctx context.Context, forum solana.PublicKey, owner Authority, receiver solana.PublicKey, opts ...ExecOption) (*DeleteUserProfileResult, error) {
	const op = "deleteUserProfile"
	if owner.IsZero() || receiver.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: profile owner and receiver are required", ErrInvalidParams))
	}
	profile, err := c.derive(UserProfileSeeds(owner.PublicKey()))
	if err != nil {
		return nil, opError(op, owner.PublicKey(), err)
	}
	c.logger.Info("deleting user profile",
		zap.Stringer("userProfile", profile.Address),
		zap.Stringer("receiver", receiver))

	ix, err := forum_program.NewDeleteUserProfileInstruction(
		forum_program.UserProfileBumpArgs{UserProfileBump: profile.Bump},
		forum_program.DeleteUserProfileAccounts{
			Forum:         forum,
			ProfileOwner:  owner.PublicKey(),
			UserProfile:   profile.Address,
			Receiver:      receiver,
			SystemProgram: SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, profile.Address, err)
	}
	var signers SignerSet
	signers.addAuthority(owner)

	receipt, err := c.execute(ctx, plan{op: op, address: profile.Address, ix: ix, signers: signers}, opts)
	return &DeleteUserProfileResult{UserProfile: profile, Receipt: receipt}, err
}

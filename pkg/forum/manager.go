package forum

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// InitForum creates a forum account and its treasury. An empty forum key generates a
// fresh identity; the forum key always signs.
func (c *Client) InitForum(ctx context.Context, forum solana.PrivateKey, manager Authority, fees Fees, opts ...ExecOption) (*InitForumResult, error) {
	const op = "initForum"
	if len(forum) == 0 {
		var err error
		if forum, err = solana.NewRandomPrivateKey(); err != nil {
			return nil, opError(op, solana.PublicKey{}, fmt.Errorf("generate forum key: %w", err))
		}
	}
	forumKey := forum.PublicKey()
	if manager.IsZero() {
		return nil, opError(op, forumKey, fmt.Errorf("%w: manager not set", ErrInvalidParams))
	}

	authority, err := c.derive(ForumAuthoritySeeds(forumKey))
	if err != nil {
		return nil, opError(op, forumKey, err)
	}
	treasury, err := c.derive(ForumTreasurySeeds(forumKey))
	if err != nil {
		return nil, opError(op, forumKey, err)
	}
	c.logger.Info("initializing forum", zap.Stringer("forum", forumKey), zap.Stringer("manager", manager.PublicKey()))
	c.logger.Debug("derived forum accounts",
		zap.Stringer("authority", authority.Address),
		zap.Stringer("treasury", treasury.Address))

	ix, err := forum_program.NewInitForumInstruction(
		forum_program.InitForumArgs{ForumAuthBump: authority.Bump, ForumFees: fees.toProgram()},
		forum_program.InitForumAccounts{
			Forum:          forumKey,
			ForumManager:   manager.PublicKey(),
			ForumAuthority: authority.Address,
			ForumTreasury:  treasury.Address,
			Rent:           RentSysvarAccount,
			SystemProgram:  SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, forumKey, err)
	}

	var signers SignerSet
	signers.addKeypair(forum)
	signers.addAuthority(manager)
	signers.addProgramDerived(authority)

	receipt, err := c.execute(ctx, plan{op: op, address: forumKey, ix: ix, signers: signers}, opts)
	return &InitForumResult{Forum: forumKey, ForumAuthority: authority, ForumTreasury: treasury, Receipt: receipt}, err
}

// UpdateForumParams overwrites a forum's fee parameters.
func (c *Client) UpdateForumParams(ctx context.Context, forum solana.PublicKey, manager Authority, fees Fees, opts ...ExecOption) (*UpdateForumParamsResult, error) {
	const op = "updateForumParams"
	if manager.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: manager not set", ErrInvalidParams))
	}
	c.logger.Info("updating forum parameters",
		zap.Stringer("forum", forum),
		zap.Uint64("profileFee", fees.ProfileFee),
		zap.Uint64("questionFee", fees.QuestionFee),
		zap.Uint64("bountyMinimum", fees.BountyMinimum))

	ix, err := forum_program.NewUpdateForumParamsInstruction(
		forum_program.UpdateForumParamsArgs{ForumFees: fees.toProgram()},
		forum_program.UpdateForumParamsAccounts{
			Forum:         forum,
			ForumManager:  manager.PublicKey(),
			SystemProgram: SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, forum, err)
	}
	var signers SignerSet
	signers.addAuthority(manager)

	receipt, err := c.execute(ctx, plan{op: op, address: forum, ix: ix, signers: signers}, opts)
	return &UpdateForumParamsResult{Forum: forum, Receipt: receipt}, err
}

// PayoutFromTreasury moves the treasury balance above minimumBalanceForRentExemption to
// receiver. A zero minimum is replaced with the rent-exempt minimum of the treasury.
func (c *Client) PayoutFromTreasury(ctx context.Context, forum solana.PublicKey, manager Authority, receiver solana.PublicKey, minimumBalanceForRentExemption uint64, opts ...ExecOption) (*PayoutFromTreasuryResult, error) {
	const op = "payoutFromTreasury"
	if manager.IsZero() || receiver.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: manager and receiver are required", ErrInvalidParams))
	}
	treasury, err := c.derive(ForumTreasurySeeds(forum))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	if minimumBalanceForRentExemption == 0 {
		if minimumBalanceForRentExemption, err = c.MinimumBalanceForRentExemption(ctx, TreasuryRentBytes); err != nil {
			return nil, opError(op, treasury.Address, err)
		}
	}
	c.logger.Info("paying out from treasury",
		zap.Stringer("forum", forum),
		zap.Stringer("treasury", treasury.Address),
		zap.Stringer("receiver", receiver),
		zap.Uint64("retained", minimumBalanceForRentExemption))

	ix, err := forum_program.NewPayoutFromTreasuryInstruction(
		forum_program.PayoutFromTreasuryArgs{
			ForumTreasuryBump:              treasury.Bump,
			MinimumBalanceForRentExemption: minimumBalanceForRentExemption,
		},
		forum_program.TreasuryAccounts{
			Forum:         forum,
			ForumManager:  manager.PublicKey(),
			ForumTreasury: treasury.Address,
			Receiver:      receiver,
			SystemProgram: SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, forum, err)
	}
	var signers SignerSet
	signers.addAuthority(manager)

	receipt, err := c.execute(ctx, plan{op: op, address: forum, ix: ix, signers: signers}, opts)
	return &PayoutFromTreasuryResult{
		ForumTreasury:                  treasury,
		MinimumBalanceForRentExemption: minimumBalanceForRentExemption,
		Receipt:                        receipt,
	}, err
}

// CloseForum drains the treasury and deletes the forum, refunding both to receiver.
// It cannot be undone.
func (c *Client) CloseForum(ctx context.Context, forum solana.PublicKey, manager Authority, receiver solana.PublicKey, opts ...ExecOption) (*CloseForumResult, error) {
	const op = "closeForum"
	if manager.IsZero() || receiver.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: manager and receiver are required", ErrInvalidParams))
	}
	treasury, err := c.derive(ForumTreasurySeeds(forum))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	c.logger.Info("closing forum",
		zap.Stringer("forum", forum),
		zap.Stringer("treasury", treasury.Address),
		zap.Stringer("receiver", receiver))

	ix, err := forum_program.NewCloseForumInstruction(
		forum_program.CloseForumArgs{ForumTreasuryBump: treasury.Bump},
		forum_program.TreasuryAccounts{
			Forum:         forum,
			ForumManager:  manager.PublicKey(),
			ForumTreasury: treasury.Address,
			Receiver:      receiver,
			SystemProgram: SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, forum, err)
	}
	var signers SignerSet
	signers.addAuthority(manager)

	receipt, err := c.execute(ctx, plan{op: op, address: forum, ix: ix, signers: signers}, opts)
	return &CloseForumResult{ForumTreasury: treasury, Receipt: receipt}, err
}

package forum

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// AskQuestion posts a question to a forum. The question fee and the bounty are paid
// into the forum's treasury.
func (c *Client) AskQuestion(ctx context.Context, forum solana.PublicKey, owner Authority, params AskQuestionParams, opts ...ExecOption) (*AskQuestionResult, error) {
	const op = "askQuestion"
	if owner.IsZero() {
		return nil, opError(op, forum, fmt.Errorf("%w: profile owner not set", ErrInvalidParams))
	}
	if err := params.validate(); err != nil {
		return nil, opError(op, forum, err)
	}

	var seed solana.PublicKey
	if params.QuestionSeed != nil && !params.QuestionSeed.IsZero() {
		seed = *params.QuestionSeed
	} else {
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, opError(op, forum, fmt.Errorf("generate question seed: %w", err))
		}
		seed = key.PublicKey()
	}

	treasury, err := c.derive(ForumTreasurySeeds(forum))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	profile, err := c.derive(UserProfileSeeds(owner.PublicKey()))
	if err != nil {
		return nil, opError(op, owner.PublicKey(), err)
	}
	question, err := c.derive(QuestionSeeds(forum, profile.Address, seed))
	if err != nil {
		return nil, opError(op, forum, err)
	}
	c.logger.Info("asking question",
		zap.Stringer("question", question.Address),
		zap.Stringer("forum", forum),
		zap.Stringer("tag", params.Tag),
		zap.Uint64("bounty", params.BountyAmount))
	c.logger.Debug("derived question accounts",
		zap.Stringer("treasury", treasury.Address),
		zap.Stringer("userProfile", profile.Address),
		zap.Stringer("questionSeed", seed))

	ix, err := forum_program.NewAskQuestionInstruction(
		forum_program.AskQuestionArgs{
			ForumTreasuryBump: treasury.Bump,
			UserProfileBump:   profile.Bump,
			Title:             params.Title,
			Content:           params.Content,
			Tags:              params.Tag,
			BountyAmount:      params.BountyAmount,
		},
		forum_program.AskQuestionAccounts{
			Forum:         forum,
			ForumTreasury: treasury.Address,
			ProfileOwner:  owner.PublicKey(),
			UserProfile:   profile.Address,
			Question:      question.Address,
			QuestionSeed:  seed,
			SystemProgram: SystemProgramAccount,
		},
		c.programID,
	)
	if err != nil {
		return nil, opError(op, question.Address, err)
	}
	var signers SignerSet
	signers.addAuthority(owner)

	receipt, err := c.execute(ctx, plan{op: op, address: question.Address, ix: ix, signers: signers}, opts)
	return &AskQuestionResult{
		ForumTreasury: treasury,
		UserProfile:   profile,
		Question:      question,
		QuestionSeed:  seed,
		Receipt:       receipt,
	}, err
}

package forum

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// ExecOption configures a single mutating call.
type ExecOption func(*execConfig)

type execConfig struct {
	dryRun bool
}

// DryRun derives and assembles the operation but does not submit it.
func DryRun() ExecOption {
	return func(c *execConfig) { c.dryRun = true }
}

// WithDryRun sets the dry-run toggle from a flag.
func WithDryRun(dryRun bool) ExecOption {
	return func(c *execConfig) { c.dryRun = dryRun }
}

// Receipt describes a submitted, or in dry-run mode assembled, operation.
type Receipt struct {
	Signature   solana.Signature   `json:"txSig"`
	DryRun      bool               `json:"dryRun"`
	Signers     SignerSet          `json:"signers"`
	Instruction solana.Instruction `json:"-"`
}

// plan is an assembled operation ready to submit.
type plan struct {
	op      string
	address solana.PublicKey
	ix      solana.Instruction
	signers SignerSet
}

func (c *Client) execute(ctx context.Context, p plan, opts []ExecOption) (Receipt, error) {
	var cfg execConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	receipt := Receipt{DryRun: cfg.dryRun, Signers: p.signers, Instruction: p.ix}

	if cfg.dryRun {
		c.logger.Info("dry run, not submitting",
			zap.String("op", p.op),
			zap.Stringer("address", p.address),
			zap.Int("accounts", len(p.ix.Accounts())))
		return receipt, nil
	}

	if len(c.wallet) == 0 {
		return receipt, opError(p.op, p.address, ErrNoWallet)
	}
	keys, err := c.signingKeys(p.signers)
	if err != nil {
		return receipt, opError(p.op, p.address, err)
	}

	latest, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return receipt, opError(p.op, p.address, classifyRemote(err))
	}
	if latest == nil || latest.Value == nil {
		return receipt, opError(p.op, p.address, fmt.Errorf("%w: empty blockhash response", ErrTransport))
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{p.ix},
		latest.Value.Blockhash,
		solana.TransactionPayer(c.wallet.PublicKey()),
	)
	if err != nil {
		return receipt, opError(p.op, p.address, fmt.Errorf("build transaction: %w", err))
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if k, ok := keys[key]; ok {
			return &k
		}
		return nil
	}); err != nil {
		return receipt, opError(p.op, p.address, fmt.Errorf("%w: %v", ErrMissingSigner, err))
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       c.skipPreflight,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return receipt, opError(p.op, p.address, classifyRemote(err))
	}
	receipt.Signature = sig
	c.logger.Debug("transaction sent", zap.String("op", p.op), zap.Stringer("signature", sig))

	if err := c.confirm(ctx, sig); err != nil {
		return receipt, opError(p.op, p.address, err)
	}
	c.logger.Info("transaction confirmed",
		zap.String("op", p.op),
		zap.Stringer("address", p.address),
		zap.Stringer("signature", sig))
	return receipt, nil
}

// signingKeys resolves a private key for every signer that is not program derived.
func (c *Client) signingKeys(set SignerSet) (map[solana.PublicKey]solana.PrivateKey, error) {
	keys := map[solana.PublicKey]solana.PrivateKey{
		c.wallet.PublicKey(): c.wallet,
	}
	for _, e := range set {
		switch e.Kind {
		case SignerProgramDerived:
			continue
		case SignerKeypair:
			keys[e.PublicKey] = e.private
		case SignerCoSigned:
			if _, ok := keys[e.PublicKey]; ok {
				continue
			}
			k, ok := c.signers[e.PublicKey]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrMissingSigner, e.PublicKey)
			}
			keys[e.PublicKey] = k
		}
	}
	return keys, nil
}

func commitmentRank(status solanarpc.ConfirmationStatusType) int {
	switch status {
	case solanarpc.ConfirmationStatusProcessed:
		return 1
	case solanarpc.ConfirmationStatusConfirmed:
		return 2
	case solanarpc.ConfirmationStatusFinalized:
		return 3
	default:
		return 0
	}
}

func targetRank(commitment solanarpc.CommitmentType) int {
	switch commitment {
	case solanarpc.CommitmentFinalized:
		return 3
	case solanarpc.CommitmentConfirmed:
		return 2
	default:
		return 1
	}
}

// confirm polls the signature status until the client's commitment is reached.
func (c *Client) confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	want := targetRank(c.commitment)
	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return classifyRemote(err)
		}
		if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				if serr := statusError(status.Err); serr != nil {
					return serr
				}
			}
			if commitmentRank(status.ConfirmationStatus) >= want {
				return nil
			}
			c.logger.Debug("awaiting confirmation",
				zap.Stringer("signature", sig),
				zap.String("status", string(status.ConfirmationStatus)))
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: confirm %s: %w", ErrTransport, sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

package forum

import (
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*Client)

// WithProgramID sets the forum program ID.
func WithProgramID(programID solana.PublicKey) Option {
	return func(c *Client) { c.programID = programID }
}

// WithCommitment sets the default RPC commitment, also the level submissions wait for.
func WithCommitment(commitment solanarpc.CommitmentType) Option {
	return func(c *Client) { c.commitment = commitment }
}

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWallet sets the fee payer. It also signs for any authority with its public key.
func WithWallet(wallet solana.PrivateKey) Option {
	return func(c *Client) { c.wallet = wallet }
}

// WithSigners adds keys that co-sign whenever their public key is a required signer.
func WithSigners(keys ...solana.PrivateKey) Option {
	return func(c *Client) {
		for _, k := range keys {
			c.signers[k.PublicKey()] = k
		}
	}
}

// WithConfirmTimeout bounds how long a submission waits for confirmation.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Client) { c.confirmTimeout = d }
}

// WithPollInterval sets the signature status polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithSkipPreflight disables RPC-side simulation before broadcast.
func WithSkipPreflight(skip bool) Option {
	return func(c *Client) { c.skipPreflight = skip }
}

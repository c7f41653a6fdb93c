package forum

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// RPCClient is the subset of the Solana JSON-RPC API the client uses. *rpc.Client
// satisfies it.
type RPCClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error)
	GetProgramAccountsWithOpts(ctx context.Context, publicKey solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment solanarpc.CommitmentType) (uint64, error)
	GetLatestBlockhash(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error)
}

var _ RPCClient = (*solanarpc.Client)(nil)

const (
	defaultConfirmTimeout = 91 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
)

// Client is the high-level entrypoint for interacting with the forum program.
// It derives every implicit account, assembles instructions, submits them and
// reads account state back. A Client holds no mutable state between calls.
type Client struct {
	rpc            RPCClient
	programID      solana.PublicKey
	commitment     solanarpc.CommitmentType
	logger         *zap.Logger
	wallet         solana.PrivateKey
	signers        map[solana.PublicKey]solana.PrivateKey
	confirmTimeout time.Duration
	pollInterval   time.Duration
	skipPreflight  bool
}

// NewClient creates a new forum client. Customize via functional options.
func NewClient(rpc RPCClient, opts ...Option) *Client {
	c := &Client{
		rpc:            rpc,
		commitment:     solanarpc.CommitmentProcessed,
		logger:         zap.NewNop(),
		signers:        make(map[solana.PublicKey]solana.PrivateKey),
		confirmTimeout: defaultConfirmTimeout,
		pollInterval:   defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.programID.IsZero() {
		c.programID = forum_program.ProgramID
	}
	if c.confirmTimeout <= 0 {
		c.confirmTimeout = defaultConfirmTimeout
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	return c
}

// ProgramID returns the configured forum program ID.
func (c *Client) ProgramID() solana.PublicKey { return c.programID }

// Commitment returns the configured commitment level for RPC queries.
func (c *Client) Commitment() solanarpc.CommitmentType { return c.commitment }

// Logger returns the logger used by the client.
func (c *Client) Logger() *zap.Logger { return c.logger }

// Wallet returns the fee payer's public key, or the zero key for read-only clients.
func (c *Client) Wallet() solana.PublicKey {
	if len(c.wallet) == 0 {
		return solana.PublicKey{}
	}
	return c.wallet.PublicKey()
}

// WalletAuthority returns the fee payer as a signing authority.
func (c *Client) WalletAuthority() Authority {
	return KeypairAuthority(c.wallet)
}

func (c *Client) derive(seeds SeedTuple) (PDA, error) {
	return Derive(c.programID, seeds)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SolCharms/DeEdIT-SDK/internal/config"
	"github.com/SolCharms/DeEdIT-SDK/pkg/forum"
)

// app carries the state shared by every command once the root pre-run has loaded it.
type app struct {
	// flags
	configPath string
	verbose    bool
	dryRun     bool

	// dial opens the RPC connection for an endpoint.
	dial func(endpoint string) forum.RPCClient

	logger *zap.Logger
	cfg    *config.Config
	wallet solana.PrivateKey
	client *forum.Client
}

func newApp() *app {
	return &app{
		dial: func(endpoint string) forum.RPCClient { return solanarpc.New(endpoint) },
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "forum-cli",
		Short: "Manage forums, user profiles and questions on the forum program",
		Long: `forum-cli drives the forum program from the command line.

Network, fee and question settings come from forum-cli.yaml (or --config), a .env
file and FORUM_* environment variables. Mutating commands accept --dry-run to print
the derived accounts without sending a transaction.

Example:
  forum-cli create-profile -f <forum pubkey>`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default forum-cli.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&a.dryRun, "dry-run", "z", false, "assemble transactions without sending them")

	root.AddCommand(
		newInitForumCmd(a),
		newUpdateForumParamsCmd(a),
		newPayoutFromTreasuryCmd(a),
		newCloseForumCmd(a),
		newCreateProfileCmd(a),
		newEditProfileCmd(a),
		newDeleteProfileCmd(a),
		newAskQuestionCmd(a),
		newFetchAllForumsCmd(a),
		newFetchForumByKeyCmd(a),
		newFetchAllProfilesCmd(a),
		newFetchProfileByKeyCmd(a),
		newFetchProfileByOwnerCmd(a),
		newFetchAllQuestionsCmd(a),
		newFetchQuestionByKeyCmd(a),
		newFetchForumAuthCmd(a),
		newFetchTreasuryBalanceCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.logger == nil {
		cfg := zap.NewProductionConfig()
		if a.verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	wallet, err := solana.PrivateKeyFromSolanaKeygenFile(cfg.Network.Keypair)
	if err != nil {
		return fmt.Errorf("load keypair %s: %w", cfg.Network.Keypair, err)
	}
	a.wallet = wallet

	a.client = forum.NewClient(a.dial(cfg.Network.RPCURL),
		forum.WithProgramID(cfg.Network.ProgramID),
		forum.WithCommitment(cfg.Network.Commitment),
		forum.WithConfirmTimeout(cfg.Network.ConfirmTimeout),
		forum.WithLogger(a.logger),
		forum.WithWallet(wallet),
	)
	a.logger.Debug("connected",
		zap.String("endpoint", cfg.Network.RPCURL),
		zap.Stringer("programID", cfg.Network.ProgramID),
		zap.Stringer("wallet", wallet.PublicKey()))
	return nil
}

func (a *app) exec() []forum.ExecOption {
	return []forum.ExecOption{forum.WithDryRun(a.dryRun)}
}

// receiverOr returns the parsed receiver flag, or the wallet when it is empty.
func (a *app) receiverOr(flag string) (solana.PublicKey, error) {
	if flag == "" {
		return a.wallet.PublicKey(), nil
	}
	return parseKey("receiver", flag)
}

func parseKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return key, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

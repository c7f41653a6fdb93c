package forum

import (
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// Network represents a Solana cluster name used by the forum SDK.
type Network string

const (
	NetworkMainnet Network = "mainnet-beta"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
	NetworkLocal   Network = "localhost"
)

// Fixed accounts every instruction builder passes through.
var (
	SystemProgramAccount = solana.SystemProgramID
	RentSysvarAccount    = solana.SysVarRentPubkey
)

// ClusterURLs maps network to its public JSON-RPC endpoint.
var ClusterURLs = map[Network]string{
	NetworkMainnet: solanarpc.MainNetBeta_RPC,
	NetworkTestnet: solanarpc.TestNet_RPC,
	NetworkDevnet:  solanarpc.DevNet_RPC,
	NetworkLocal:   solanarpc.LocalNet_RPC,
}

// Default fee parameters, in lamports.
const (
	DefaultForumProfileFee    uint64 = 2_000_000_000
	DefaultForumQuestionFee   uint64 = 100_000
	DefaultForumBountyMinimum uint64 = 150_000_000
)

// Account data sizes the ledger allocates, used for rent estimates.
const (
	UserProfileAccountSize = forum_program.USER_PROFILE_ACCOUNT_SIZE
	QuestionAccountSize    = forum_program.QUESTION_ACCOUNT_SIZE
	TreasuryRentBytes      = forum_program.TREASURY_RENT_BYTES
)

// Bulk fetches chunk GetMultipleAccounts calls to the RPC limit.
const maxAccountsPerRequest = 100

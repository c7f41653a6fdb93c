package forum

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum/forumtest"
)

const sol = solana.LAMPORTS_PER_SOL

var _ RPCClient = (*forumtest.Ledger)(nil)

var testFees = Fees{ProfileFee: 1_000_000, QuestionFee: 100_000, BountyMinimum: 5_000_000}

type testEnv struct {
	ledger *forumtest.Ledger
	client *Client
	wallet solana.PrivateKey
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	ledger := forumtest.NewLedger(solana.PublicKey{})
	wallet := newFundedKey(ledger)
	base := []Option{
		WithWallet(wallet),
		WithLogger(zaptest.NewLogger(t)),
		WithPollInterval(time.Millisecond),
		WithConfirmTimeout(5 * time.Second),
	}
	return &testEnv{
		ledger: ledger,
		client: NewClient(ledger, append(base, opts...)...),
		wallet: wallet,
	}
}

func newFundedKey(ledger *forumtest.Ledger) solana.PrivateKey {
	key := solana.NewWallet().PrivateKey
	ledger.Airdrop(key.PublicKey(), 100*sol)
	return key
}

// initForum creates a forum managed by a fresh funded keypair.
func (e *testEnv) initForum(t *testing.T, fees Fees) (solana.PublicKey, solana.PrivateKey) {
	t.Helper()
	manager := newFundedKey(e.ledger)
	res, err := e.client.InitForum(context.Background(), nil, KeypairAuthority(manager), fees)
	require.NoError(t, err)
	return res.Forum, manager
}

func (e *testEnv) createProfile(t *testing.T, forum solana.PublicKey) *CreateUserProfileResult {
	t.Helper()
	res, err := e.client.CreateUserProfile(context.Background(), forum, e.client.WalletAuthority())
	require.NoError(t, err)
	return res
}

func sampleQuestion() AskQuestionParams {
	return AskQuestionParams{
		Title:        "How are bump seeds chosen?",
		Content:      "Is it always the largest value that lands off the curve?",
		Tag:          TagDevelopment,
		BountyAmount: 5_000_000,
	}
}

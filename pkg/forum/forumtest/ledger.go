package forumtest

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

const (
	// LamportsPerSignature is the fee charged to the payer per transaction signature.
	LamportsPerSignature uint64 = 5000

	rentLamportsPerByteYear uint64 = 3480
	rentExemptionYears      uint64 = 2
	accountStorageOverhead  uint64 = 128

	startTimestamp int64 = 1_700_000_000
)

// RentExemptMinimum mirrors the cluster's default rent parameters.
func RentExemptMinimum(dataSize uint64) uint64 {
	return (accountStorageOverhead + dataSize) * rentLamportsPerByteYear * rentExemptionYears
}

// AccountState is a snapshot of one ledger account.
type AccountState struct {
	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte
}

func (a *AccountState) clone() *AccountState {
	return &AccountState{Lamports: a.Lamports, Owner: a.Owner, Data: bytes.Clone(a.Data)}
}

type state map[solana.PublicKey]*AccountState

func (s state) clone() state {
	out := make(state, len(s))
	for k, v := range s {
		out[k] = v.clone()
	}
	return out
}

type signatureRecord struct {
	slot   uint64
	status solanarpc.ConfirmationStatusType
	err    interface{}
}

// Ledger is an in-memory cluster running the forum program. It implements the
// RPC surface the forum client uses and executes each transaction atomically.
type Ledger struct {
	mu sync.Mutex

	programID  solana.PublicKey
	accounts   state
	blockhashs map[solana.Hash]bool
	signatures map[solana.Signature]*signatureRecord
	slot       uint64
	clock      int64
	sends      int
	failure    error
}

// NewLedger returns an empty ledger running the forum program at programID. A zero
// programID selects the default deployment.
func NewLedger(programID solana.PublicKey) *Ledger {
	if programID.IsZero() {
		programID = forum_program.ProgramID
	}
	return &Ledger{
		programID:  programID,
		accounts:   make(state),
		blockhashs: make(map[solana.Hash]bool),
		signatures: make(map[solana.Signature]*signatureRecord),
		slot:       1,
		clock:      startTimestamp,
	}
}

func (l *Ledger) ProgramID() solana.PublicKey { return l.programID }

// Airdrop credits lamports to a system account, creating it if needed.
func (l *Ledger) Airdrop(to solana.PublicKey, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[to]
	if !ok {
		acc = &AccountState{Owner: solana.SystemProgramID}
		l.accounts[to] = acc
	}
	acc.Lamports += lamports
}

// SetAccount stores raw account state, replacing what was there.
func (l *Ledger) SetAccount(address solana.PublicKey, acc AccountState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[address] = acc.clone()
}

// Balance returns an account's lamports, zero when it does not exist.
func (l *Ledger) Balance(address solana.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[address]; ok {
		return acc.Lamports
	}
	return 0
}

// Account returns a copy of an account's state.
func (l *Ledger) Account(address solana.PublicKey) (AccountState, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[address]
	if !ok {
		return AccountState{}, false
	}
	return *acc.clone(), true
}

// Snapshot copies every account, for before/after comparisons.
func (l *Ledger) Snapshot() map[solana.PublicKey]AccountState {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[solana.PublicKey]AccountState, len(l.accounts))
	for k, v := range l.accounts {
		out[k] = *v.clone()
	}
	return out
}

// SendCount reports how many transactions were submitted, successful or not.
func (l *Ledger) SendCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sends
}

// SetFailure makes every RPC call fail with err until cleared with nil.
func (l *Ledger) SetFailure(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failure = err
}

func (l *Ledger) context() solanarpc.RPCContext {
	return solanarpc.RPCContext{Context: solanarpc.Context{Slot: l.slot}}
}

func (l *Ledger) rpcAccount(acc *AccountState) *solanarpc.Account {
	return &solanarpc.Account{
		Lamports: acc.Lamports,
		Owner:    acc.Owner,
		Data:     solanarpc.DataBytesOrJSONFromBytes(bytes.Clone(acc.Data)),
	}
}

func (l *Ledger) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	acc, ok := l.accounts[account]
	if !ok {
		return nil, solanarpc.ErrNotFound
	}
	return &solanarpc.GetAccountInfoResult{RPCContext: l.context(), Value: l.rpcAccount(acc)}, nil
}

func (l *Ledger) GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	if len(accounts) > 100 {
		return nil, &jsonrpc.RPCError{Code: -32602, Message: "Too many inputs provided; max 100"}
	}
	out := &solanarpc.GetMultipleAccountsResult{RPCContext: l.context(), Value: make([]*solanarpc.Account, len(accounts))}
	for i, key := range accounts {
		if acc, ok := l.accounts[key]; ok {
			out.Value[i] = l.rpcAccount(acc)
		}
	}
	return out, nil
}

func (l *Ledger) GetProgramAccountsWithOpts(ctx context.Context, publicKey solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	var filters []solanarpc.RPCFilter
	var slice *solanarpc.DataSlice
	if opts != nil {
		filters = opts.Filters
		slice = opts.DataSlice
	}

	out := solanarpc.GetProgramAccountsResult{}
	for key, acc := range l.accounts {
		if !acc.Owner.Equals(publicKey) || !matches(acc.Data, filters) {
			continue
		}
		view := l.rpcAccount(acc)
		if slice != nil {
			view.Data = solanarpc.DataBytesOrJSONFromBytes(sliceData(acc.Data, slice))
		}
		out = append(out, &solanarpc.KeyedAccount{Pubkey: key, Account: view})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Pubkey[:], out[j].Pubkey[:]) < 0
	})
	return out, nil
}

func matches(data []byte, filters []solanarpc.RPCFilter) bool {
	for _, f := range filters {
		if f.DataSize != 0 && uint64(len(data)) != f.DataSize {
			return false
		}
		if f.Memcmp != nil {
			end := f.Memcmp.Offset + uint64(len(f.Memcmp.Bytes))
			if end > uint64(len(data)) || !bytes.Equal(data[f.Memcmp.Offset:end], f.Memcmp.Bytes) {
				return false
			}
		}
	}
	return true
}

func sliceData(data []byte, slice *solanarpc.DataSlice) []byte {
	var offset, length uint64
	if slice.Offset != nil {
		offset = *slice.Offset
	}
	length = uint64(len(data))
	if slice.Length != nil {
		length = *slice.Length
	}
	if offset >= uint64(len(data)) {
		return []byte{}
	}
	end := min(offset+length, uint64(len(data)))
	return bytes.Clone(data[offset:end])
}

func (l *Ledger) GetBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	out := &solanarpc.GetBalanceResult{RPCContext: l.context()}
	if acc, ok := l.accounts[account]; ok {
		out.Value = acc.Lamports
	}
	return out, nil
}

func (l *Ledger) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment solanarpc.CommitmentType) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return 0, l.failure
	}
	return RentExemptMinimum(dataSize), nil
}

func (l *Ledger) GetLatestBlockhash(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	l.slot++
	var hash solana.Hash
	binary.LittleEndian.PutUint64(hash[:8], l.slot)
	copy(hash[8:], l.programID[:24])
	l.blockhashs[hash] = true
	return &solanarpc.GetLatestBlockhashResult{
		RPCContext: l.context(),
		Value:      &solanarpc.LatestBlockhashResult{Blockhash: hash, LastValidBlockHeight: l.slot + 150},
	}, nil
}

// SendTransactionWithOpts verifies and executes a transaction. Program failures are
// returned as preflight errors, or recorded on the signature when preflight is skipped.
func (l *Ledger) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return solana.Signature{}, l.failure
	}
	l.sends++

	if err := tx.VerifySignatures(); err != nil {
		return solana.Signature{}, &jsonrpc.RPCError{Code: -32003, Message: fmt.Sprintf("Transaction signature verification failure: %v", err)}
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, &jsonrpc.RPCError{Code: -32003, Message: "Transaction has no signatures"}
	}
	sig := tx.Signatures[0]
	if _, dup := l.signatures[sig]; dup {
		return solana.Signature{}, simulationFailure("AlreadyProcessed", nil)
	}
	if !l.blockhashs[tx.Message.RecentBlockhash] {
		return solana.Signature{}, simulationFailure("BlockhashNotFound", nil)
	}

	payer := tx.Message.AccountKeys[0]
	fee := LamportsPerSignature * uint64(len(tx.Signatures))
	payerAcc, ok := l.accounts[payer]
	if !ok {
		return solana.Signature{}, simulationFailure("AccountNotFound", nil)
	}
	if payerAcc.Lamports < fee {
		return solana.Signature{}, simulationFailure("InsufficientFundsForFee", nil)
	}

	next := l.accounts.clone()
	next[payer].Lamports -= fee
	logs, index, ixErr := l.process(next, tx)
	if ixErr != nil {
		if !opts.SkipPreflight {
			return solana.Signature{}, ixErr.rpcError(index, logs)
		}
		payerAcc.Lamports -= fee
		l.signatures[sig] = &signatureRecord{slot: l.slot, status: solanarpc.ConfirmationStatusProcessed, err: ixErr.statusValue(index)}
		return sig, nil
	}
	l.accounts = next
	l.clock++
	l.signatures[sig] = &signatureRecord{slot: l.slot, status: solanarpc.ConfirmationStatusProcessed}
	return sig, nil
}

// GetSignatureStatuses advances every queried signature one commitment level per call.
func (l *Ledger) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return nil, l.failure
	}
	out := &solanarpc.GetSignatureStatusesResult{
		RPCContext: l.context(),
		Value:      make([]*solanarpc.SignatureStatusesResult, len(transactionSignatures)),
	}
	for i, sig := range transactionSignatures {
		rec, ok := l.signatures[sig]
		if !ok {
			continue
		}
		out.Value[i] = &solanarpc.SignatureStatusesResult{
			Slot:               rec.slot,
			Err:                rec.err,
			ConfirmationStatus: rec.status,
		}
		switch rec.status {
		case solanarpc.ConfirmationStatusProcessed:
			rec.status = solanarpc.ConfirmationStatusConfirmed
		case solanarpc.ConfirmationStatusConfirmed:
			rec.status = solanarpc.ConfirmationStatusFinalized
		}
	}
	return out, nil
}

// simulationFailure is a transaction-level preflight error.
func simulationFailure(name string, logs []string) *jsonrpc.RPCError {
	return &jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed: " + name,
		Data:    map[string]interface{}{"err": name, "logs": logs},
	}
}

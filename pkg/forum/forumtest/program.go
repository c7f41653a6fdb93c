package forumtest

import (
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// instructionError is the failure of one instruction, as the runtime reports it.
type instructionError struct {
	custom *uint32
	name   string
}

func customError(code uint32) *instructionError {
	return &instructionError{custom: &code}
}

func namedError(name string) *instructionError {
	return &instructionError{name: name}
}

func (e *instructionError) detail() interface{} {
	if e.custom != nil {
		return map[string]interface{}{"Custom": *e.custom}
	}
	return e.name
}

func (e *instructionError) String() string {
	if e.custom != nil {
		return fmt.Sprintf("custom program error: 0x%x", *e.custom)
	}
	return e.name
}

func (e *instructionError) statusValue(index int) interface{} {
	return map[string]interface{}{"InstructionError": []interface{}{index, e.detail()}}
}

func (e *instructionError) rpcError(index int, logs []string) *jsonrpc.RPCError {
	return &jsonrpc.RPCError{
		Code:    -32002,
		Message: fmt.Sprintf("Transaction simulation failed: Error processing Instruction %d: %s", index, e),
		Data:    map[string]interface{}{"err": e.statusValue(index), "logs": logs},
	}
}

// process runs every instruction of tx against next. It returns the program logs and,
// on failure, the failing instruction index.
func (l *Ledger) process(next state, tx *solana.Transaction) ([]string, int, *instructionError) {
	keys := tx.Message.AccountKeys
	signed := make(map[solana.PublicKey]bool)
	for i := 0; i < int(tx.Message.Header.NumRequiredSignatures) && i < len(keys); i++ {
		signed[keys[i]] = true
	}

	var logs []string
	for index, compiled := range tx.Message.Instructions {
		if int(compiled.ProgramIDIndex) >= len(keys) {
			return logs, index, namedError("InvalidAccountIndex")
		}
		program := keys[compiled.ProgramIDIndex]
		logs = append(logs, fmt.Sprintf("Program %s invoke [1]", program))
		if !program.Equals(l.programID) {
			return logs, index, namedError("IncorrectProgramId")
		}
		accounts := make([]solana.PublicKey, 0, len(compiled.Accounts))
		for _, idx := range compiled.Accounts {
			if int(idx) >= len(keys) {
				return logs, index, namedError("InvalidAccountIndex")
			}
			accounts = append(accounts, keys[idx])
		}

		decoded, err := forum_program.DecodeInstructionData(compiled.Data)
		if err != nil {
			logs = append(logs, "Program log: "+err.Error())
			return logs, index, customError(forum_program.AnchorErrorCode_InstructionDidNotDeserialize)
		}
		logs = append(logs, "Program log: Instruction: "+decoded.Name)

		x := &executor{ledger: l, state: next, signed: signed, now: l.clock}
		if ixErr := x.dispatch(decoded, accounts); ixErr != nil {
			logs = append(logs, fmt.Sprintf("Program %s failed: %s", program, ixErr))
			return logs, index, ixErr
		}
		logs = append(logs, fmt.Sprintf("Program %s success", program))
	}
	return logs, -1, nil
}

type executor struct {
	ledger *Ledger
	state  state
	signed map[solana.PublicKey]bool
	now    int64
}

func (x *executor) dispatch(decoded *forum_program.DecodedInstruction, keys []solana.PublicKey) *instructionError {
	load := func(accounts forum_program.Accounts) *instructionError {
		if err := forum_program.LoadAccounts(accounts, keys); err != nil {
			return namedError("NotEnoughAccountKeys")
		}
		for _, signer := range forum_program.SignerKeys(accounts) {
			if !x.signed[signer] {
				return customError(forum_program.AnchorErrorCode_AccountNotSigner)
			}
		}
		return nil
	}

	switch args := decoded.Args.(type) {
	case *forum_program.InitForumArgs:
		var a forum_program.InitForumAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.initForum(args, &a)
	case *forum_program.UpdateForumParamsArgs:
		var a forum_program.UpdateForumParamsAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.updateForumParams(args, &a)
	case *forum_program.PayoutFromTreasuryArgs:
		var a forum_program.TreasuryAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.payoutFromTreasury(args, &a)
	case *forum_program.CloseForumArgs:
		var a forum_program.TreasuryAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.closeForum(args, &a)
	case *forum_program.CreateUserProfileArgs:
		var a forum_program.CreateUserProfileAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.createUserProfile(args, &a)
	case *forum_program.UserProfileBumpArgs:
		if decoded.ID == forum_program.Instruction_EditUserProfile {
			var a forum_program.EditUserProfileAccounts
			if err := load(&a); err != nil {
				return err
			}
			return x.editUserProfile(args, &a)
		}
		var a forum_program.DeleteUserProfileAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.deleteUserProfile(args, &a)
	case *forum_program.AskQuestionArgs:
		var a forum_program.AskQuestionAccounts
		if err := load(&a); err != nil {
			return err
		}
		return x.askQuestion(args, &a)
	default:
		return customError(forum_program.AnchorErrorCode_InstructionFallbackNotFound)
	}
}

// checkSeeds verifies address is the canonical derivation of seeds, with the given bump
// when one was passed in.
func (x *executor) checkSeeds(address solana.PublicKey, bump *uint8, seeds ...[]byte) *instructionError {
	want, wantBump, err := solana.FindProgramAddress(seeds, x.ledger.programID)
	if err != nil || !want.Equals(address) {
		return customError(forum_program.AnchorErrorCode_ConstraintSeeds)
	}
	if bump != nil && *bump != wantBump {
		return customError(forum_program.AnchorErrorCode_ConstraintSeeds)
	}
	return nil
}

func (x *executor) programAccount(address solana.PublicKey) (*AccountState, *instructionError) {
	acc, ok := x.state[address]
	if !ok {
		return nil, customError(forum_program.AnchorErrorCode_AccountNotInitialized)
	}
	if !acc.Owner.Equals(x.ledger.programID) {
		return nil, customError(forum_program.AnchorErrorCode_AccountOwnedByWrongProgram)
	}
	return acc, nil
}

func (x *executor) loadForum(address solana.PublicKey) (*forum_program.Forum, *instructionError) {
	acc, ierr := x.programAccount(address)
	if ierr != nil {
		return nil, ierr
	}
	forum, err := forum_program.ParseAccount_Forum(acc.Data)
	if err != nil {
		return nil, customError(forum_program.AnchorErrorCode_AccountDidNotDeserialize)
	}
	if forum.Version != forum_program.FORUM_ACCOUNT_VERSION {
		return nil, customError(forum_program.ErrorCode_InvalidAccountVersion)
	}
	return forum, nil
}

func (x *executor) loadUserProfile(address solana.PublicKey) (*forum_program.UserProfile, *instructionError) {
	acc, ierr := x.programAccount(address)
	if ierr != nil {
		return nil, ierr
	}
	profile, err := forum_program.ParseAccount_UserProfile(acc.Data)
	if err != nil {
		return nil, customError(forum_program.AnchorErrorCode_AccountDidNotDeserialize)
	}
	return profile, nil
}

func (x *executor) store(address solana.PublicKey, obj ag_binary.BinaryMarshaler, size int) *instructionError {
	data, err := forum_program.MarshalAccount(obj, size)
	if err != nil {
		return customError(forum_program.AnchorErrorCode_AccountDidNotSerialize)
	}
	x.state[address].Data = data
	return nil
}

// createAccount allocates a program-owned account funded by payer, the way the system
// program does for an Anchor init constraint.
func (x *executor) createAccount(payer, address solana.PublicKey, size uint64) *instructionError {
	if existing, ok := x.state[address]; ok && (existing.Lamports > 0 || len(existing.Data) > 0) {
		return customError(forum_program.SystemErrorCode_AccountAlreadyInUse)
	}
	rent := RentExemptMinimum(size)
	if err := x.debit(payer, rent); err != nil {
		return err
	}
	x.state[address] = &AccountState{Lamports: rent, Owner: x.ledger.programID, Data: make([]byte, size)}
	return nil
}

func (x *executor) debit(from solana.PublicKey, lamports uint64) *instructionError {
	acc, ok := x.state[from]
	if !ok || acc.Lamports < lamports {
		return customError(forum_program.SystemErrorCode_InsufficientLamports)
	}
	acc.Lamports -= lamports
	return nil
}

func (x *executor) credit(to solana.PublicKey, lamports uint64) {
	acc, ok := x.state[to]
	if !ok {
		acc = &AccountState{Owner: solana.SystemProgramID}
		x.state[to] = acc
	}
	acc.Lamports += lamports
}

func (x *executor) transfer(from, to solana.PublicKey, lamports uint64) *instructionError {
	if err := x.debit(from, lamports); err != nil {
		return err
	}
	x.credit(to, lamports)
	return nil
}

// closeAccount moves every lamport of address to receiver and removes it.
func (x *executor) closeAccount(address, receiver solana.PublicKey) {
	acc := x.state[address]
	delete(x.state, address)
	x.credit(receiver, acc.Lamports)
}

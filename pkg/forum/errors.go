package forum

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

var (
	// ErrDerivationExhausted means no bump in [0, 255] produced an off-curve address.
	ErrDerivationExhausted = errors.New("derivation exhausted bump seeds")
	// ErrAccountNotFound means the address holds no account of the expected kind.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAuthorizationMismatch means the ledger rejected the signer as manager or owner.
	ErrAuthorizationMismatch = errors.New("authorization mismatch")
	// ErrPreconditionViolation means the ledger rejected the operation on its state.
	ErrPreconditionViolation = errors.New("precondition violation")
	// ErrTransport means the ledger could not be reached or gave no usable answer.
	ErrTransport = errors.New("transport failure")

	ErrMissingSigner = errors.New("missing signer")
	ErrNoWallet      = errors.New("no wallet configured")
	ErrInvalidTag    = errors.New("invalid tag")
	ErrInvalidParams = errors.New("invalid parameters")
)

// OpError carries the operation and address a failure concerns.
type OpError struct {
	Op      string
	Address solana.PublicKey
	Err     error
}

func (e *OpError) Error() string {
	if e.Address.IsZero() {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Address, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, address solana.PublicKey, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Address: address, Err: err}
}

// ProgramError is a transaction failure reported by the ledger. It unwraps to
// ErrAuthorizationMismatch, ErrPreconditionViolation or ErrTransport.
type ProgramError struct {
	// InstructionIndex is -1 for transaction-level failures.
	InstructionIndex int
	// Code is set for custom program errors.
	Code *uint32
	Name string
	Logs []string
	kind error
}

func (e *ProgramError) Error() string {
	var b strings.Builder
	b.WriteString(e.kind.Error())
	b.WriteString(": ")
	if e.InstructionIndex >= 0 {
		fmt.Fprintf(&b, "instruction %d: ", e.InstructionIndex)
	}
	b.WriteString(e.Name)
	if e.Code != nil {
		fmt.Fprintf(&b, " (code %d)", *e.Code)
	}
	return b.String()
}

func (e *ProgramError) Unwrap() error { return e.kind }

var authorizationCodes = map[uint32]string{
	forum_program.AnchorErrorCode_ConstraintHasOne:   "ConstraintHasOne",
	forum_program.AnchorErrorCode_ConstraintSigner:   "ConstraintSigner",
	forum_program.AnchorErrorCode_ConstraintRaw:      "ConstraintRaw",
	forum_program.AnchorErrorCode_ConstraintOwner:    "ConstraintOwner",
	forum_program.AnchorErrorCode_ConstraintSeeds:    "ConstraintSeeds",
	forum_program.AnchorErrorCode_ConstraintAddress:  "ConstraintAddress",
	forum_program.AnchorErrorCode_AccountNotSigner:   "AccountNotSigner",
	forum_program.ErrorCode_UnauthorizedManager:      "UnauthorizedManager",
	forum_program.ErrorCode_UnauthorizedProfileOwner: "UnauthorizedProfileOwner",
}

var preconditionCodes = map[uint32]string{
	forum_program.SystemErrorCode_AccountAlreadyInUse:          "AccountAlreadyInUse",
	forum_program.SystemErrorCode_InsufficientLamports:         "InsufficientLamports",
	forum_program.AnchorErrorCode_InstructionFallbackNotFound:  "InstructionFallbackNotFound",
	forum_program.AnchorErrorCode_InstructionDidNotDeserialize: "InstructionDidNotDeserialize",
	forum_program.AnchorErrorCode_ConstraintMut:                "ConstraintMut",
	forum_program.AnchorErrorCode_AccountDidNotDeserialize:     "AccountDidNotDeserialize",
	forum_program.AnchorErrorCode_AccountDidNotSerialize:       "AccountDidNotSerialize",
	forum_program.AnchorErrorCode_AccountOwnedByWrongProgram:   "AccountOwnedByWrongProgram",
	forum_program.AnchorErrorCode_AccountNotInitialized:        "AccountNotInitialized",
}

// Transaction errors worth retrying under a caller policy.
var transientTransactionErrors = map[string]bool{
	"BlockhashNotFound":              true,
	"WouldExceedMaxBlockCostLimit":   true,
	"WouldExceedMaxAccountCostLimit": true,
	"ClusterMaintenance":             true,
}

func classifyCode(code uint32) (string, error) {
	if name, ok := authorizationCodes[code]; ok {
		return name, ErrAuthorizationMismatch
	}
	if name, ok := preconditionCodes[code]; ok {
		return name, ErrPreconditionViolation
	}
	if custom, ok := forum_program.Errors[code]; ok {
		return custom.Name, ErrPreconditionViolation
	}
	return "Custom", ErrPreconditionViolation
}

// parseTransactionError decodes the JSON form of a Solana TransactionError, e.g.
// "BlockhashNotFound" or {"InstructionError":[0,{"Custom":6003}]}.
func parseTransactionError(raw json.RawMessage, logs []string) *ProgramError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		kind := ErrPreconditionViolation
		if transientTransactionErrors[name] {
			kind = ErrTransport
		}
		return &ProgramError{InstructionIndex: -1, Name: name, Logs: logs, kind: kind}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return &ProgramError{InstructionIndex: -1, Name: string(raw), Logs: logs, kind: ErrPreconditionViolation}
	}
	ixRaw, ok := obj["InstructionError"]
	if !ok {
		for k := range obj {
			name = k
		}
		return &ProgramError{InstructionIndex: -1, Name: name, Logs: logs, kind: ErrPreconditionViolation}
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(ixRaw, &pair); err != nil || len(pair) != 2 {
		return &ProgramError{InstructionIndex: -1, Name: string(ixRaw), Logs: logs, kind: ErrPreconditionViolation}
	}
	perr := &ProgramError{Logs: logs}
	if err := json.Unmarshal(pair[0], &perr.InstructionIndex); err != nil {
		perr.InstructionIndex = -1
	}

	var detail string
	if err := json.Unmarshal(pair[1], &detail); err == nil {
		perr.Name = detail
		perr.kind = ErrPreconditionViolation
		if detail == "MissingRequiredSignature" {
			perr.kind = ErrAuthorizationMismatch
		}
		return perr
	}
	var custom struct {
		Custom *uint32 `json:"Custom"`
	}
	if err := json.Unmarshal(pair[1], &custom); err == nil && custom.Custom != nil {
		perr.Code = custom.Custom
		perr.Name, perr.kind = classifyCode(*custom.Custom)
		return perr
	}
	perr.Name = string(pair[1])
	perr.kind = ErrPreconditionViolation
	return perr
}

// classifyRemote maps an RPC failure onto the error taxonomy. Errors the ledger
// returned about the transaction itself become *ProgramError; everything else is
// a transport failure.
func classifyRemote(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Data != nil {
			raw, merr := json.Marshal(rpcErr.Data)
			if merr == nil {
				var data struct {
					Err  json.RawMessage `json:"err"`
					Logs []string        `json:"logs"`
				}
				if json.Unmarshal(raw, &data) == nil {
					if perr := parseTransactionError(data.Err, data.Logs); perr != nil {
						return perr
					}
				}
			}
		}
		return fmt.Errorf("%w: rpc error %d: %s", ErrTransport, rpcErr.Code, rpcErr.Message)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// statusError converts the err field of a signature status.
func statusError(errValue interface{}) error {
	raw, err := json.Marshal(errValue)
	if err != nil {
		return fmt.Errorf("%w: undecodable transaction error %v", ErrPreconditionViolation, errValue)
	}
	if perr := parseTransactionError(raw, nil); perr != nil {
		return perr
	}
	return nil
}

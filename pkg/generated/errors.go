package forum_program

import "fmt"

// Custom error codes of the forum program (Anchor offsets custom codes at 6000).
const (
	ErrorCode_InvalidAccountVersion       uint32 = 6000
	ErrorCode_UnauthorizedManager         uint32 = 6001
	ErrorCode_UnauthorizedProfileOwner    uint32 = 6002
	ErrorCode_BountyBelowMinimum          uint32 = 6003
	ErrorCode_InsufficientTreasuryBalance uint32 = 6004
	ErrorCode_TitleTooLong                uint32 = 6005
	ErrorCode_ContentTooLong              uint32 = 6006
)

type CustomError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s(%d): %s", e.Name, e.Code, e.Msg)
}

var Errors = map[uint32]*CustomError{
	ErrorCode_InvalidAccountVersion:       {ErrorCode_InvalidAccountVersion, "InvalidAccountVersion", "Account version does not match the program"},
	ErrorCode_UnauthorizedManager:         {ErrorCode_UnauthorizedManager, "UnauthorizedManager", "Signer is not the forum manager"},
	ErrorCode_UnauthorizedProfileOwner:    {ErrorCode_UnauthorizedProfileOwner, "UnauthorizedProfileOwner", "Signer is not the user profile owner"},
	ErrorCode_BountyBelowMinimum:          {ErrorCode_BountyBelowMinimum, "BountyBelowMinimum", "Bounty amount is below the forum minimum"},
	ErrorCode_InsufficientTreasuryBalance: {ErrorCode_InsufficientTreasuryBalance, "InsufficientTreasuryBalance", "Treasury balance is at or below the retained minimum"},
	ErrorCode_TitleTooLong:                {ErrorCode_TitleTooLong, "TitleTooLong", "Question title exceeds the maximum length"},
	ErrorCode_ContentTooLong:              {ErrorCode_ContentTooLong, "ContentTooLong", "Question content exceeds the maximum length"},
}

// Anchor framework error codes the client distinguishes.
const (
	AnchorErrorCode_InstructionFallbackNotFound  uint32 = 101
	AnchorErrorCode_InstructionDidNotDeserialize uint32 = 102
	AnchorErrorCode_ConstraintMut                uint32 = 2000
	AnchorErrorCode_ConstraintHasOne             uint32 = 2001
	AnchorErrorCode_ConstraintSigner             uint32 = 2002
	AnchorErrorCode_ConstraintRaw                uint32 = 2003
	AnchorErrorCode_ConstraintOwner              uint32 = 2004
	AnchorErrorCode_ConstraintSeeds              uint32 = 2006
	AnchorErrorCode_ConstraintAddress            uint32 = 2012
	AnchorErrorCode_AccountDidNotDeserialize     uint32 = 3003
	AnchorErrorCode_AccountDidNotSerialize       uint32 = 3004
	AnchorErrorCode_AccountOwnedByWrongProgram   uint32 = 3007
	AnchorErrorCode_AccountNotSigner             uint32 = 3010
	AnchorErrorCode_AccountNotInitialized        uint32 = 3012
)

// System program custom codes surfaced through CPI.
const (
	// creating an account whose address is already in use
	SystemErrorCode_AccountAlreadyInUse uint32 = 0
	// transferring more lamports than the source holds
	SystemErrorCode_InsufficientLamports uint32 = 1
)

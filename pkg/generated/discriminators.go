package forum_program

// Account discriminators: sha256("account:<Name>")[:8].
var (
	Account_Forum       = [8]byte{74, 10, 148, 158, 72, 60, 244, 226}
	Account_UserProfile = [8]byte{32, 37, 119, 205, 179, 180, 13, 194}
	Account_Question    = [8]byte{111, 22, 150, 220, 181, 122, 118, 127}
)

// Instruction discriminators: sha256("global:<snake_name>")[:8].
var (
	Instruction_InitForum          = [8]byte{231, 108, 205, 253, 16, 171, 12, 74}
	Instruction_UpdateForumParams  = [8]byte{106, 186, 44, 112, 36, 205, 72, 78}
	Instruction_PayoutFromTreasury = [8]byte{68, 185, 27, 161, 249, 27, 147, 156}
	Instruction_CloseForum         = [8]byte{237, 75, 100, 170, 102, 209, 52, 237}
	Instruction_CreateUserProfile  = [8]byte{9, 214, 142, 184, 153, 65, 50, 174}
	Instruction_EditUserProfile    = [8]byte{253, 8, 161, 147, 64, 21, 60, 145}
	Instruction_DeleteUserProfile  = [8]byte{24, 82, 133, 212, 73, 243, 46, 137}
	Instruction_AskQuestion        = [8]byte{8, 51, 234, 216, 62, 8, 181, 243}
)

// InstructionIDToName returns the IDL name of an instruction discriminator.
func InstructionIDToName(id [8]byte) string {
	switch id {
	case Instruction_InitForum:
		return "InitForum"
	case Instruction_UpdateForumParams:
		return "UpdateForumParams"
	case Instruction_PayoutFromTreasury:
		return "PayoutFromTreasury"
	case Instruction_CloseForum:
		return "CloseForum"
	case Instruction_CreateUserProfile:
		return "CreateUserProfile"
	case Instruction_EditUserProfile:
		return "EditUserProfile"
	case Instruction_DeleteUserProfile:
		return "DeleteUserProfile"
	case Instruction_AskQuestion:
		return "AskQuestion"
	default:
		return ""
	}
}

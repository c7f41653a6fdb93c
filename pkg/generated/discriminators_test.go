package forum_program

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func anchorDiscriminator(preimage string) [8]byte {
	sum := sha256.Sum256([]byte(preimage))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

func TestAccountDiscriminators(t *testing.T) {
	require.Equal(t, anchorDiscriminator("account:Forum"), Account_Forum)
	require.Equal(t, anchorDiscriminator("account:UserProfile"), Account_UserProfile)
	require.Equal(t, anchorDiscriminator("account:Question"), Account_Question)
}

func TestInstructionDiscriminators(t *testing.T) {
	cases := map[string][8]byte{
		"init_forum":           Instruction_InitForum,
		"update_forum_params":  Instruction_UpdateForumParams,
		"payout_from_treasury": Instruction_PayoutFromTreasury,
		"close_forum":          Instruction_CloseForum,
		"create_user_profile":  Instruction_CreateUserProfile,
		"edit_user_profile":    Instruction_EditUserProfile,
		"delete_user_profile":  Instruction_DeleteUserProfile,
		"ask_question":         Instruction_AskQuestion,
	}
	for name, id := range cases {
		require.Equal(t, anchorDiscriminator("global:"+name), id, name)
		require.NotEmpty(t, InstructionIDToName(id), name)
	}
}

package forum

import (
	"github.com/gagliardetto/solana-go"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// ProgramIDFor returns the forum program ID on a network. The program is deployed at
// the same address on every cluster, unknown names included.
func ProgramIDFor(network Network) solana.PublicKey {
	return forum_program.ProgramID
}

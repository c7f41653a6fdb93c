// Code generated from the forum program IDL. Layout changes must be made in lockstep with the program.

package forum_program

import ag_solanago "github.com/gagliardetto/solana-go"

// ProgramID is the address the forum program is deployed at.
var ProgramID ag_solanago.PublicKey = ag_solanago.MustPublicKeyFromBase58("5TAQrmW8wVPm1gu57b3VwAhKp343dFAjStfLHwXxehvC")

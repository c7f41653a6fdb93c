package forum

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

// SeedTuple is the ordered seed material of a derived address. The order is part of
// the program's wire contract.
type SeedTuple [][]byte

// PDA is a program derived address together with the bump seed that produced it.
type PDA struct {
	Address solana.PublicKey `json:"address"`
	Bump    uint8            `json:"bump"`
}

// Derive searches bumps from 255 down for the first off-curve address.
func Derive(programID solana.PublicKey, seeds SeedTuple) (PDA, error) {
	// the bump occupies the last seed slot
	if len(seeds) >= maxSeeds {
		return PDA{}, fmt.Errorf("%w: %d seeds, max %d", ErrInvalidParams, len(seeds), maxSeeds-1)
	}
	for i, seed := range seeds {
		if len(seed) > maxSeedLength {
			return PDA{}, fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidParams, i, len(seed), maxSeedLength)
		}
	}
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return PDA{}, fmt.Errorf("%w: %v", ErrDerivationExhausted, err)
	}
	return PDA{Address: addr, Bump: bump}, nil
}

// ForumAuthoritySeeds are the seeds of a forum's program signer: the forum key alone.
func ForumAuthoritySeeds(forum solana.PublicKey) SeedTuple {
	return SeedTuple{forum.Bytes()}
}

// ForumTreasurySeeds are the seeds of a forum's treasury.
func ForumTreasurySeeds(forum solana.PublicKey) SeedTuple {
	return SeedTuple{[]byte(forum_program.SEED_TREASURY), forum.Bytes()}
}

// UserProfileSeeds are the seeds of an owner's profile.
func UserProfileSeeds(profileOwner solana.PublicKey) SeedTuple {
	return SeedTuple{[]byte(forum_program.SEED_USER_PROFILE), profileOwner.Bytes()}
}

// QuestionSeeds are the seeds of a question, unique per seed identity.
func QuestionSeeds(forum, userProfile, questionSeed solana.PublicKey) SeedTuple {
	return SeedTuple{[]byte(forum_program.SEED_QUESTION), forum.Bytes(), userProfile.Bytes(), questionSeed.Bytes()}
}

// FindForumAuthorityPDA derives the program signer of a forum.
func FindForumAuthorityPDA(programID, forum solana.PublicKey) (PDA, error) {
	return Derive(programID, ForumAuthoritySeeds(forum))
}

// FindForumTreasuryPDA derives the fee-collecting treasury of a forum.
func FindForumTreasuryPDA(programID, forum solana.PublicKey) (PDA, error) {
	return Derive(programID, ForumTreasurySeeds(forum))
}

// FindUserProfilePDA derives the single profile an owner can hold.
func FindUserProfilePDA(programID, profileOwner solana.PublicKey) (PDA, error) {
	return Derive(programID, UserProfileSeeds(profileOwner))
}

// FindQuestionPDA derives a question posted from userProfile on forum.
func FindQuestionPDA(programID, forum, userProfile, questionSeed solana.PublicKey) (PDA, error) {
	return Derive(programID, QuestionSeeds(forum, userProfile, questionSeed))
}

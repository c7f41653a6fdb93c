package forum_program

// PDA seed prefixes.
const (
	SEED_TREASURY     = "treasury"
	SEED_USER_PROFILE = "user_profile"
	SEED_QUESTION     = "question"
)

// Serialized sizes, discriminator included.
const (
	DISCRIMINATOR_SIZE = 8

	MAX_TITLE_LENGTH   = 128
	MAX_CONTENT_LENGTH = 2048

	FORUM_ACCOUNT_SIZE        = DISCRIMINATOR_SIZE + 2 + 32 + 32 + 32 + 1 + 8*5
	USER_PROFILE_ACCOUNT_SIZE = DISCRIMINATOR_SIZE + 32 + 8 + 8 + 1 + 32
	QUESTION_ACCOUNT_SIZE     = DISCRIMINATOR_SIZE + 32 + 32 + 32 + 8 + 8 + 1 + 1 + 4 + MAX_TITLE_LENGTH + 4 + MAX_CONTENT_LENGTH

	// Treasuries are zero-data system accounts kept alive by the program.
	TREASURY_RENT_BYTES = 16
)

// Byte offsets of the memcmp-filterable owner fields.
const (
	// discriminator + version u16
	FORUM_MANAGER_OFFSET = DISCRIMINATOR_SIZE + 2
	// discriminator
	USER_PROFILE_OWNER_OFFSET = DISCRIMINATOR_SIZE
	// discriminator
	QUESTION_USER_PROFILE_OFFSET = DISCRIMINATOR_SIZE
)

const FORUM_ACCOUNT_VERSION uint16 = 1

package forum_program

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestForumLayout(t *testing.T) {
	manager := solana.NewWallet().PublicKey()
	forum := Forum{
		Version:                FORUM_ACCOUNT_VERSION,
		ForumManager:           manager,
		ForumAuthority:         solana.NewWallet().PublicKey(),
		ForumAuthoritySeed:     solana.NewWallet().PublicKey(),
		ForumAuthorityBumpSeed: [1]uint8{254},
		ForumFees:              ForumFees{ForumProfileFee: 1, ForumQuestionFee: 2, ForumBountyMinimum: 3},
		ForumCounts:            ForumCounts{ForumProfileCount: 4, ForumQuestionCount: 5},
	}
	data, err := MarshalAccount(forum, FORUM_ACCOUNT_SIZE)
	require.NoError(t, err)
	require.Len(t, data, FORUM_ACCOUNT_SIZE)
	require.Equal(t, Account_Forum[:], data[:DISCRIMINATOR_SIZE])
	require.Equal(t, manager.Bytes(), data[FORUM_MANAGER_OFFSET:FORUM_MANAGER_OFFSET+32])

	got, err := ParseAccount_Forum(data)
	require.NoError(t, err)
	if diff := cmp.Diff(&forum, got); diff != "" {
		t.Fatalf("forum mismatch (-want +got):\n%s", diff)
	}
}

func TestUserProfileLayout(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	for name, profile := range map[string]UserProfile{
		"without mint": {ProfileOwner: owner, ProfileCreatedTs: 1_700_000_000, QuestionsAsked: 2},
		"with mint":    {ProfileOwner: owner, ProfileCreatedTs: 1_700_000_000, QuestionsAsked: 2, NftPfpTokenMint: &mint},
	} {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalAccount(profile, USER_PROFILE_ACCOUNT_SIZE)
			require.NoError(t, err)
			require.Equal(t, owner.Bytes(), data[USER_PROFILE_OWNER_OFFSET:USER_PROFILE_OWNER_OFFSET+32])

			got, err := ParseAccount_UserProfile(data)
			require.NoError(t, err)
			if diff := cmp.Diff(&profile, got); diff != "" {
				t.Fatalf("profile mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuestionLayout(t *testing.T) {
	profile := solana.NewWallet().PublicKey()
	question := Question{
		UserProfile:      profile,
		Forum:            solana.NewWallet().PublicKey(),
		QuestionSeed:     solana.NewWallet().PublicKey(),
		QuestionPostedTs: 1_700_000_001,
		BountyAmount:     150_000_000,
		Tags:             TagsDevelopment,
		Title:            "How do PDAs work?",
		Content:          "Asking for a friend.",
	}
	data, err := MarshalAccount(question, QUESTION_ACCOUNT_SIZE)
	require.NoError(t, err)
	require.Equal(t, profile.Bytes(), data[QUESTION_USER_PROFILE_OFFSET:QUESTION_USER_PROFILE_OFFSET+32])

	got, err := ParseAccount_Question(data)
	require.NoError(t, err)
	if diff := cmp.Diff(&question, got); diff != "" {
		t.Fatalf("question mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionAccountSizeHoldsMaximumContent(t *testing.T) {
	question := Question{
		Title:   string(bytes.Repeat([]byte("t"), MAX_TITLE_LENGTH)),
		Content: string(bytes.Repeat([]byte("c"), MAX_CONTENT_LENGTH)),
	}
	_, err := MarshalAccount(question, QUESTION_ACCOUNT_SIZE)
	require.NoError(t, err)

	question.Content += "c"
	_, err = MarshalAccount(question, QUESTION_ACCOUNT_SIZE)
	require.Error(t, err)
}

func TestParseRejectsWrongDiscriminator(t *testing.T) {
	data, err := MarshalAccount(UserProfile{ProfileOwner: solana.NewWallet().PublicKey()}, USER_PROFILE_ACCOUNT_SIZE)
	require.NoError(t, err)

	_, err = ParseAccount_Forum(data)
	require.ErrorContains(t, err, "wrong discriminator")
	_, err = ParseAccount_Question(data)
	require.ErrorContains(t, err, "wrong discriminator")
}

func TestTagsRejectUnknownVariant(t *testing.T) {
	data, err := MarshalAccount(Question{Tags: TagsTrading, Title: "t"}, QUESTION_ACCOUNT_SIZE)
	require.NoError(t, err)

	// tag byte follows the three keys, the timestamp, the bounty and the awarded flag
	tagOffset := DISCRIMINATOR_SIZE + 32*3 + 8 + 8 + 1
	require.Equal(t, byte(TagsTrading), data[tagOffset])
	data[tagOffset] = byte(TagsCount)

	_, err = ParseAccount_Question(data)
	require.ErrorContains(t, err, "invalid Tags variant")

	_, err = MarshalAccount(Question{Tags: Tags(TagsCount)}, QUESTION_ACCOUNT_SIZE)
	require.Error(t, err)
}

func TestTagsText(t *testing.T) {
	for i := 0; i < TagsCount; i++ {
		tag := Tags(i)
		text, err := tag.MarshalText()
		require.NoError(t, err)

		var back Tags
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, tag, back)
	}
	var tag Tags
	require.Error(t, tag.UnmarshalText([]byte("Cooking")))
}

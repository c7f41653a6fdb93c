package forum

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	forum_program "github.com/SolCharms/DeEdIT-SDK/pkg/generated"
)

// Tag is the closed set of question topics.
type Tag = forum_program.Tags

const (
	TagDAOsAndGovernance      = forum_program.TagsDAOsAndGovernance
	TagDataAndAnalytics       = forum_program.TagsDataAndAnalytics
	TagDeFi                   = forum_program.TagsDeFi
	TagDevelopment            = forum_program.TagsDevelopment
	TagGaming                 = forum_program.TagsGaming
	TagMobile                 = forum_program.TagsMobile
	TagNFTs                   = forum_program.TagsNFTs
	TagPayments               = forum_program.TagsPayments
	TagResearch               = forum_program.TagsResearch
	TagToolsAndInfrastructure = forum_program.TagsToolsAndInfrastructure
	TagTrading                = forum_program.TagsTrading
)

// AllTags lists every topic in encoding order.
func AllTags() []Tag {
	out := make([]Tag, 0, forum_program.TagsCount)
	for i := 0; i < forum_program.TagsCount; i++ {
		out = append(out, Tag(i))
	}
	return out
}

// ParseTag accepts a topic name case-insensitively ("Development", "defi").
func ParseTag(name string) (Tag, error) {
	for _, t := range AllTags() {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTag, name)
}

// Fees are a forum's lamport-denominated parameters.
type Fees struct {
	ProfileFee    uint64 `json:"forumProfileFee"`
	QuestionFee   uint64 `json:"forumQuestionFee"`
	BountyMinimum uint64 `json:"forumBountyMinimum"`
}

// DefaultFees returns the fee parameters forums are usually created with.
func DefaultFees() Fees {
	return Fees{
		ProfileFee:    DefaultForumProfileFee,
		QuestionFee:   DefaultForumQuestionFee,
		BountyMinimum: DefaultForumBountyMinimum,
	}
}

func (f Fees) toProgram() forum_program.ForumFees {
	return forum_program.ForumFees{
		ForumProfileFee:    f.ProfileFee,
		ForumQuestionFee:   f.QuestionFee,
		ForumBountyMinimum: f.BountyMinimum,
	}
}

// AskQuestionParams is the content of a question to ask.
type AskQuestionParams struct {
	Title        string
	Content      string
	Tag          Tag
	BountyAmount uint64
	// QuestionSeed pins the seed identity; nil generates a fresh one.
	QuestionSeed *solana.PublicKey
}

func (q AskQuestionParams) validate() error {
	if !q.Tag.IsValid() {
		return fmt.Errorf("%w: variant %d", ErrInvalidTag, uint8(q.Tag))
	}
	if q.Title == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidParams)
	}
	if len(q.Title) > forum_program.MAX_TITLE_LENGTH {
		return fmt.Errorf("%w: title is %d bytes, max %d", ErrInvalidParams, len(q.Title), forum_program.MAX_TITLE_LENGTH)
	}
	if len(q.Content) > forum_program.MAX_CONTENT_LENGTH {
		return fmt.Errorf("%w: content is %d bytes, max %d", ErrInvalidParams, len(q.Content), forum_program.MAX_CONTENT_LENGTH)
	}
	return nil
}

// Forum is a decoded forum account.
type Forum struct {
	Address solana.PublicKey     `json:"publicKey"`
	Account *forum_program.Forum `json:"account"`
}

// Fees returns the forum's configured fee parameters.
func (f *Forum) Fees() Fees {
	return Fees{
		ProfileFee:    f.Account.ForumFees.ForumProfileFee,
		QuestionFee:   f.Account.ForumFees.ForumQuestionFee,
		BountyMinimum: f.Account.ForumFees.ForumBountyMinimum,
	}
}

// UserProfile is a decoded user profile account.
type UserProfile struct {
	Address solana.PublicKey           `json:"publicKey"`
	Account *forum_program.UserProfile `json:"account"`
}

// Question is a decoded question account.
type Question struct {
	Address solana.PublicKey        `json:"publicKey"`
	Account *forum_program.Question `json:"account"`
}

// Results of the mutating operations. Every derived address is returned so the
// caller never needs to re-derive anything.

type InitForumResult struct {
	Forum          solana.PublicKey `json:"forum"`
	ForumAuthority PDA              `json:"forumAuthority"`
	ForumTreasury  PDA              `json:"forumTreasury"`
	Receipt
}

type UpdateForumParamsResult struct {
	Forum solana.PublicKey `json:"forum"`
	Receipt
}

type PayoutFromTreasuryResult struct {
	ForumTreasury                  PDA    `json:"forumTreasury"`
	MinimumBalanceForRentExemption uint64 `json:"minimumBalanceForRentExemption"`
	Receipt
}

type CloseForumResult struct {
	ForumTreasury PDA `json:"forumTreasury"`
	Receipt
}

type CreateUserProfileResult struct {
	ForumAuthority PDA `json:"forumAuthority"`
	ForumTreasury  PDA `json:"forumTreasury"`
	UserProfile    PDA `json:"userProfile"`
	Receipt
}

type EditUserProfileResult struct {
	UserProfile PDA `json:"userProfile"`
	Receipt
}

type DeleteUserProfileResult struct {
	UserProfile PDA `json:"userProfile"`
	Receipt
}

type AskQuestionResult struct {
	ForumTreasury PDA              `json:"forumTreasury"`
	UserProfile   PDA              `json:"userProfile"`
	Question      PDA              `json:"question"`
	QuestionSeed  solana.PublicKey `json:"questionSeed"`
	Receipt
}

package forum_program

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type accountSpec struct {
	name     string
	key      *ag_solanago.PublicKey
	writable bool
	signer   bool
}

// Accounts is implemented by the per-instruction account structs. Field order is the
// order the program expects.
type Accounts interface {
	specs() []accountSpec
}

// AccountMetas returns the ordered account metas for an instruction.
func AccountMetas(accounts Accounts) ag_solanago.AccountMetaSlice {
	specs := accounts.specs()
	metas := make(ag_solanago.AccountMetaSlice, 0, len(specs))
	for _, s := range specs {
		metas = append(metas, &ag_solanago.AccountMeta{PublicKey: *s.key, IsWritable: s.writable, IsSigner: s.signer})
	}
	return metas
}

// LoadAccounts fills an account struct from an instruction's resolved keys.
func LoadAccounts(accounts Accounts, keys []ag_solanago.PublicKey) error {
	specs := accounts.specs()
	if len(keys) < len(specs) {
		return fmt.Errorf("not enough accounts: want %d, got %d", len(specs), len(keys))
	}
	for i, s := range specs {
		*s.key = keys[i]
	}
	return nil
}

// fixedAccounts are the program and sysvar accounts with a well-known address. The
// system program's address is the all-zero key, so they are checked by value.
var fixedAccounts = map[string]ag_solanago.PublicKey{
	"systemProgram": ag_solanago.SystemProgramID,
	"rent":          ag_solanago.SysVarRentPubkey,
}

func validateAccounts(accounts Accounts) error {
	for _, s := range accounts.specs() {
		if want, ok := fixedAccounts[s.name]; ok {
			if !s.key.Equals(want) {
				return fmt.Errorf("accounts.%s must be %s, got %s", s.name, want, *s.key)
			}
			continue
		}
		if s.key.IsZero() {
			return fmt.Errorf("accounts.%s is not set", s.name)
		}
	}
	return nil
}

// SignerKeys returns the accounts of an instruction that must sign the transaction.
func SignerKeys(accounts Accounts) []ag_solanago.PublicKey {
	var out []ag_solanago.PublicKey
	for _, s := range accounts.specs() {
		if s.signer {
			out = append(out, *s.key)
		}
	}
	return out
}

type InitForumAccounts struct {
	Forum          ag_solanago.PublicKey
	ForumManager   ag_solanago.PublicKey
	ForumAuthority ag_solanago.PublicKey
	ForumTreasury  ag_solanago.PublicKey
	Rent           ag_solanago.PublicKey
	SystemProgram  ag_solanago.PublicKey
}

func (a *InitForumAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, true},
		{"forumManager", &a.ForumManager, true, true},
		{"forumAuthority", &a.ForumAuthority, false, false},
		{"forumTreasury", &a.ForumTreasury, true, false},
		{"rent", &a.Rent, false, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

type UpdateForumParamsAccounts struct {
	Forum         ag_solanago.PublicKey
	ForumManager  ag_solanago.PublicKey
	SystemProgram ag_solanago.PublicKey
}

func (a *UpdateForumParamsAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, false},
		{"forumManager", &a.ForumManager, true, true},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

// TreasuryAccounts is shared by PayoutFromTreasury and CloseForum.
type TreasuryAccounts struct {
	Forum         ag_solanago.PublicKey
	ForumManager  ag_solanago.PublicKey
	ForumTreasury ag_solanago.PublicKey
	Receiver      ag_solanago.PublicKey
	SystemProgram ag_solanago.PublicKey
}

func (a *TreasuryAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, false},
		{"forumManager", &a.ForumManager, true, true},
		{"forumTreasury", &a.ForumTreasury, true, false},
		{"receiver", &a.Receiver, true, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

type CreateUserProfileAccounts struct {
	Forum          ag_solanago.PublicKey
	ForumAuthority ag_solanago.PublicKey
	ForumTreasury  ag_solanago.PublicKey
	ProfileOwner   ag_solanago.PublicKey
	UserProfile    ag_solanago.PublicKey
	SystemProgram  ag_solanago.PublicKey
}

func (a *CreateUserProfileAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, false},
		{"forumAuthority", &a.ForumAuthority, false, false},
		{"forumTreasury", &a.ForumTreasury, true, false},
		{"profileOwner", &a.ProfileOwner, true, true},
		{"userProfile", &a.UserProfile, true, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

type EditUserProfileAccounts struct {
	ProfileOwner    ag_solanago.PublicKey
	UserProfile     ag_solanago.PublicKey
	NftPfpTokenMint ag_solanago.PublicKey
	SystemProgram   ag_solanago.PublicKey
}

func (a *EditUserProfileAccounts) specs() []accountSpec {
	return []accountSpec{
		{"profileOwner", &a.ProfileOwner, true, true},
		{"userProfile", &a.UserProfile, true, false},
		{"nftPfpTokenMint", &a.NftPfpTokenMint, false, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

type DeleteUserProfileAccounts struct {
	Forum         ag_solanago.PublicKey
	ProfileOwner  ag_solanago.PublicKey
	UserProfile   ag_solanago.PublicKey
	Receiver      ag_solanago.PublicKey
	SystemProgram ag_solanago.PublicKey
}

func (a *DeleteUserProfileAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, false},
		{"profileOwner", &a.ProfileOwner, true, true},
		{"userProfile", &a.UserProfile, true, false},
		{"receiver", &a.Receiver, true, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

type AskQuestionAccounts struct {
	Forum         ag_solanago.PublicKey
	ForumTreasury ag_solanago.PublicKey
	ProfileOwner  ag_solanago.PublicKey
	UserProfile   ag_solanago.PublicKey
	Question      ag_solanago.PublicKey
	QuestionSeed  ag_solanago.PublicKey
	SystemProgram ag_solanago.PublicKey
}

func (a *AskQuestionAccounts) specs() []accountSpec {
	return []accountSpec{
		{"forum", &a.Forum, true, false},
		{"forumTreasury", &a.ForumTreasury, true, false},
		{"profileOwner", &a.ProfileOwner, true, true},
		{"userProfile", &a.UserProfile, true, false},
		{"question", &a.Question, true, false},
		{"questionSeed", &a.QuestionSeed, false, false},
		{"systemProgram", &a.SystemProgram, false, false},
	}
}

// Instruction arguments, in IDL declaration order.

type InitForumArgs struct {
	ForumAuthBump uint8
	ForumFees     ForumFees
}

func (obj InitForumArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint8(obj.ForumAuthBump); err != nil {
		return err
	}
	return obj.ForumFees.MarshalWithEncoder(encoder)
}

func (obj *InitForumArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumAuthBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	return obj.ForumFees.UnmarshalWithDecoder(decoder)
}

type UpdateForumParamsArgs struct {
	ForumFees ForumFees
}

func (obj UpdateForumParamsArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	return obj.ForumFees.MarshalWithEncoder(encoder)
}

func (obj *UpdateForumParamsArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	return obj.ForumFees.UnmarshalWithDecoder(decoder)
}

type PayoutFromTreasuryArgs struct {
	ForumTreasuryBump              uint8
	MinimumBalanceForRentExemption uint64
}

func (obj PayoutFromTreasuryArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint8(obj.ForumTreasuryBump); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.MinimumBalanceForRentExemption, binary.LittleEndian)
}

func (obj *PayoutFromTreasuryArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumTreasuryBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	obj.MinimumBalanceForRentExemption, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

type CloseForumArgs struct {
	ForumTreasuryBump uint8
}

func (obj CloseForumArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	return encoder.WriteUint8(obj.ForumTreasuryBump)
}

func (obj *CloseForumArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	obj.ForumTreasuryBump, err = decoder.ReadUint8()
	return err
}

type CreateUserProfileArgs struct {
	ForumAuthBump     uint8
	ForumTreasuryBump uint8
}

func (obj CreateUserProfileArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint8(obj.ForumAuthBump); err != nil {
		return err
	}
	return encoder.WriteUint8(obj.ForumTreasuryBump)
}

func (obj *CreateUserProfileArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumAuthBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	obj.ForumTreasuryBump, err = decoder.ReadUint8()
	return err
}

// UserProfileBumpArgs is shared by EditUserProfile and DeleteUserProfile.
type UserProfileBumpArgs struct {
	UserProfileBump uint8
}

func (obj UserProfileBumpArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	return encoder.WriteUint8(obj.UserProfileBump)
}

func (obj *UserProfileBumpArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	obj.UserProfileBump, err = decoder.ReadUint8()
	return err
}

type AskQuestionArgs struct {
	ForumTreasuryBump uint8
	UserProfileBump   uint8
	Title             string
	Content           string
	Tags              Tags
	BountyAmount      uint64
}

func (obj AskQuestionArgs) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteUint8(obj.ForumTreasuryBump); err != nil {
		return err
	}
	if err = encoder.WriteUint8(obj.UserProfileBump); err != nil {
		return err
	}
	if err = writeString(encoder, obj.Title); err != nil {
		return err
	}
	if err = writeString(encoder, obj.Content); err != nil {
		return err
	}
	if err = obj.Tags.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.BountyAmount, binary.LittleEndian)
}

func (obj *AskQuestionArgs) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumTreasuryBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if obj.UserProfileBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if obj.Title, err = readString(decoder); err != nil {
		return err
	}
	if obj.Content, err = readString(decoder); err != nil {
		return err
	}
	if err = obj.Tags.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	obj.BountyAmount, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

func newInstruction(id [8]byte, args ag_binary.BinaryMarshaler, accounts Accounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	if programID.IsZero() {
		programID = ProgramID
	}
	if err := validateAccounts(accounts); err != nil {
		return nil, fmt.Errorf("%s: %w", InstructionIDToName(id), err)
	}
	buf := new(bytes.Buffer)
	buf.Write(id[:])
	if err := args.MarshalWithEncoder(ag_binary.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("%s: encode args: %w", InstructionIDToName(id), err)
	}
	return ag_solanago.NewInstruction(programID, AccountMetas(accounts), buf.Bytes()), nil
}

func defaultSystemAccounts(system *ag_solanago.PublicKey, rent *ag_solanago.PublicKey) {
	if system != nil && system.IsZero() {
		*system = ag_solanago.SystemProgramID
	}
	if rent != nil && rent.IsZero() {
		*rent = ag_solanago.SysVarRentPubkey
	}
}

func NewInitForumInstruction(args InitForumArgs, accounts InitForumAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, &accounts.Rent)
	return newInstruction(Instruction_InitForum, args, &accounts, programID)
}

func NewUpdateForumParamsInstruction(args UpdateForumParamsArgs, accounts UpdateForumParamsAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_UpdateForumParams, args, &accounts, programID)
}

func NewPayoutFromTreasuryInstruction(args PayoutFromTreasuryArgs, accounts TreasuryAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_PayoutFromTreasury, args, &accounts, programID)
}

func NewCloseForumInstruction(args CloseForumArgs, accounts TreasuryAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_CloseForum, args, &accounts, programID)
}

func NewCreateUserProfileInstruction(args CreateUserProfileArgs, accounts CreateUserProfileAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_CreateUserProfile, args, &accounts, programID)
}

func NewEditUserProfileInstruction(args UserProfileBumpArgs, accounts EditUserProfileAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_EditUserProfile, args, &accounts, programID)
}

func NewDeleteUserProfileInstruction(args UserProfileBumpArgs, accounts DeleteUserProfileAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_DeleteUserProfile, args, &accounts, programID)
}

func NewAskQuestionInstruction(args AskQuestionArgs, accounts AskQuestionAccounts, programID ag_solanago.PublicKey) (ag_solanago.Instruction, error) {
	defaultSystemAccounts(&accounts.SystemProgram, nil)
	return newInstruction(Instruction_AskQuestion, args, &accounts, programID)
}

// DecodedInstruction is an instruction's discriminator and typed args.
type DecodedInstruction struct {
	ID   [8]byte
	Name string
	// One of *InitForumArgs, *UpdateForumParamsArgs, *PayoutFromTreasuryArgs,
	// *CloseForumArgs, *CreateUserProfileArgs, *UserProfileBumpArgs, *AskQuestionArgs.
	Args interface{}
}

var ErrUnknownInstruction = errors.New("unknown instruction discriminator")

func DecodeInstructionData(data []byte) (*DecodedInstruction, error) {
	if len(data) < DISCRIMINATOR_SIZE {
		return nil, fmt.Errorf("instruction data too short: %d bytes", len(data))
	}
	var id [8]byte
	copy(id[:], data[:DISCRIMINATOR_SIZE])

	var args ag_binary.BinaryUnmarshaler
	switch id {
	case Instruction_InitForum:
		args = new(InitForumArgs)
	case Instruction_UpdateForumParams:
		args = new(UpdateForumParamsArgs)
	case Instruction_PayoutFromTreasury:
		args = new(PayoutFromTreasuryArgs)
	case Instruction_CloseForum:
		args = new(CloseForumArgs)
	case Instruction_CreateUserProfile:
		args = new(CreateUserProfileArgs)
	case Instruction_EditUserProfile, Instruction_DeleteUserProfile:
		args = new(UserProfileBumpArgs)
	case Instruction_AskQuestion:
		args = new(AskQuestionArgs)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownInstruction, id)
	}
	decoder := ag_binary.NewBorshDecoder(data[DISCRIMINATOR_SIZE:])
	if err := args.UnmarshalWithDecoder(decoder); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", InstructionIDToName(id), err)
	}
	if decoder.Remaining() != 0 {
		return nil, fmt.Errorf("decode %s args: %d trailing bytes", InstructionIDToName(id), decoder.Remaining())
	}
	return &DecodedInstruction{ID: id, Name: InstructionIDToName(id), Args: args}, nil
}

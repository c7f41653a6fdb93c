package forum_program

import (
	"bytes"
	"encoding/binary"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Forum struct {
	Version                uint16
	ForumManager           ag_solanago.PublicKey
	ForumAuthority         ag_solanago.PublicKey
	ForumAuthoritySeed     ag_solanago.PublicKey
	ForumAuthorityBumpSeed [1]uint8
	ForumFees              ForumFees
	ForumCounts            ForumCounts
}

func (obj Forum) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(Account_Forum[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint16(obj.Version, binary.LittleEndian); err != nil {
		return err
	}
	for _, key := range []ag_solanago.PublicKey{obj.ForumManager, obj.ForumAuthority, obj.ForumAuthoritySeed} {
		if err = writePublicKey(encoder, key); err != nil {
			return err
		}
	}
	if err = encoder.WriteUint8(obj.ForumAuthorityBumpSeed[0]); err != nil {
		return err
	}
	if err = obj.ForumFees.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	return obj.ForumCounts.MarshalWithEncoder(encoder)
}

func (obj *Forum) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, Account_Forum, "Forum"); err != nil {
		return err
	}
	if obj.Version, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if obj.ForumManager, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.ForumAuthority, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.ForumAuthoritySeed, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.ForumAuthorityBumpSeed[0], err = decoder.ReadUint8(); err != nil {
		return err
	}
	if err = obj.ForumFees.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	return obj.ForumCounts.UnmarshalWithDecoder(decoder)
}

type UserProfile struct {
	ProfileOwner     ag_solanago.PublicKey
	ProfileCreatedTs int64
	QuestionsAsked   uint64
	NftPfpTokenMint  *ag_solanago.PublicKey `bin:"optional"`
}

func (obj UserProfile) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(Account_UserProfile[:], false); err != nil {
		return err
	}
	if err = writePublicKey(encoder, obj.ProfileOwner); err != nil {
		return err
	}
	if err = encoder.WriteInt64(obj.ProfileCreatedTs, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(obj.QuestionsAsked, binary.LittleEndian); err != nil {
		return err
	}
	// Serialize `NftPfpTokenMint` param (optional):
	if obj.NftPfpTokenMint == nil {
		return encoder.WriteBool(false)
	}
	if err = encoder.WriteBool(true); err != nil {
		return err
	}
	return writePublicKey(encoder, *obj.NftPfpTokenMint)
}

func (obj *UserProfile) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, Account_UserProfile, "UserProfile"); err != nil {
		return err
	}
	if obj.ProfileOwner, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.ProfileCreatedTs, err = decoder.ReadInt64(binary.LittleEndian); err != nil {
		return err
	}
	if obj.QuestionsAsked, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	ok, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if !ok {
		obj.NftPfpTokenMint = nil
		return nil
	}
	mint, err := readPublicKey(decoder)
	if err != nil {
		return err
	}
	obj.NftPfpTokenMint = &mint
	return nil
}

type Question struct {
	UserProfile      ag_solanago.PublicKey
	Forum            ag_solanago.PublicKey
	QuestionSeed     ag_solanago.PublicKey
	QuestionPostedTs int64
	BountyAmount     uint64
	BountyAwarded    bool
	Tags             Tags
	Title            string
	Content          string
}

func (obj Question) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteBytes(Account_Question[:], false); err != nil {
		return err
	}
	for _, key := range []ag_solanago.PublicKey{obj.UserProfile, obj.Forum, obj.QuestionSeed} {
		if err = writePublicKey(encoder, key); err != nil {
			return err
		}
	}
	if err = encoder.WriteInt64(obj.QuestionPostedTs, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(obj.BountyAmount, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteBool(obj.BountyAwarded); err != nil {
		return err
	}
	if err = obj.Tags.MarshalWithEncoder(encoder); err != nil {
		return err
	}
	if err = writeString(encoder, obj.Title); err != nil {
		return err
	}
	return writeString(encoder, obj.Content)
}

func (obj *Question) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, Account_Question, "Question"); err != nil {
		return err
	}
	if obj.UserProfile, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.Forum, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.QuestionSeed, err = readPublicKey(decoder); err != nil {
		return err
	}
	if obj.QuestionPostedTs, err = decoder.ReadInt64(binary.LittleEndian); err != nil {
		return err
	}
	if obj.BountyAmount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if obj.BountyAwarded, err = decoder.ReadBool(); err != nil {
		return err
	}
	if err = obj.Tags.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	if obj.Title, err = readString(decoder); err != nil {
		return err
	}
	obj.Content, err = readString(decoder)
	return err
}

func readDiscriminator(decoder *ag_binary.Decoder, want [8]byte, name string) error {
	got, err := decoder.ReadNBytes(DISCRIMINATOR_SIZE)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want[:]) {
		return fmt.Errorf("wrong discriminator: wanted %v for %s, got %v", want, name, got)
	}
	return nil
}

// ParseAccount_Forum decodes raw account data, trailing padding allowed.
func ParseAccount_Forum(accountData []byte) (*Forum, error) {
	acc := new(Forum)
	if err := acc.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(accountData)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Forum: %w", err)
	}
	return acc, nil
}

// ParseAccount_UserProfile decodes user profile account data, discriminator included.
func ParseAccount_UserProfile(accountData []byte) (*UserProfile, error) {
	acc := new(UserProfile)
	if err := acc.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(accountData)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal UserProfile: %w", err)
	}
	return acc, nil
}

// ParseAccount_Question decodes question account data, discriminator included.
func ParseAccount_Question(accountData []byte) (*Question, error) {
	acc := new(Question)
	if err := acc.UnmarshalWithDecoder(ag_binary.NewBorshDecoder(accountData)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Question: %w", err)
	}
	return acc, nil
}

// MarshalAccount serializes an account and zero-pads it to size.
func MarshalAccount(obj ag_binary.BinaryMarshaler, size int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := obj.MarshalWithEncoder(ag_binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	if buf.Len() > size {
		return nil, fmt.Errorf("account data %d bytes exceeds allocated %d", buf.Len(), size)
	}
	out := make([]byte, size)
	copy(out, buf.Bytes())
	return out, nil
}

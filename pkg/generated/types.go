package forum_program

import (
	"encoding/binary"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Tags ag_binary.BorshEnum

const (
	TagsDAOsAndGovernance Tags = iota
	TagsDataAndAnalytics
	TagsDeFi
	TagsDevelopment
	TagsGaming
	TagsMobile
	TagsNFTs
	TagsPayments
	TagsResearch
	TagsToolsAndInfrastructure
	TagsTrading
)

// TagsCount is the number of variants the program decodes.
const TagsCount = int(TagsTrading) + 1

func (value Tags) String() string {
	switch value {
	case TagsDAOsAndGovernance:
		return "DAOsAndGovernance"
	case TagsDataAndAnalytics:
		return "DataAndAnalytics"
	case TagsDeFi:
		return "DeFi"
	case TagsDevelopment:
		return "Development"
	case TagsGaming:
		return "Gaming"
	case TagsMobile:
		return "Mobile"
	case TagsNFTs:
		return "NFTs"
	case TagsPayments:
		return "Payments"
	case TagsResearch:
		return "Research"
	case TagsToolsAndInfrastructure:
		return "ToolsAndInfrastructure"
	case TagsTrading:
		return "Trading"
	default:
		return ""
	}
}

// IsValid reports whether the value is a variant the program knows.
func (value Tags) IsValid() bool {
	return int(value) < TagsCount
}

func (value Tags) MarshalText() ([]byte, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("invalid Tags variant %d", uint8(value))
	}
	return []byte(value.String()), nil
}

func (value *Tags) UnmarshalText(text []byte) error {
	for i := 0; i < TagsCount; i++ {
		if Tags(i).String() == string(text) {
			*value = Tags(i)
			return nil
		}
	}
	return fmt.Errorf("unknown Tags variant %q", text)
}

func (value Tags) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if !value.IsValid() {
		return fmt.Errorf("invalid Tags variant %d", uint8(value))
	}
	return encoder.WriteUint8(uint8(value))
}

func (value *Tags) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	v, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if !Tags(v).IsValid() {
		return fmt.Errorf("invalid Tags variant %d", v)
	}
	*value = Tags(v)
	return nil
}

type ForumFees struct {
	ForumProfileFee    uint64
	ForumQuestionFee   uint64
	ForumBountyMinimum uint64
}

func (obj ForumFees) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteUint64(obj.ForumProfileFee, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(obj.ForumQuestionFee, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.ForumBountyMinimum, binary.LittleEndian)
}

func (obj *ForumFees) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumProfileFee, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if obj.ForumQuestionFee, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	obj.ForumBountyMinimum, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

type ForumCounts struct {
	ForumProfileCount  uint64
	ForumQuestionCount uint64
}

func (obj ForumCounts) MarshalWithEncoder(encoder *ag_binary.Encoder) (err error) {
	if err = encoder.WriteUint64(obj.ForumProfileCount, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.ForumQuestionCount, binary.LittleEndian)
}

func (obj *ForumCounts) UnmarshalWithDecoder(decoder *ag_binary.Decoder) (err error) {
	if obj.ForumProfileCount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	obj.ForumQuestionCount, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

func writePublicKey(encoder *ag_binary.Encoder, key ag_solanago.PublicKey) error {
	return encoder.WriteBytes(key[:], false)
}

func readPublicKey(decoder *ag_binary.Decoder) (ag_solanago.PublicKey, error) {
	b, err := decoder.ReadNBytes(ag_solanago.PublicKeyLength)
	if err != nil {
		return ag_solanago.PublicKey{}, err
	}
	return ag_solanago.PublicKeyFromBytes(b), nil
}

// Borsh strings carry a u32 length prefix.
func writeString(encoder *ag_binary.Encoder, s string) error {
	if err := encoder.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes([]byte(s), false)
}

func readString(decoder *ag_binary.Decoder) (string, error) {
	n, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return "", err
	}
	if int(n) > decoder.Remaining() {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", n, decoder.Remaining())
	}
	b, err := decoder.ReadNBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

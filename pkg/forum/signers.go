package forum

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Authority is an identity passed to an operation as manager or owner. It either
// holds a keypair the client signs with, or only a public key whose signature is
// supplied out of band (WithSigners, or a wallet with the same key).
type Authority struct {
	key     solana.PublicKey
	private solana.PrivateKey
}

// KeypairAuthority returns an authority the client can sign for.
func KeypairAuthority(key solana.PrivateKey) Authority {
	if len(key) == 0 {
		return Authority{}
	}
	return Authority{key: key.PublicKey(), private: key}
}

// PubkeyAuthority returns an authority that is co-signed externally.
func PubkeyAuthority(key solana.PublicKey) Authority {
	return Authority{key: key}
}

// PublicKey returns the authority's address.
func (a Authority) PublicKey() solana.PublicKey { return a.key }

// IsKeypair reports whether the client holds the private key.
func (a Authority) IsKeypair() bool { return len(a.private) != 0 }

// IsZero reports whether no authority was given.
func (a Authority) IsZero() bool { return a.key.IsZero() }

// SignerKind tags an entry of an operation's signer set.
type SignerKind uint8

const (
	// SignerKeypair signs with a key the caller passed in.
	SignerKeypair SignerKind = iota
	// SignerCoSigned must be signed by a key supplied outside the operation.
	SignerCoSigned
	// SignerProgramDerived is signed for by the program itself; never an external key.
	SignerProgramDerived
)

func (k SignerKind) String() string {
	switch k {
	case SignerKeypair:
		return "keypair"
	case SignerCoSigned:
		return "co-signed"
	case SignerProgramDerived:
		return "program-derived"
	default:
		return fmt.Sprintf("SignerKind(%d)", uint8(k))
	}
}

func (k SignerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SignerEntry is one member of a signer set.
type SignerEntry struct {
	Kind      SignerKind       `json:"kind"`
	PublicKey solana.PublicKey `json:"publicKey"`
	// Bump is set for program-derived entries.
	Bump uint8 `json:"bump,omitempty"`

	private solana.PrivateKey
}

// SignerSet lists everything that signs an operation, in the order added.
type SignerSet []SignerEntry

func (s *SignerSet) addKeypair(key solana.PrivateKey) {
	s.add(SignerEntry{Kind: SignerKeypair, PublicKey: key.PublicKey(), private: key})
}

func (s *SignerSet) addAuthority(a Authority) {
	if a.IsKeypair() {
		s.add(SignerEntry{Kind: SignerKeypair, PublicKey: a.key, private: a.private})
		return
	}
	s.add(SignerEntry{Kind: SignerCoSigned, PublicKey: a.key})
}

func (s *SignerSet) addProgramDerived(pda PDA) {
	s.add(SignerEntry{Kind: SignerProgramDerived, PublicKey: pda.Address, Bump: pda.Bump})
}

// add keeps one entry per key, preferring one that carries a private key.
func (s *SignerSet) add(e SignerEntry) {
	for i, existing := range *s {
		if existing.PublicKey.Equals(e.PublicKey) {
			if existing.Kind == SignerCoSigned && e.Kind == SignerKeypair {
				(*s)[i] = e
			}
			return
		}
	}
	*s = append(*s, e)
}

// External returns the keys that must produce a transaction signature.
func (s SignerSet) External() []solana.PublicKey {
	var out []solana.PublicKey
	for _, e := range s {
		if e.Kind != SignerProgramDerived {
			out = append(out, e.PublicKey)
		}
	}
	return out
}

// CoSigned returns the keys the client expects to be signed out of band.
func (s SignerSet) CoSigned() []solana.PublicKey {
	var out []solana.PublicKey
	for _, e := range s {
		if e.Kind == SignerCoSigned {
			out = append(out, e.PublicKey)
		}
	}
	return out
}

// ProgramDerived returns the program signers and their bumps.
func (s SignerSet) ProgramDerived() []PDA {
	var out []PDA
	for _, e := range s {
		if e.Kind == SignerProgramDerived {
			out = append(out, PDA{Address: e.PublicKey, Bump: e.Bump})
		}
	}
	return out
}

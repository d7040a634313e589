package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidKeyLength = errors.New("invalid key length")
)

// ValidateKey checks that pub is exactly the size of a public key.
func ValidateKey(pub []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidKeyLength, "got %d bytes", len(pub))
	}
	return nil
}

// PublicKeyFromString parses a base58 encoded public key.
func PublicKeyFromString(s string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base58 public key")
	}
	if err := ValidateKey(decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// BlockhashFromBytes copies b into a Blockhash, rejecting anything that isn't
// exactly 32 bytes.
func BlockhashFromBytes(b []byte) (bh Blockhash, err error) {
	if len(b) != len(bh) {
		return bh, errors.Wrapf(ErrInvalidKeyLength, "blockhash has %d bytes", len(b))
	}
	copy(bh[:], b)
	return bh, nil
}

// BlockhashFromString parses a base58 encoded blockhash.
func BlockhashFromString(s string) (Blockhash, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return Blockhash{}, errors.Wrap(err, "invalid base58 blockhash")
	}
	return BlockhashFromBytes(decoded)
}

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

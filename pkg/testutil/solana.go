package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/dapp-payments/pkg/solana"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// GenerateBlockhash returns a blockhash with every byte set to b
func GenerateBlockhash(b byte) solana.Blockhash {
	var bh solana.Blockhash
	for i := range bh {
		bh[i] = b
	}
	return bh
}

// FilledKey returns a public key whose last byte is b and the rest zero, the
// shape of the small fixed keys used in reference vectors.
func FilledKey(b byte) ed25519.PublicKey {
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	pub[ed25519.PublicKeySize-1] = b
	return pub
}

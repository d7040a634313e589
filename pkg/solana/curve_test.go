package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOnCurve_Vectors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		encoded  string
		expected bool
	}{
		{"basepoint", "5866666666666666666666666666666666666666666666666666666666666666", true},
		{"identity", "0100000000000000000000000000000000000000000000000000000000000000", true},
		{"y zero", "0000000000000000000000000000000000000000000000000000000000000000", true},
		{"y p-1", "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", true},
		{"y p non-canonical", "edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", false},
		{"y p+1 non-canonical", "eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", false},
	} {
		b, err := hex.DecodeString(tc.encoded)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, IsOnCurve(b), tc.name)
	}
}

func TestIsOnCurve_PublicKeys(t *testing.T) {
	for i := 0; i < 100; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		assert.True(t, IsOnCurve(pub))
	}
}

func TestIsOnCurve_ProgramAddresses(t *testing.T) {
	for _, encoded := range []string{
		"H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ",
		"Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd",
		"oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S",
		"3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT",
	} {
		pub, err := base58.Decode(encoded)
		require.NoError(t, err)
		assert.False(t, IsOnCurve(pub), encoded)
	}
}

func TestIsOnCurve_InvalidLength(t *testing.T) {
	assert.False(t, IsOnCurve(nil))
	assert.False(t, IsOnCurve(make([]byte, 31)))
	assert.False(t, IsOnCurve(make([]byte, 33)))
}

func TestIsOnCurve_CrossImpl(t *testing.T) {
	var onCurve, offCurve int
	for i := 0; i < 2000; i++ {
		b := make([]byte, 32)
		_, err := rand.Read(b)
		require.NoError(t, err)

		// Only canonical encodings are compared; the odds of drawing a
		// non-canonical one are negligible but not zero.
		y := b[31] & 0x7f
		if y == 0x7f && b[0] >= 0xed {
			continue
		}

		expected := solana.IsOnCurve(b)
		assert.Equal(t, expected, IsOnCurve(b), hex.EncodeToString(b))

		if expected {
			onCurve++
		} else {
			offCurve++
		}
	}

	// Roughly half of all encodings decode to a point.
	assert.NotZero(t, onCurve)
	assert.NotZero(t, offCurve)
}

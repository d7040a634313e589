package usdc

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenMint(t *testing.T) {
	decoded, err := base58.Decode(Mint)
	require.NoError(t, err)
	assert.EqualValues(t, decoded, TokenMint)
}

func TestToQuarks(t *testing.T) {
	for _, tc := range []struct {
		amount   string
		expected uint64
	}{
		{"1", QuarksPerUsdc},
		{"1.25", 1_250_000},
		{"0.000001", 1},
		{"42.100000", 42_100_000},
	} {
		quarks, err := ToQuarks(decimal.RequireFromString(tc.amount))
		require.NoError(t, err, tc.amount)
		assert.Equal(t, tc.expected, quarks, tc.amount)
		assert.True(t, FromQuarks(quarks).Equal(decimal.RequireFromString(tc.amount)), tc.amount)
	}

	for _, amount := range []string{
		"0",
		"-1",
		"0.0000001",
		"18446744073709.551616",
	} {
		_, err := ToQuarks(decimal.RequireFromString(amount))
		assert.True(t, errors.Is(err, ErrInvalidAmount), amount)
	}
}

func TestToBaseUnits(t *testing.T) {
	for _, tc := range []struct {
		amount   string
		decimals uint8
		expected uint64
	}{
		{"1.5", 9, 1_500_000_000},
		{"0.000000001", 9, 1},
		{"7", 0, 7},
		{"1.25", Decimals, 1_250_000},
	} {
		units, err := ToBaseUnits(decimal.RequireFromString(tc.amount), tc.decimals)
		require.NoError(t, err, tc.amount)
		assert.Equal(t, tc.expected, units, tc.amount)
	}

	for _, tc := range []struct {
		amount   string
		decimals uint8
	}{
		{"0.5", 0},
		{"0.0000000001", 9},
		{"18446744073.709551616", 9},
		{"-2", 2},
	} {
		_, err := ToBaseUnits(decimal.RequireFromString(tc.amount), tc.decimals)
		assert.True(t, errors.Is(err, ErrInvalidAmount), tc.amount)
	}
}

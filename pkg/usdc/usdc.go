package usdc

import (
	"crypto/ed25519"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	Mint          = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	QuarksPerUsdc = 1000000
	Decimals      = 6
)

var (
	TokenMint = ed25519.PublicKey{198, 250, 122, 243, 190, 219, 173, 58, 61, 101, 243, 106, 171, 201, 116, 49, 177, 187, 228, 194, 210, 246, 224, 228, 124, 166, 2, 3, 69, 47, 93, 97}

	ErrInvalidAmount = errors.New("invalid token amount")
)

// ToQuarks converts a whole-unit USDC amount, such as 1.25, into the base units
// a transfer instruction carries.
func ToQuarks(amount decimal.Decimal) (uint64, error) {
	return ToBaseUnits(amount, Decimals)
}

// ToBaseUnits scales a whole-unit amount of a mint with the given decimals
// into base units.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.Sign() <= 0 {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s is not positive", amount)
	}

	scaled := amount.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s has more than %d decimal places", amount, decimals)
	}
	if !scaled.BigInt().IsUint64() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s overflows", amount)
	}
	return scaled.BigInt().Uint64(), nil
}

// FromQuarks converts base units back into a whole-unit amount
func FromQuarks(quarks uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(quarks), -Decimals)
}

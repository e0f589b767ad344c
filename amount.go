package stablecoin

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount   = errors.New("amount is negative")
	ErrAmountPrecision  = errors.New("amount has more fractional digits than the mint's decimals")
	ErrAmountOutOfRange = errors.New("amount does not fit in u64 base units")
)

var maxBaseUnits = decimal.NewFromUint64(math.MaxUint64)

// ToBaseUnits converts a UI amount to base units: amount * 10^decimals.
// Amounts that would need rounding are rejected.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}
	scaled := amount.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrAmountPrecision
	}
	if scaled.GreaterThan(maxBaseUnits) {
		return 0, ErrAmountOutOfRange
	}
	return scaled.BigInt().Uint64(), nil
}

// ToUIAmount converts base units to a UI amount: amount / 10^decimals.
func ToUIAmount(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-int32(decimals))
}

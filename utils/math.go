package utils

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/basketfi/basket/types"
)

var (
	feeTierDenominator = math.NewInt(types.FeeTierDenominator)
	bpsDenominator     = math.NewInt(types.BpsDenominator)
)

// MulDiv returns floor(a * b / den). Multiply-before-divide keeps precision
// loss on the conservative side; den must be positive.
func MulDiv(a, b, den math.Int) (math.Int, error) {
	if !den.IsPositive() {
		return math.Int{}, fmt.Errorf("division by non-positive denominator %s", den)
	}
	return a.Mul(b).Quo(den), nil
}

// Pow10 returns 10^n as an integer.
func Pow10(n uint8) math.Int {
	out := math.OneInt()
	ten := math.NewInt(10)
	for i := uint8(0); i < n; i++ {
		out = out.Mul(ten)
	}
	return out
}

// NormalizeTo18 scales an amount with the given decimal precision up to
// 18-decimal base units. Decimals above 18 are rejected by composition
// validation before amounts ever reach this helper.
func NormalizeTo18(amount math.Int, decimals uint8) math.Int {
	if decimals >= types.BaseDecimals {
		return amount
	}
	return amount.Mul(Pow10(types.BaseDecimals - decimals))
}

// FeeTierAmount returns the venue fee charged on amountIn at the given tier:
// floor(amountIn * tier / 1_000_000). Tiers are hundredths of a basis point.
func FeeTierAmount(amountIn math.Int, feeTier uint32) math.Int {
	return amountIn.Mul(math.NewInt(int64(feeTier))).Quo(feeTierDenominator)
}

// BpsFee returns floor(amount * bps / 10_000).
func BpsFee(amount math.Int, bps uint32) math.Int {
	return amount.Mul(math.NewInt(int64(bps))).Quo(bpsDenominator)
}

// ExpDec calculates e^x using the Maclaurin series expansion up to `terms`
// terms. Fully deterministic.
//
//	e^x = 1 + x + x^2/2! + x^3/3! + ... + x^n/n!
func ExpDec(x math.LegacyDec, terms int) math.LegacyDec {
	result := math.LegacyOneDec()
	power := math.LegacyOneDec()
	factorial := math.LegacyOneDec()

	for i := 1; i <= terms; i++ {
		power = power.Mul(x)
		factorial = factorial.MulInt64(int64(i))
		term := power.Quo(factorial)
		result = result.Add(term)
	}

	return result
}

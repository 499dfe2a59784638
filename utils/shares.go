package utils

import (
	"fmt"

	"cosmossdk.io/math"
)

// FirstMintShares is the bootstrap mint: when total supply is zero, the first
// deposit receives exactly 1.0 share (18 decimals) regardless of size, fixing
// the initial share price at "1 share = whatever was just deposited".
var FirstMintShares = math.NewInt(1_000_000_000_000_000_000)

// CalculateMintShares returns the shares to mint for a contributed value,
// against the pre-deposit valuation and share supply.
//
// Formula (integer, floor):
//
//	if priorSupply == 0: shares = FirstMintShares
//	else:                shares = floor( contributed * priorSupply / priorAUM )
//
// priorAUM == 0 with a nonzero supply is an invariant violation (supply > 0
// implies AUM > 0 by construction) and is rejected rather than divided by.
func CalculateMintShares(contributed, priorAUM, priorSupply math.Int) (math.Int, error) {
	if contributed.IsNegative() || priorAUM.IsNegative() || priorSupply.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid input: negative values not allowed")
	}
	if priorSupply.IsZero() {
		return FirstMintShares, nil
	}
	if priorAUM.IsZero() {
		return math.Int{}, fmt.Errorf("zero valuation with nonzero share supply")
	}
	return contributed.Mul(priorSupply).Quo(priorAUM), nil
}

// CalculateProRataShare returns floor(balance * burnAmount / totalSupply):
// the slice of one constituent balance owed for a share burn. Floor division
// keeps the vault conservative; any remainder stays in the vault.
func CalculateProRataShare(balance, burnAmount, totalSupply math.Int) (math.Int, error) {
	if balance.IsNegative() || burnAmount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid input: negative values not allowed")
	}
	if !totalSupply.IsPositive() {
		return math.Int{}, fmt.Errorf("total supply must be positive")
	}
	return balance.Mul(burnAmount).Quo(totalSupply), nil
}

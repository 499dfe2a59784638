package types

import (
	"github.com/ethereum/go-ethereum/common"

	sdkmath "cosmossdk.io/math"
)

const (
	// ModuleName defines the module name.
	ModuleName = "basket"

	// NumConstituents is the fixed number of slots in a basket composition.
	NumConstituents = 10

	// PrimarySlot is the reserved slot for the primary (wrapped-stake) asset.
	PrimarySlot = 0

	// PrimaryWeight is the pinned weight of the primary constituent.
	PrimaryWeight = 50

	// WeightTotal is the required sum of all constituent weights.
	WeightTotal = 100

	// BaseDecimals is the precision of the base asset. Every constituent must
	// have decimals at or below this value.
	BaseDecimals = 18

	// TreasuryFeeBps is the redemption fee, in basis points, paid to the treasury.
	TreasuryFeeBps = 10

	// BpsDenominator converts basis points into a fraction.
	BpsDenominator = 10_000

	// FeeTierDenominator converts a pool fee tier (hundredths of a basis
	// point) into a fraction.
	FeeTierDenominator = 1_000_000

	// DefaultFeeTier is the tier tried first when a constituent does not pin one.
	DefaultFeeTier = FeeTier3000

	// DeviationBoundPct is the post-rebalance tolerance: no constituent may
	// deviate from its target value by more than this percentage of total AUM.
	DeviationBoundPct = 1
)

// Supported pool fee tiers, in hundredths of a basis point.
const (
	FeeTier100   uint32 = 100
	FeeTier500   uint32 = 500
	FeeTier3000  uint32 = 3000
	FeeTier10000 uint32 = 10000
)

// FallbackFeeTiers is the fallback priority order for swaps and price reads.
// Large-cap pairs most likely have liquidity at the middle tier first.
var FallbackFeeTiers = []uint32{FeeTier3000, FeeTier10000, FeeTier500, FeeTier100}

var (
	// BaseAsset is the sentinel address for the chain-native base asset.
	BaseAsset = common.Address{}

	// OneShare is 1.0 share in share-token base units (18 decimals).
	OneShare = sdkmath.NewInt(1_000_000_000_000_000_000)

	// MinimumMintAmount is the smallest accepted deposit: 0.01 of the base asset.
	MinimumMintAmount = sdkmath.NewInt(10_000_000_000_000_000)
)

// ValidFeeTier reports whether tier is one of the enumerated pool fee tiers.
func ValidFeeTier(tier uint32) bool {
	switch tier {
	case FeeTier100, FeeTier500, FeeTier3000, FeeTier10000:
		return true
	}
	return false
}

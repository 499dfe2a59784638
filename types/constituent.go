package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Constituent is one basket slot: a target weight, the asset it tracks, the
// asset's decimal precision, and an optional pinned pool fee tier. A zero
// FeeTier means "no pinned tier" and lets the swap executor start from the
// default.
type Constituent struct {
	Weight   uint8
	Asset    common.Address
	Decimals uint8
	FeeTier  uint32
}

// Composition is the fixed-size ordered constituent registry. Slot 0 is the
// primary constituent and is pinned to the vault's wrapped-stake asset at
// PrimaryWeight. Iteration order is load-bearing: weight apportionment and
// valuation walk slots in order.
type Composition [NumConstituents]Constituent

// NewComposition builds a composition from a candidate slice and validates it
// against the pinned primary asset.
func NewComposition(candidates []Constituent, primary common.Address) (Composition, error) {
	var c Composition
	if len(candidates) != NumConstituents {
		return c, fmt.Errorf("expected %d constituents, got %d", NumConstituents, len(candidates))
	}
	copy(c[:], candidates)
	if err := c.Validate(primary); err != nil {
		return Composition{}, err
	}
	return c, nil
}

// Validate checks every composition invariant:
//   - slot 0 holds the pinned primary asset at PrimaryWeight,
//   - every weight is nonzero and the weights sum to WeightTotal,
//   - every asset's decimals are at or below BaseDecimals,
//   - no two slots share an asset address,
//   - any pinned fee tier is one of the enumerated tiers.
func (c Composition) Validate(primary common.Address) error {
	if c[PrimarySlot].Asset != primary {
		return ErrInvalidTokenList.Wrapf("slot 0 must hold primary asset %s, got %s", primary.Hex(), c[PrimarySlot].Asset.Hex())
	}
	if c[PrimarySlot].Weight != PrimaryWeight {
		return ErrInvalidTokenList.Wrapf("slot 0 weight must be %d, got %d", PrimaryWeight, c[PrimarySlot].Weight)
	}

	sum := 0
	for i, con := range c {
		if con.Weight == 0 {
			return ErrInvalidWeights.Wrapf("slot %d has zero weight", i)
		}
		sum += int(con.Weight)
	}
	if sum != WeightTotal {
		return ErrInvalidWeights.Wrapf("weights sum to %d, expected %d", sum, WeightTotal)
	}

	for i, con := range c {
		if con.Decimals > BaseDecimals {
			return ErrInvalidTokenList.Wrapf("slot %d decimals %d exceed base precision %d", i, con.Decimals, BaseDecimals)
		}
		if con.Asset == BaseAsset {
			return ErrInvalidTokenList.Wrapf("slot %d holds the base asset", i)
		}
		if con.FeeTier != 0 && !ValidFeeTier(con.FeeTier) {
			return ErrInvalidTokenList.Wrapf("slot %d fee tier %d is not supported", i, con.FeeTier)
		}
	}

	for i := 0; i < NumConstituents; i++ {
		for j := i + 1; j < NumConstituents; j++ {
			if c[i].Asset == c[j].Asset {
				return ErrInvalidTokenList.Wrapf("slots %d and %d share asset %s", i, j, c[i].Asset.Hex())
			}
		}
	}
	return nil
}

// IndexOf returns the slot holding asset, or -1 when the asset is not a
// constituent.
func (c Composition) IndexOf(asset common.Address) int {
	for i, con := range c {
		if con.Asset == asset {
			return i
		}
	}
	return -1
}

// Primary returns the primary constituent.
func (c Composition) Primary() Constituent {
	return c[PrimarySlot]
}

// Weights returns the weight vector in slot order.
func (c Composition) Weights() [NumConstituents]uint8 {
	var w [NumConstituents]uint8
	for i, con := range c {
		w[i] = con.Weight
	}
	return w
}

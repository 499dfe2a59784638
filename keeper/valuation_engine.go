package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
	"github.com/basketfi/basket/utils"
)

var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

// PriceInBase returns how many base units one whole unit of asset is worth,
// derived from the (asset, base) pool's current price state at the given fee
// tier.
//
// Semantics:
//   - The pool reports sqrtPriceX96 = sqrt(baseUnits / assetUnits) << 96 over
//     raw ledger units.
//   - Therefore raw price = sqrtPriceX96^2 / 2^192, and the whole-unit price
//     is that ratio scaled by 10^decimals of the asset.
//
// All arithmetic is integer with floor division, multiply before divide.
// Errors: PoolDoesNotExist when no pool exists at the tier, NegativePrice on
// a zero or degenerate price state.
func (k *Keeper) PriceInBase(asset common.Address, feeTier uint32) (sdkmath.Int, error) {
	idx := k.composition.IndexOf(asset)
	if idx < 0 {
		return sdkmath.Int{}, types.ErrTokenNotConstituent.Wrapf("asset %s", asset.Hex())
	}
	return k.priceAtTier(asset, k.composition[idx].Decimals, feeTier)
}

// PriceInBaseAnyTier resolves an asset price by walking the fee-tier fallback
// order, starting from the constituent's pinned tier when it has one. It
// fails with PoolDoesNotExist only when every tier misses.
func (k *Keeper) PriceInBaseAnyTier(asset common.Address) (sdkmath.Int, error) {
	idx := k.composition.IndexOf(asset)
	if idx < 0 {
		return sdkmath.Int{}, types.ErrTokenNotConstituent.Wrapf("asset %s", asset.Hex())
	}
	con := k.composition[idx]
	for _, tier := range feeTierOrder(con.FeeTier) {
		price, err := k.priceAtTier(asset, con.Decimals, tier)
		if err == nil {
			return price, nil
		}
		if !types.ErrPoolDoesNotExist.Is(err) {
			return sdkmath.Int{}, err
		}
	}
	return sdkmath.Int{}, types.ErrPoolDoesNotExist.Wrapf("asset %s at any fee tier", asset.Hex())
}

func (k *Keeper) priceAtTier(asset common.Address, decimals uint8, feeTier uint32) (sdkmath.Int, error) {
	sqrtPrice, ok := k.pools.SqrtPriceX96(asset, feeTier)
	if !ok {
		return sdkmath.Int{}, types.ErrPoolDoesNotExist.Wrapf("asset %s fee tier %d", asset.Hex(), feeTier)
	}
	if sqrtPrice == nil || sqrtPrice.IsZero() {
		return sdkmath.Int{}, types.ErrNegativePrice.Wrapf("asset %s fee tier %d", asset.Hex(), feeTier)
	}

	sqrt := sqrtPrice.ToBig()
	price := new(big.Int).Mul(sqrt, sqrt)
	price.Mul(price, utils.Pow10(decimals).BigInt())
	price.Quo(price, q192)
	if price.Sign() <= 0 {
		return sdkmath.Int{}, types.ErrNegativePrice.Wrapf("asset %s fee tier %d", asset.Hex(), feeTier)
	}
	return sdkmath.NewIntFromBigInt(price), nil
}

// AUMBreakdown values every constituent balance held by the vault in base
// units and returns the per-slot values plus the total. The primary slot is
// valued through the staking wrapper's exchange rate; every other slot has its
// balance normalized to base precision and valued at its pool price (floor
// division throughout). This is a
// pure read and is safe to call mid-transaction after partial swaps.
func (k *Keeper) AUMBreakdown() ([types.NumConstituents]sdkmath.Int, sdkmath.Int, error) {
	var perAsset [types.NumConstituents]sdkmath.Int
	total := sdkmath.ZeroInt()

	for i, con := range k.composition {
		balance := k.bank.GetBalance(con.Asset, k.vault.Address)
		var value sdkmath.Int
		if i == types.PrimarySlot {
			value = k.staking.ExchangeRate().MulInt(balance).TruncateInt()
		} else {
			price, err := k.PriceInBaseAnyTier(con.Asset)
			if err != nil {
				return perAsset, sdkmath.Int{}, err
			}
			v, err := utils.MulDiv(utils.NormalizeTo18(balance, con.Decimals), price, utils.Pow10(types.BaseDecimals))
			if err != nil {
				return perAsset, sdkmath.Int{}, err
			}
			value = v
		}
		perAsset[i] = value
		total = total.Add(value)
	}
	return perAsset, total, nil
}

// AUM returns the total vault valuation in base units.
func (k *Keeper) AUM() (sdkmath.Int, error) {
	_, total, err := k.AUMBreakdown()
	return total, err
}

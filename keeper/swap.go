package keeper

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
)

// SwapResult is the typed outcome of a completed swap: the amount received
// and the fee tier that finally served the trade.
type SwapResult struct {
	AmountOut   sdkmath.Int
	FeeTierUsed uint32
}

// feeTierOrder returns the ordered attempt list: the preferred tier first
// (the default tier when none is pinned), then the remaining tiers in
// fallback priority order.
func feeTierOrder(preferred uint32) []uint32 {
	if preferred == 0 {
		preferred = types.DefaultFeeTier
	}
	order := make([]uint32, 0, len(types.FallbackFeeTiers))
	order = append(order, preferred)
	for _, tier := range types.FallbackFeeTiers {
		if tier != preferred {
			order = append(order, tier)
		}
	}
	return order
}

// ExecuteSwap exchanges an exact input amount between two assets on behalf of
// the vault. Pairs that include the base asset are a single venue leg; token
// to token routes hop through the base asset. Each leg walks the fee-tier
// fallback chain; exhausting every tier is a named failure, not an exception
// path, and propagates to abort the surrounding operation.
func (k *Keeper) ExecuteSwap(assetIn, assetOut common.Address, amountIn, minAmountOut sdkmath.Int) (SwapResult, error) {
	if assetIn != types.BaseAsset && assetOut != types.BaseAsset {
		leg, err := k.swapWithFallback(assetIn, types.BaseAsset, amountIn, sdkmath.ZeroInt())
		if err != nil {
			return SwapResult{}, err
		}
		return k.swapWithFallback(types.BaseAsset, assetOut, leg.AmountOut, minAmountOut)
	}
	return k.swapWithFallback(assetIn, assetOut, amountIn, minAmountOut)
}

func (k *Keeper) swapWithFallback(assetIn, assetOut common.Address, amountIn, minAmountOut sdkmath.Int) (SwapResult, error) {
	tokenSide := assetIn
	if tokenSide == types.BaseAsset {
		tokenSide = assetOut
	}
	preferred := uint32(0)
	if idx := k.composition.IndexOf(tokenSide); idx >= 0 {
		preferred = k.composition[idx].FeeTier
	}

	var lastErr error
	for _, tier := range feeTierOrder(preferred) {
		// Each attempt gets its own revert point so a partially applied
		// failed attempt never leaks into the next tier.
		snap := k.bank.Snapshot()
		if assetIn != types.BaseAsset {
			k.bank.Approve(assetIn, k.vault.Address, k.router.Address(), amountIn)
		}
		amountOut, err := k.router.SwapExactIn(k.vault.Address, assetIn, assetOut, amountIn, minAmountOut, tier)
		if err != nil {
			k.bank.RevertToSnapshot(snap)
			lastErr = err
			k.logger.Debug("swap attempt failed",
				"asset_in", assetIn.Hex(), "asset_out", assetOut.Hex(),
				"fee_tier", tier, "err", err)
			continue
		}
		k.bank.DiscardSnapshot(snap)
		k.emitEvent(types.NewEventSwapExecuted(assetIn, assetOut, amountIn, amountOut, tier))
		return SwapResult{AmountOut: amountOut, FeeTierUsed: tier}, nil
	}
	return SwapResult{}, types.ErrSwapFailed.Wrapf("%s -> %s amount %s: %v", assetIn.Hex(), assetOut.Hex(), amountIn, lastErr)
}

package keeper

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
	"github.com/basketfi/basket/utils"
)

// Rebalance adopts a new composition and corrects the vault's holdings to it.
// Treasury only. The operator may supply explicit routes, executed verbatim
// before the automatic correction pass, and a base-asset budget drawn from the
// treasury to cover fees and rounding drag. After correction, every slot must
// sit within the deviation bound of its target value or the whole operation
// rolls back.
//
// Correction runs sells before buys so the buy pot is fully funded: overweight
// slots are trimmed to target first, then the accumulated base (budget plus
// proceeds) is deployed into underweight slots. Leftover base returns to the
// treasury.
func (k *Keeper) Rebalance(caller common.Address, candidates []types.Constituent, routes []types.SwapRoute, budget sdkmath.Int) error {
	if err := k.requireTreasury(caller); err != nil {
		return err
	}
	release, err := k.acquireLock()
	if err != nil {
		return err
	}
	defer release()

	next, err := types.NewComposition(candidates, k.vault.Primary)
	if err != nil {
		return err
	}
	for i, route := range routes {
		if err := route.Validate(); err != nil {
			return types.ErrRebalancingFailed.Wrapf("route %d: %v", i, err)
		}
	}
	if budget.IsNil() || budget.IsNegative() {
		return types.ErrRebalancingFailed.Wrap("budget must not be negative")
	}

	err = k.withTransaction(func() error {
		if budget.IsPositive() {
			if err := k.bank.SendNative(k.vault.Treasury, k.vault.Address, budget); err != nil {
				return err
			}
		}

		k.composition = next

		for _, route := range routes {
			if _, err := k.ExecuteSwap(route.AssetIn, route.AssetOut, route.AmountIn, route.MinAmountOut); err != nil {
				return err
			}
		}

		if err := k.correctToTargets(); err != nil {
			return err
		}

		// Return whatever base the correction pass did not deploy.
		if leftover := k.bank.GetNativeBalance(k.vault.Address); leftover.IsPositive() {
			if err := k.bank.SendNative(k.vault.Address, k.vault.Treasury, leftover); err != nil {
				return err
			}
		}

		if err := k.checkDeviationBound(); err != nil {
			return err
		}
		k.emitEvent(types.NewEventRebalanced(caller, k.composition))
		return nil
	})
	if err != nil {
		return err
	}

	k.logger.Info("rebalanced", "caller", caller.Hex(), "budget", budget.String())
	return nil
}

// Reconstitute swaps out the non-primary half of the basket wholesale: every
// non-primary balance is liquidated to base, the new composition is adopted,
// and the proceeds are redistributed across the new non-primary slots by
// weight. The primary position is never touched. Treasury only.
func (k *Keeper) Reconstitute(caller common.Address, candidates []types.Constituent) error {
	if err := k.requireTreasury(caller); err != nil {
		return err
	}
	release, err := k.acquireLock()
	if err != nil {
		return err
	}
	defer release()

	next, err := types.NewComposition(candidates, k.vault.Primary)
	if err != nil {
		return err
	}

	err = k.withTransaction(func() error {
		for i, con := range k.composition {
			if i == types.PrimarySlot {
				continue
			}
			balance := k.bank.GetBalance(con.Asset, k.vault.Address)
			if !balance.IsPositive() {
				continue
			}
			if _, err := k.ExecuteSwap(con.Asset, types.BaseAsset, balance, sdkmath.ZeroInt()); err != nil {
				return err
			}
		}

		k.composition = next

		pot := k.bank.GetNativeBalance(k.vault.Address)
		for i, con := range k.composition {
			if i == types.PrimarySlot {
				continue
			}
			portion := pot.MulRaw(int64(con.Weight)).QuoRaw(types.WeightTotal - types.PrimaryWeight)
			if !portion.IsPositive() {
				continue
			}
			if _, err := k.ExecuteSwap(types.BaseAsset, con.Asset, portion, sdkmath.ZeroInt()); err != nil {
				return err
			}
		}

		k.emitEvent(types.NewEventReconstituted(caller, k.composition))
		return nil
	})
	if err != nil {
		return err
	}

	k.logger.Info("reconstituted", "caller", caller.Hex())
	return nil
}

// correctToTargets trims overweight slots to their target value, then deploys
// the vault's base balance into underweight slots. Prices are read once up
// front; the post-pass deviation check catches any drift the trades caused.
func (k *Keeper) correctToTargets() error {
	perAsset, total, err := k.AUMBreakdown()
	if err != nil {
		return err
	}
	if !total.IsPositive() {
		// Nothing held yet. An empty vault trivially matches any composition.
		return nil
	}

	var targets [types.NumConstituents]sdkmath.Int
	for i, con := range k.composition {
		targets[i] = total.MulRaw(int64(con.Weight)).QuoRaw(types.WeightTotal)
	}

	// Sells first.
	for i, con := range k.composition {
		excess := perAsset[i].Sub(targets[i])
		if !excess.IsPositive() {
			continue
		}
		if i == types.PrimarySlot {
			wrapped := sdkmath.LegacyNewDecFromInt(excess).Quo(k.staking.ExchangeRate()).TruncateInt()
			wrapped = sdkmath.MinInt(wrapped, k.bank.GetBalance(con.Asset, k.vault.Address))
			if !wrapped.IsPositive() {
				continue
			}
			if _, err := k.staking.Withdraw(k.vault.Address, wrapped); err != nil {
				return err
			}
			continue
		}
		price, err := k.PriceInBaseAnyTier(con.Asset)
		if err != nil {
			return err
		}
		units, err := utils.MulDiv(excess, utils.Pow10(con.Decimals), price)
		if err != nil {
			return err
		}
		units = sdkmath.MinInt(units, k.bank.GetBalance(con.Asset, k.vault.Address))
		if !units.IsPositive() {
			continue
		}
		if _, err := k.ExecuteSwap(con.Asset, types.BaseAsset, units, sdkmath.ZeroInt()); err != nil {
			return err
		}
	}

	// Then buys, out of budget plus sale proceeds.
	bound := total.MulRaw(types.DeviationBoundPct).QuoRaw(100)
	for i, con := range k.composition {
		deficit := targets[i].Sub(perAsset[i])
		if !deficit.IsPositive() {
			continue
		}
		pot := k.bank.GetNativeBalance(k.vault.Address)
		spend := sdkmath.MinInt(deficit, pot)
		if !spend.IsPositive() {
			if deficit.GT(bound) {
				return types.ErrInsufficientBudget.Wrapf("slot %d short %s base units with pot exhausted", i, deficit)
			}
			continue
		}
		if i == types.PrimarySlot {
			if _, err := k.staking.Deposit(k.vault.Address, spend); err != nil {
				return err
			}
			continue
		}
		if _, err := k.ExecuteSwap(types.BaseAsset, con.Asset, spend, sdkmath.ZeroInt()); err != nil {
			return err
		}
	}
	return nil
}

// checkDeviationBound enforces the post-rebalance tolerance: no slot's value
// may sit further from its target than DeviationBoundPct of total AUM.
func (k *Keeper) checkDeviationBound() error {
	perAsset, total, err := k.AUMBreakdown()
	if err != nil {
		return err
	}
	if !total.IsPositive() {
		return nil
	}
	bound := total.MulRaw(types.DeviationBoundPct).QuoRaw(100)
	for i, con := range k.composition {
		target := total.MulRaw(int64(con.Weight)).QuoRaw(types.WeightTotal)
		if perAsset[i].Sub(target).Abs().GT(bound) {
			return types.ErrRebalancingFailed.Wrapf("slot %d value %s deviates from target %s beyond bound %s", i, perAsset[i], target, bound)
		}
	}
	return nil
}

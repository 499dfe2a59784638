package keeper

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
	"github.com/basketfi/basket/utils"
)

// Mint deposits base asset into the vault and mints shares against the value
// contributed. The deposit is split across the composition by weight: the
// primary slot is staked through the wrapper, every other slot is swapped into
// its constituent. Shares price the deposit at the pre-deposit valuation, net
// of the swap fees paid on the way in.
//
// The first mint against an empty supply receives exactly one whole share.
func (k *Keeper) Mint(sender common.Address, amount sdkmath.Int) (sdkmath.Int, error) {
	release, err := k.acquireLock()
	if err != nil {
		return sdkmath.Int{}, err
	}
	defer release()

	if err := k.requireActive(); err != nil {
		return sdkmath.Int{}, err
	}
	if amount.LT(types.MinimumMintAmount) {
		return sdkmath.Int{}, types.ErrMinimumAmountToMint.Wrapf("got %s, need at least %s", amount, types.MinimumMintAmount)
	}

	priorSupply := k.shares.TotalSupply()
	priorAUM := sdkmath.ZeroInt()
	if priorSupply.IsPositive() {
		priorAUM, err = k.AUM()
		if err != nil {
			return sdkmath.Int{}, err
		}
		if !priorAUM.IsPositive() {
			return sdkmath.Int{}, types.ErrZeroAUM.Wrapf("share supply %s", priorSupply)
		}
	}

	minted := sdkmath.ZeroInt()
	err = k.withTransaction(func() error {
		if err := k.bank.SendNative(sender, k.vault.Address, amount); err != nil {
			return err
		}

		// Value contributed to the basket, net of swap fees. Staking the
		// primary slot is feeless.
		contributed := sdkmath.ZeroInt()
		for i, con := range k.composition {
			portion := amount.MulRaw(int64(con.Weight)).QuoRaw(types.WeightTotal)
			if !portion.IsPositive() {
				continue
			}
			if i == types.PrimarySlot {
				if _, err := k.staking.Deposit(k.vault.Address, portion); err != nil {
					return err
				}
				contributed = contributed.Add(portion)
				continue
			}
			res, err := k.ExecuteSwap(types.BaseAsset, con.Asset, portion, sdkmath.ZeroInt())
			if err != nil {
				return err
			}
			fee := utils.FeeTierAmount(portion, res.FeeTierUsed)
			contributed = contributed.Add(portion.Sub(fee))
		}

		shares, err := utils.CalculateMintShares(contributed, priorAUM, priorSupply)
		if err != nil {
			return types.ErrZeroAUM.Wrap(err.Error())
		}
		if err := k.shares.Mint(k.vault.Address, sender, shares); err != nil {
			return err
		}
		minted = shares
		k.emitEvent(types.NewEventMinted(sender, amount, shares))
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, err
	}

	k.logger.Info("minted shares", "sender", sender.Hex(), "amount_in", amount.String(), "shares", minted.String())
	return minted, nil
}

package keeper

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
	"github.com/basketfi/basket/utils"
)

// Redeem burns the sender's shares for a pro-rata slice of every constituent
// balance, minus the treasury fee in basis points. The primary slot is
// unstaked and paid in base asset; every other slot is paid in kind. All
// payouts land before the shares burn, and any transfer failure rolls the
// whole redemption back.
func (k *Keeper) Redeem(sender common.Address, shareAmount sdkmath.Int) error {
	release, err := k.acquireLock()
	if err != nil {
		return err
	}
	defer release()

	if err := k.requireActive(); err != nil {
		return err
	}

	supply := k.shares.TotalSupply()
	if !supply.IsPositive() {
		return types.ErrEmptyVault
	}
	if !shareAmount.IsPositive() || shareAmount.GT(k.shares.BalanceOf(sender)) {
		return types.ErrInvalidRedemptionAmount.Wrapf("requested %s, balance %s", shareAmount, k.shares.BalanceOf(sender))
	}

	err = k.withTransaction(func() error {
		for i, con := range k.composition {
			balance := k.bank.GetBalance(con.Asset, k.vault.Address)
			shareOf, err := utils.CalculateProRataShare(balance, shareAmount, supply)
			if err != nil {
				return err
			}
			if !shareOf.IsPositive() {
				continue
			}

			if i == types.PrimarySlot {
				baseOut, err := k.staking.Withdraw(k.vault.Address, shareOf)
				if err != nil {
					return err
				}
				fee := utils.BpsFee(baseOut, types.TreasuryFeeBps)
				if err := k.bank.SendNative(k.vault.Address, sender, baseOut.Sub(fee)); err != nil {
					return types.ErrRedemptionTransferFailed.Wrapf("asset %s: %v", con.Asset.Hex(), err)
				}
				if fee.IsPositive() {
					if err := k.bank.SendNative(k.vault.Address, k.vault.Treasury, fee); err != nil {
						return types.ErrTreasuryTransferFailed.Wrapf("asset %s: %v", con.Asset.Hex(), err)
					}
				}
				continue
			}

			fee := utils.BpsFee(shareOf, types.TreasuryFeeBps)
			if err := k.bank.SendToken(con.Asset, k.vault.Address, sender, shareOf.Sub(fee)); err != nil {
				return types.ErrRedemptionTransferFailed.Wrapf("asset %s: %v", con.Asset.Hex(), err)
			}
			if fee.IsPositive() {
				if err := k.bank.SendToken(con.Asset, k.vault.Address, k.vault.Treasury, fee); err != nil {
					return types.ErrTreasuryTransferFailed.Wrapf("asset %s: %v", con.Asset.Hex(), err)
				}
			}
		}

		// Burn last: every payout above must have landed first.
		if err := k.shares.Burn(k.vault.Address, sender, shareAmount); err != nil {
			return err
		}
		k.emitEvent(types.NewEventRedeemed(sender, shareAmount))
		return nil
	})
	if err != nil {
		return err
	}

	k.logger.Info("redeemed shares", "sender", sender.Hex(), "shares", shareAmount.String())
	return nil
}

package keeper

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
)

// Composition returns the current constituent registry.
func (k *Keeper) Composition() types.Composition {
	return k.composition
}

// Vault returns the vault configuration.
func (k *Keeper) Vault() types.Vault {
	return k.vault
}

// ShareSupply returns the outstanding share supply.
func (k *Keeper) ShareSupply() sdkmath.Int {
	return k.shares.TotalSupply()
}

// ShareBalance returns the share balance held by addr.
func (k *Keeper) ShareBalance(addr common.Address) sdkmath.Int {
	return k.shares.BalanceOf(addr)
}

// ConstituentBalance returns the vault's holding of one constituent.
func (k *Keeper) ConstituentBalance(asset common.Address) sdkmath.Int {
	return k.bank.GetBalance(asset, k.vault.Address)
}

// SharePrice returns the base value of one whole share, floor, or zero when no
// shares are outstanding.
func (k *Keeper) SharePrice() (sdkmath.Int, error) {
	supply := k.shares.TotalSupply()
	if !supply.IsPositive() {
		return sdkmath.ZeroInt(), nil
	}
	total, err := k.AUM()
	if err != nil {
		return sdkmath.Int{}, err
	}
	return total.Mul(types.OneShare).Quo(supply), nil
}

// Events returns every event emitted so far, in emission order.
func (k *Keeper) Events() []types.Event {
	return k.events.Events()
}

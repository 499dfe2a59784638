package types

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// BankKeeper defines the balance-ledger functionality the basket keeper needs:
// native (base asset) and token balances, transfers, and allowances for the
// swap router. Implementations must support snapshot/revert so a failed
// operation rolls back every balance change it made.
type BankKeeper interface {
	GetNativeBalance(addr common.Address) sdkmath.Int
	SendNative(from, to common.Address, amount sdkmath.Int) error

	GetBalance(token, addr common.Address) sdkmath.Int
	SendToken(token, from, to common.Address, amount sdkmath.Int) error
	Approve(token, owner, spender common.Address, amount sdkmath.Int)

	Snapshotter
}

// Snapshotter is implemented by state that participates in the keeper's
// explicit transactional rollback. Snapshots must be either reverted or
// discarded; a committed scope discards its snapshot so the implementation
// can release the copy.
type Snapshotter interface {
	Snapshot() int
	RevertToSnapshot(id int)
	DiscardSnapshot(id int)
}

// SwapRouter is the external routing venue: swap an exact input amount at a
// single fee tier, enforcing the caller's minimum output. The router pulls
// amountIn from the caller (native directly, tokens via prior approval) and
// pays amountOut to the caller.
type SwapRouter interface {
	Address() common.Address
	SwapExactIn(caller common.Address, assetIn, assetOut common.Address, amountIn, minAmountOut sdkmath.Int, feeTier uint32) (sdkmath.Int, error)
}

// PoolReader is the read-only price source: the current fixed-point price
// state of the (asset, base) pool at a fee tier. The boolean is false when no
// pool exists at that tier.
type PoolReader interface {
	SqrtPriceX96(asset common.Address, feeTier uint32) (*uint256.Int, bool)
}

// StakingWrapper is the liquid-staking collaborator backing the primary
// constituent: deposit base value for wrapped-stake balance, withdraw wrapped
// balance back to base value at the current exchange rate.
type StakingWrapper interface {
	WrappedToken() common.Address
	ExchangeRate() sdkmath.LegacyDec
	Deposit(caller common.Address, baseAmount sdkmath.Int) (sdkmath.Int, error)
	Withdraw(caller common.Address, wrappedAmount sdkmath.Int) (sdkmath.Int, error)
}

// ShareKeeper is the external share token. Mint and burn are capability
// checks: only the vault address that owns the token may invoke them.
type ShareKeeper interface {
	TotalSupply() sdkmath.Int
	BalanceOf(addr common.Address) sdkmath.Int
	Mint(caller, to common.Address, amount sdkmath.Int) error
	Burn(caller, from common.Address, amount sdkmath.Int) error
}

package types

import "cosmossdk.io/errors"

var (
	// ErrInvalidTokenList indicates a candidate composition failed validation.
	ErrInvalidTokenList = errors.Register(ModuleName, 2, "invalid token list")
	// ErrInvalidWeights indicates constituent weights are zero or do not sum to 100.
	ErrInvalidWeights = errors.Register(ModuleName, 3, "invalid weights")
	// ErrMinimumAmountToMint indicates a deposit below the minimum mint amount.
	ErrMinimumAmountToMint = errors.Register(ModuleName, 4, "deposit below minimum mint amount")
	// ErrEmptyVault indicates a redemption against a vault with zero share supply.
	ErrEmptyVault = errors.Register(ModuleName, 5, "vault has no outstanding shares")
	// ErrInvalidRedemptionAmount indicates the caller holds fewer shares than requested.
	ErrInvalidRedemptionAmount = errors.Register(ModuleName, 6, "invalid redemption amount")
	// ErrRedemptionTransferFailed indicates a constituent payout transfer failed.
	ErrRedemptionTransferFailed = errors.Register(ModuleName, 7, "redemption transfer failed")
	// ErrTreasuryTransferFailed indicates a treasury fee transfer failed.
	ErrTreasuryTransferFailed = errors.Register(ModuleName, 8, "treasury transfer failed")
	// ErrOnlyTreasury indicates a privileged call from a non-treasury address.
	ErrOnlyTreasury = errors.Register(ModuleName, 9, "caller is not the treasury")
	// ErrPoolDoesNotExist indicates no pool exists at the requested fee tier.
	ErrPoolDoesNotExist = errors.Register(ModuleName, 10, "pool does not exist")
	// ErrNegativePrice indicates a zero or degenerate pool price state.
	ErrNegativePrice = errors.Register(ModuleName, 11, "negative or zero price")
	// ErrRebalancingFailed indicates post-correction weights still exceed the deviation bound.
	ErrRebalancingFailed = errors.Register(ModuleName, 12, "rebalancing failed")
	// ErrTokenNotConstituent indicates an operation referenced an asset outside the basket.
	ErrTokenNotConstituent = errors.Register(ModuleName, 13, "token is not a constituent")
	// ErrSwapFailed indicates every fee tier in the fallback chain was exhausted.
	ErrSwapFailed = errors.Register(ModuleName, 14, "swap failed at all fee tiers")
	// ErrReentrantCall indicates a guarded entry point was re-entered.
	ErrReentrantCall = errors.Register(ModuleName, 15, "reentrant call")
	// ErrVaultPaused indicates the vault is paused.
	ErrVaultPaused = errors.Register(ModuleName, 16, "vault is paused")
	// ErrZeroAUM indicates nonzero share supply with zero valuation. This is an
	// invariant violation: supply > 0 implies AUM > 0 by construction, so
	// hitting it means a malformed price source or an ordering bug.
	ErrZeroAUM = errors.Register(ModuleName, 17, "zero AUM with nonzero share supply")
	// ErrInsufficientBudget indicates the rebalance correction budget was exhausted.
	ErrInsufficientBudget = errors.Register(ModuleName, 18, "insufficient correction budget")
)

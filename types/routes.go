package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// SwapRoute is one operator-supplied trade executed verbatim during a
// rebalance, before the automatic correction pass runs.
type SwapRoute struct {
	AssetIn      common.Address
	AssetOut     common.Address
	AmountIn     sdkmath.Int
	MinAmountOut sdkmath.Int
}

// Validate rejects degenerate routes before any state is touched.
func (r SwapRoute) Validate() error {
	if r.AssetIn == r.AssetOut {
		return fmt.Errorf("route swaps %s into itself", r.AssetIn.Hex())
	}
	if r.AmountIn.IsNil() || !r.AmountIn.IsPositive() {
		return fmt.Errorf("route amount in must be positive")
	}
	if r.MinAmountOut.IsNil() || r.MinAmountOut.IsNegative() {
		return fmt.Errorf("route minimum out must not be negative")
	}
	return nil
}

package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
)

func (s *KeeperTestSuite) TestSwapUsesPinnedTier() {
	s.ledger.MintNative(vaultAddr, e18(1))

	res, err := s.keeper.ExecuteSwap(types.BaseAsset, s.assets[0], e18(1), e18(1).QuoRaw(2))
	s.Require().NoError(err)
	s.Require().Equal(types.FeeTier3000, res.FeeTierUsed)
	s.Require().True(res.AmountOut.IsPositive())
	s.Require().Equal(res.AmountOut, s.ledger.GetBalance(s.assets[0], vaultAddr))
}

func (s *KeeperTestSuite) TestSwapFallsBackThroughTiers() {
	// assets[7] pins tier 3000 but only has a 500 pool: attempts walk
	// 3000 -> 10000 -> 500 and report the tier that actually served.
	s.ledger.MintNative(vaultAddr, e18(1))

	res, err := s.keeper.ExecuteSwap(types.BaseAsset, s.assets[7], e18(1), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(types.FeeTier500, res.FeeTierUsed)
	s.Require().True(res.AmountOut.IsPositive())
}

func (s *KeeperTestSuite) TestSwapExhaustionIsTyped() {
	s.ledger.MintNative(vaultAddr, e18(1))

	unknown := common.BytesToAddress([]byte{0xDE, 0xAD})
	_, err := s.keeper.ExecuteSwap(types.BaseAsset, unknown, e18(1), sdkmath.ZeroInt())
	s.Require().ErrorIs(err, types.ErrSwapFailed)
}

func (s *KeeperTestSuite) TestSwapFailedAttemptLeavesNoResidue() {
	s.ledger.MintNative(vaultAddr, e18(1))
	vaultBase := s.ledger.GetNativeBalance(vaultAddr)

	unknown := common.BytesToAddress([]byte{0xDE, 0xAD})
	_, err := s.keeper.ExecuteSwap(types.BaseAsset, unknown, e18(1), sdkmath.ZeroInt())
	s.Require().Error(err)
	s.Require().Equal(vaultBase, s.ledger.GetNativeBalance(vaultAddr))
}

func (s *KeeperTestSuite) TestTokenToTokenHopsThroughBase() {
	// Fund the vault with assets[0] by swapping into it, then route
	// assets[0] -> assets[1] as a two-leg trade.
	s.ledger.MintNative(vaultAddr, e18(2))
	first, err := s.keeper.ExecuteSwap(types.BaseAsset, s.assets[0], e18(1), sdkmath.ZeroInt())
	s.Require().NoError(err)

	res, err := s.keeper.ExecuteSwap(s.assets[0], s.assets[1], first.AmountOut, sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().True(res.AmountOut.IsPositive())
	s.Require().Equal(res.AmountOut, s.ledger.GetBalance(s.assets[1], vaultAddr))
	s.Require().True(s.ledger.GetBalance(s.assets[0], vaultAddr).IsZero())
}

func (s *KeeperTestSuite) TestSwapEmitsEventWithServingTier() {
	s.ledger.MintNative(vaultAddr, e18(1))

	_, err := s.keeper.ExecuteSwap(types.BaseAsset, s.assets[7], e18(1), sdkmath.ZeroInt())
	s.Require().NoError(err)

	events := s.keeper.Events()
	s.Require().NotEmpty(events)
	swap, ok := events[len(events)-1].(*types.EventSwapExecuted)
	s.Require().True(ok)
	s.Require().Equal(types.FeeTier500, swap.FeeTier)
	s.Require().Equal(types.BaseAsset.Hex(), swap.AssetIn)
	s.Require().Equal(s.assets[7].Hex(), swap.AssetOut)
}

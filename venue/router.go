// Package venue simulates the external collaborators the vault calls out to:
// a fee-tiered swap router over base-quoted liquidity pools, and the liquid
// staking wrapper backing the primary constituent. All reserves and balances
// live in the shared ledger, so the keeper's snapshot/revert covers venue
// state with no extra bookkeeping here.
package venue

import (
	"errors"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/basketfi/basket/ledger"
)

var (
	ErrPoolNotFound          = errors.New("venue: no pool at requested fee tier")
	ErrUnsupportedPair       = errors.New("venue: one side of the pair must be the base asset")
	ErrInvalidAmount         = errors.New("venue: amount in must be positive")
	ErrInsufficientLiquidity = errors.New("venue: insufficient pool liquidity")
	ErrSlippage              = errors.New("venue: output below minimum")
)

var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

type poolKey struct {
	asset   common.Address
	feeTier uint32
}

// pool is one base-quoted liquidity pool. Reserves are the pool address's
// ledger balances; the struct itself is immutable.
type pool struct {
	addr    common.Address
	asset   common.Address
	feeTier uint32
}

// Router is the swap routing venue: exact-input swaps against base-quoted
// pools at enumerated fee tiers, plus the read-only price state consumed by
// the valuation engine.
type Router struct {
	addr   common.Address
	ledger *ledger.Ledger
	pools  map[poolKey]*pool
}

// NewRouter creates a router holding no pools.
func NewRouter(addr common.Address, l *ledger.Ledger) *Router {
	return &Router{
		addr:   addr,
		ledger: l,
		pools:  make(map[poolKey]*pool),
	}
}

// Address returns the router's ledger address, the spender of swap allowances.
func (r *Router) Address() common.Address {
	return r.addr
}

// AddPool registers a (asset, base) pool at a fee tier. The pool address is
// the ledger account holding its reserves; fund it through the ledger.
func (r *Router) AddPool(asset common.Address, feeTier uint32, poolAddr common.Address) {
	r.pools[poolKey{asset: asset, feeTier: feeTier}] = &pool{
		addr:    poolAddr,
		asset:   asset,
		feeTier: feeTier,
	}
}

// PoolAddress returns the ledger address of the (asset, feeTier) pool.
func (r *Router) PoolAddress(asset common.Address, feeTier uint32) (common.Address, bool) {
	p, ok := r.pools[poolKey{asset: asset, feeTier: feeTier}]
	if !ok {
		return common.Address{}, false
	}
	return p.addr, true
}

// SqrtPriceX96 returns the pool's current price state in the Q64.96 square
// root representation: sqrt(baseReserve / assetReserve) << 96, over raw
// ledger units. The boolean is false when no pool exists at the tier. An
// empty pool reads as a zero price; the valuation engine rejects that as
// degenerate rather than dividing by it.
func (r *Router) SqrtPriceX96(asset common.Address, feeTier uint32) (*uint256.Int, bool) {
	p, ok := r.pools[poolKey{asset: asset, feeTier: feeTier}]
	if !ok {
		return nil, false
	}
	baseReserve := r.ledger.GetNativeBalance(p.addr)
	assetReserve := r.ledger.GetBalance(p.asset, p.addr)
	if !baseReserve.IsPositive() || !assetReserve.IsPositive() {
		return uint256.NewInt(0), true
	}
	ratio := new(big.Int).Mul(baseReserve.BigInt(), q192)
	ratio.Quo(ratio, assetReserve.BigInt())
	sqrtPrice, overflow := uint256.FromBig(new(big.Int).Sqrt(ratio))
	if overflow {
		return uint256.NewInt(0), true
	}
	return sqrtPrice, true
}

// SwapExactIn swaps an exact input amount at a single fee tier. One side of
// the pair must be the base asset. The router pulls amountIn from the caller
// (native directly, tokens via allowance), applies the tier fee, prices the
// output against pre-swap reserves, enforces minAmountOut, and pays the
// caller from the pool.
func (r *Router) SwapExactIn(caller common.Address, assetIn, assetOut common.Address, amountIn, minAmountOut math.Int, feeTier uint32) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.Int{}, ErrInvalidAmount
	}

	baseIn := assetIn == (common.Address{})
	baseOut := assetOut == (common.Address{})
	if baseIn == baseOut {
		return math.Int{}, ErrUnsupportedPair
	}

	tokenSide := assetIn
	if baseIn {
		tokenSide = assetOut
	}
	p, ok := r.pools[poolKey{asset: tokenSide, feeTier: feeTier}]
	if !ok {
		return math.Int{}, ErrPoolNotFound
	}

	baseReserve := r.ledger.GetNativeBalance(p.addr)
	assetReserve := r.ledger.GetBalance(p.asset, p.addr)
	if !baseReserve.IsPositive() || !assetReserve.IsPositive() {
		return math.Int{}, ErrInsufficientLiquidity
	}

	reserveIn, reserveOut := baseReserve, assetReserve
	if !baseIn {
		reserveIn, reserveOut = assetReserve, baseReserve
	}

	fee := amountIn.Mul(math.NewInt(int64(feeTier))).Quo(math.NewInt(1_000_000))
	inAfterFee := amountIn.Sub(fee)
	amountOut := reserveOut.Mul(inAfterFee).Quo(reserveIn.Add(inAfterFee))
	if !amountOut.IsPositive() {
		return math.Int{}, ErrInsufficientLiquidity
	}
	if amountOut.LT(minAmountOut) {
		return math.Int{}, ErrSlippage
	}

	if baseIn {
		if err := r.ledger.SendNative(caller, p.addr, amountIn); err != nil {
			return math.Int{}, err
		}
		if err := r.ledger.SendToken(p.asset, p.addr, caller, amountOut); err != nil {
			return math.Int{}, err
		}
	} else {
		if err := r.ledger.TransferFrom(p.asset, r.addr, caller, p.addr, amountIn); err != nil {
			return math.Int{}, err
		}
		if err := r.ledger.SendNative(p.addr, caller, amountOut); err != nil {
			return math.Int{}, err
		}
	}
	return amountOut, nil
}

package venue

import (
	"errors"
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/ledger"
	"github.com/basketfi/basket/utils"
)

const (
	// SecondsPerYear converts accrual durations into years.
	SecondsPerYear = 31_536_000

	// EulerPrecision is the number of Maclaurin terms used for e^x.
	EulerPrecision = 18
)

var ErrInsufficientBacking = errors.New("venue: staking wrapper backing below withdrawal")

// StakingWrapper is the liquid-staking collaborator: deposits of base value
// mint a wrapped-stake token at the current exchange rate, withdrawals burn
// it back to base. The rate only ever grows, by continuous compounding of a
// configured annual rate.
type StakingWrapper struct {
	addr   common.Address
	token  common.Address
	ledger *ledger.Ledger
	rate   math.LegacyDec
}

// NewStakingWrapper registers the wrapped-stake token (18 decimals, minted
// only by the wrapper) and returns the wrapper at a 1.0 exchange rate.
func NewStakingWrapper(addr, tokenAddr common.Address, l *ledger.Ledger) (*StakingWrapper, error) {
	if err := l.RegisterToken(tokenAddr, 18, addr); err != nil {
		return nil, err
	}
	return &StakingWrapper{
		addr:   addr,
		token:  tokenAddr,
		ledger: l,
		rate:   math.LegacyOneDec(),
	}, nil
}

// WrappedToken returns the wrapped-stake token address.
func (w *StakingWrapper) WrappedToken() common.Address {
	return w.token
}

// ExchangeRate returns the current base-per-wrapped exchange rate.
func (w *StakingWrapper) ExchangeRate() math.LegacyDec {
	return w.rate
}

// Deposit moves base value from the caller into the wrapper and mints the
// wrapped balance it buys at the current rate (floor).
func (w *StakingWrapper) Deposit(caller common.Address, baseAmount math.Int) (math.Int, error) {
	if !baseAmount.IsPositive() {
		return math.Int{}, ErrInvalidAmount
	}
	if err := w.ledger.SendNative(caller, w.addr, baseAmount); err != nil {
		return math.Int{}, err
	}
	wrapped := math.LegacyNewDecFromInt(baseAmount).Quo(w.rate).TruncateInt()
	if err := w.ledger.MintToken(w.addr, w.token, caller, wrapped); err != nil {
		return math.Int{}, err
	}
	return wrapped, nil
}

// Withdraw burns the caller's wrapped balance and pays out the base value it
// represents at the current rate (floor).
func (w *StakingWrapper) Withdraw(caller common.Address, wrappedAmount math.Int) (math.Int, error) {
	if !wrappedAmount.IsPositive() {
		return math.Int{}, ErrInvalidAmount
	}
	if err := w.ledger.BurnToken(w.addr, w.token, caller, wrappedAmount); err != nil {
		return math.Int{}, err
	}
	base := w.rate.MulInt(wrappedAmount).TruncateInt()
	if w.ledger.GetNativeBalance(w.addr).LT(base) {
		return math.Int{}, ErrInsufficientBacking
	}
	if err := w.ledger.SendNative(w.addr, caller, base); err != nil {
		return math.Int{}, err
	}
	return base, nil
}

// Accrue advances the exchange rate by continuous compounding, e^(rt), and
// mints the staking reward into the wrapper so outstanding wrapped balances
// stay fully backed.
//
//	rate' = rate * e^(annualRate * seconds / SecondsPerYear)
func (w *StakingWrapper) Accrue(annualRate string, seconds int64) error {
	if seconds <= 0 {
		return nil
	}
	r, err := math.LegacyNewDecFromStr(annualRate)
	if err != nil {
		return fmt.Errorf("invalid annual rate %q: %w", annualRate, err)
	}
	t := math.LegacyNewDec(seconds).QuoInt64(SecondsPerYear)
	growth := utils.ExpDec(r.Mul(t), EulerPrecision)
	w.rate = w.rate.Mul(growth)

	supply := w.ledger.TotalSupply(w.token)
	required := w.rate.MulInt(supply).Ceil().TruncateInt()
	backing := w.ledger.GetNativeBalance(w.addr)
	if required.GT(backing) {
		w.ledger.MintNative(w.addr, required.Sub(backing))
	}
	return nil
}

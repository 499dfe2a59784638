// Package ledger is an in-process balance ledger for the basket vault: native
// (base asset) balances, token balances with allowances, and owner-gated
// mint/burn. Every mutation happens between Snapshot/RevertToSnapshot marks so
// a failed vault operation rolls back all balance changes it made, matching
// the all-or-nothing semantics the engines assume.
package ledger

import (
	"errors"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientFunds     = errors.New("ledger: insufficient funds")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")
	ErrUnknownToken          = errors.New("ledger: unknown token")
	ErrTokenExists           = errors.New("ledger: token already registered")
	ErrUnauthorizedMinter    = errors.New("ledger: caller may not mint or burn this token")
	ErrInvalidAmount         = errors.New("ledger: amount must not be negative")
)

// TransferHook runs after a token transfer has been applied. A non-nil error
// fails the transfer; callers are expected to revert to their last snapshot.
// Hooks are how tests model token contracts with receive callbacks.
type TransferHook func(token, from, to common.Address, amount math.Int) error

type token struct {
	decimals   uint8
	minter     common.Address
	supply     math.Int
	balances   map[common.Address]math.Int
	allowances map[common.Address]map[common.Address]math.Int
}

func (t *token) clone() *token {
	cp := &token{
		decimals:   t.decimals,
		minter:     t.minter,
		supply:     t.supply,
		balances:   make(map[common.Address]math.Int, len(t.balances)),
		allowances: make(map[common.Address]map[common.Address]math.Int, len(t.allowances)),
	}
	for addr, bal := range t.balances {
		cp.balances[addr] = bal
	}
	for owner, spenders := range t.allowances {
		inner := make(map[common.Address]math.Int, len(spenders))
		for spender, amt := range spenders {
			inner[spender] = amt
		}
		cp.allowances[owner] = inner
	}
	return cp
}

type snapshot struct {
	native map[common.Address]math.Int
	tokens map[common.Address]*token
}

// Ledger holds all balances. It is not safe for concurrent use; the execution
// model is one operation at a time (reentrancy is handled by the keeper's
// guard, not here).
type Ledger struct {
	native    map[common.Address]math.Int
	tokens    map[common.Address]*token
	hooks     map[common.Address]TransferHook
	snapshots []snapshot
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		native: make(map[common.Address]math.Int),
		tokens: make(map[common.Address]*token),
		hooks:  make(map[common.Address]TransferHook),
	}
}

// RegisterToken registers a token with its decimal precision and the sole
// address allowed to mint and burn it.
func (l *Ledger) RegisterToken(addr common.Address, decimals uint8, minter common.Address) error {
	if _, ok := l.tokens[addr]; ok {
		return ErrTokenExists
	}
	l.tokens[addr] = &token{
		decimals:   decimals,
		minter:     minter,
		supply:     math.ZeroInt(),
		balances:   make(map[common.Address]math.Int),
		allowances: make(map[common.Address]map[common.Address]math.Int),
	}
	return nil
}

// TokenDecimals returns a registered token's decimal precision.
func (l *Ledger) TokenDecimals(addr common.Address) (uint8, bool) {
	t, ok := l.tokens[addr]
	if !ok {
		return 0, false
	}
	return t.decimals, true
}

// SetTransferHook installs a post-transfer hook for a token. Hooks survive
// snapshots; they are wiring, not state.
func (l *Ledger) SetTransferHook(tokenAddr common.Address, hook TransferHook) {
	l.hooks[tokenAddr] = hook
}

// MintNative credits native balance out of thin air. Used for account funding
// and staking yield; vault operations never call it.
func (l *Ledger) MintNative(to common.Address, amount math.Int) {
	l.native[to] = l.nativeOf(to).Add(amount)
}

// GetNativeBalance returns the native balance of addr.
func (l *Ledger) GetNativeBalance(addr common.Address) math.Int {
	return l.nativeOf(addr)
}

// SendNative moves native balance between accounts.
func (l *Ledger) SendNative(from, to common.Address, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	bal := l.nativeOf(from)
	if bal.LT(amount) {
		return ErrInsufficientFunds
	}
	l.native[from] = bal.Sub(amount)
	l.native[to] = l.nativeOf(to).Add(amount)
	return nil
}

// GetBalance returns addr's balance of a token. Unknown tokens read as zero.
func (l *Ledger) GetBalance(tokenAddr, addr common.Address) math.Int {
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return math.ZeroInt()
	}
	return balanceOf(t, addr)
}

// TotalSupply returns a token's total supply.
func (l *Ledger) TotalSupply(tokenAddr common.Address) math.Int {
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return math.ZeroInt()
	}
	return t.supply
}

// SendToken moves token balance between accounts and then runs the token's
// transfer hook, if any. A hook failure fails the transfer.
func (l *Ledger) SendToken(tokenAddr, from, to common.Address, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return ErrUnknownToken
	}
	bal := balanceOf(t, from)
	if bal.LT(amount) {
		return ErrInsufficientFunds
	}
	t.balances[from] = bal.Sub(amount)
	t.balances[to] = balanceOf(t, to).Add(amount)

	if hook, ok := l.hooks[tokenAddr]; ok && hook != nil {
		if err := hook(tokenAddr, from, to, amount); err != nil {
			return err
		}
	}
	return nil
}

// Approve sets spender's allowance over owner's token balance.
func (l *Ledger) Approve(tokenAddr, owner, spender common.Address, amount math.Int) {
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return
	}
	inner, ok := t.allowances[owner]
	if !ok {
		inner = make(map[common.Address]math.Int)
		t.allowances[owner] = inner
	}
	inner[spender] = amount
}

// Allowance returns spender's remaining allowance over owner's balance.
func (l *Ledger) Allowance(tokenAddr, owner, spender common.Address) math.Int {
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return math.ZeroInt()
	}
	inner, ok := t.allowances[owner]
	if !ok {
		return math.ZeroInt()
	}
	amt, ok := inner[spender]
	if !ok {
		return math.ZeroInt()
	}
	return amt
}

// TransferFrom spends spender's allowance to move owner's tokens.
func (l *Ledger) TransferFrom(tokenAddr, spender, owner, to common.Address, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	allowed := l.Allowance(tokenAddr, owner, spender)
	if allowed.LT(amount) {
		return ErrInsufficientAllowance
	}
	if err := l.SendToken(tokenAddr, owner, to, amount); err != nil {
		return err
	}
	l.tokens[tokenAddr].allowances[owner][spender] = allowed.Sub(amount)
	return nil
}

// MintToken mints new supply to an account. Only the token's registered
// minter may call it.
func (l *Ledger) MintToken(caller, tokenAddr, to common.Address, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return ErrUnknownToken
	}
	if caller != t.minter {
		return ErrUnauthorizedMinter
	}
	t.balances[to] = balanceOf(t, to).Add(amount)
	t.supply = t.supply.Add(amount)
	return nil
}

// BurnToken burns supply from an account. Only the token's registered minter
// may call it.
func (l *Ledger) BurnToken(caller, tokenAddr, from common.Address, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	t, ok := l.tokens[tokenAddr]
	if !ok {
		return ErrUnknownToken
	}
	if caller != t.minter {
		return ErrUnauthorizedMinter
	}
	bal := balanceOf(t, from)
	if bal.LT(amount) {
		return ErrInsufficientFunds
	}
	t.balances[from] = bal.Sub(amount)
	t.supply = t.supply.Sub(amount)
	return nil
}

// Snapshot records the full ledger state and returns an id for revert.
func (l *Ledger) Snapshot() int {
	snap := snapshot{
		native: make(map[common.Address]math.Int, len(l.native)),
		tokens: make(map[common.Address]*token, len(l.tokens)),
	}
	for addr, bal := range l.native {
		snap.native[addr] = bal
	}
	for addr, t := range l.tokens {
		snap.tokens[addr] = t.clone()
	}
	l.snapshots = append(l.snapshots, snap)
	return len(l.snapshots) - 1
}

// RevertToSnapshot restores the ledger to a snapshot and discards it together
// with every later snapshot. An unknown id is ignored.
func (l *Ledger) RevertToSnapshot(id int) {
	if id < 0 || id >= len(l.snapshots) {
		return
	}
	snap := l.snapshots[id]
	l.native = snap.native
	l.tokens = snap.tokens
	l.snapshots = l.snapshots[:id]
}

// DiscardSnapshot drops a snapshot, and any taken after it, without restoring
// state. Callers release their revert point this way once the work it covered
// has committed, so successful operations do not pin deep copies for the life
// of the ledger. An unknown id is ignored.
func (l *Ledger) DiscardSnapshot(id int) {
	if id < 0 || id >= len(l.snapshots) {
		return
	}
	l.snapshots = l.snapshots[:id]
}

func (l *Ledger) nativeOf(addr common.Address) math.Int {
	bal, ok := l.native[addr]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func balanceOf(t *token, addr common.Address) math.Int {
	bal, ok := t.balances[addr]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

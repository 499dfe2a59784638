package ledger

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// ShareToken is the vault's fungible share token over the ledger. Mint and
// burn are gated to the vault address registered as the token's minter; this
// is a capability check on the caller, not ownership inheritance.
type ShareToken struct {
	ledger *Ledger
	token  common.Address
}

// NewShareToken registers the share token (18 decimals) with the vault as its
// sole minter and returns the accessor.
func NewShareToken(l *Ledger, tokenAddr, vault common.Address) (*ShareToken, error) {
	if err := l.RegisterToken(tokenAddr, 18, vault); err != nil {
		return nil, err
	}
	return &ShareToken{ledger: l, token: tokenAddr}, nil
}

// Address returns the share token's ledger address.
func (s *ShareToken) Address() common.Address {
	return s.token
}

// TotalSupply returns the outstanding share supply.
func (s *ShareToken) TotalSupply() math.Int {
	return s.ledger.TotalSupply(s.token)
}

// BalanceOf returns addr's share balance.
func (s *ShareToken) BalanceOf(addr common.Address) math.Int {
	return s.ledger.GetBalance(s.token, addr)
}

// Mint mints shares to an account; only the vault may call it.
func (s *ShareToken) Mint(caller, to common.Address, amount math.Int) error {
	return s.ledger.MintToken(caller, s.token, to, amount)
}

// Burn burns shares from an account; only the vault may call it.
func (s *ShareToken) Burn(caller, from common.Address, amount math.Int) error {
	return s.ledger.BurnToken(caller, s.token, from, amount)
}

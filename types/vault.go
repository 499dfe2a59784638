package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Vault holds the identity and configuration of a basket vault: the vault's
// own ledger address, the treasury/operator address that collects redemption
// fees and is authorized to rebalance, the share token, and the primary
// wrapped-stake asset pinned in slot 0.
type Vault struct {
	Address    common.Address
	Treasury   common.Address
	ShareToken common.Address
	Primary    common.Address
	Paused     bool
}

// NewVault creates a vault configuration.
func NewVault(address, treasury, shareToken, primary common.Address) Vault {
	return Vault{
		Address:    address,
		Treasury:   treasury,
		ShareToken: shareToken,
		Primary:    primary,
	}
}

// Validate performs basic validation on the vault fields.
func (v Vault) Validate() error {
	if v.Address == (common.Address{}) {
		return fmt.Errorf("vault address is required")
	}
	if v.Treasury == (common.Address{}) {
		return fmt.Errorf("treasury address is required")
	}
	if v.ShareToken == (common.Address{}) {
		return fmt.Errorf("share token address is required")
	}
	if v.Primary == (common.Address{}) {
		return fmt.Errorf("primary asset address is required")
	}
	if v.Address == v.Treasury {
		return fmt.Errorf("vault and treasury addresses must differ")
	}
	return nil
}

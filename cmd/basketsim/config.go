package main

import (
	"fmt"
	"os"

	sdkmath "cosmossdk.io/math"
	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
)

// Scenario is a full simulation script: the vault wiring, the liquidity
// landscape, and the ordered steps to drive through it.
type Scenario struct {
	Vault        VaultConfig         `toml:"vault"`
	Constituents []ConstituentConfig `toml:"constituents"`
	Pools        []PoolConfig        `toml:"pools"`
	Accounts     []AccountConfig     `toml:"accounts"`
	Steps        []StepConfig        `toml:"steps"`
}

type VaultConfig struct {
	Address    string `toml:"address"`
	Treasury   string `toml:"treasury"`
	ShareToken string `toml:"share_token"`
	Router     string `toml:"router"`
	Staking    string `toml:"staking"`
	Primary    string `toml:"primary"`
}

type ConstituentConfig struct {
	Weight   uint8  `toml:"weight"`
	Asset    string `toml:"asset"`
	Decimals uint8  `toml:"decimals"`
	FeeTier  uint32 `toml:"fee_tier"`
}

type PoolConfig struct {
	Asset        string `toml:"asset"`
	FeeTier      uint32 `toml:"fee_tier"`
	Address      string `toml:"address"`
	BaseReserve  string `toml:"base_reserve"`
	AssetReserve string `toml:"asset_reserve"`
}

type AccountConfig struct {
	Address string `toml:"address"`
	Balance string `toml:"balance"`
}

// StepConfig is one scripted action. Action selects the operation; the other
// fields apply per action (mint/redeem use actor+amount, accrue uses
// rate+seconds, rebalance uses weights+budget, pause/unpause stand alone).
type StepConfig struct {
	Action  string  `toml:"action"`
	Actor   string  `toml:"actor"`
	Amount  string  `toml:"amount"`
	Rate    string  `toml:"rate"`
	Seconds int64   `toml:"seconds"`
	Weights []uint8 `toml:"weights"`
	Budget  string  `toml:"budget"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	sc := &Scenario{}
	if _, err := toml.DecodeFile(path, sc); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if len(sc.Constituents) != types.NumConstituents {
		return nil, fmt.Errorf("scenario needs exactly %d constituents, got %d", types.NumConstituents, len(sc.Constituents))
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario has no steps")
	}
	return sc, nil
}

// WriteExampleScenario writes a runnable starter scenario to path.
func WriteExampleScenario(path string) error {
	return os.WriteFile(path, []byte(exampleScenario), 0o644)
}

func parseAddr(field, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s: %q is not a hex address", field, value)
	}
	return common.HexToAddress(value), nil
}

func parseAmount(field, value string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(value)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("%s: %q is not an integer amount", field, value)
	}
	return amount, nil
}

const exampleScenario = `# basketsim scenario: bootstrap a vault, let yield accrue, reweight, exit.

[vault]
address     = "0x0000000000000000000000000000000000000b01"
treasury    = "0x0000000000000000000000000000000000000b02"
share_token = "0x0000000000000000000000000000000000000b03"
router      = "0x0000000000000000000000000000000000000b04"
staking     = "0x0000000000000000000000000000000000000b05"
primary     = "0x0000000000000000000000000000000000000a00"

[[constituents]]
weight = 50
asset = "0x0000000000000000000000000000000000000a00"
decimals = 18

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a01"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a02"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a03"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a04"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a05"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a06"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a07"
decimals = 18
fee_tier = 3000

[[constituents]]
weight = 5
asset = "0x0000000000000000000000000000000000000a08"
decimals = 18
fee_tier = 500

[[constituents]]
weight = 10
asset = "0x0000000000000000000000000000000000000a09"
decimals = 6
fee_tier = 3000

[[pools]]
asset = "0x0000000000000000000000000000000000000a01"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c01"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a02"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c02"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a03"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c03"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a04"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c04"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a05"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c05"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a06"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c06"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a07"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c07"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a08"
fee_tier = 500
address = "0x0000000000000000000000000000000000000c08"
base_reserve = "1000000000000000000000000"
asset_reserve = "1000000000000000000000000"

[[pools]]
asset = "0x0000000000000000000000000000000000000a09"
fee_tier = 3000
address = "0x0000000000000000000000000000000000000c09"
base_reserve = "4000000000000000000000000"
asset_reserve = "1000000000000"

[[accounts]]
address = "0x0000000000000000000000000000000000000d01"
balance = "100000000000000000000"

[[accounts]]
address = "0x0000000000000000000000000000000000000b02"
balance = "10000000000000000000"

[[steps]]
action = "mint"
actor = "0x0000000000000000000000000000000000000d01"
amount = "5000000000000000000"

[[steps]]
action = "accrue"
rate = "0.05"
seconds = 31536000

[[steps]]
action = "rebalance"
weights = [50, 10, 5, 5, 5, 5, 5, 5, 5, 5]
budget = "1000000000000000000"

[[steps]]
action = "redeem"
actor = "0x0000000000000000000000000000000000000d01"
amount = "1000000000000000000"
`

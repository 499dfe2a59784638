package main

import (
	"fmt"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	"github.com/basketfi/basket/keeper"
	"github.com/basketfi/basket/ledger"
	"github.com/basketfi/basket/types"
	"github.com/basketfi/basket/venue"
)

// Sim is a fully wired in-process vault: ledger, venues, share token and
// keeper built from a scenario.
type Sim struct {
	ledger  *ledger.Ledger
	router  *venue.Router
	staking *venue.StakingWrapper
	keeper  *keeper.Keeper
	logger  log.Logger
}

// BuildSim constructs the simulation world a scenario describes.
func BuildSim(sc *Scenario, logger log.Logger) (*Sim, error) {
	l := ledger.NewLedger()

	vaultAddr, err := parseAddr("vault.address", sc.Vault.Address)
	if err != nil {
		return nil, err
	}
	treasury, err := parseAddr("vault.treasury", sc.Vault.Treasury)
	if err != nil {
		return nil, err
	}
	shareTok, err := parseAddr("vault.share_token", sc.Vault.ShareToken)
	if err != nil {
		return nil, err
	}
	routerAddr, err := parseAddr("vault.router", sc.Vault.Router)
	if err != nil {
		return nil, err
	}
	stakingAddr, err := parseAddr("vault.staking", sc.Vault.Staking)
	if err != nil {
		return nil, err
	}
	primary, err := parseAddr("vault.primary", sc.Vault.Primary)
	if err != nil {
		return nil, err
	}

	staking, err := venue.NewStakingWrapper(stakingAddr, primary, l)
	if err != nil {
		return nil, err
	}
	router := venue.NewRouter(routerAddr, l)

	candidates := make([]types.Constituent, 0, len(sc.Constituents))
	for i, cc := range sc.Constituents {
		asset, err := parseAddr(fmt.Sprintf("constituents[%d].asset", i), cc.Asset)
		if err != nil {
			return nil, err
		}
		if asset != primary {
			if err := l.RegisterToken(asset, cc.Decimals, routerAddr); err != nil {
				return nil, fmt.Errorf("register constituent %s: %w", cc.Asset, err)
			}
		}
		candidates = append(candidates, types.Constituent{
			Weight:   cc.Weight,
			Asset:    asset,
			Decimals: cc.Decimals,
			FeeTier:  cc.FeeTier,
		})
	}

	for i, pc := range sc.Pools {
		asset, err := parseAddr(fmt.Sprintf("pools[%d].asset", i), pc.Asset)
		if err != nil {
			return nil, err
		}
		poolAddr, err := parseAddr(fmt.Sprintf("pools[%d].address", i), pc.Address)
		if err != nil {
			return nil, err
		}
		baseReserve, err := parseAmount(fmt.Sprintf("pools[%d].base_reserve", i), pc.BaseReserve)
		if err != nil {
			return nil, err
		}
		assetReserve, err := parseAmount(fmt.Sprintf("pools[%d].asset_reserve", i), pc.AssetReserve)
		if err != nil {
			return nil, err
		}
		router.AddPool(asset, pc.FeeTier, poolAddr)
		l.MintNative(poolAddr, baseReserve)
		if err := l.MintToken(routerAddr, asset, poolAddr, assetReserve); err != nil {
			return nil, fmt.Errorf("fund pool %s: %w", pc.Address, err)
		}
	}

	for i, ac := range sc.Accounts {
		addr, err := parseAddr(fmt.Sprintf("accounts[%d].address", i), ac.Address)
		if err != nil {
			return nil, err
		}
		balance, err := parseAmount(fmt.Sprintf("accounts[%d].balance", i), ac.Balance)
		if err != nil {
			return nil, err
		}
		l.MintNative(addr, balance)
	}

	shares, err := ledger.NewShareToken(l, shareTok, vaultAddr)
	if err != nil {
		return nil, err
	}

	vault := types.NewVault(vaultAddr, treasury, shareTok, primary)
	k, err := keeper.NewKeeper(vault, candidates, l, router, router, staking, shares, logger)
	if err != nil {
		return nil, err
	}

	return &Sim{ledger: l, router: router, staking: staking, keeper: k, logger: logger}, nil
}

// Run drives every scenario step in order and prints the closing state.
func (s *Sim) Run(sc *Scenario) error {
	for i, step := range sc.Steps {
		if err := s.runStep(i, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}
	return s.report()
}

func (s *Sim) runStep(i int, step StepConfig) error {
	switch step.Action {
	case "mint":
		actor, err := parseAddr("actor", step.Actor)
		if err != nil {
			return err
		}
		amount, err := parseAmount("amount", step.Amount)
		if err != nil {
			return err
		}
		shares, err := s.keeper.Mint(actor, amount)
		if err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "mint", "shares", shares.String())
		return nil

	case "redeem":
		actor, err := parseAddr("actor", step.Actor)
		if err != nil {
			return err
		}
		amount, err := parseAmount("amount", step.Amount)
		if err != nil {
			return err
		}
		if err := s.keeper.Redeem(actor, amount); err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "redeem", "shares", amount.String())
		return nil

	case "accrue":
		if err := s.staking.Accrue(step.Rate, step.Seconds); err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "accrue",
			"rate", step.Rate, "seconds", step.Seconds,
			"exchange_rate", s.staking.ExchangeRate().String())
		return nil

	case "rebalance":
		if len(step.Weights) != types.NumConstituents {
			return fmt.Errorf("rebalance needs %d weights, got %d", types.NumConstituents, len(step.Weights))
		}
		budget := sdkmath.ZeroInt()
		if step.Budget != "" {
			var err error
			budget, err = parseAmount("budget", step.Budget)
			if err != nil {
				return err
			}
		}
		composition := s.keeper.Composition()
		candidates := make([]types.Constituent, types.NumConstituents)
		for j, con := range composition {
			con.Weight = step.Weights[j]
			candidates[j] = con
		}
		if err := s.keeper.Rebalance(s.keeper.Vault().Treasury, candidates, nil, budget); err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "rebalance", "weights", fmt.Sprint(step.Weights))
		return nil

	case "pause":
		if err := s.keeper.SetPaused(s.keeper.Vault().Treasury, true); err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "pause")
		return nil

	case "unpause":
		if err := s.keeper.SetPaused(s.keeper.Vault().Treasury, false); err != nil {
			return err
		}
		s.logger.Info("step complete", "step", i, "action", "unpause")
		return nil

	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

func (s *Sim) report() error {
	aum, err := s.keeper.AUM()
	if err != nil {
		return err
	}
	price, err := s.keeper.SharePrice()
	if err != nil {
		return err
	}
	s.logger.Info("scenario complete",
		"aum", aum.String(),
		"share_supply", s.keeper.ShareSupply().String(),
		"share_price", price.String(),
		"events", len(s.keeper.Events()))
	for _, ev := range s.keeper.Events() {
		s.logger.Debug("event", "type", ev.EventType(), "detail", fmt.Sprintf("%+v", ev))
	}
	return nil
}

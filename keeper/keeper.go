package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/basketfi/basket/types"
)

// Keeper orchestrates the basket vault: it owns the constituent registry and
// drives the valuation, issuance, redemption and rebalance engines against
// the external collaborators (balance ledger, swap router, price pools,
// staking wrapper, share token).
type Keeper struct {
	vault       types.Vault
	composition types.Composition

	bank    types.BankKeeper
	router  types.SwapRouter
	pools   types.PoolReader
	staking types.StakingWrapper
	shares  types.ShareKeeper

	events *types.EventManager
	logger log.Logger

	// Reentrancy lock: set on entry to every state-mutating entry point,
	// cleared on every exit path.
	locked bool
}

// NewKeeper validates the vault configuration and initial composition and
// wires the keeper to its collaborators.
func NewKeeper(
	vault types.Vault,
	candidates []types.Constituent,
	bank types.BankKeeper,
	router types.SwapRouter,
	pools types.PoolReader,
	staking types.StakingWrapper,
	shares types.ShareKeeper,
	logger log.Logger,
) (*Keeper, error) {
	if err := vault.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault config: %w", err)
	}
	if staking.WrappedToken() != vault.Primary {
		return nil, fmt.Errorf("primary asset %s does not match staking wrapper token %s", vault.Primary.Hex(), staking.WrappedToken().Hex())
	}
	composition, err := types.NewComposition(candidates, vault.Primary)
	if err != nil {
		return nil, err
	}

	return &Keeper{
		vault:       vault,
		composition: composition,
		bank:        bank,
		router:      router,
		pools:       pools,
		staking:     staking,
		shares:      shares,
		events:      types.NewEventManager(),
		logger:      logger.With("module", "x/"+types.ModuleName),
	}, nil
}

// acquireLock engages the reentrancy guard and returns the release closure.
// Callers must defer the release so it runs on every exit path.
func (k *Keeper) acquireLock() (func(), error) {
	if k.locked {
		return nil, types.ErrReentrantCall
	}
	k.locked = true
	return func() { k.locked = false }, nil
}

// withTransaction runs fn inside an explicit transactional scope: ledger
// state, the composition registry, and emitted events are snapshotted up
// front and restored in full if fn fails. This is the compensating rollback
// that an account-based chain runtime would otherwise provide.
func (k *Keeper) withTransaction(fn func() error) error {
	snap := k.bank.Snapshot()
	composition := k.composition
	mark := k.events.Mark()

	if err := fn(); err != nil {
		k.bank.RevertToSnapshot(snap)
		k.composition = composition
		k.events.Rollback(mark)
		return err
	}
	k.bank.DiscardSnapshot(snap)
	return nil
}

func (k *Keeper) emitEvent(ev types.Event) {
	k.events.Emit(ev)
}

// requireTreasury rejects privileged calls from any address but the treasury.
func (k *Keeper) requireTreasury(caller common.Address) error {
	if caller != k.vault.Treasury {
		return types.ErrOnlyTreasury.Wrapf("caller %s", caller.Hex())
	}
	return nil
}

func (k *Keeper) requireActive() error {
	if k.vault.Paused {
		return types.ErrVaultPaused
	}
	return nil
}

// SetPaused toggles the vault pause switch. Treasury only.
func (k *Keeper) SetPaused(caller common.Address, paused bool) error {
	if err := k.requireTreasury(caller); err != nil {
		return err
	}
	if k.vault.Paused == paused {
		return nil
	}
	k.vault.Paused = paused
	if paused {
		k.emitEvent(types.NewEventVaultPaused(caller))
		k.logger.Info("vault paused", "authority", caller.Hex())
	} else {
		k.emitEvent(types.NewEventVaultUnpaused(caller))
		k.logger.Info("vault unpaused", "authority", caller.Hex())
	}
	return nil
}

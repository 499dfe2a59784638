package types

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// Event is implemented by every typed module event.
type Event interface {
	EventType() string
}

// EventMinted is emitted when a deposit mints new shares.
type EventMinted struct {
	Sender    string
	AmountIn  string
	SharesOut string
}

func (EventMinted) EventType() string { return "minted" }

// NewEventMinted creates a new EventMinted event.
func NewEventMinted(sender common.Address, amountIn, sharesOut sdkmath.Int) *EventMinted {
	return &EventMinted{
		Sender:    sender.Hex(),
		AmountIn:  amountIn.String(),
		SharesOut: sharesOut.String(),
	}
}

// EventRedeemed is emitted when shares are burned for underlying assets.
type EventRedeemed struct {
	Sender       string
	SharesBurned string
}

func (EventRedeemed) EventType() string { return "redeemed" }

// NewEventRedeemed creates a new EventRedeemed event.
func NewEventRedeemed(sender common.Address, shares sdkmath.Int) *EventRedeemed {
	return &EventRedeemed{
		Sender:       sender.Hex(),
		SharesBurned: shares.String(),
	}
}

// EventSwapExecuted is emitted for every swap completed by the executor,
// recording the fee tier that finally served the trade.
type EventSwapExecuted struct {
	AssetIn   string
	AssetOut  string
	AmountIn  string
	AmountOut string
	FeeTier   uint32
}

func (EventSwapExecuted) EventType() string { return "swap_executed" }

// NewEventSwapExecuted creates a new EventSwapExecuted event.
func NewEventSwapExecuted(assetIn, assetOut common.Address, amountIn, amountOut sdkmath.Int, feeTier uint32) *EventSwapExecuted {
	return &EventSwapExecuted{
		AssetIn:   assetIn.Hex(),
		AssetOut:  assetOut.Hex(),
		AmountIn:  amountIn.String(),
		AmountOut: amountOut.String(),
		FeeTier:   feeTier,
	}
}

// EventRebalanced is emitted after a successful rebalance with the new weights.
type EventRebalanced struct {
	Caller  string
	Weights [NumConstituents]uint8
}

func (EventRebalanced) EventType() string { return "rebalanced" }

// NewEventRebalanced creates a new EventRebalanced event.
func NewEventRebalanced(caller common.Address, composition Composition) *EventRebalanced {
	return &EventRebalanced{
		Caller:  caller.Hex(),
		Weights: composition.Weights(),
	}
}

// EventReconstituted is emitted after a full liquidation-and-redistribution.
type EventReconstituted struct {
	Caller  string
	Weights [NumConstituents]uint8
}

func (EventReconstituted) EventType() string { return "reconstituted" }

// NewEventReconstituted creates a new EventReconstituted event.
func NewEventReconstituted(caller common.Address, composition Composition) *EventReconstituted {
	return &EventReconstituted{
		Caller:  caller.Hex(),
		Weights: composition.Weights(),
	}
}

// EventVaultPaused is emitted when the treasury pauses the vault.
type EventVaultPaused struct {
	Authority string
}

func (EventVaultPaused) EventType() string { return "vault_paused" }

// NewEventVaultPaused creates a new EventVaultPaused event.
func NewEventVaultPaused(authority common.Address) *EventVaultPaused {
	return &EventVaultPaused{Authority: authority.Hex()}
}

// EventVaultUnpaused is emitted when the treasury unpauses the vault.
type EventVaultUnpaused struct {
	Authority string
}

func (EventVaultUnpaused) EventType() string { return "vault_unpaused" }

// NewEventVaultUnpaused creates a new EventVaultUnpaused event.
func NewEventVaultUnpaused(authority common.Address) *EventVaultUnpaused {
	return &EventVaultUnpaused{Authority: authority.Hex()}
}

// EventManager records typed events emitted during an operation. Events
// emitted inside a transaction that later reverts are discarded along with
// the state changes.
type EventManager struct {
	events []Event
}

// NewEventManager creates an empty event manager.
func NewEventManager() *EventManager {
	return &EventManager{}
}

// Emit appends an event.
func (em *EventManager) Emit(ev Event) {
	em.events = append(em.events, ev)
}

// Events returns all recorded events in emission order.
func (em *EventManager) Events() []Event {
	return em.events
}

// Mark returns the current event count, for later rollback.
func (em *EventManager) Mark() int {
	return len(em.events)
}

// Rollback discards every event emitted after the given mark.
func (em *EventManager) Rollback(mark int) {
	if mark < 0 || mark > len(em.events) {
		return
	}
	em.events = em.events[:mark]
}

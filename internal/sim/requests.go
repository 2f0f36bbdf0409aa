package sim

import (
	"github.com/gravitas-games/foundry/internal/craft"
	"github.com/gravitas-games/foundry/internal/item"
)

// CraftResult is the discriminated outcome of a player craft request.
// Failures here are routine game states (nothing in stock, queue full), so
// they travel as a reason string instead of an error.
type CraftResult struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
	ChainID string `json:"chainId,omitempty"`
}

// RequestCraft is the player entry point for hand-crafting. When direct
// materials cover the request a standalone task is queued and its inputs
// are deducted immediately; otherwise the dependency resolver is consulted.
// A nil plan means "cannot satisfy, no plan offered" and nothing mutates.
func (e *Engine) RequestCraft(itemID item.ID, quantity int) CraftResult {
	if quantity <= 0 {
		return CraftResult{Reason: "quantity must be positive"}
	}
	rec := e.recipes.BestManualFor(itemID)
	if rec == nil {
		return CraftResult{Reason: "no manual recipe for item"}
	}

	if !e.resolver.HasMissingDependencies(itemID, quantity, e.store) {
		if !e.queue.CanAccept(1) {
			return CraftResult{Reason: "queue full"}
		}
		task := craft.NewTask(rec, itemID, quantity, e.cfg.Crafting.ManualEfficiency)
		// Inputs are deducted exactly once, here at creation.
		if !e.store.ConsumeAll(task.InputsFor(rec)) {
			return CraftResult{Reason: "insufficient materials"}
		}
		e.queue.Enqueue(task)
		e.bus.Publish(Event{Type: EventTaskQueued, Time: e.now, TaskID: task.ID, Item: itemID})
		return CraftResult{OK: true, TaskID: task.ID}
	}

	plan := e.resolver.AnalyzeChain(itemID, quantity, e.store)
	if plan == nil {
		return CraftResult{Reason: "insufficient base materials"}
	}
	chainID := e.queue.EnqueueChain(plan)
	if chainID == "" {
		return CraftResult{Reason: "queue cannot hold the full chain"}
	}
	e.bus.Publish(Event{Type: EventTaskQueued, Time: e.now, ChainID: chainID, Item: itemID})
	return CraftResult{OK: true, ChainID: chainID}
}

// CancelCraft cancels a queued task under the chain-aware policy: whole
// chains tear down with a full raw-material refund, standalone tasks refund
// their direct inputs.
func (e *Engine) CancelCraft(taskID string) craft.CancelResult {
	res := e.queue.Cancel(taskID)
	if res.ChainCancelled {
		e.bus.Publish(Event{Type: EventChainCancelled, Time: e.now, ChainID: res.ChainID, TaskID: taskID})
	}
	return res
}

// CancelCraftScaled cancels through the service path with the progress-
// scaled refund.
func (e *Engine) CancelCraftScaled(taskID string) craft.CancelResult {
	res := e.queue.CancelScaled(taskID)
	if res.ChainCancelled {
		e.bus.Publish(Event{Type: EventChainCancelled, Time: e.now, ChainID: res.ChainID, TaskID: taskID})
	}
	return res
}

package craft

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// Status represents the lifecycle state of a crafting task.
type Status int

const (
	// TaskPending is queued but not yet at the head.
	TaskPending Status = iota
	// TaskCrafting is the single active head task advancing each tick.
	TaskCrafting
	// TaskCompleted has had its output committed (or discarded, for chain
	// intermediates).
	TaskCompleted
)

// String returns a human-readable representation of the task status.
func (s Status) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskCrafting:
		return "Crafting"
	case TaskCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Task is a single queued craft. Tasks are plain records owned exclusively
// by the queue; chains reference them by ID and never mutate them directly.
type Task struct {
	ID       string    `json:"id"`
	RecipeID recipe.ID `json:"recipeId"`
	// ItemID is the primary output being crafted.
	ItemID item.ID `json:"itemId"`
	// Quantity is how many of ItemID the task yields.
	Quantity int `json:"quantity"`
	// Crafts is the number of recipe executions backing Quantity.
	Crafts int `json:"crafts"`
	// Progress runs 0..100; recomputed by the queue each tick.
	Progress float64 `json:"progress"`
	// StartTime is the simulation time (seconds) crafting began.
	StartTime float64 `json:"startTime"`
	// CraftingTime is the effective duration in seconds, already adjusted
	// for manual-crafting efficiency.
	CraftingTime float64 `json:"craftingTime"`
	Status       Status  `json:"status"`
	// ChainID is set when the task belongs to an auto-generated chain.
	ChainID string `json:"chainId,omitempty"`
	// Intermediate marks chain tasks whose output is consumed internally by
	// the chain and never committed to inventory.
	Intermediate bool `json:"isIntermediateProduct,omitempty"`
}

// NewTask builds a standalone task for quantity of the recipe's given
// output. Effective duration scales the recipe time by the number of crafts
// and divides by the manual-crafting efficiency.
func NewTask(r *recipe.Recipe, itemID item.ID, quantity int, manualEfficiency float64) *Task {
	crafts := ceilDiv(quantity, r.OutputPerCraft(itemID))
	if manualEfficiency <= 0 {
		manualEfficiency = 1
	}
	return &Task{
		ID:           uuid.NewString(),
		RecipeID:     r.ID,
		ItemID:       itemID,
		Quantity:     quantity,
		Crafts:       crafts,
		Status:       TaskPending,
		CraftingTime: r.Time * float64(crafts) / manualEfficiency,
	}
}

// InputsFor returns the direct recipe inputs scaled by the task's craft
// count; what was deducted at creation and what a full refund restores.
func (t *Task) InputsFor(r *recipe.Recipe) map[item.ID]int {
	out := make(map[item.ID]int, len(r.In))
	for id, qty := range r.In {
		out[id] = qty * t.Crafts
	}
	return out
}

// ChainStatus represents the lifecycle state of a crafting chain.
type ChainStatus int

const (
	ChainPending ChainStatus = iota
	ChainCompleted
)

// String returns a human-readable representation of the chain status.
func (s ChainStatus) String() string {
	switch s {
	case ChainPending:
		return "Pending"
	case ChainCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Chain is an ordered set of tasks auto-generated to satisfy a target craft
// whose direct materials were insufficient. Tasks are ordered leaves-first;
// exactly one task (the last) is non-intermediate and its completion is the
// only one that writes the target item into inventory.
type Chain struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	TaskIDs []string    `json:"tasks"`
	Status  ChainStatus `json:"status"`
	// TotalProgress is completed tasks over total tasks, 0..100.
	TotalProgress float64 `json:"totalProgress"`
	// RawMaterials maps item to the amount pre-reserved from inventory at
	// chain creation; refunded in full on manual cancellation.
	RawMaterials map[item.ID]int `json:"rawMaterialsConsumed,omitempty"`
}

// ChainPlan is the resolver's output: a feasible, leaves-first task list
// plus the inventory reservation that backs it.
type ChainPlan struct {
	Name         string
	TargetItem   item.ID
	Quantity     int
	Tasks        []*Task
	RawMaterials map[item.ID]int
}

func chainName(itemID item.ID, quantity int) string {
	return fmt.Sprintf("Craft %dx %s", quantity, itemID)
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

package recipe

import (
	"strings"

	"github.com/gravitas-games/foundry/internal/item"
)

// ID uniquely identifies a recipe.
type ID string

// Flags mark special recipe behaviors. Stored as a bitset so a recipe can be
// both manual and mining (hand-mineable ore patches).
type Flags uint8

const (
	// FlagManual marks a recipe the player can craft by hand.
	FlagManual Flags = 1 << iota
	// FlagMining marks a primary-extraction recipe; its output is treated as
	// infinite supply by the dependency resolver.
	FlagMining
	// FlagRecycling marks a recipe that feeds items back into their own
	// production chain; de-prioritized when picking manual recipes.
	FlagRecycling
	// FlagTechnology marks a research recipe consumed by the tech tree.
	FlagTechnology
)

// Has reports whether all bits in f are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// String returns a human-readable representation of the flag set.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(FlagManual) {
		parts = append(parts, "manual")
	}
	if f.Has(FlagMining) {
		parts = append(parts, "mining")
	}
	if f.Has(FlagRecycling) {
		parts = append(parts, "recycling")
	}
	if f.Has(FlagTechnology) {
		parts = append(parts, "technology")
	}
	return strings.Join(parts, "|")
}

// Recipe defines a transformation rule mapping input item quantities to
// output item quantities over a base time.
type Recipe struct {
	ID       ID              `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Time     float64         `json:"time"` // seconds at speed 1.0
	In       map[item.ID]int `json:"in"`
	Out      map[item.ID]int `json:"out"`
	// Producers lists facility types allowed to run this recipe
	// automatically. Empty means manual-only.
	Producers []string `json:"producers,omitempty"`
	Flags     Flags    `json:"flags,omitempty"`
}

// IsPrimaryExtraction reports whether the recipe creates items from nothing
// (e.g. manual tree harvesting). Such recipes are exempt from
// dependency-sufficiency checks.
func (r *Recipe) IsPrimaryExtraction() bool { return len(r.In) == 0 }

// OutputPerCraft returns how many of the given item one execution yields.
func (r *Recipe) OutputPerCraft(id item.ID) int { return r.Out[id] }

// PrimaryOutput returns the highest-yield output item, breaking ties by ID
// for determinism.
func (r *Recipe) PrimaryOutput() item.ID {
	var best item.ID
	bestQty := -1
	for id, qty := range r.Out {
		if qty > bestQty || (qty == bestQty && id < best) {
			best, bestQty = id, qty
		}
	}
	return best
}

// OutputRate returns items of id produced per second at speed 1.0, or zero
// when the recipe has no timing information.
func (r *Recipe) OutputRate(id item.ID) float64 {
	if r.Time <= 0 {
		return 0
	}
	return float64(r.Out[id]) / r.Time
}

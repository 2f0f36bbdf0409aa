package recipe

import (
	"errors"
	"fmt"

	"github.com/gravitas-games/foundry/internal/item"
)

// Index stores recipes with lookup by ID, by produced item and by consumed
// item. It is built once from the data catalog; registration order is kept
// so "first available" tie-breaks stay deterministic.
type Index struct {
	recipes  map[ID]*Recipe
	byOutput map[item.ID][]ID
	byInput  map[item.ID][]ID
	order    []ID
}

// NewIndex creates an empty recipe index.
func NewIndex() *Index {
	return &Index{
		recipes:  make(map[ID]*Recipe),
		byOutput: make(map[item.ID][]ID),
		byInput:  make(map[item.ID][]ID),
	}
}

// Register adds a recipe to the index. Returns an error if the recipe is
// invalid or the ID is already taken.
func (idx *Index) Register(r *Recipe) error {
	if r == nil {
		return errors.New("recipe cannot be nil")
	}
	if r.ID == "" {
		return errors.New("recipe ID cannot be empty")
	}
	if _, exists := idx.recipes[r.ID]; exists {
		return fmt.Errorf("duplicate recipe: %s", r.ID)
	}
	if len(r.Out) == 0 {
		return fmt.Errorf("recipe %s: must have at least one output", r.ID)
	}
	// Automatable recipes feed rate math and must carry a positive time.
	if len(r.Producers) > 0 && r.Time <= 0 {
		return fmt.Errorf("recipe %s: automatable recipe requires time > 0", r.ID)
	}
	for id, qty := range r.In {
		if id == "" {
			return fmt.Errorf("recipe %s: input item ID cannot be empty", r.ID)
		}
		if qty <= 0 {
			return fmt.Errorf("recipe %s: input %s quantity must be positive", r.ID, id)
		}
	}
	for id, qty := range r.Out {
		if id == "" {
			return fmt.Errorf("recipe %s: output item ID cannot be empty", r.ID)
		}
		if qty <= 0 {
			return fmt.Errorf("recipe %s: output %s quantity must be positive", r.ID, id)
		}
	}

	idx.recipes[r.ID] = r
	idx.order = append(idx.order, r.ID)
	for id := range r.Out {
		idx.byOutput[id] = append(idx.byOutput[id], r.ID)
	}
	for id := range r.In {
		idx.byInput[id] = append(idx.byInput[id], r.ID)
	}
	return nil
}

// ByID retrieves a recipe. Returns nil if not found.
func (idx *Index) ByID(id ID) *Recipe { return idx.recipes[id] }

// Count returns the number of registered recipes.
func (idx *Index) Count() int { return len(idx.recipes) }

// All returns every recipe in registration order.
func (idx *Index) All() []*Recipe {
	out := make([]*Recipe, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.recipes[id])
	}
	return out
}

// ThatProduce returns all recipes yielding the item, in registration order.
func (idx *Index) ThatProduce(id item.ID) []*Recipe {
	return idx.collect(idx.byOutput[id])
}

// ThatUse returns all recipes consuming the item, in registration order.
func (idx *Index) ThatUse(id item.ID) []*Recipe {
	return idx.collect(idx.byInput[id])
}

func (idx *Index) collect(ids []ID) []*Recipe {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, idx.recipes[id])
	}
	return out
}

// BestManualFor picks the manual recipe used when hand-crafting the item.
// Preference order: mining-flagged, then non-recycling, then first
// registered. Returns nil when the item cannot be crafted by hand.
func (idx *Index) BestManualFor(id item.ID) *Recipe {
	candidates := idx.ThatProduce(id)
	var firstManual, firstNonRecycling *Recipe
	for _, r := range candidates {
		if !r.Flags.Has(FlagManual) {
			continue
		}
		if r.Flags.Has(FlagMining) {
			return r
		}
		if firstManual == nil {
			firstManual = r
		}
		if firstNonRecycling == nil && !r.Flags.Has(FlagRecycling) {
			firstNonRecycling = r
		}
	}
	if firstNonRecycling != nil {
		return firstNonRecycling
	}
	return firstManual
}

// MostEfficient returns the recipe with the highest output-per-second for
// the item. Ties go to the earlier-registered recipe.
func (idx *Index) MostEfficient(id item.ID) *Recipe {
	var best *Recipe
	var bestRate float64
	for _, r := range idx.ThatProduce(id) {
		rate := r.OutputRate(id)
		if best == nil || rate > bestRate {
			best, bestRate = r, rate
		}
	}
	return best
}

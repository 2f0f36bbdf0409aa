package recipe

import (
	"math"

	"github.com/gravitas-games/foundry/internal/item"
)

// maxCostDepth bounds the recursive cost walk. Recipe graphs can contain
// cycles (recycling recipes feed back into their own inputs), so the
// traversal carries both a visited set and a depth cap; natural termination
// is never relied on.
const maxCostDepth = 32

// Cost is a per-item cost breakdown for one execution of a recipe.
type Cost struct {
	// Direct lists the recipe's immediate inputs.
	Direct map[item.ID]int `json:"direct"`
	// Raw lists the recursively-expanded base materials: items with no
	// producing recipe in the index, or produced by primary extraction.
	Raw map[item.ID]int `json:"raw"`
}

// CostOf computes the direct and recursive raw-material cost of crafting one
// unit of the item. When the item has no producing recipe the item itself is
// the raw cost.
func (idx *Index) CostOf(id item.ID) Cost {
	c := Cost{
		Direct: make(map[item.ID]int),
		Raw:    make(map[item.ID]int),
	}
	r := idx.pickCostRecipe(id)
	if r == nil {
		c.Raw[id] = 1
		return c
	}
	for in, qty := range r.In {
		per := perOutput(qty, r.OutputPerCraft(id))
		c.Direct[in] += per
	}
	visiting := map[item.ID]bool{id: true}
	idx.accumulateRaw(c.Raw, id, 1, visiting, 0)
	return c
}

// accumulateRaw walks the recipe tree depth-first, adding needed quantities
// of base materials to acc. An item already being expanded on the current
// path is a cycle; it is counted as raw instead of recursed into.
func (idx *Index) accumulateRaw(acc map[item.ID]int, id item.ID, needed int, visiting map[item.ID]bool, depth int) {
	if needed <= 0 {
		return
	}
	r := idx.pickCostRecipe(id)
	if r == nil || r.IsPrimaryExtraction() {
		acc[id] += needed
		return
	}
	if depth >= maxCostDepth {
		acc[id] += needed
		return
	}
	crafts := ceilDiv(needed, r.OutputPerCraft(id))
	for in, qty := range r.In {
		total := qty * crafts
		if visiting[in] {
			acc[in] += total
			continue
		}
		visiting[in] = true
		idx.accumulateRaw(acc, in, total, visiting, depth+1)
		delete(visiting, in)
	}
}

// ComplexityScore rates a recipe by its dependency depth and input fan-in.
// Used by UI layers to order crafting menus; raw recipes score 1.
func (idx *Index) ComplexityScore(id ID) int {
	r := idx.recipes[id]
	if r == nil {
		return 0
	}
	visiting := map[item.ID]bool{}
	depth := 0
	for in := range r.In {
		visiting[in] = true
		d := idx.itemDepth(in, visiting, 0)
		delete(visiting, in)
		if d > depth {
			depth = d
		}
	}
	return 1 + depth + len(r.In)
}

func (idx *Index) itemDepth(id item.ID, visiting map[item.ID]bool, depth int) int {
	r := idx.pickCostRecipe(id)
	if r == nil || r.IsPrimaryExtraction() || depth >= maxCostDepth {
		return 0
	}
	max := 0
	for in := range r.In {
		if visiting[in] {
			continue
		}
		visiting[in] = true
		d := idx.itemDepth(in, visiting, depth+1)
		delete(visiting, in)
		if d > max {
			max = d
		}
	}
	return 1 + max
}

// pickCostRecipe selects the recipe used for cost traversal: the best manual
// recipe when one exists, otherwise the first producer.
func (idx *Index) pickCostRecipe(id item.ID) *Recipe {
	if r := idx.BestManualFor(id); r != nil {
		return r
	}
	produced := idx.ThatProduce(id)
	if len(produced) == 0 {
		return nil
	}
	return produced[0]
}

func perOutput(inQty, outQty int) int {
	if outQty <= 1 {
		return inQty
	}
	return int(math.Ceil(float64(inQty) / float64(outQty)))
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

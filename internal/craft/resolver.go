package craft

import (
	"sort"

	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// Resolver expands a requested craft into a feasible chain of sub-crafts
// when direct materials are insufficient. It either returns a plan whose
// entire basic-material need is covered by current inventory, or nil; no
// partial chain is ever proposed.
type Resolver struct {
	index *recipe.Index
	// manualEfficiency slows or speeds hand-crafting durations.
	manualEfficiency float64
	maxDepth         int
}

// NewResolver builds a resolver over the recipe index. maxDepth bounds
// recursion on cyclic recipe graphs; zero picks a sane default.
func NewResolver(index *recipe.Index, manualEfficiency float64, maxDepth int) *Resolver {
	if manualEfficiency <= 0 {
		manualEfficiency = 1
	}
	if maxDepth <= 0 {
		maxDepth = 16
	}
	return &Resolver{index: index, manualEfficiency: manualEfficiency, maxDepth: maxDepth}
}

// HasMissingDependencies is the cheap single-level check: does the best
// manual recipe's direct input list exceed current inventory? No recursion;
// used to decide whether to invoke the full resolver at all.
func (r *Resolver) HasMissingDependencies(itemID item.ID, quantity int, store *item.Store) bool {
	rec := r.index.BestManualFor(itemID)
	if rec == nil {
		return false
	}
	crafts := ceilDiv(quantity, rec.OutputPerCraft(itemID))
	for in, qty := range rec.In {
		if store.GetAmount(in) < qty*crafts {
			return true
		}
	}
	return false
}

// AnalyzeChain resolves a feasible crafting chain for quantity of itemID,
// or returns nil when no plan can be satisfied from current inventory.
//
// The walk is depth-first over the best manual recipe for each node. Stock
// on hand covers need first and is reserved in the plan's raw-material
// ledger (so two branches can never spend the same unit twice); any
// shortfall recurses into a sub-task sized to cover exactly that shortfall,
// ceiling-divided by the sub-recipe's output per craft. Mining-flagged
// recipes are infinite supply: their shortfalls always resolve to a mining
// task and never charge the ledger. An item with no manual recipe is basic;
// a basic shortfall makes the whole chain infeasible. Rediscovering a node
// already being expanded on the current path is a dead end, not a loop:
// the item is treated as basic at that point.
func (r *Resolver) AnalyzeChain(itemID item.ID, quantity int, store *item.Store) *ChainPlan {
	target := r.index.BestManualFor(itemID)
	if target == nil || quantity <= 0 {
		return nil
	}

	w := &chainWalk{
		resolver: r,
		store:    store,
		reserved: make(map[item.ID]int),
	}
	visiting := map[item.ID]bool{itemID: true}
	if !w.resolveInputs(target, itemID, quantity, visiting, 0) {
		return nil
	}

	final := NewTask(target, itemID, quantity, r.manualEfficiency)
	final.Intermediate = false
	w.tasks = append(w.tasks, final)

	return &ChainPlan{
		Name:         chainName(itemID, quantity),
		TargetItem:   itemID,
		Quantity:     quantity,
		Tasks:        w.tasks,
		RawMaterials: w.reserved,
	}
}

// chainWalk carries the in-progress plan: tasks accumulate leaves-first,
// reserved is the inventory ledger charged as stock gets claimed.
type chainWalk struct {
	resolver *Resolver
	store    *item.Store
	tasks    []*Task
	reserved map[item.ID]int
}

// resolveInputs covers every input of rec for the given number of target
// units. Returns false as soon as any basic material cannot be covered.
func (w *chainWalk) resolveInputs(rec *recipe.Recipe, outID item.ID, quantity int, visiting map[item.ID]bool, depth int) bool {
	if rec.Flags.Has(recipe.FlagMining) || rec.IsPrimaryExtraction() {
		// Primary extraction pulls from the world, not from inventory.
		return true
	}
	crafts := ceilDiv(quantity, rec.OutputPerCraft(outID))

	for _, in := range sortedInputs(rec) {
		need := rec.In[in] * crafts
		available := w.store.GetAmount(in) - w.reserved[in]
		if available < 0 {
			available = 0
		}
		fromStock := need
		if fromStock > available {
			fromStock = available
		}
		w.reserved[in] += fromStock
		shortfall := need - fromStock
		if shortfall == 0 {
			continue
		}

		if depth >= w.resolver.maxDepth || visiting[in] {
			// Cycle or depth cap: dead end, the item counts as basic and
			// basic shortfalls are unsatisfiable.
			return false
		}
		sub := w.resolver.index.BestManualFor(in)
		if sub == nil {
			// Basic material short of demand: the whole chain is infeasible.
			return false
		}

		visiting[in] = true
		ok := w.resolveInputs(sub, in, shortfall, visiting, depth+1)
		delete(visiting, in)
		if !ok {
			return false
		}

		t := NewTask(sub, in, shortfall, w.resolver.manualEfficiency)
		t.Intermediate = true
		w.tasks = append(w.tasks, t)
	}
	return true
}

func sortedInputs(rec *recipe.Recipe) []item.ID {
	ids := make([]item.ID, 0, len(rec.In))
	for id := range rec.In {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

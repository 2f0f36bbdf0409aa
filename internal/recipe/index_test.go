package recipe

import (
	"testing"

	"github.com/gravitas-games/foundry/internal/item"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	recipes := []*Recipe{
		{ID: "iron-ore-mining", Time: 2, Out: map[item.ID]int{"iron-ore": 1}, Flags: FlagManual | FlagMining},
		{ID: "iron-plate", Time: 3.2, In: map[item.ID]int{"iron-ore": 1}, Out: map[item.ID]int{"iron-plate": 1}, Flags: FlagManual},
		{ID: "plate-from-scrap", Time: 1, In: map[item.ID]int{"scrap": 2}, Out: map[item.ID]int{"iron-plate": 1}, Flags: FlagManual | FlagRecycling},
		{ID: "iron-gear-wheel", Time: 0.5, In: map[item.ID]int{"iron-plate": 2}, Out: map[item.ID]int{"iron-gear-wheel": 1}, Flags: FlagManual},
	}
	for _, r := range recipes {
		if err := idx.Register(r); err != nil {
			t.Fatalf("register %s: %v", r.ID, err)
		}
	}
	return idx
}

func TestIndexQueries(t *testing.T) {
	idx := testIndex(t)

	producers := idx.ThatProduce("iron-plate")
	if len(producers) != 2 {
		t.Fatalf("expected 2 producers of iron-plate, got %d", len(producers))
	}
	users := idx.ThatUse("iron-plate")
	if len(users) != 1 || users[0].ID != "iron-gear-wheel" {
		t.Fatalf("unexpected users of iron-plate: %v", users)
	}
	if idx.ByID("missing") != nil {
		t.Fatalf("expected nil for unknown recipe")
	}
}

func TestIndexRegisterValidation(t *testing.T) {
	idx := NewIndex()
	if err := idx.Register(&Recipe{ID: "no-output", Time: 1}); err == nil {
		t.Fatalf("expected error for recipe without outputs")
	}
	// a producer-capable recipe needs a positive time
	if err := idx.Register(&Recipe{ID: "no-time", Producers: []string{"assembler"}, Out: map[item.ID]int{"x": 1}}); err == nil {
		t.Fatalf("expected error for automatable recipe without time")
	}
	if err := idx.Register(&Recipe{ID: "dup", Time: 1, Out: map[item.ID]int{"x": 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := idx.Register(&Recipe{ID: "dup", Time: 1, Out: map[item.ID]int{"x": 1}}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestBestManualPrefersMiningThenNonRecycling(t *testing.T) {
	idx := testIndex(t)

	if r := idx.BestManualFor("iron-ore"); r == nil || r.ID != "iron-ore-mining" {
		t.Fatalf("expected mining recipe for iron-ore, got %v", r)
	}
	// iron-plate has a recycling and a plain manual recipe; plain wins
	if r := idx.BestManualFor("iron-plate"); r == nil || r.ID != "iron-plate" {
		t.Fatalf("expected iron-plate recipe, got %v", r)
	}
	if r := idx.BestManualFor("unknown"); r != nil {
		t.Fatalf("expected nil for uncraftable item, got %v", r)
	}
}

func TestMostEfficient(t *testing.T) {
	idx := testIndex(t)
	// plate-from-scrap yields 1/s, iron-plate 0.3125/s
	r := idx.MostEfficient("iron-plate")
	if r == nil || r.ID != "plate-from-scrap" {
		t.Fatalf("expected plate-from-scrap, got %v", r)
	}
}

func TestCostOfExpandsToRaw(t *testing.T) {
	idx := testIndex(t)
	c := idx.CostOf("iron-gear-wheel")

	if c.Direct["iron-plate"] != 2 {
		t.Fatalf("expected direct cost 2 iron-plate, got %d", c.Direct["iron-plate"])
	}
	// plates expand through ore mining, which is primary extraction
	if c.Raw["iron-ore"] != 2 {
		t.Fatalf("expected raw cost 2 iron-ore, got %v", c.Raw)
	}
}

func TestCostOfCycleSafe(t *testing.T) {
	idx := NewIndex()
	idx.Register(&Recipe{ID: "a", Time: 1, In: map[item.ID]int{"b": 1}, Out: map[item.ID]int{"a": 1}, Flags: FlagManual})
	idx.Register(&Recipe{ID: "b", Time: 1, In: map[item.ID]int{"a": 1}, Out: map[item.ID]int{"b": 1}, Flags: FlagManual})

	c := idx.CostOf("a")
	// the cycle terminates and the looping item counts as raw
	if c.Raw["a"] != 1 {
		t.Fatalf("expected cycle to count a as raw, got %v", c.Raw)
	}
}

func TestComplexityScore(t *testing.T) {
	idx := testIndex(t)
	mining := idx.ComplexityScore("iron-ore-mining")
	gear := idx.ComplexityScore("iron-gear-wheel")
	if mining != 1 {
		t.Fatalf("expected mining complexity 1, got %d", mining)
	}
	if gear <= mining {
		t.Fatalf("expected gear complexity above mining, got %d", gear)
	}
}

package item

import "testing"

func TestStoreDeltaClamping(t *testing.T) {
	reg := NewRegistry(Details{ID: "iron-plate", Name: "Iron Plate"})
	s := NewStore(reg)

	if applied := s.ApplyDelta("iron-plate", 10); applied != 10 {
		t.Fatalf("expected applied=10, got %d", applied)
	}
	// deducting more than held clamps at zero
	if applied := s.ApplyDelta("iron-plate", -15); applied != -10 {
		t.Fatalf("expected applied=-10, got %d", applied)
	}
	if got := s.GetAmount("iron-plate"); got != 0 {
		t.Fatalf("expected amount 0, got %d", got)
	}

	s.SetCapacity("iron-plate", 5)
	if applied := s.ApplyDelta("iron-plate", 8); applied != 5 {
		t.Fatalf("expected capacity-clamped applied=5, got %d", applied)
	}
}

func TestStoreConsumeAllAtomic(t *testing.T) {
	reg := NewRegistry(Details{ID: "a"}, Details{ID: "b"})
	s := NewStore(reg)
	s.AddAll(map[ID]int{"a": 4, "b": 1})

	req := map[ID]int{"a": 2, "b": 2}
	if s.ConsumeAll(req) {
		t.Fatalf("expected consume to fail on short b")
	}
	// nothing was deducted on failure
	if s.GetAmount("a") != 4 || s.GetAmount("b") != 1 {
		t.Fatalf("store mutated on failed consume: a=%d b=%d", s.GetAmount("a"), s.GetAmount("b"))
	}

	if !s.ConsumeAll(map[ID]int{"a": 2, "b": 1}) {
		t.Fatalf("expected consume to succeed")
	}
	if s.GetAmount("a") != 2 || s.GetAmount("b") != 0 {
		t.Fatalf("unexpected amounts after consume: a=%d b=%d", s.GetAmount("a"), s.GetAmount("b"))
	}
}

func TestStoreSortedIDs(t *testing.T) {
	s := NewStore(NewRegistry())
	s.AddAll(map[ID]int{"copper-ore": 1, "iron-ore": 1, "coal": 1})
	ids := s.SortedIDs()
	want := []ID{"coal", "copper-ore", "iron-ore"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected ids[%d]=%s, got %s", i, want[i], ids[i])
		}
	}
}

func TestRegistryFuelsInCategory(t *testing.T) {
	reg := NewRegistry(
		Details{ID: "coal", FuelValueMJ: 4, FuelCategory: FuelChemical},
		Details{ID: "wood", FuelValueMJ: 2, FuelCategory: FuelChemical},
		Details{ID: "solid-fuel", FuelValueMJ: 12, FuelCategory: FuelChemical},
		Details{ID: "iron-plate"},
	)
	fuels := reg.FuelsInCategory(FuelChemical)
	if len(fuels) != 3 {
		t.Fatalf("expected 3 chemical fuels, got %d", len(fuels))
	}
	// densest first
	if fuels[0].ID != "solid-fuel" || fuels[1].ID != "coal" || fuels[2].ID != "wood" {
		t.Fatalf("unexpected fuel order: %v %v %v", fuels[0].ID, fuels[1].ID, fuels[2].ID)
	}
}

func TestRegistryRejectsFuelWithoutValue(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Details{ID: "bad-fuel", FuelCategory: FuelChemical})
	if err == nil {
		t.Fatalf("expected error for fuel without fuel value")
	}
}

package fuel

import (
	"testing"

	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
)

func fuelFixture(t *testing.T) (*Simulator, *item.Registry, *facility.Registry) {
	t.Helper()
	items := item.NewRegistry(
		item.Details{ID: "coal", FuelValueMJ: 4, FuelCategory: item.FuelChemical},
		item.Details{ID: "wood", FuelValueMJ: 2, FuelCategory: item.FuelChemical},
		item.Details{ID: "solid-fuel", FuelValueMJ: 12, FuelCategory: item.FuelChemical},
		item.Details{ID: "uranium-fuel-cell", FuelValueMJ: 8000, FuelCategory: item.FuelNuclear},
		item.Details{ID: "iron-plate"},
	)
	types := facility.NewRegistry(
		&facility.Type{
			ID: "stone-furnace", Class: facility.ClassFurnace,
			Energy: facility.SourceBurner, BasePowerKW: 90, CraftingSpeed: 1,
			FuelCategories: []item.FuelCategory{item.FuelChemical}, MaxFuelStack: 5,
		},
		&facility.Type{
			ID: "burner-mining-drill", Class: facility.ClassMiningDrill,
			Energy: facility.SourceBurner, BasePowerKW: 150, CraftingSpeed: 0.25,
			FuelCategories: []item.FuelCategory{item.FuelChemical}, MaxFuelStack: 5,
		},
		&facility.Type{
			ID: "burner-inserter", Class: facility.ClassInserter,
			Energy: facility.SourceBurner, BasePowerKW: 94,
			FuelCategories: []item.FuelCategory{item.FuelChemical}, MaxFuelStack: 3,
		},
		&facility.Type{
			ID: "assembling-machine-1", Class: facility.ClassAssembler,
			Energy: facility.SourceElectric, BasePowerKW: 75, CraftingSpeed: 0.5,
		},
	)
	return NewSimulator(types, items), items, types
}

func placeBurner(t *testing.T, s *Simulator, types *facility.Registry, id string, typeID facility.TypeID) *facility.Instance {
	t.Helper()
	inst, err := types.NewInstance(id, typeID, 1)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	inst.Status = facility.StatusRunning
	if s.InitBuffer(inst) == nil {
		t.Fatalf("expected buffer for %s", typeID)
	}
	return inst
}

func TestInitBufferOnlyForBurners(t *testing.T) {
	s, _, types := fuelFixture(t)
	inst, _ := types.NewInstance("asm-1", "assembling-machine-1", 1)
	if s.InitBuffer(inst) != nil {
		t.Fatalf("electric facility must not get a fuel buffer")
	}
}

func TestAddFuelValidation(t *testing.T) {
	s, _, types := fuelFixture(t)
	inst := placeBurner(t, s, types, "f1", "stone-furnace")

	if res := s.Add(inst.ID, "iron-plate", 1); res.Added != 0 || res.Reason == "" {
		t.Fatalf("expected non-fuel rejection, got %+v", res)
	}
	if res := s.Add(inst.ID, "uranium-fuel-cell", 1); res.Added != 0 || res.Reason == "" {
		t.Fatalf("expected category rejection, got %+v", res)
	}
	if res := s.Add(inst.ID, "coal", 3); res.Added != 3 {
		t.Fatalf("expected 3 coal added, got %+v", res)
	}
	// slot holds one fuel type at a time
	if res := s.Add(inst.ID, "wood", 1); res.Added != 0 || res.Reason == "" {
		t.Fatalf("expected occupied-slot rejection, got %+v", res)
	}
	// overfill clamps at max stack and reports the overflow
	if res := s.Add(inst.ID, "coal", 10); res.Added != 2 || res.Remaining != 8 {
		t.Fatalf("expected 2 added 8 remaining, got %+v", res)
	}
}

func TestConsumeSequentialCombustion(t *testing.T) {
	s, _, types := fuelFixture(t)
	inst := placeBurner(t, s, types, "f1", "stone-furnace")
	s.Add(inst.ID, "coal", 2)
	store := item.NewStore(s.items)

	b := s.Buffer(inst.ID)
	// coal holds 4000 kJ; a 90 kW furnace draws 90 kJ per second
	res := s.Consume(inst, 10, true, nil, store)
	if !res.OK || res.EnergyConsumed != 900 {
		t.Fatalf("expected 900 kJ consumed, got %+v", res)
	}
	if b.Slots[0].Quantity != 2 || b.Slots[0].RemainingEnergy != 3100 {
		t.Fatalf("expected first unit at 3100 kJ, got qty=%d energy=%.0f",
			b.Slots[0].Quantity, b.Slots[0].RemainingEnergy)
	}

	// draining past the first unit ignites the second at full value
	res = s.Consume(inst, 40, true, nil, store)
	if !res.OK || res.EnergyConsumed != 3600 {
		t.Fatalf("expected 3600 kJ consumed, got %+v", res)
	}
	if b.Slots[0].Quantity != 1 || b.Slots[0].RemainingEnergy != 3500 {
		t.Fatalf("expected second unit at 3500 kJ, got qty=%d energy=%.0f",
			b.Slots[0].Quantity, b.Slots[0].RemainingEnergy)
	}

	// exhausting the buffer mid-draw reports failure once nothing burns
	s.Consume(inst, 100, true, nil, store)
	res = s.Consume(inst, 1, true, nil, store)
	if res.OK {
		t.Fatalf("expected failure on empty buffer, got %+v", res)
	}
}

func TestConsumeGatedByProduction(t *testing.T) {
	s, _, types := fuelFixture(t)
	inst := placeBurner(t, s, types, "f1", "stone-furnace")
	s.Add(inst.ID, "coal", 1)
	store := item.NewStore(s.items)
	b := s.Buffer(inst.ID)

	// idle facilities draw nothing
	res := s.Consume(inst, 10, false, nil, store)
	if !res.OK || res.EnergyConsumed != 0 {
		t.Fatalf("expected no draw while idle, got %+v", res)
	}
	if b.Slots[0].RemainingEnergy != 4000 {
		t.Fatalf("buffer must be untouched while idle")
	}

	// stopped facilities draw nothing either
	inst.Status = facility.StatusStopped
	res = s.Consume(inst, 10, true, nil, store)
	if !res.OK || res.EnergyConsumed != 0 {
		t.Fatalf("expected no draw while stopped, got %+v", res)
	}
}

func TestTotalEnergyAccountsBurningUnit(t *testing.T) {
	s, items, types := fuelFixture(t)
	inst := placeBurner(t, s, types, "f1", "stone-furnace")
	s.Add(inst.ID, "coal", 3)
	store := item.NewStore(s.items)

	s.Consume(inst, 10, true, nil, store) // 900 kJ off the burning unit
	b := s.Buffer(inst.ID)
	// two full units plus the burning one
	if got := b.TotalEnergyKJ(items); got != 2*4000+3100 {
		t.Fatalf("expected 11100 kJ total, got %.0f", got)
	}
}

func TestAutoRefuelPriorityOrder(t *testing.T) {
	s, _, types := fuelFixture(t)
	drill := placeBurner(t, s, types, "drill-1", "burner-mining-drill")
	furnace := placeBurner(t, s, types, "furnace-1", "stone-furnace")
	inserter := placeBurner(t, s, types, "inserter-1", "burner-inserter")

	store := item.NewStore(s.items)
	store.AddAll(map[item.ID]int{"coal": 2})

	instances := []*facility.Instance{inserter, furnace, drill}
	report := s.AutoRefuel(instances, store, 10)

	if report.UnitsLoaded != 2 {
		t.Fatalf("expected 2 units loaded, got %d", report.UnitsLoaded)
	}
	// drill outranks furnace outranks inserter
	if s.Buffer(drill.ID).Slots[0].Quantity != 1 || s.Buffer(furnace.ID).Slots[0].Quantity != 1 {
		t.Fatalf("expected producers fueled first")
	}
	if s.Buffer(inserter.ID).Slots[0].Quantity != 0 {
		t.Fatalf("inserter must starve when fuel runs out")
	}
	if len(report.Starved) != 1 || report.Starved[0] != inserter.ID {
		t.Fatalf("expected inserter starved, got %v", report.Starved)
	}
}

func TestAutoRefuelPrefersDensestFuel(t *testing.T) {
	s, _, types := fuelFixture(t)
	furnace := placeBurner(t, s, types, "furnace-1", "stone-furnace")
	store := item.NewStore(s.items)
	store.AddAll(map[item.ID]int{"wood": 10, "solid-fuel": 1, "coal": 3})

	s.AutoRefuel([]*facility.Instance{furnace}, store, 1)
	slot := s.Buffer(furnace.ID).Slots[0]
	if slot.ItemID != "solid-fuel" || slot.Quantity != 1 {
		t.Fatalf("expected one solid-fuel loaded, got %dx %s", slot.Quantity, slot.ItemID)
	}

	// a second pass tops up with the same item only; solid fuel is gone,
	// so the slot stays as is rather than mixing in coal
	s.AutoRefuel([]*facility.Instance{furnace}, store, 1)
	slot = s.Buffer(furnace.ID).Slots[0]
	if slot.ItemID != "solid-fuel" || slot.Quantity != 1 {
		t.Fatalf("expected slot unchanged, got %dx %s", slot.Quantity, slot.ItemID)
	}
}

func TestAutoRefuelOneUnitPerPass(t *testing.T) {
	s, _, types := fuelFixture(t)
	drill := placeBurner(t, s, types, "drill-1", "burner-mining-drill")
	furnace := placeBurner(t, s, types, "furnace-1", "stone-furnace")
	store := item.NewStore(s.items)
	store.AddAll(map[item.ID]int{"coal": 3})

	// single pass: one unit each, even though the drill could hold more
	s.AutoRefuel([]*facility.Instance{drill, furnace}, store, 1)
	if s.Buffer(drill.ID).Slots[0].Quantity != 1 || s.Buffer(furnace.ID).Slots[0].Quantity != 1 {
		t.Fatalf("expected one unit each after one pass")
	}
	if store.GetAmount("coal") != 1 {
		t.Fatalf("expected 1 coal left, got %d", store.GetAmount("coal"))
	}
}

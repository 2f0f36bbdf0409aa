package power

import (
	"testing"

	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
)

func powerFixture(t *testing.T) (*Calculator, *facility.Registry) {
	t.Helper()
	types := facility.NewRegistry(
		&facility.Type{
			ID: "solar-panel", Class: facility.ClassSolarPanel,
			PowerOutputKW: 60, SolarDayRatio: 0.5,
		},
		&facility.Type{
			ID: "steam-engine", Class: facility.ClassSteamEngine,
			PowerOutputKW: 900,
		},
		&facility.Type{
			ID: "assembling-machine-1", Class: facility.ClassAssembler,
			Energy: facility.SourceElectric, BasePowerKW: 75, CraftingSpeed: 0.5,
		},
		&facility.Type{
			ID: "stone-furnace", Class: facility.ClassFurnace,
			Energy: facility.SourceBurner, BasePowerKW: 90, CraftingSpeed: 1,
			FuelCategories: []item.FuelCategory{item.FuelChemical},
		},
	)
	return NewCalculator(types, DefaultThresholds()), types
}

func place(t *testing.T, types *facility.Registry, id string, typeID facility.TypeID, count int) *facility.Instance {
	t.Helper()
	inst, err := types.NewInstance(id, typeID, count)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	inst.Status = facility.StatusRunning
	return inst
}

func TestBalanceSolarDerating(t *testing.T) {
	calc, types := powerFixture(t)
	panels := place(t, types, "solar-1", "solar-panel", 4)

	b := calc.Calculate([]*facility.Instance{panels}, 0)
	// 4 x 60 kW at 50% day ratio
	if b.ActualGeneration != 120 {
		t.Fatalf("expected 120 kW solar, got %.0f", b.ActualGeneration)
	}
	if b.Status != StatusSurplus {
		t.Fatalf("no demand means surplus, got %v", b.Status)
	}
}

func TestBalanceSteamCappedBySupply(t *testing.T) {
	calc, types := powerFixture(t)
	engines := place(t, types, "engine-1", "steam-engine", 2)
	asm := place(t, types, "asm-1", "assembling-machine-1", 4)

	// 1800 kW of engine capacity backed by only 500 kW of steam
	b := calc.Calculate([]*facility.Instance{engines, asm}, 500)
	if b.GenerationCapacity != 1800 {
		t.Fatalf("expected 1800 kW capacity, got %.0f", b.GenerationCapacity)
	}
	if b.ActualGeneration != 500 {
		t.Fatalf("expected 500 kW actual, got %.0f", b.ActualGeneration)
	}
	if b.ConsumptionDemand != 300 {
		t.Fatalf("expected 300 kW demand, got %.0f", b.ConsumptionDemand)
	}
	if b.Status != StatusSurplus {
		t.Fatalf("expected surplus at 500/300, got %v", b.Status)
	}
}

func TestBalanceStatusThresholds(t *testing.T) {
	calc, types := powerFixture(t)
	asm := place(t, types, "asm-1", "assembling-machine-1", 4) // 300 kW demand

	cases := []struct {
		steam float64
		want  Status
	}{
		{330, StatusSurplus},  // ratio 1.10
		{300, StatusBalanced}, // ratio 1.00
		{285, StatusBalanced}, // ratio 0.95
		{180, StatusDeficit},  // ratio 0.60
	}
	for _, c := range cases {
		engines := place(t, types, "engine-1", "steam-engine", 1)
		b := calc.Calculate([]*facility.Instance{engines, asm}, c.steam)
		if b.Status != c.want {
			t.Fatalf("steam %.0f: expected %v, got %v", c.steam, c.want, b.Status)
		}
	}
}

func TestApplyScalesElectricEfficiency(t *testing.T) {
	calc, types := powerFixture(t)
	engines := place(t, types, "engine-1", "steam-engine", 1)
	asm := place(t, types, "asm-1", "assembling-machine-1", 4)
	furnace := place(t, types, "furnace-1", "stone-furnace", 1)

	instances := []*facility.Instance{engines, asm, furnace}
	b := calc.Calculate(instances, 180) // 180/300 = 0.6
	for _, inst := range instances {
		calc.Apply(inst, b)
	}
	if asm.Efficiency != 0.6 {
		t.Fatalf("expected 0.6 efficiency on electric consumer, got %.2f", asm.Efficiency)
	}
	// burners never care about the grid
	if furnace.Efficiency != 1.0 || furnace.Status != facility.StatusRunning {
		t.Fatalf("burner must be power-exempt, got eff=%.2f status=%v", furnace.Efficiency, furnace.Status)
	}
}

func TestApplyNoPowerAndRecovery(t *testing.T) {
	calc, types := powerFixture(t)
	asm := place(t, types, "asm-1", "assembling-machine-1", 1)

	b := calc.Calculate([]*facility.Instance{asm}, 0)
	calc.Apply(asm, b)
	if asm.Status != facility.StatusNoPower || asm.Efficiency != 0 {
		t.Fatalf("expected NoPower at zero generation, got %v eff=%.2f", asm.Status, asm.Efficiency)
	}

	engines := place(t, types, "engine-1", "steam-engine", 1)
	b = calc.Calculate([]*facility.Instance{engines, asm}, 900)
	calc.Apply(asm, b)
	if asm.Status != facility.StatusRunning || asm.Efficiency != 1.0 {
		t.Fatalf("expected recovery to running, got %v eff=%.2f", asm.Status, asm.Efficiency)
	}
}

package power

import (
	"math"

	"github.com/gravitas-games/foundry/internal/facility"
)

// Status classifies the grid state for a tick.
type Status int

const (
	StatusSurplus Status = iota
	StatusBalanced
	StatusDeficit
)

// String returns a human-readable representation of the grid status.
func (s Status) String() string {
	switch s {
	case StatusSurplus:
		return "Surplus"
	case StatusBalanced:
		return "Balanced"
	case StatusDeficit:
		return "Deficit"
	default:
		return "Unknown"
	}
}

// Thresholds configure status classification as generation/demand ratios.
type Thresholds struct {
	// Surplus is the ratio at or above which the grid reports surplus.
	Surplus float64
	// Balanced is the ratio at or above which the grid reports balanced.
	// Below it the grid is in deficit.
	Balanced float64
}

// DefaultThresholds mirror the tuning the game shipped with: >=110%
// generation is surplus, >=95% is balanced, anything less is deficit.
func DefaultThresholds() Thresholds {
	return Thresholds{Surplus: 1.10, Balanced: 0.95}
}

// Balance is the per-tick aggregate of the electrical grid. All figures
// are kW.
type Balance struct {
	GenerationCapacity float64 `json:"generationCapacity"`
	ActualGeneration   float64 `json:"actualGeneration"`
	ConsumptionDemand  float64 `json:"consumptionDemand"`
	ActualConsumption  float64 `json:"actualConsumption"`
	// SatisfactionRatio is generation over demand, capped at 1.
	SatisfactionRatio float64 `json:"satisfactionRatio"`
	Status            Status  `json:"status"`
}

// Calculator aggregates generation and demand across facility instances and
// propagates scarcity into per-facility efficiency.
type Calculator struct {
	types      *facility.Registry
	thresholds Thresholds
}

// NewCalculator builds a calculator over the given type registry.
func NewCalculator(types *facility.Registry, thresholds Thresholds) *Calculator {
	if thresholds.Surplus <= 0 {
		thresholds = DefaultThresholds()
	}
	return &Calculator{types: types, thresholds: thresholds}
}

// Calculate sums generation over generator classes and demand over electric
// consumers. Solar output is derated by the type's day ratio. Steam engines
// are capped by steamSupplyKW, the power the boiler subsystem can currently
// back; that subsystem is outside this core and feeds its figure in.
func (c *Calculator) Calculate(instances []*facility.Instance, steamSupplyKW float64) Balance {
	var b Balance
	steamCapacity := 0.0

	for _, inst := range instances {
		t := c.types.Lookup(inst.TypeID)
		if t == nil || inst.Status == facility.StatusStopped {
			continue
		}
		switch {
		case t.Class == facility.ClassSolarPanel:
			ratio := t.SolarDayRatio
			if ratio <= 0 || ratio > 1 {
				ratio = 1
			}
			out := t.PowerOutputKW * float64(inst.Count) * ratio
			b.GenerationCapacity += out
			b.ActualGeneration += out
		case t.Class == facility.ClassSteamEngine:
			steamCapacity += t.PowerOutputKW * float64(inst.Count)
		case t.Energy == facility.SourceElectric:
			b.ConsumptionDemand += t.BasePowerKW * float64(inst.Count)
		}
	}

	b.GenerationCapacity += steamCapacity
	b.ActualGeneration += math.Min(steamCapacity, steamSupplyKW)

	if b.ConsumptionDemand <= 0 {
		b.SatisfactionRatio = 1
	} else {
		b.SatisfactionRatio = math.Min(1, b.ActualGeneration/b.ConsumptionDemand)
	}
	b.ActualConsumption = b.ConsumptionDemand * b.SatisfactionRatio
	b.Status = c.classify(b)
	return b
}

func (c *Calculator) classify(b Balance) Status {
	if b.ConsumptionDemand <= 0 {
		return StatusSurplus
	}
	ratio := b.ActualGeneration / b.ConsumptionDemand
	switch {
	case ratio >= c.thresholds.Surplus:
		return StatusSurplus
	case ratio >= c.thresholds.Balanced:
		return StatusBalanced
	default:
		return StatusDeficit
	}
}

// Apply propagates the grid state into one facility instance. Burner types
// are power-exempt and pass through unchanged. Electric consumers scale
// efficiency linearly with the satisfaction ratio; at ratio zero they flip
// to NoPower. The efficiency set here multiplies every other rate
// computation for the facility on the same tick.
func (c *Calculator) Apply(inst *facility.Instance, b Balance) {
	t := c.types.Lookup(inst.TypeID)
	if t == nil || t.Energy != facility.SourceElectric {
		return
	}
	if inst.Status == facility.StatusStopped {
		return
	}
	inst.Efficiency = b.SatisfactionRatio
	if b.SatisfactionRatio <= 0 {
		inst.Status = facility.StatusNoPower
		return
	}
	if inst.Status == facility.StatusNoPower {
		inst.Status = facility.StatusRunning
	}
}

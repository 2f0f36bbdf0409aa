package facility

import (
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// TypeID identifies a facility type (the static blueprint, not an instance).
type TypeID string

// EntityClass groups facility types for priority ranking and power
// bookkeeping.
type EntityClass int

const (
	ClassMiningDrill EntityClass = iota
	ClassFurnace
	ClassAssembler
	ClassBoiler
	ClassSteamEngine
	ClassSolarPanel
	ClassInserter
	ClassBelt
	ClassLab
	ClassOther
)

// String returns a human-readable representation of the entity class.
func (c EntityClass) String() string {
	switch c {
	case ClassMiningDrill:
		return "MiningDrill"
	case ClassFurnace:
		return "Furnace"
	case ClassAssembler:
		return "Assembler"
	case ClassBoiler:
		return "Boiler"
	case ClassSteamEngine:
		return "SteamEngine"
	case ClassSolarPanel:
		return "SolarPanel"
	case ClassInserter:
		return "Inserter"
	case ClassBelt:
		return "Belt"
	case ClassLab:
		return "Lab"
	case ClassOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// IsGenerator reports whether the class produces electrical power.
func (c EntityClass) IsGenerator() bool {
	return c == ClassSteamEngine || c == ClassSolarPanel
}

// EnergySource states what a facility runs on.
type EnergySource int

const (
	// SourceNone marks passive structures (belts without drive, solar).
	SourceNone EnergySource = iota
	// SourceElectric marks grid consumers subject to power rationing.
	SourceElectric
	// SourceBurner marks facilities that burn solid fuel from a buffer.
	SourceBurner
)

// String returns a human-readable representation of the energy source.
func (s EnergySource) String() string {
	switch s {
	case SourceNone:
		return "None"
	case SourceElectric:
		return "Electric"
	case SourceBurner:
		return "Burner"
	default:
		return "Unknown"
	}
}

// Type holds the static metadata for a facility type. Queried by ID through
// the Registry; the simulation treats it as read-only reference data.
type Type struct {
	ID    TypeID      `json:"id"`
	Name  string      `json:"name"`
	Class EntityClass `json:"class"`

	Energy EnergySource `json:"energy"`
	// BasePowerKW is electrical draw for electric consumers and fuel burn
	// rate for burners.
	BasePowerKW float64 `json:"basePowerKW,omitempty"`
	// PowerOutputKW is generation capacity for generator classes.
	PowerOutputKW float64 `json:"powerOutputKW,omitempty"`
	// SolarDayRatio derates solar generation for the day/night cycle.
	SolarDayRatio float64 `json:"solarDayRatio,omitempty"`

	CraftingSpeed  float64             `json:"craftingSpeed,omitempty"`
	FuelCategories []item.FuelCategory `json:"fuelCategories,omitempty"`
	// MaxFuelStack caps how many fuel units fit in one buffer slot.
	MaxFuelStack int `json:"maxFuelStack,omitempty"`
}

// AcceptsFuel reports whether the type's burner slot takes the category.
func (t *Type) AcceptsFuel(cat item.FuelCategory) bool {
	for _, c := range t.FuelCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Status is the runtime condition of a facility instance. Stalls (no fuel,
// no power, missing inputs) are routine states, not errors; they hold
// production at its current progress until the constraint clears.
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusIdle
	StatusNoPower
	StatusNoFuel
	StatusInsufficientInput
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusRunning:
		return "Running"
	case StatusIdle:
		return "Idle"
	case StatusNoPower:
		return "NoPower"
	case StatusNoFuel:
		return "NoFuel"
	case StatusInsufficientInput:
		return "InsufficientInput"
	default:
		return "Unknown"
	}
}

// Active reports whether the instance is eligible to make progress this
// tick. Stall statuses stay active so the next tick can retry them.
func (s Status) Active() bool { return s != StatusStopped }

// Production tracks the recipe currently assigned to an instance and its
// fractional craft progress (crafts in flight, 0..1 per cycle).
type Production struct {
	RecipeID recipe.ID `json:"recipeId"`
	Progress float64   `json:"progress"`
}

// Instance is a placed group of identical facilities sharing one recipe
// assignment. Count scales both rates and power figures.
type Instance struct {
	ID         string      `json:"id"`
	TypeID     TypeID      `json:"typeId"`
	Count      int         `json:"count"`
	Efficiency float64     `json:"efficiency"`
	Status     Status      `json:"status"`
	Production *Production `json:"production,omitempty"`
}

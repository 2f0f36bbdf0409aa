// Package item provides the item catalog and the shared inventory store the
// simulation mutates. The store only tracks identifiers and quantities;
// recipe and facility semantics live in their own packages.
package item

// ID represents an application-defined identifier for an item.
type ID string

// FuelCategory classifies what kind of burner slot an item fits into.
// Empty means the item is not a fuel.
type FuelCategory string

const (
	// FuelNone marks non-combustible items.
	FuelNone FuelCategory = ""
	// FuelChemical covers wood, coal and solid fuel.
	FuelChemical FuelCategory = "chemical"
	// FuelNuclear covers fuel cells for reactors.
	FuelNuclear FuelCategory = "nuclear"
)

// Details captures static metadata about an item. The inventory store itself
// never interprets these fields; the fuel simulator reads FuelValueMJ and
// FuelCategory, the UI layer reads Name and Category.
type Details struct {
	ID           ID           `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	Category     string       `yaml:"category,omitempty" json:"category,omitempty"`
	StackSize    int          `yaml:"stack_size,omitempty" json:"stackSize,omitempty"`
	FuelValueMJ  float64      `yaml:"fuel_value_mj,omitempty" json:"fuelValueMJ,omitempty"`
	FuelCategory FuelCategory `yaml:"fuel_category,omitempty" json:"fuelCategory,omitempty"`
}

// IsFuel reports whether the item can be loaded into a burner slot.
func (d Details) IsFuel() bool {
	return d.FuelCategory != FuelNone && d.FuelValueMJ > 0
}

// FuelValueKJ returns the per-unit energy content in kilojoules, the unit the
// burn-rate math operates in (burn rates are kW, so kW x seconds = kJ).
func (d Details) FuelValueKJ() float64 {
	return d.FuelValueMJ * 1000
}

// Entry is a single inventory line: how much of an item is held and how much
// the store will accept. Capacity <= 0 means unbounded.
type Entry struct {
	Amount   int `json:"amount"`
	Capacity int `json:"capacity,omitempty"`
}

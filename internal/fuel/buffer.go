// Package fuel simulates the energy reservoirs of burner facilities.
// A buffer burns fuel one unit at a time: RemainingEnergy tracks only the
// unit currently on fire, never the pooled stack energy. Queries between
// units can therefore show a dip before the next unit ignites; that
// accounting is load-bearing for the burn-rate math and is kept as-is.
package fuel

import (
	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// Slot holds one fuel type at a time. Quantity is the stack count;
// RemainingEnergy belongs to the currently burning unit only, so total
// buffer energy = (Quantity-1) x per-unit energy + RemainingEnergy.
type Slot struct {
	ItemID item.ID `json:"itemId,omitempty"`
	// Quantity counts whole fuel units including the one burning.
	Quantity int `json:"quantity"`
	// RemainingEnergy is kJ left in the burning unit.
	RemainingEnergy float64 `json:"remainingEnergy"`
}

// Empty reports whether the slot holds no fuel at all.
func (s *Slot) Empty() bool { return s.Quantity <= 0 }

// Buffer is the per-facility fuel reservoir. Buffers are plain records with
// no back-pointers so the persistence layer can serialize them directly.
type Buffer struct {
	FacilityID string `json:"facilityId"`
	// Slots is fixed length 1 for every current facility type; kept as a
	// slice because reactor types declare more.
	Slots []Slot `json:"slots"`
	// BurnRateKW is the facility's energy draw, derived from its base power.
	BurnRateKW float64             `json:"burnRateKW"`
	MaxStack   int                 `json:"maxStack"`
	Accepted   []item.FuelCategory `json:"accepted"`
}

// TotalEnergyKJ returns the buffer's remaining energy under the
// current-unit accounting rule.
func (b *Buffer) TotalEnergyKJ(items *item.Registry) float64 {
	slot := &b.Slots[0]
	if slot.Empty() {
		return 0
	}
	d, ok := items.Lookup(slot.ItemID)
	if !ok {
		return slot.RemainingEnergy
	}
	return float64(slot.Quantity-1)*d.FuelValueKJ() + slot.RemainingEnergy
}

// ConsumeResult reports what a consumption step actually drew. OK is false
// only when energy was needed and none could be drawn; the caller reacts by
// stalling production, it is not a fatal condition.
type ConsumeResult struct {
	OK             bool    `json:"ok"`
	EnergyConsumed float64 `json:"energyConsumed"`
}

// AddResult reports the outcome of loading fuel into a buffer.
type AddResult struct {
	Added     int    `json:"added"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"`
}

// Simulator owns the fuel buffers of all burner facilities, keyed by
// facility instance ID.
type Simulator struct {
	types   *facility.Registry
	items   *item.Registry
	buffers map[string]*Buffer
}

// NewSimulator creates a fuel simulator over the given registries.
func NewSimulator(types *facility.Registry, items *item.Registry) *Simulator {
	return &Simulator{
		types:   types,
		items:   items,
		buffers: make(map[string]*Buffer),
	}
}

// InitBuffer creates (or returns the existing) buffer for a facility
// instance. Returns nil for non-burner types and for burner types missing
// declared fuel categories.
func (s *Simulator) InitBuffer(inst *facility.Instance) *Buffer {
	if b, ok := s.buffers[inst.ID]; ok {
		return b
	}
	t := s.types.Lookup(inst.TypeID)
	if t == nil || t.Energy != facility.SourceBurner || len(t.FuelCategories) == 0 {
		return nil
	}
	maxStack := t.MaxFuelStack
	if maxStack <= 0 {
		maxStack = defaultMaxStack
	}
	b := &Buffer{
		FacilityID: inst.ID,
		Slots:      make([]Slot, 1),
		BurnRateKW: t.BasePowerKW,
		MaxStack:   maxStack,
		Accepted:   t.FuelCategories,
	}
	s.buffers[inst.ID] = b
	return b
}

const defaultMaxStack = 5

// Buffer returns the buffer for a facility instance, or nil.
func (s *Simulator) Buffer(facilityID string) *Buffer { return s.buffers[facilityID] }

// Consume draws energy for one tick. No energy is drawn when the facility is
// stopped, not producing, or any input of its active recipe is short of the
// required amount; fuel is never wasted on blocked production. The draw
// models sequential single-item combustion: the burning unit is exhausted
// before the next one ignites.
func (s *Simulator) Consume(inst *facility.Instance, dt float64, producing bool, active *recipe.Recipe, store *item.Store) ConsumeResult {
	b := s.buffers[inst.ID]
	if b == nil {
		return ConsumeResult{OK: true}
	}
	if !producing || inst.Status == facility.StatusStopped || dt <= 0 {
		return ConsumeResult{OK: true}
	}
	if active != nil && !store.HasAll(active.In) {
		return ConsumeResult{OK: true}
	}

	need := b.BurnRateKW * dt * inst.Efficiency * float64(inst.Count)
	if need <= 0 {
		return ConsumeResult{OK: true}
	}

	slot := &b.Slots[0]
	consumed := 0.0
	for need > 0 && !slot.Empty() {
		draw := need
		if draw > slot.RemainingEnergy {
			draw = slot.RemainingEnergy
		}
		slot.RemainingEnergy -= draw
		consumed += draw
		need -= draw

		if slot.RemainingEnergy <= 0 {
			slot.Quantity--
			if slot.Quantity > 0 {
				// Next unit of the same fuel item ignites at full value.
				d, ok := s.items.Lookup(slot.ItemID)
				if !ok {
					slot.Quantity = 0
					break
				}
				slot.RemainingEnergy = d.FuelValueKJ()
			} else {
				slot.ItemID = ""
				slot.RemainingEnergy = 0
			}
		}
	}

	if consumed == 0 {
		return ConsumeResult{OK: false}
	}
	return ConsumeResult{OK: true, EnergyConsumed: consumed}
}

// Add loads fuel units into the facility's buffer. Incompatible categories,
// non-fuel items and slots occupied by a different fuel type are rejected;
// one fuel type per slot at a time. Fills up to the type's max stack per
// slot and reports what could not fit.
func (s *Simulator) Add(facilityID string, itemID item.ID, quantity int) AddResult {
	b := s.buffers[facilityID]
	if b == nil {
		return AddResult{Remaining: quantity, Reason: "facility has no fuel buffer"}
	}
	if quantity <= 0 {
		return AddResult{Reason: "quantity must be positive"}
	}
	d, ok := s.items.Lookup(itemID)
	if !ok || !d.IsFuel() {
		return AddResult{Remaining: quantity, Reason: "item is not a fuel"}
	}
	if !acceptsCategory(b.Accepted, d.FuelCategory) {
		return AddResult{Remaining: quantity, Reason: "fuel category not accepted"}
	}

	slot := &b.Slots[0]
	if !slot.Empty() && slot.ItemID != itemID {
		return AddResult{Remaining: quantity, Reason: "slot occupied by different fuel"}
	}

	room := b.MaxStack - slot.Quantity
	if room <= 0 {
		return AddResult{Remaining: quantity, Reason: "slot full"}
	}
	added := quantity
	if added > room {
		added = room
	}
	if slot.Empty() {
		slot.ItemID = itemID
		slot.RemainingEnergy = d.FuelValueKJ()
	}
	slot.Quantity += added
	return AddResult{Added: added, Remaining: quantity - added}
}

func acceptsCategory(accepted []item.FuelCategory, cat item.FuelCategory) bool {
	for _, c := range accepted {
		if c == cat {
			return true
		}
	}
	return false
}

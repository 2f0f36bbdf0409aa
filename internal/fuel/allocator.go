package fuel

import (
	"sort"

	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
)

// Allocator rations scarce fuel across starved burner facilities. Producers
// come first: a mining drill or furnace is always refueled before logistics,
// and distribution goes one unit at a time so bulk-filling a low-priority
// facility can never starve a high-priority one.

// classPriority ranks entity classes for refueling; lower runs first.
func classPriority(c facility.EntityClass) float64 {
	switch c {
	case facility.ClassMiningDrill:
		return 1
	case facility.ClassFurnace:
		return 5
	case facility.ClassBoiler:
		return 8
	case facility.ClassAssembler:
		return 12
	case facility.ClassLab:
		return 20
	case facility.ClassInserter:
		return 30
	case facility.ClassBelt:
		return 35
	default:
		return 40
	}
}

// refuelPriority derives the effective priority of an instance. Faster
// machines burn through fuel sooner, so speed nudges them slightly ahead of
// equal-class peers.
func (s *Simulator) refuelPriority(inst *facility.Instance) float64 {
	t := s.types.Lookup(inst.TypeID)
	if t == nil {
		return 99
	}
	p := classPriority(t.Class)
	if t.CraftingSpeed > 0 {
		p -= t.CraftingSpeed / 10
	}
	return p
}

// RefuelReport summarizes one allocation run.
type RefuelReport struct {
	UnitsLoaded int
	// Starved lists facility IDs that remained without fuel after the run
	// because no compatible fuel was left in inventory.
	Starved []string
}

// AutoRefuel refills depleted buffers from inventory in strict priority
// order, one fuel unit per facility per pass, repeating passes until no
// facility accepts another unit or maxPasses is reached. Fuel is drawn from
// the store at one unit per load, densest compatible fuel first.
func (s *Simulator) AutoRefuel(instances []*facility.Instance, store *item.Store, maxPasses int) RefuelReport {
	if maxPasses <= 0 {
		maxPasses = 1
	}

	burners := make([]*facility.Instance, 0)
	for _, inst := range instances {
		if inst.Status == facility.StatusStopped {
			continue
		}
		if s.buffers[inst.ID] != nil {
			burners = append(burners, inst)
		}
	}
	sort.SliceStable(burners, func(i, j int) bool {
		return s.refuelPriority(burners[i]) < s.refuelPriority(burners[j])
	})

	var report RefuelReport
	for pass := 0; pass < maxPasses; pass++ {
		loadedThisPass := 0
		for _, inst := range burners {
			b := s.buffers[inst.ID]
			slot := &b.Slots[0]
			if slot.Quantity >= b.MaxStack {
				continue
			}
			if s.loadOneUnit(inst.ID, b, store) {
				loadedThisPass++
			}
		}
		report.UnitsLoaded += loadedThisPass
		if loadedThisPass == 0 {
			break
		}
	}

	for _, inst := range burners {
		if s.buffers[inst.ID].Slots[0].Empty() {
			report.Starved = append(report.Starved, inst.ID)
		}
	}
	return report
}

// loadOneUnit moves a single compatible fuel unit from the store into the
// buffer. A slot already holding a fuel type only accepts more of the same
// item until exhausted.
func (s *Simulator) loadOneUnit(facilityID string, b *Buffer, store *item.Store) bool {
	slot := &b.Slots[0]
	if !slot.Empty() {
		if store.GetAmount(slot.ItemID) <= 0 {
			return false
		}
		res := s.Add(facilityID, slot.ItemID, 1)
		if res.Added == 0 {
			return false
		}
		store.ApplyDelta(slot.ItemID, -1)
		return true
	}

	for _, cat := range b.Accepted {
		for _, d := range s.items.FuelsInCategory(cat) {
			if store.GetAmount(d.ID) <= 0 {
				continue
			}
			res := s.Add(facilityID, d.ID, 1)
			if res.Added == 0 {
				continue
			}
			store.ApplyDelta(d.ID, -1)
			return true
		}
	}
	return false
}

// StarvedBurners returns the IDs of burner facilities whose buffers are
// currently empty, in the same priority order AutoRefuel would serve them.
func (s *Simulator) StarvedBurners(instances []*facility.Instance) []string {
	starved := make([]*facility.Instance, 0)
	for _, inst := range instances {
		b := s.buffers[inst.ID]
		if b != nil && b.Slots[0].Empty() && inst.Status != facility.StatusStopped {
			starved = append(starved, inst)
		}
	}
	sort.SliceStable(starved, func(i, j int) bool {
		return s.refuelPriority(starved[i]) < s.refuelPriority(starved[j])
	})
	out := make([]string, len(starved))
	for i, inst := range starved {
		out[i] = inst.ID
	}
	return out
}

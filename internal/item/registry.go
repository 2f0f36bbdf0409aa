package item

import (
	"errors"
	"fmt"
	"sort"
)

// Registry stores item details keyed by ID. It is populated once from the
// data catalog and treated as read-only reference data afterwards.
type Registry struct {
	items map[ID]Details
}

// NewRegistry constructs an empty registry and optionally seeds it with
// initial item details.
func NewRegistry(details ...Details) *Registry {
	r := &Registry{items: make(map[ID]Details, len(details))}
	for _, d := range details {
		_ = r.Register(d) // ignore duplicates during seed
	}
	return r
}

// Register inserts or updates metadata for an item. The ID must be non-empty,
// and fuel items must declare a positive energy value.
func (r *Registry) Register(d Details) error {
	if d.ID == "" {
		return errors.New("item: details missing id")
	}
	if d.FuelCategory != FuelNone && d.FuelValueMJ <= 0 {
		return fmt.Errorf("item %s: fuel category %q requires a positive fuel value", d.ID, d.FuelCategory)
	}
	if r.items == nil {
		r.items = make(map[ID]Details)
	}
	r.items[d.ID] = d
	return nil
}

// Lookup returns details for the provided ID, if present.
func (r *Registry) Lookup(id ID) (Details, bool) {
	d, ok := r.items[id]
	return d, ok
}

// Count returns the number of registered items.
func (r *Registry) Count() int { return len(r.items) }

// FuelsInCategory returns all fuel items of the given category sorted by
// descending energy value, then by ID for determinism. The fuel allocator
// uses this ordering to prefer the densest available fuel.
func (r *Registry) FuelsInCategory(cat FuelCategory) []Details {
	out := make([]Details, 0)
	for _, d := range r.items {
		if d.FuelCategory == cat && d.IsFuel() {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FuelValueMJ != out[j].FuelValueMJ {
			return out[i].FuelValueMJ > out[j].FuelValueMJ
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Export copies registry contents into a slice sorted by ID, suitable for
// sending to clients.
func (r *Registry) Export() []Details {
	if len(r.items) == 0 {
		return nil
	}
	out := make([]Details, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

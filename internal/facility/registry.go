package facility

import (
	"errors"
	"fmt"
)

// Registry stores facility type metadata keyed by TypeID. Populated once
// from the data catalog, read-only afterwards.
type Registry struct {
	types map[TypeID]*Type
	order []TypeID
}

// NewRegistry constructs an empty registry and optionally seeds it.
func NewRegistry(types ...*Type) *Registry {
	r := &Registry{types: make(map[TypeID]*Type, len(types))}
	for _, t := range types {
		_ = r.Register(t)
	}
	return r
}

// Register adds a facility type. Burner types must declare accepted fuel
// categories; generator types must declare output.
func (r *Registry) Register(t *Type) error {
	if t == nil {
		return errors.New("facility: type cannot be nil")
	}
	if t.ID == "" {
		return errors.New("facility: type ID cannot be empty")
	}
	if _, exists := r.types[t.ID]; exists {
		return fmt.Errorf("facility: duplicate type %s", t.ID)
	}
	if t.Energy == SourceBurner && len(t.FuelCategories) == 0 {
		return fmt.Errorf("facility %s: burner type requires fuel categories", t.ID)
	}
	if t.Class.IsGenerator() && t.PowerOutputKW <= 0 {
		return fmt.Errorf("facility %s: generator type requires power output", t.ID)
	}
	r.types[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Lookup returns the type for an ID, or nil.
func (r *Registry) Lookup(id TypeID) *Type { return r.types[id] }

// All returns every type in registration order.
func (r *Registry) All() []*Type {
	out := make([]*Type, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}

// Count returns the number of registered types.
func (r *Registry) Count() int { return len(r.types) }

// NewInstance places count facilities of the given type. Instances start
// idle at full efficiency; recipe assignment and status transitions happen
// through the engine tick.
func (r *Registry) NewInstance(id string, typeID TypeID, count int) (*Instance, error) {
	t := r.Lookup(typeID)
	if t == nil {
		return nil, fmt.Errorf("facility: unknown type %s", typeID)
	}
	if count <= 0 {
		return nil, fmt.Errorf("facility: count must be positive, got %d", count)
	}
	return &Instance{
		ID:         id,
		TypeID:     typeID,
		Count:      count,
		Efficiency: 1.0,
		Status:     StatusIdle,
	}, nil
}

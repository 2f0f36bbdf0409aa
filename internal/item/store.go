package item

import "sort"

// Store is the shared, mutable inventory all simulation subsystems draw from
// and commit to. All writes are deltas: the store clamps at zero on the low
// end and at capacity on the high end, so amounts can never go negative.
//
// The simulation is single-threaded and tick-driven; the store performs no
// locking. All mutation happens synchronously within one simulation step.
type Store struct {
	registry *Registry
	entries  map[ID]*Entry
}

// NewStore creates an empty inventory store backed by the given registry.
func NewStore(registry *Registry) *Store {
	return &Store{
		registry: registry,
		entries:  make(map[ID]*Entry),
	}
}

// Registry returns the attached item registry.
func (s *Store) Registry() *Registry { return s.registry }

// SetCapacity sets the maximum amount the store will hold for an item.
// Capacity <= 0 means unbounded.
func (s *Store) SetCapacity(id ID, capacity int) {
	e := s.entry(id)
	e.Capacity = capacity
	if capacity > 0 && e.Amount > capacity {
		e.Amount = capacity
	}
}

// GetAmount returns the current amount held for an item. Unknown items
// report zero.
func (s *Store) GetAmount(id ID) int {
	if e, ok := s.entries[id]; ok {
		return e.Amount
	}
	return 0
}

// ApplyDelta adjusts the held amount by delta, clamping at zero and at
// capacity. It returns the delta actually applied, which callers use to
// detect overflow or shortfall.
func (s *Store) ApplyDelta(id ID, delta int) int {
	e := s.entry(id)
	next := e.Amount + delta
	if next < 0 {
		next = 0
	}
	if e.Capacity > 0 && next > e.Capacity {
		next = e.Capacity
	}
	applied := next - e.Amount
	e.Amount = next
	return applied
}

// Has reports whether at least amount of the item is held.
func (s *Store) Has(id ID, amount int) bool {
	return s.GetAmount(id) >= amount
}

// HasAll reports whether every requirement in the map is satisfied.
func (s *Store) HasAll(req map[ID]int) bool {
	for id, qty := range req {
		if s.GetAmount(id) < qty {
			return false
		}
	}
	return true
}

// ConsumeAll removes every requirement from the store atomically: either all
// amounts are deducted or nothing is. Returns false without mutation when any
// requirement is short.
func (s *Store) ConsumeAll(req map[ID]int) bool {
	if !s.HasAll(req) {
		return false
	}
	for id, qty := range req {
		s.ApplyDelta(id, -qty)
	}
	return true
}

// AddAll credits every amount in the map. Capacity overflow is clamped per
// item; partial fills are not reported.
func (s *Store) AddAll(add map[ID]int) {
	for id, qty := range add {
		s.ApplyDelta(id, qty)
	}
}

// Snapshot copies the store contents into a plain map sorted deterministically
// through SortedIDs, suitable for persistence and assertions in tests.
func (s *Store) Snapshot() map[ID]Entry {
	out := make(map[ID]Entry, len(s.entries))
	for id, e := range s.entries {
		out[id] = *e
	}
	return out
}

// SortedIDs returns all item IDs present in the store in lexical order.
func (s *Store) SortedIDs() []ID {
	ids := make([]ID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) entry(id ID) *Entry {
	e, ok := s.entries[id]
	if !ok {
		e = &Entry{}
		s.entries[id] = e
	}
	return e
}

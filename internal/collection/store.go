package collection

import "sync"

// Store is the session cache of one raw collection. It is mutated in two
// ways only: a generation-guarded Replace after a fetch, and in-place
// patches applied after the server confirmed a mutation.
//
// The generation counter is the stale-update guard: a fetch started before
// a newer fetch (or a screen re-activation) must not land its result.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	gen   uint64
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Begin marks the start of a fetch and returns its generation token.
// Starting a new fetch invalidates every earlier in-flight one.
func (s *Store[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Replace installs the fetched collection if gen is still current.
// It reports whether the result landed.
func (s *Store[T]) Replace(gen uint64, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.items = append([]T(nil), items...)
	return true
}

// Items returns a copy of the raw collection in fetch order.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Len returns the raw collection size.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Append adds a server-confirmed record to the end of the collection.
func (s *Store[T]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Patch applies fn to the first item matching match, in place.
func (s *Store[T]) Patch(match func(T) bool, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if match(s.items[i]) {
			fn(&s.items[i])
			return true
		}
	}
	return false
}

// Remove splices out the first item matching match and returns it,
// so the caller can decrement counters using the pre-delete flags.
func (s *Store[T]) Remove(match func(T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if match(s.items[i]) {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, true
		}
	}
	var zero T
	return zero, false
}

// Find returns a copy of the first item matching match.
func (s *Store[T]) Find(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if match(s.items[i]) {
			return s.items[i], true
		}
	}
	var zero T
	return zero, false
}

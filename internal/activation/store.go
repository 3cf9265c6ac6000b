package activation

import "sync"

// Set is one consistent view of what the user is tracking: which events and
// which lead-time thresholds (minutes) are enabled.
type Set struct {
	Events     map[string]bool
	Thresholds map[int]bool
}

func NewSet() Set {
	return Set{
		Events:     make(map[string]bool),
		Thresholds: make(map[int]bool),
	}
}

// EnabledThresholds returns the enabled threshold minutes in no particular
// order; the gate sorts them itself.
func (s Set) EnabledThresholds() []int {
	out := make([]int, 0, len(s.Thresholds))
	for minutes, on := range s.Thresholds {
		if on {
			out = append(out, minutes)
		}
	}
	return out
}

func (s Set) clone() Set {
	out := NewSet()
	for id, on := range s.Events {
		out.Events[id] = on
	}
	for minutes, on := range s.Thresholds {
		out.Thresholds[minutes] = on
	}
	return out
}

// Store holds the activation set shared between the UI and the poll loop.
// The poller takes one Snapshot per tick; UI writes land on the next tick.
type Store struct {
	mu  sync.Mutex
	set Set
}

func NewStore(initial Set) *Store {
	return &Store{set: initial.clone()}
}

// Snapshot returns a deep copy; callers may read it without further locking.
func (s *Store) Snapshot() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.clone()
}

func (s *Store) SetEvent(id string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Events[id] = enabled
}

func (s *Store) SetThreshold(minutes int, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Thresholds[minutes] = enabled
}

func (s *Store) EventEnabled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Events[id]
}

func (s *Store) ThresholdEnabled(minutes int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Thresholds[minutes]
}

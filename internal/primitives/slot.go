package primitives

import "sync"

// Slot holds one piece of state as a current/pending pair.
//
// Set writes the pending side only; the current side changes exclusively
// through Commit. Every Set overwrites the previous pending value, so
// between two commits only the latest request survives.
//
// The zero value is not usable; construct with NewSlot.
type Slot[T any] struct {
	mu      sync.Mutex
	current T
	pending T
	eq      func(a, b T) bool
	seq     uint64 // incremented on every Set
	commits uint64 // incremented on every Commit
}

// NewSlot creates a slot with both sides set to initial (phase Idle).
// eq decides whether pending diverges from current and must be non-nil.
func NewSlot[T any](initial T, eq func(a, b T) bool) *Slot[T] {
	if eq == nil {
		panic("primitives: nil equality function")
	}
	return &Slot[T]{
		current: initial,
		pending: initial,
		eq:      eq,
	}
}

// Set stores v unconditionally into the pending side. Last-write-wins:
// any previously pending, not-yet-committed value is overwritten.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = v
	s.seq++
}

// Current returns the committed value.
func (s *Slot[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pending returns the most recently requested value, which may equal Current.
func (s *Slot[T]) Pending() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Phase reports Idle when pending equals current and Dirty otherwise.
func (s *Slot[T]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eq(s.pending, s.current) {
		return PhaseIdle
	}
	return PhaseDirty
}

// Commit copies pending into current if the two differ. Returns the
// committed value and true on a commit, or the unchanged current value
// and false when the slot was already Idle.
func (s *Slot[T]) Commit() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eq(s.pending, s.current) {
		return s.current, false
	}
	s.current = s.pending
	s.commits++
	return s.current, true
}

// Seq returns the number of Set calls observed so far.
func (s *Slot[T]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Commits returns the number of commits performed so far.
func (s *Slot[T]) Commits() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

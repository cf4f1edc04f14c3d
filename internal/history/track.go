package history

import "github.com/vovakirdan/pushcore/internal/core"

// Component gives the history store read/write access to one component type.
type Component[T any] interface {
	Get(id core.EntityID) (T, bool)
	Set(id core.EntityID, v T)
}

// Track is the history handler for one tracked component type. Entities opt
// in with Enable; commands are applied to them in opt-in order.
type Track[T any] struct {
	comp   Component[T]
	clone  func(T) T
	stacks map[core.EntityID]*Stack[T]
	order  []core.EntityID
}

// TrackOption configures a Track.
type TrackOption[T any] func(*Track[T])

// WithClone sets the copy function used when snapshotting values that hold
// references (slices, maps, pointers). Plain values are copied by assignment.
func WithClone[T any](clone func(T) T) TrackOption[T] {
	return func(t *Track[T]) {
		t.clone = clone
	}
}

// NewTrack creates a handler over the given component.
func NewTrack[T any](comp Component[T], opts ...TrackOption[T]) *Track[T] {
	t := &Track[T]{
		comp:   comp,
		stacks: make(map[core.EntityID]*Stack[T]),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enable gives an entity a history stack. Enabling twice is a no-op.
func (t *Track[T]) Enable(id core.EntityID) {
	if _, ok := t.stacks[id]; ok {
		return
	}
	t.stacks[id] = &Stack[T]{}
	t.order = append(t.order, id)
}

// Forget drops an entity's stack, typically when the entity is destroyed.
func (t *Track[T]) Forget(id core.EntityID) {
	if _, ok := t.stacks[id]; !ok {
		return
	}
	delete(t.stacks, id)
	for i, e := range t.order {
		if e == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Tracked reports whether the entity has a history stack.
func (t *Track[T]) Tracked(id core.EntityID) bool {
	_, ok := t.stacks[id]
	return ok
}

// Stack returns a copy of an entity's stored values, bottom first.
func (t *Track[T]) Stack(id core.EntityID) []T {
	s, ok := t.stacks[id]
	if !ok {
		return nil
	}
	return s.Values()
}

// Entities returns the tracked entities in opt-in order.
func (t *Track[T]) Entities() []core.EntityID {
	out := make([]core.EntityID, len(t.order))
	copy(out, t.order)
	return out
}

// Apply reacts to one history command for every tracked entity that still
// carries the component. Entities without the component are skipped.
func (t *Track[T]) Apply(cmd Command) {
	for _, id := range t.order {
		cur, ok := t.comp.Get(id)
		if !ok {
			continue
		}
		s := t.stacks[id]

		switch cmd {
		case Record:
			s.Push(t.copy(cur))
		case Rewind:
			if prev, ok := s.Pop(); ok {
				t.comp.Set(id, prev)
			}
		case Reset:
			first, ok := s.Bottom()
			if !ok {
				continue
			}
			// The reset itself goes on the stack so Rewind can undo it
			s.Push(t.copy(cur))
			t.comp.Set(id, t.copy(first))
		}
	}
}

func (t *Track[T]) copy(v T) T {
	if t.clone == nil {
		return v
	}
	return t.clone(v)
}

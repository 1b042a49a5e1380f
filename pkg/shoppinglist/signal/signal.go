// Package signal provides a small observable value with derived values.
//
// A Value holds the latest state of some input and pushes every change to its
// observers synchronously. Map derives one value from another. Switch follows
// a stream chosen by the latest source value and ignores the streams it has
// already left.
//
// # Ordering
//
// Set calls on a single Value are delivered one at a time. Observers of a
// Value see its updates in the order they were set, even when Set is called
// from several goroutines. An observer must not call Set on the Value it
// observes.
package signal

import (
	"context"
	"sync"
)

// Source is anything that can be observed.
type Source[T any] interface {
	// Observe registers fn and returns a function that removes it.
	// If the source already holds a value, fn is called with it before Observe returns.
	Observe(fn func(T)) (cancel func())
}

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Value is a mutable observable value.
type Value[T any] struct {
	deliver sync.Mutex // serializes Set and the initial delivery of Observe

	mu        sync.Mutex
	value     T
	set       bool
	observers []observer[T]
	nextID    uint64
}

// New creates a Value that holds nothing until the first Set.
func New[T any]() *Value[T] {
	return &Value[T]{}
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, set: true}
}

// Get returns the current value and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value, v.set
}

// Set stores value and notifies every observer before returning.
func (v *Value[T]) Set(value T) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	v.value = value
	v.set = true
	observers := make([]observer[T], len(v.observers))
	copy(observers, v.observers)
	v.mu.Unlock()

	for _, o := range observers {
		o.fn(value)
	}
}

// Observe implements Source.
func (v *Value[T]) Observe(fn func(T)) func() {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.observers = append(v.observers, observer[T]{id: id, fn: fn})
	value, set := v.value, v.set
	v.mu.Unlock()

	if set {
		fn(value)
	}

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, o := range v.observers {
		if o.id == id {
			v.observers = append(v.observers[:i], v.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the number of registered observers.
func (v *Value[T]) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}

// Map returns a Value that follows src through fn.
// The subscription to src ends when ctx is done.
func Map[A, B any](ctx context.Context, src Source[A], fn func(A) B) *Value[B] {
	out := New[B]()
	cancel := src.Observe(func(a A) {
		out.Set(fn(a))
	})
	context.AfterFunc(ctx, cancel)
	return out
}

// PickFunc chooses the stream to follow for a source value. A nil channel
// means there is nothing to follow. The context is cancelled as soon as the
// source moves on.
type PickFunc[A, B any] func(ctx context.Context, a A) <-chan B

// Switch returns a Value that follows the stream picked for the latest value
// of src.
//
// When src changes, the context handed to the previous pick is cancelled and
// nothing it produces afterwards reaches the returned Value. A nil stream sets
// idle. A new stream sets pending synchronously, then every value it emits.
func Switch[A, B any](ctx context.Context, src Source[A], pick PickFunc[A, B], idle, pending B) *Value[B] {
	s := &switcher[A, B]{
		parent: ctx,
		pick:   pick,
		idle:   idle,
		pend:   pending,
		out:    New[B](),
	}
	cancel := src.Observe(s.switchTo)
	context.AfterFunc(ctx, func() {
		cancel()
		s.stop()
	})
	return s.out
}

type switcher[A, B any] struct {
	parent context.Context
	pick   PickFunc[A, B]
	idle   B
	pend   B
	out    *Value[B]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (s *switcher[A, B]) switchTo(a A) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(s.parent)
	ch := s.pick(ctx, a)
	if ch == nil {
		cancel()
		s.out.Set(s.idle)
		return
	}

	s.cancel = cancel
	s.out.Set(s.pend)
	go s.forward(ctx, s.gen, ch)
}

func (s *switcher[A, B]) forward(ctx context.Context, gen uint64, ch <-chan B) {
	for {
		select {
		case <-ctx.Done():
			return
		case value, ok := <-ch:
			if !ok {
				return
			}
			s.mu.Lock()
			if gen == s.gen && ctx.Err() == nil {
				s.out.Set(value)
			}
			s.mu.Unlock()
		}
	}
}

func (s *switcher[A, B]) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

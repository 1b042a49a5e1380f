package router

import (
	"sync"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/signal"
)

// Navigator owns the back stack and publishes the current screen.
//
// Construct one Navigator when the application starts and pass it to
// whatever needs to navigate or observe navigation.
type Navigator struct {
	mu      sync.Mutex
	stack   *Stack
	current *signal.Value[Screen]
}

// NewNavigator creates a Navigator whose stack is seeded with root.
func NewNavigator(root Screen) *Navigator {
	return &Navigator{
		stack:   NewStack(root),
		current: signal.NewValue(root),
	}
}

// Push makes screen the current screen. Observers are notified before Push returns.
func (n *Navigator) Push(screen Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stack.Push(screen)
	n.current.Set(screen)
}

// Pop goes back one screen and returns the screen that was left.
// At the root nothing changes and Pop returns false.
func (n *Navigator) Pop() (Screen, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	popped, ok := n.stack.Pop()
	if !ok {
		return Screen{}, false
	}
	n.current.Set(n.stack.Peek())
	return popped, true
}

// Reset returns to the root screen.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stack.Len() == 1 {
		return
	}
	n.stack.Reset()
	n.current.Set(n.stack.Peek())
}

// Refresh notifies observers of the current screen again without changing
// the stack. Anything derived from the screen, such as its queries, restarts.
func (n *Navigator) Refresh() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current.Set(n.stack.Peek())
}

// Current returns the screen on top of the stack.
func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Peek()
}

// Depth returns the number of screens on the stack, root included.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Len()
}

// History returns the stack contents, root first.
func (n *Navigator) History() []Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Entries()
}

// Observe implements signal.Source. fn receives the current screen right away
// and again after every Push, Refresh, and any Pop or Reset that changes it.
func (n *Navigator) Observe(fn func(Screen)) func() {
	return n.current.Observe(fn)
}

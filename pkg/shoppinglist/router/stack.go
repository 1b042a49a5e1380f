package router

// Stack is the navigation back stack. It always holds at least one screen,
// the root it was created with, and the top entry is the current screen.
type Stack struct {
	entries []Screen
}

// NewStack creates a stack holding only root.
func NewStack(root Screen) *Stack {
	entries := make([]Screen, 1, 8)
	entries[0] = root
	return &Stack{entries: entries}
}

// Push adds a screen on top of the stack.
// Called when navigating forward.
func (s *Stack) Push(screen Screen) {
	s.entries = append(s.entries, screen)
}

// Pop removes and returns the top screen.
// The root is never removed: popping it returns false and leaves the stack unchanged.
func (s *Stack) Pop() (Screen, bool) {
	if len(s.entries) <= 1 {
		return Screen{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top screen without removing it.
func (s *Stack) Peek() Screen {
	return s.entries[len(s.entries)-1]
}

// Len returns the number of screens on the stack, root included.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stack, root first.
func (s *Stack) Entries() []Screen {
	out := make([]Screen, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset drops everything above the root.
func (s *Stack) Reset() {
	s.entries = s.entries[:1]
}

package router

import (
	"context"
	"fmt"
)

// ScreenFunc runs one screen. It receives the screen being shown and
// returns a screen-specific result.
type ScreenFunc func(ctx context.Context, screen Screen) (result any, err error)

// TransitionFunc is called after each screen completes to apply its result.
// It receives the screen that just completed, its result, and the navigator,
// and navigates by calling Push or Pop.
//
// Return false to exit the router.
type TransitionFunc func(from Screen, result any, nav *Navigator) (next bool)

// Router runs the screen registered for the navigator's current screen in a
// loop. Screens are registered by kind, and a single transition function
// handles all routing logic in one place.
type Router struct {
	screens    map[Kind]ScreenFunc
	transition TransitionFunc
	nav        *Navigator
}

// New creates a Router driving nav.
func New(nav *Navigator) *Router {
	return &Router{
		screens: make(map[Kind]ScreenFunc),
		nav:     nav,
	}
}

// Register adds a screen to the router.
// The screen function will be called whenever a screen of this kind is current.
func (r *Router) Register(kind Kind, fn ScreenFunc) *Router {
	r.screens[kind] = fn
	return r
}

// OnTransition sets the transition function that determines navigation flow.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Run shows the current screen and keeps going until the transition function
// returns false, a screen fails, or ctx is done.
func (r *Router) Run(ctx context.Context) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := r.nav.Current()
		fn, ok := r.screens[current.Kind()]
		if !ok {
			return fmt.Errorf("router: screen %s not registered", current.Kind())
		}

		result, err := fn(ctx, current)
		if err != nil {
			return fmt.Errorf("router: screen %s error: %w", current.Kind(), err)
		}

		if !r.transition(current, result, r.nav) {
			return nil
		}
	}
}

// Navigator returns the navigator for use outside transition functions.
func (r *Router) Navigator() *Navigator {
	return r.nav
}

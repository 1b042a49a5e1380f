// Package router provides the screen back stack and a screen loop built on it.
//
// A Navigator holds the back stack. It starts with one root screen, which can
// never be popped, and publishes the current screen as a signal.Source so
// other components can follow navigation without polling.
//
// # Basic Usage
//
//	nav := router.NewNavigator(router.ShoppingListCurrent())
//
//	nav.Push(router.ProductListCurrent(list))
//	nav.Current() // ProductListCurrent(list)
//
//	if left, ok := nav.Pop(); ok {
//	    // left is the product list screen, the shopping lists are current again
//	}
//	nav.Pop() // false: already at the root, nothing changes
//
// # Screen Loop
//
// Router runs a function per screen kind and hands its result to one
// transition function, which decides where to go next:
//
//	r := router.New(nav)
//
//	r.Register(router.KindShoppingListCurrent, func(ctx context.Context, s router.Screen) (any, error) {
//	    return promptForCommand(ctx, s)
//	})
//
//	r.OnTransition(func(from router.Screen, result any, nav *router.Navigator) bool {
//	    switch cmd := result.(command); cmd.Action {
//	    case actionOpen:
//	        nav.Push(router.ProductListCurrent(cmd.List))
//	    case actionBack:
//	        if _, ok := nav.Pop(); !ok {
//	            return false // back on the root exits
//	        }
//	    }
//	    return true
//	})
//
//	err := r.Run(ctx)
package router

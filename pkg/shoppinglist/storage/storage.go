// Package storage holds what every repository implementation shares: the
// sentinel errors, change notification, and the streaming query helper.
//
// Queries are streams. Watch starts one: it emits Loading, runs the query,
// emits its result, and runs it again each time one of the tables it reads is
// changed, until the caller's context ends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
)

var (
	// ErrNotFound indicates the referenced list or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid indicates a record failed validation.
	ErrInvalid = errors.New("invalid record")

	// ErrClosed indicates the repository has been closed.
	ErrClosed = errors.New("repository closed")
)

// Invalid wraps ErrInvalid with a reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, reason)
}

// Table names used for change notification.
const (
	TableShoppingLists = "shopping_lists"
	TableProducts      = "products"
)

// Notifier fans table changes out to watchers.
type Notifier struct {
	mu       sync.Mutex
	nextID   atomic.Uint64
	epoch    atomic.Uint64
	watchers map[uint64]watcher
}

type watcher struct {
	tables map[string]bool
	ch     chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{watchers: make(map[uint64]watcher)}
}

// Subscribe returns a channel that receives a signal after any of tables changes.
// Signals coalesce: a watcher that has not consumed the previous one gets no second.
func (n *Notifier) Subscribe(tables ...string) (<-chan struct{}, func()) {
	w := watcher{tables: make(map[string]bool, len(tables)), ch: make(chan struct{}, 1)}
	for _, t := range tables {
		w.tables[t] = true
	}
	id := n.nextID.Inc()

	n.mu.Lock()
	n.watchers[id] = w
	n.mu.Unlock()

	return w.ch, func() {
		n.mu.Lock()
		delete(n.watchers, id)
		n.mu.Unlock()
	}
}

// Notify signals every watcher of the given tables.
func (n *Notifier) Notify(tables ...string) {
	n.epoch.Inc()

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, w := range n.watchers {
		for _, t := range tables {
			if !w.tables[t] {
				continue
			}
			select {
			case w.ch <- struct{}{}:
			default:
			}
			break
		}
	}
}

// Epoch counts Notify calls. Reads started in the same epoch see the same data.
func (n *Notifier) Epoch() uint64 {
	return n.epoch.Load()
}

// Watchers returns the number of open subscriptions.
func (n *Notifier) Watchers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchers)
}

// Query loads the current data for a stream.
type Query[T any] func(ctx context.Context) (T, error)

// Watch streams a query. The channel is closed after ctx is done.
//
// Queries for the same key started in the same notifier epoch share one
// execution through group, so many watchers of one list cost one read per change.
func Watch[T any](ctx context.Context, n *Notifier, group *singleflight.Group, key string, query Query[T], tables ...string) <-chan result.Result[T] {
	out := make(chan result.Result[T])
	changed, unsubscribe := n.Subscribe(tables...)

	send := func(r result.Result[T]) bool {
		select {
		case out <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		defer unsubscribe()

		if !send(result.Loading[T]()) {
			return
		}

		for {
			// The shared run must not fail because one of its callers went away.
			flight := fmt.Sprintf("%s@%d", key, n.Epoch())
			v, err, _ := group.Do(flight, func() (any, error) {
				return query(context.WithoutCancel(ctx))
			})
			var r result.Result[T]
			if err != nil {
				r = result.Failure[T](err)
			} else {
				r = result.Success(v.(T))
			}
			if !send(r) {
				return
			}

			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

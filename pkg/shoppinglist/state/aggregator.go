package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/internal"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/signal"
)

// ErrClosed is returned by Await once the aggregator has been closed.
var ErrClosed = errors.New("screen state closed")

// Recorder receives aggregator events, typically to export metrics.
type Recorder interface {
	MutationStarted(m constants.Mutation)
	MutationFinished(m constants.Mutation, elapsed time.Duration, err error)
	SnapshotPublished()
}

type nopRecorder struct{}

func (nopRecorder) MutationStarted(constants.Mutation)                       {}
func (nopRecorder) MutationFinished(constants.Mutation, time.Duration, error) {}
func (nopRecorder) SnapshotPublished()                                       {}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) { a.log = logger }
}

// WithRecorder reports mutations and snapshots to r.
func WithRecorder(r Recorder) Option {
	return func(a *Aggregator) { a.rec = r }
}

// WithFailureBuffer sets how many unread mutation failures are kept.
// Failures beyond that are logged and dropped.
func WithFailureBuffer(n int) Option {
	return func(a *Aggregator) { a.failureBuffer = n }
}

// Aggregator merges navigation, repository queries and mutation progress
// into a single ScreenState.
//
// Every input is a signal. When one emits, the aggregator updates the
// matching field of its record and publishes a copy of the whole record.
// Inputs are independent: there is no ordering between them and the last
// write to a field wins.
type Aggregator struct {
	repo          Repository
	log           *slog.Logger
	rec           Recorder
	failureBuffer int

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	closed   atomic.Bool
	inFlight atomic.Int64

	loading  map[constants.Mutation]*signal.Value[bool]
	failures chan *MutationError

	mu      sync.Mutex
	state   ScreenState
	subs    map[uint64]chan ScreenState
	nextSub uint64
}

// New starts following nav and repo. Call Close to stop.
func New(nav *router.Navigator, repo Repository, opts ...Option) *Aggregator {
	a := &Aggregator{
		repo:          repo,
		log:           internal.GetInternalLogger(),
		rec:           nopRecorder{},
		failureBuffer: constants.DefaultFailureBuffer,
		loading:       make(map[constants.Mutation]*signal.Value[bool], len(constants.Mutations)),
		subs:          make(map[uint64]chan ScreenState),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.failureBuffer < 0 {
		a.failureBuffer = 0
	}
	a.failures = make(chan *MutationError, a.failureBuffer)
	a.ctx, a.cancel = context.WithCancel(context.Background())

	status := signal.Map(a.ctx, nav, StatusOf)
	selected := signal.Map(a.ctx, status, selectedShoppingList)

	lists := signal.Switch(a.ctx, status, a.pickShoppingLists,
		result.None[[]model.ShoppingList](), result.Loading[[]model.ShoppingList]())
	listsUI := signal.Map(a.ctx, lists, func(r result.Result[[]model.ShoppingList]) result.Result[[]ShoppingListUI] {
		return result.Map(r, ShoppingListsUI)
	})

	products := signal.Switch(a.ctx, selected, a.pickProducts,
		result.None[[]model.Product](), result.Loading[[]model.Product]())
	productsUI := signal.Map(a.ctx, products, func(r result.Result[[]model.Product]) result.Result[[]ProductUI] {
		return result.Map(r, ProductsUI)
	})

	bind(a, status, func(s *ScreenState, v ScreenStatus) { s.Status = v })
	bind(a, selected, func(s *ScreenState, v *ShoppingListUI) { s.SelectedShoppingList = v })
	for _, m := range constants.Mutations {
		flag := signal.NewValue(false)
		a.loading[m] = flag
		bind(a, flag, func(s *ScreenState, v bool) { s.setLoading(m, v) })
	}
	bind(a, listsUI, func(s *ScreenState, v result.Result[[]ShoppingListUI]) { s.ShoppingLists = v })
	bind(a, productsUI, func(s *ScreenState, v result.Result[[]ProductUI]) { s.Products = v })

	return a
}

func selectedShoppingList(status ScreenStatus) *ShoppingListUI {
	list, ok := status.SelectedShoppingList()
	if !ok {
		return nil
	}
	ui := ShoppingListUIOf(list)
	return &ui
}

func (a *Aggregator) pickShoppingLists(ctx context.Context, status ScreenStatus) <-chan result.Result[[]model.ShoppingList] {
	switch status.ListQuery() {
	case ListQueryCurrent:
		return a.repo.CurrentShoppingLists(ctx)
	case ListQueryArchived:
		return a.repo.ArchivedShoppingLists(ctx)
	default:
		return nil
	}
}

func (a *Aggregator) pickProducts(ctx context.Context, selected *ShoppingListUI) <-chan result.Result[[]model.Product] {
	if selected == nil {
		return nil
	}
	return a.repo.Products(ctx, selected.ID)
}

// bind routes every value of src into one field of the record.
func bind[T any](a *Aggregator, src signal.Source[T], apply func(*ScreenState, T)) {
	cancel := src.Observe(func(v T) {
		a.update(func(s *ScreenState) { apply(s, v) })
	})
	context.AfterFunc(a.ctx, cancel)
}

func (a *Aggregator) update(apply func(*ScreenState)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	apply(&a.state)
	a.state.Version++

	for _, ch := range a.subs {
		offer(ch, a.state.clone())
	}
	a.rec.SnapshotPublished()
	a.log.Debug("screen state published",
		"version", a.state.Version,
		"status", a.state.Status.String(),
		"shopping_lists", a.state.ShoppingLists.Status().String(),
		"products", a.state.Products.Status().String(),
	)
}

// offer replaces whatever the subscriber has not read yet.
// Only update sends, under a.mu, so the final send never blocks.
func offer(ch chan ScreenState, s ScreenState) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

// Current returns a snapshot of the latest state.
func (a *Aggregator) Current() ScreenState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Subscribe returns a channel that receives the current snapshot right away
// and then every new one. A slow reader only gets the latest snapshot.
// The channel is closed by cancel or Close.
func (a *Aggregator) Subscribe() (<-chan ScreenState, func()) {
	ch := make(chan ScreenState, 1)

	a.mu.Lock()
	defer a.mu.Unlock()

	ch <- a.state.clone()
	if a.subs == nil {
		close(ch)
		return ch, func() {}
	}

	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch

	return ch, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if _, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(ch)
		}
	}
}

// Await blocks until a published snapshot satisfies pred.
// Snapshots published while pred runs may be skipped.
func (a *Aggregator) Await(ctx context.Context, pred func(ScreenState) bool) (ScreenState, error) {
	ch, cancel := a.Subscribe()
	defer cancel()

	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return ScreenState{}, ErrClosed
			}
			if pred(s) {
				return s, nil
			}
		case <-ctx.Done():
			return ScreenState{}, ctx.Err()
		}
	}
}

// Failures delivers mutation errors. The channel is closed by Close.
func (a *Aggregator) Failures() <-chan *MutationError {
	return a.failures
}

// CreateShoppingList inserts a list named name.
func (a *Aggregator) CreateShoppingList(name string) {
	a.launch(constants.MutationCreateShoppingList, func(ctx context.Context) error {
		return a.repo.InsertShoppingList(ctx, model.ShoppingList{Name: name})
	})
}

// UpdateShoppingList stores list with its archive state set to archived.
func (a *Aggregator) UpdateShoppingList(list ShoppingListUI, archived bool) {
	list.IsArchived = archived
	a.launch(constants.MutationUpdateShoppingList, func(ctx context.Context) error {
		return a.repo.UpdateShoppingList(ctx, list.Domain())
	})
}

// CreateProduct adds a product to the list with id listID.
func (a *Aggregator) CreateProduct(name string, quantity int64, listID int64) {
	a.launch(constants.MutationCreateProduct, func(ctx context.Context) error {
		return a.repo.InsertProduct(ctx, model.Product{
			Name:           name,
			Quantity:       quantity,
			ShoppingListID: listID,
		})
	})
}

// DeleteProduct removes product.
func (a *Aggregator) DeleteProduct(product ProductUI) {
	a.launch(constants.MutationDeleteProduct, func(ctx context.Context) error {
		return a.repo.DeleteProduct(ctx, product.Domain())
	})
}

// launch sets the mutation's loading flag, runs call in the background and
// clears the flag when call returns, whatever the outcome.
func (a *Aggregator) launch(m constants.Mutation, call func(context.Context) error) {
	a.mu.Lock()
	if a.closed.Load() {
		a.mu.Unlock()
		a.log.Warn("mutation after close ignored", "mutation", m.GetName())
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	id := uuid.NewString()
	flag := a.loading[m]

	a.inFlight.Inc()
	flag.Set(true)
	a.rec.MutationStarted(m)
	a.log.Debug("mutation started", "mutation", m.GetName(), "mutation_id", id)

	go func() {
		defer a.wg.Done()
		defer a.inFlight.Dec()

		start := time.Now()
		err := call(a.ctx)
		elapsed := time.Since(start)

		flag.Set(false)
		a.rec.MutationFinished(m, elapsed, err)

		if err != nil {
			a.fail(&MutationError{Mutation: m, ID: id, Err: err})
			return
		}
		a.log.Debug("mutation finished", "mutation", m.GetName(), "mutation_id", id, "elapsed", elapsed)
	}()
}

func (a *Aggregator) fail(err *MutationError) {
	a.log.Warn("mutation failed", "mutation", err.Mutation.GetName(), "mutation_id", err.ID, "error", err.Err)
	select {
	case a.failures <- err:
	default:
		a.log.Warn("mutation failure dropped", "mutation", err.Mutation.GetName(), "mutation_id", err.ID)
	}
}

// InFlight returns the number of mutations that have not finished.
func (a *Aggregator) InFlight() int64 {
	return a.inFlight.Load()
}

// Wait blocks until every started mutation has finished.
func (a *Aggregator) Wait() {
	a.wg.Wait()
}

// Close cancels queries and in-flight mutations, waits for the mutations to
// return, then closes every subscription and the Failures channel.
// Mutations requested after Close are ignored.
func (a *Aggregator) Close() {
	a.mu.Lock()
	if a.closed.Load() {
		a.mu.Unlock()
		return
	}
	a.closed.Store(true)
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()

	a.mu.Lock()
	for id, ch := range a.subs {
		close(ch)
		delete(a.subs, id)
	}
	a.subs = nil
	a.mu.Unlock()

	close(a.failures)
}

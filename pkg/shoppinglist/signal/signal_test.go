package signal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

func TestValueObserveDeliversCurrentValue(t *testing.T) {
	v := NewValue(3)

	var got []int
	cancel := v.Observe(func(n int) { got = append(got, n) })
	defer cancel()

	v.Set(4)
	assert.Equal(t, []int{3, 4}, got)
}

func TestValueWithoutInitialValueWaitsForSet(t *testing.T) {
	v := New[string]()

	var got []string
	v.Observe(func(s string) { got = append(got, s) })
	assert.Empty(t, got)

	_, ok := v.Get()
	assert.False(t, ok)

	v.Set("a")
	assert.Equal(t, []string{"a"}, got)
}

func TestValueCancelStopsDelivery(t *testing.T) {
	v := NewValue(0)

	calls := 0
	cancel := v.Observe(func(int) { calls++ })
	cancel()
	cancel()
	v.Set(1)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, v.Observers())
}

func TestValueObserversRunInRegistrationOrder(t *testing.T) {
	v := New[int]()

	var order []string
	v.Observe(func(int) { order = append(order, "first") })
	v.Observe(func(int) { order = append(order, "second") })
	v.Set(1)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestValueConcurrentSetsStayConsistent(t *testing.T) {
	v := NewValue(0)

	var mu sync.Mutex
	var last int
	v.Observe(func(n int) {
		mu.Lock()
		last = n
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v.Set(n)
		}(i)
	}
	wg.Wait()

	current, _ := v.Get()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, current, last, "observer saw a different final value than the one stored")
}

func TestMapFollowsSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewValue(2)
	doubled := Map(ctx, src, func(n int) int { return n * 2 })

	got, ok := doubled.Get()
	require.True(t, ok)
	assert.Equal(t, 4, got)

	src.Set(5)
	got, _ = doubled.Get()
	assert.Equal(t, 10, got)
}

func TestMapStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := NewValue(1)
	Map(ctx, src, func(n int) int { return n })
	require.Equal(t, 1, src.Observers())

	cancel()
	require.Eventually(t, func() bool { return src.Observers() == 0 }, waitFor, time.Millisecond)
}

func TestSwitchIdleOnNilStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewValue("none")
	out := Switch(ctx, src, func(context.Context, string) <-chan int { return nil }, -1, 0)

	got, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, -1, got)
}

func TestSwitchPublishesPendingThenStreamValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan int)
	src := NewValue("a")
	out := Switch(ctx, src, func(context.Context, string) <-chan int { return stream }, -1, 0)

	got, _ := out.Get()
	assert.Equal(t, 0, got, "pending is published synchronously")

	stream <- 7
	require.Eventually(t, func() bool {
		v, _ := out.Get()
		return v == 7
	}, waitFor, time.Millisecond)
}

func TestSwitchDropsValuesFromPreviousStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streams := map[string]chan int{
		"current":  make(chan int, 1),
		"archived": make(chan int, 1),
	}
	var mu sync.Mutex
	cancelled := map[string]context.Context{}
	pick := func(ctx context.Context, key string) <-chan int {
		mu.Lock()
		cancelled[key] = ctx
		mu.Unlock()
		return streams[key]
	}

	src := NewValue("current")
	out := Switch(ctx, src, pick, -1, 0)

	var seen []int
	var seenMu sync.Mutex
	out.Observe(func(n int) {
		seenMu.Lock()
		seen = append(seen, n)
		seenMu.Unlock()
	})

	src.Set("archived")

	mu.Lock()
	oldCtx := cancelled["current"]
	mu.Unlock()
	require.Error(t, oldCtx.Err(), "previous stream context is cancelled on switch")

	// A value arriving on the abandoned stream must never be published.
	streams["current"] <- 99
	streams["archived"] <- 2

	require.Eventually(t, func() bool {
		v, _ := out.Get()
		return v == 2
	}, waitFor, time.Millisecond)

	seenMu.Lock()
	defer seenMu.Unlock()
	assert.NotContains(t, seen, 99)
}

func TestSwitchPicksOncePerSourceValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var picks []int
	src := NewValue(1)
	Switch(ctx, src, func(_ context.Context, n int) <-chan string {
		picks = append(picks, n)
		return make(chan string)
	}, "idle", "pending")

	src.Set(2)
	assert.Equal(t, []int{1, 2}, picks)
}

func TestSwitchStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var streamCtx context.Context
	src := NewValue(1)
	Switch(ctx, src, func(c context.Context, _ int) <-chan int {
		streamCtx = c
		return make(chan int)
	}, 0, 0)

	cancel()
	require.Eventually(t, func() bool { return streamCtx.Err() != nil }, waitFor, time.Millisecond)
	require.Eventually(t, func() bool { return src.Observers() == 0 }, waitFor, time.Millisecond)
}

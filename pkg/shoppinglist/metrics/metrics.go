// Package metrics exports screen state activity to Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
)

// Metrics implements state.Recorder.
type Metrics struct {
	// Mutations started, by mutation name
	MutationsStarted *prometheus.CounterVec

	// Mutations finished, by mutation name and outcome
	MutationsFinished *prometheus.CounterVec

	// Time spent in the repository per mutation
	MutationLatency *prometheus.HistogramVec

	// Snapshots published by the aggregator
	Snapshots prometheus.Counter
}

// New registers every collector with reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MutationsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shoppinglist_mutations_started_total",
			Help: "Total mutations started by mutation",
		}, []string{"mutation"}),

		MutationsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shoppinglist_mutations_finished_total",
			Help: "Total mutations finished by mutation and outcome",
		}, []string{"mutation", "outcome"}), // outcome: "ok", "error", "cancelled"

		MutationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shoppinglist_mutation_duration_seconds",
			Help:    "Duration of repository writes by mutation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"mutation"}),

		Snapshots: factory.NewCounter(prometheus.CounterOpts{
			Name: "shoppinglist_screen_state_snapshots_total",
			Help: "Total screen state snapshots published",
		}),
	}
}

// MutationStarted counts a mutation as started.
func (m *Metrics) MutationStarted(mutation constants.Mutation) {
	if m != nil {
		m.MutationsStarted.WithLabelValues(mutation.GetName()).Inc()
	}
}

// MutationFinished records the outcome and duration of a mutation.
func (m *Metrics) MutationFinished(mutation constants.Mutation, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.MutationsFinished.WithLabelValues(mutation.GetName(), Outcome(err)).Inc()
	m.MutationLatency.WithLabelValues(mutation.GetName()).Observe(elapsed.Seconds())
}

// SnapshotPublished counts one published snapshot.
func (m *Metrics) SnapshotPublished() {
	if m != nil {
		m.Snapshots.Inc()
	}
}

// Outcome is the label value for a mutation result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}

// Serve exposes g on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Package metrics exposes Prometheus counters for searches, activations and
// executed actions. A nil *Metrics is valid and records nothing.
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
)

// Metrics holds the plugin's Prometheus collectors.
type Metrics struct {
	Searches       *prometheus.CounterVec
	ResultsEmitted prometheus.Counter
	Activations    *prometheus.CounterVec
	Actions        *prometheus.CounterVec
	Entities       prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdock_searches_total",
			Help: "Searches served, by state filter.",
		}, []string{"filter"}),
		ResultsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchdock_results_emitted_total",
			Help: "Container rows sent to the launcher.",
		}),
		Activations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdock_activations_total",
			Help: "Activation requests, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdock_actions_total",
			Help: "Container actions dispatched to the runtime, by action and outcome.",
		}, []string{"action", "outcome"}),
		Entities: factory.NewGauge(prometheus.GaugeOpts{
			Name: "launchdock_entities",
			Help: "Containers in the latest snapshot.",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSearch counts one search and the rows it emitted.
func (m *Metrics) ObserveSearch(filter string, emitted int) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(filter).Inc()
	m.ResultsEmitted.Add(float64(emitted))
}

// ObserveActivation counts one activation request.
func (m *Metrics) ObserveActivation(kind, outcome string) {
	if m == nil {
		return
	}
	m.Activations.WithLabelValues(kind, outcome).Inc()
}

// ObserveAction counts one action handed to the runtime.
func (m *Metrics) ObserveAction(action, outcome string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(action, outcome).Inc()
}

// SetEntities records the snapshot size.
func (m *Metrics) SetEntities(n int) {
	if m == nil {
		return
	}
	m.Entities.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics: listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package metrics exports node lifecycle events of a core.Graph as
// Prometheus metrics.
//
// A Collector is a core.Observer: attach it with core.WithObserver and it
// counts Initialized and Deallocated events and tracks the number of live
// nodes.
//
//	reg := prometheus.NewRegistry()
//	c, _ := metrics.NewCollector(reg, "arcsim")
//	g := core.NewGraph(core.WithObserver(c))
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/arcsim/core"
)

// DefaultNamespace is used when NewCollector receives an empty namespace.
const DefaultNamespace = "arcsim"

// ErrRegistrationFailed wraps registry failures other than duplicate
// registration.
var ErrRegistrationFailed = errors.New("metrics: registration failed")

// Collector records lifecycle events.
type Collector struct {
	initialized prometheus.Counter
	deallocated prometheus.Counter
	live        prometheus.Gauge
	events      *prometheus.CounterVec
}

// NewCollector creates the collector metrics and registers them with reg.
// A nil reg means prometheus.DefaultRegisterer. Metrics already registered
// under the same names are reused.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		initialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_initialized_total",
			Help:      "Total nodes initialized.",
		}),
		deallocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_deallocated_total",
			Help:      "Total nodes deallocated.",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes_live",
			Help:      "Nodes initialized and not yet deallocated.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_events_total",
			Help:      "Lifecycle events by kind.",
		}, []string{"kind"}),
	}

	var err error
	if c.initialized, err = register(reg, c.initialized); err != nil {
		return nil, fmt.Errorf("metrics: NewCollector(%q): %w", namespace, err)
	}
	if c.deallocated, err = register(reg, c.deallocated); err != nil {
		return nil, fmt.Errorf("metrics: NewCollector(%q): %w", namespace, err)
	}
	if c.live, err = register(reg, c.live); err != nil {
		return nil, fmt.Errorf("metrics: NewCollector(%q): %w", namespace, err)
	}
	if c.events, err = register(reg, c.events); err != nil {
		return nil, fmt.Errorf("metrics: NewCollector(%q): %w", namespace, err)
	}

	return c, nil
}

// register adds m to reg, returning the already registered collector on a
// duplicate.
func register[T prometheus.Collector](reg prometheus.Registerer, m T) (T, error) {
	err := reg.Register(m)
	if err == nil {
		return m, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return m, errors.Join(ErrRegistrationFailed, err)
}

// Observe implements core.Observer.
func (c *Collector) Observe(e core.Event) {
	c.events.WithLabelValues(e.Kind.String()).Inc()
	switch e.Kind {
	case core.Initialized:
		c.initialized.Inc()
		c.live.Inc()
	case core.Deallocated:
		c.deallocated.Inc()
		c.live.Dec()
	}
}

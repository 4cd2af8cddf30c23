package observability

import (
	"net/http"
	"strconv"

	"github.com/aretw0/storyline/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "storyline"

// Metrics holds the story counters. Each instance owns its registry, so several
// engines (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Choices    *prometheus.CounterVec
	NodeVisits *prometheus.CounterVec
	Endings    *prometheus.CounterVec
	Restarts   prometheus.Counter
}

// NewMetrics creates and registers the story counters.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Choices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "choices_total",
				Help:      "Total number of choices selected",
			},
			[]string{"hinted"},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "node_visits_total",
				Help:      "Total number of node visits",
			},
			[]string{"node_id"},
		),
		Endings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "endings_total",
				Help:      "Total number of endings reached, by kind",
			},
			[]string{"kind"},
		),
		Restarts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "restarts_total",
				Help:      "Total number of playthrough restarts",
			},
		),
	}
	m.registry.MustRegister(m.Choices, m.NodeVisits, m.Endings, m.Restarts)
	return m
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the counters in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnChoice: func(e *domain.ChoiceEvent) {
			m.Choices.WithLabelValues(strconv.FormatBool(!e.Hint.IsZero())).Inc()
		},
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnEnding: func(e *domain.EndingEvent) {
			m.Endings.WithLabelValues(e.Kind.String()).Inc()
		},
		OnRestart: func(*domain.RestartEvent) {
			m.Restarts.Inc()
		},
	}
}

// Package metrics exposes prometheus collectors for the graph engine.
//
// Collectors are registered on the default registry through promauto, so a
// process that serves /metrics picks them up without further wiring.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions counts filter-mode transitions, labeled by view, mode and
	// outcome ("ok", "empty", "rejected").
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlens_transitions_total",
			Help: "Total number of visibility transitions",
		},
		[]string{"view", "mode", "outcome"},
	)

	// TransitionDuration measures how long a full visibility recomputation takes.
	TransitionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netlens_transition_duration_seconds",
			Help:    "Duration of visibility recomputations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"view", "mode"},
	)

	// VisibleNodes tracks the visible node count after the latest transition.
	VisibleNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netlens_visible_nodes",
			Help: "Number of visible nodes in a view",
		},
		[]string{"view"},
	)

	// IntegrityIssues counts dropped references, labeled by subcategory.
	IntegrityIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlens_integrity_issues_total",
			Help: "Total number of dropped references to unknown ids",
		},
		[]string{"kind"},
	)
)

// Outcome labels for Transitions
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
)

// ObserveTransition records one completed transition.
func ObserveTransition(view, mode, outcome string, took time.Duration, visible int) {
	Transitions.WithLabelValues(view, mode, outcome).Inc()
	TransitionDuration.WithLabelValues(view, mode).Observe(took.Seconds())
	VisibleNodes.WithLabelValues(view).Set(float64(visible))
}

// ObserveRejection records a transition rejected before mutation.
func ObserveRejection(view, mode string) {
	Transitions.WithLabelValues(view, mode, OutcomeRejected).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. Register against a private registry in tests.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Generations *prometheus.CounterVec
	MemoHits    prometheus.Counter
	Documents   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "wizard_transitions_total",
			Help:      "Wizard step submissions by step and outcome.",
		}, []string{"step", "outcome"}),
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "itinerary_generations_total",
			Help:      "Remote itinerary generations by provider and outcome.",
		}, []string{"provider", "outcome"}),
		MemoHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "itinerary_memo_hits_total",
			Help:      "Itinerary views served from the session memo.",
		}),
		Documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "itinerary_documents_total",
			Help:      "PDF renders by outcome.",
		}, []string{"outcome"}),
	}
}

// NewNop returns counters registered nowhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

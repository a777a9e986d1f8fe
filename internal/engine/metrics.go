package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine outcomes for the /metrics endpoint. A nil *Metrics is
// valid and disables collection (used in tests).
type Metrics struct {
	roundsResolved   *prometheus.CounterVec
	matchesCompleted *prometheus.CounterVec
	matchesReset     prometheus.Counter
}

// NewMetrics registers engine collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizduel_rounds_resolved_total",
			Help: "Rounds resolved, labeled by outcome.",
		}, []string{"outcome"}),
		matchesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quizduel_matches_completed_total",
			Help: "Matches completed, labeled by winner.",
		}, []string{"winner"}),
		matchesReset: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_matches_reset_total",
			Help: "Match resets, counting both rematches and mid-match restarts.",
		}),
	}
	reg.MustRegister(m.roundsResolved, m.matchesCompleted, m.matchesReset)
	return m
}

func (m *Metrics) roundResolved(winner *Player) {
	if m == nil {
		return
	}
	outcome := "tie"
	if winner != nil {
		outcome = winner.String()
	}
	m.roundsResolved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) matchCompleted(winner Player) {
	if m == nil {
		return
	}
	m.matchesCompleted.WithLabelValues(winner.String()).Inc()
}

func (m *Metrics) matchReset() {
	if m == nil {
		return
	}
	m.matchesReset.Inc()
}

package handlers

import "github.com/prometheus/client_golang/prometheus"

// BracketMetrics counts bracket renders by output format (layout, svg).
type BracketMetrics struct {
	renders *prometheus.CounterVec
	rounds  prometheus.Histogram
}

func NewBracketMetrics(reg prometheus.Registerer) *BracketMetrics {
	m := &BracketMetrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival",
			Name:      "bracket_renders_total",
			Help:      "Bracket layouts rendered, by output format.",
		}, []string{"format"}),
		rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "festival",
			Name:      "bracket_rounds",
			Help:      "Number of rounds in rendered brackets.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8},
		}),
	}
	reg.MustRegister(m.renders, m.rounds)
	return m
}

func (m *BracketMetrics) observe(format string, rounds int) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(format).Inc()
	m.rounds.Observe(float64(rounds))
}

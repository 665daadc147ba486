package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	games   *prometheus.CounterVec
	moves   *prometheus.HistogramVec
	seconds *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "npuzzle",
			Name:      "games_solved_total",
			Help:      "Solved games reported to the hub.",
		}, []string{"client_type"}),
		moves: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "npuzzle",
			Name:      "game_moves",
			Help:      "Moves per solved game.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}, []string{"client_type"}),
		seconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "npuzzle",
			Name:      "game_seconds",
			Help:      "Wall-clock seconds per solved game.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"client_type"}),
	}
}

func (m *metrics) observe(clientType string, moves int, seconds float64) {
	m.games.WithLabelValues(clientType).Inc()
	m.moves.WithLabelValues(clientType).Observe(float64(moves))
	m.seconds.WithLabelValues(clientType).Observe(seconds)
}

// Package metrics exposes prometheus counters for parsing and replay activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	batchesCounter         prometheus.Counter
	handsParsedCounter     prometheus.Counter
	handsFailedCounter     *prometheus.CounterVec
	duplicateHandsCounter  prometheus.Counter
	cacheHitCounter        prometheus.Counter
	cacheMissCounter       prometheus.Counter
	sessionsCreatedCounter prometheus.Counter
	sessionsExpiredCounter prometheus.Counter
	replayCommandCounter   *prometheus.CounterVec
	activeSessionsGauge    prometheus.Gauge
}

// BatchParsed records the counts of one batch parse.
func (m *metrics) BatchParsed(parsed, duplicates int) {
	m.batchesCounter.Inc()
	m.handsParsedCounter.Add(float64(parsed))
	m.duplicateHandsCounter.Add(float64(duplicates))
}

// HandFailed counts a hand rejected at the given parse stage.
func (m *metrics) HandFailed(stage string) {
	m.handsFailedCounter.WithLabelValues(stage).Inc()
}

func (m *metrics) CacheHit() {
	m.cacheHitCounter.Inc()
}

func (m *metrics) CacheMiss() {
	m.cacheMissCounter.Inc()
}

func (m *metrics) SessionCreated() {
	m.sessionsCreatedCounter.Inc()
}

func (m *metrics) SessionsExpired(n int) {
	m.sessionsExpiredCounter.Add(float64(n))
}

func (m *metrics) ReplayCommand(op string) {
	m.replayCommandCounter.WithLabelValues(op).Inc()
}

func (m *metrics) SetActiveSessions(count int) {
	m.activeSessionsGauge.Set(float64(count))
}

var Metrics = &metrics{
	batchesCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_batches_total",
		Help: "Total number of hand history files parsed",
	}),
	handsParsedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_hands_parsed_total",
		Help: "Total number of hands parsed successfully",
	}),
	handsFailedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handreplay_hands_failed_total",
		Help: "Total number of hands rejected, by parse stage",
	}, []string{"stage"}),
	duplicateHandsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_duplicate_hands_total",
		Help: "Total number of hands whose id was already seen in the same file",
	}),
	cacheHitCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_hand_cache_hits_total",
		Help: "Total number of hand lookups served from the cache",
	}),
	cacheMissCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_hand_cache_misses_total",
		Help: "Total number of hand lookups that missed the cache",
	}),
	sessionsCreatedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_sessions_created_total",
		Help: "Total number of replay sessions opened",
	}),
	sessionsExpiredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "handreplay_sessions_expired_total",
		Help: "Total number of replay sessions closed for inactivity",
	}),
	replayCommandCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handreplay_replay_commands_total",
		Help: "Total number of replay navigation commands, by op",
	}, []string{"op"}),
	activeSessionsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "handreplay_active_sessions",
		Help: "Number of open replay sessions",
	}),
}

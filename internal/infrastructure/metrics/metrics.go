package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics holds the client-side escrow counters.
type EscrowMetrics struct {
	// Transition requests sent to the gateway
	TransitionsTotal prometheus.CounterVec

	// Guard rejections that never reached the network
	GuardViolationsTotal prometheus.CounterVec

	// Gateway round-trip durations
	GatewayRequestDuration prometheus.HistogramVec

	// Dispute workflow
	DisputesCreatedTotal prometheus.CounterVec
	DisputeReviewsTotal  prometheus.CounterVec

	// Externally-driven transitions observed by the watcher
	WatcherTransitionsTotal prometheus.CounterVec

	// Currently tracked escrows by status
	TrackedEscrows prometheus.GaugeVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		TransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transitions_total",
				Help: "Escrow transition requests by action and result",
			},
			[]string{"action", "result"},
		),

		GuardViolationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_guard_violations_total",
				Help: "Locally rejected transition requests by action and reason",
			},
			[]string{"action", "reason"},
		),

		GatewayRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escrow_gateway_request_duration_seconds",
				Help:    "Marketplace gateway round-trip duration",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),

		DisputesCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_created_total",
				Help: "Disputes created by claimant role",
			},
			[]string{"claimant_role"},
		),

		DisputeReviewsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_dispute_reviews_total",
				Help: "Peer dispute reviews by decision",
			},
			[]string{"decision"},
		),

		WatcherTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_watcher_transitions_total",
				Help: "Externally-driven status changes observed by the watcher",
			},
			[]string{"from", "to"},
		),

		TrackedEscrows: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "escrow_tracked_contracts",
				Help: "Escrow contracts currently tracked by the watcher",
			},
			[]string{"status"},
		),
	}
}

// Record helpers are nil-safe so library consumers and tests can run without
// a registry.

func (m *EscrowMetrics) RecordTransition(action, result string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(action, result).Inc()
}

func (m *EscrowMetrics) RecordGuardViolation(action, reason string) {
	if m == nil {
		return
	}
	m.GuardViolationsTotal.WithLabelValues(action, reason).Inc()
}

func (m *EscrowMetrics) ObserveGatewayRequest(endpoint string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *EscrowMetrics) RecordDisputeCreated(claimantRole string) {
	if m == nil {
		return
	}
	m.DisputesCreatedTotal.WithLabelValues(claimantRole).Inc()
}

func (m *EscrowMetrics) RecordDisputeReview(decision string) {
	if m == nil {
		return
	}
	m.DisputeReviewsTotal.WithLabelValues(decision).Inc()
}

func (m *EscrowMetrics) RecordWatcherTransition(from, to string) {
	if m == nil {
		return
	}
	m.WatcherTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *EscrowMetrics) SetTrackedEscrows(status string, n float64) {
	if m == nil {
		return
	}
	m.TrackedEscrows.WithLabelValues(status).Set(n)
}

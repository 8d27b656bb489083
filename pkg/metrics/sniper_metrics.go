package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SniperMetrics holds all sniper related Prometheus metrics.
// A nil *SniperMetrics is valid and records nothing.
type SniperMetrics struct {
	// Detection metrics
	NotificationsReceived *prometheus.CounterVec
	NotificationsSkipped  *prometheus.CounterVec
	PoolsDetected         *prometheus.CounterVec
	PoolsRejected         *prometheus.CounterVec
	EventErrors           *prometheus.CounterVec
	DetectionDuration     *prometheus.HistogramVec
	EventsInFlight        *prometheus.GaugeVec
	LastPoolTimestamp     prometheus.Gauge

	// Purchase metrics
	SnipesSubmitted      prometheus.Counter
	SnipeFailures        *prometheus.CounterVec
	BundleSubmitDuration prometheus.Histogram
	NoLeaderDrops        prometheus.Counter
	BundleResults        *prometheus.CounterVec

	// Connection metrics
	SubscriptionStatus *prometheus.GaugeVec
	Reconnects         *prometheus.CounterVec
}

// NewSniperMetrics creates the sniper metrics and registers them with reg
func NewSniperMetrics(reg prometheus.Registerer) *SniperMetrics {
	factory := promauto.With(reg)

	return &SniperMetrics{
		NotificationsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_notifications_received_total",
			Help: "Subscription notifications received per detector",
		}, []string{"source"}),

		NotificationsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_notifications_skipped_total",
			Help: "Notifications dropped before parsing, by reason",
		}, []string{"source", "reason"}),

		PoolsDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_pools_detected_total",
			Help: "New pools that passed the eligibility decision",
		}, []string{"source"}),

		PoolsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_pools_rejected_total",
			Help: "New pools rejected by the eligibility decision",
		}, []string{"source", "reason"}),

		EventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_event_errors_total",
			Help: "Notifications that failed while being processed",
		}, []string{"source", "stage"}),

		DetectionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sniper_detection_duration_seconds",
			Help:    "Time from notification to purchase hand-off",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),

		EventsInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sniper_events_in_flight",
			Help: "Notifications currently being processed",
		}, []string{"source"}),

		LastPoolTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sniper_last_pool_timestamp_seconds",
			Help: "Unix time of the last accepted pool",
		}),

		SnipesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "sniper_bundles_submitted_total",
			Help: "Bundles accepted by the block engine",
		}),

		SnipeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_snipe_failures_total",
			Help: "Purchase attempts that failed, by stage",
		}, []string{"stage"}),

		BundleSubmitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sniper_bundle_submit_duration_seconds",
			Help:    "Latency of sendBundle calls",
			Buckets: prometheus.DefBuckets,
		}),

		NoLeaderDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "sniper_bundles_no_leader_total",
			Help: "Bundles dropped because no Jito leader was up soon",
		}),

		BundleResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_bundle_results_total",
			Help: "Submitted bundles by final block engine status (landed, failed, pending)",
		}, []string{"status"}),

		SubscriptionStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sniper_subscription_connected",
			Help: "Subscription connection status (1 = connected, 0 = disconnected)",
		}, []string{"stream"}),

		Reconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sniper_subscription_reconnects_total",
			Help: "Subscription reconnect attempts",
		}, []string{"stream"}),
	}
}

// RecordNotification counts an incoming notification
func (m *SniperMetrics) RecordNotification(source string) {
	if m == nil {
		return
	}
	m.NotificationsReceived.WithLabelValues(source).Inc()
}

// RecordSkipped counts a notification dropped before parsing
func (m *SniperMetrics) RecordSkipped(source, reason string) {
	if m == nil {
		return
	}
	m.NotificationsSkipped.WithLabelValues(source, reason).Inc()
}

// RecordDecision counts the outcome of the eligibility decision
func (m *SniperMetrics) RecordDecision(source string, accepted bool, reason string) {
	if m == nil {
		return
	}
	if accepted {
		m.PoolsDetected.WithLabelValues(source).Inc()
		m.LastPoolTimestamp.SetToCurrentTime()
		return
	}
	m.PoolsRejected.WithLabelValues(source, reason).Inc()
}

// RecordEventError counts a failed notification
func (m *SniperMetrics) RecordEventError(source, stage string) {
	if m == nil {
		return
	}
	m.EventErrors.WithLabelValues(source, stage).Inc()
}

// ObserveDetection records the time from notification to hand-off
func (m *SniperMetrics) ObserveDetection(source string, started time.Time) {
	if m == nil {
		return
	}
	m.DetectionDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement
func (m *SniperMetrics) TrackInFlight(source string) func() {
	if m == nil {
		return func() {}
	}
	gauge := m.EventsInFlight.WithLabelValues(source)
	gauge.Inc()
	return gauge.Dec
}

// RecordSnipeSubmitted records a successful bundle submission
func (m *SniperMetrics) RecordSnipeSubmitted(duration time.Duration) {
	if m == nil {
		return
	}
	m.SnipesSubmitted.Inc()
	m.BundleSubmitDuration.Observe(duration.Seconds())
}

// RecordSnipeFailure records a failed purchase attempt
func (m *SniperMetrics) RecordSnipeFailure(stage string, noLeader bool) {
	if m == nil {
		return
	}
	m.SnipeFailures.WithLabelValues(stage).Inc()
	if noLeader {
		m.NoLeaderDrops.Inc()
	}
}

// RecordBundleResult counts the status a submitted bundle ended in
func (m *SniperMetrics) RecordBundleResult(status string) {
	if m == nil {
		return
	}
	m.BundleResults.WithLabelValues(status).Inc()
}

// UpdateSubscriptionStatus sets the connection gauge of stream
func (m *SniperMetrics) UpdateSubscriptionStatus(stream string, connected bool) {
	if m == nil {
		return
	}
	value := 0.0
	if connected {
		value = 1.0
	}
	m.SubscriptionStatus.WithLabelValues(stream).Set(value)
}

// RecordReconnect counts a reconnect attempt of stream
func (m *SniperMetrics) RecordReconnect(stream string) {
	if m == nil {
		return
	}
	m.Reconnects.WithLabelValues(stream).Inc()
}

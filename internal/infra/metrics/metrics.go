package metrics

import (
	"net/http"
	"time"

	"course-checkout/internal/domain/webhook"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "course_checkout"

// Metrics implements shared.Metrics on its own registry so tests and the CLI
// can build one without touching the process-wide default.
type Metrics struct {
	registry *prometheus.Registry

	RateLimitTotal  *prometheus.CounterVec // purpose, result=admitted|rejected
	FallbackTotal   prometheus.Counter
	WebhookTotal    *prometheus.CounterVec // status=processed|duplicate|skipped|ignored
	WebhookFailures *prometheus.CounterVec // stage=reserve|side_effect|mark_processed
	LedgerOps       *prometheus.CounterVec // op, result=ok|error
	LockWaitSeconds *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RateLimitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_decisions_total",
				Help:      "Rate limit decisions by purpose and result",
			},
			[]string{"purpose", "result"},
		),
		FallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_fallback_total",
			Help:      "Decisions answered by the in-memory limiter after the durable store failed",
		}),
		WebhookTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Handled webhook events by outcome",
			},
			[]string{"status"},
		),
		WebhookFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_failures_total",
				Help:      "Webhook events that failed and were handed back for redelivery, by stage",
			},
			[]string{"stage"},
		),
		LedgerOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_ledger_operations_total",
				Help:      "Webhook ledger operations by result",
			},
			[]string{"op", "result"},
		),
		LockWaitSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "keyed_lock_wait_seconds",
				Help:      "Time spent waiting for a contended keyed lock",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms .. ~4s
			},
			[]string{"lock"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RateLimitTotal,
		m.FallbackTotal,
		m.WebhookTotal,
		m.WebhookFailures,
		m.LedgerOps,
		m.LockWaitSeconds,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RateLimitDecision(purpose string, admitted bool) {
	result := "rejected"
	if admitted {
		result = "admitted"
	}
	m.RateLimitTotal.WithLabelValues(purpose, result).Inc()
}

func (m *Metrics) RateLimitFallback() {
	m.FallbackTotal.Inc()
}

func (m *Metrics) WebhookOutcome(status webhook.Status) {
	m.WebhookTotal.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) WebhookFailure(stage string) {
	m.WebhookFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) LedgerOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.LedgerOps.WithLabelValues(op, result).Inc()
}

// LockWaitObserver plugs into keyedmutex.WithWaitObserver.
func (m *Metrics) LockWaitObserver(lock string) func(time.Duration) {
	h := m.LockWaitSeconds.WithLabelValues(lock)
	return func(d time.Duration) {
		h.Observe(d.Seconds())
	}
}

// Package metrics holds the prometheus collectors of the token ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tokenledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LedgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenledger_ledger_operations_total",
			Help: "Total number of ledger mutations by kind and outcome",
		},
		[]string{"operation", "outcome"},
	)

	TokensMovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenledger_tokens_moved_total",
			Help: "Total number of tokens credited or debited",
		},
		[]string{"direction"},
	)

	PromotionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenledger_promotions_total",
			Help: "Total number of purchased promotions",
		},
		[]string{"entity_kind", "plan", "extended"},
	)

	WebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenledger_payment_webhooks_total",
			Help: "Total number of payment webhooks by result",
		},
		[]string{"result"},
	)

	DeadLetteredCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenledger_dead_lettered_credits_total",
			Help: "Total number of payment credits sent to the retry queue",
		},
	)

	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tokenledger_stream_subscribers",
			Help: "Current number of realtime wallet subscribers",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordLedgerOperation(operation, outcome string) {
	LedgerOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordTokens(direction string, amount int64) {
	TokensMovedTotal.WithLabelValues(direction).Add(float64(amount))
}

func RecordPromotion(entityKind, plan string, extended bool) {
	ext := "false"
	if extended {
		ext = "true"
	}
	PromotionsTotal.WithLabelValues(entityKind, plan, ext).Inc()
}

func RecordWebhook(result string) {
	WebhooksTotal.WithLabelValues(result).Inc()
}

func RecordDeadLetter() {
	DeadLetteredCreditsTotal.Inc()
}

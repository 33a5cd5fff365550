package metrics

import "github.com/prometheus/client_golang/prometheus"

// Language-model and query Prometheus metrics.
var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atletismo",
			Name:      "llm_requests_total",
			Help:      "Total number of language-model requests",
		},
		[]string{"op", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atletismo",
			Name:      "llm_request_duration_seconds",
			Help:      "Language-model request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op", "model"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atletismo",
			Name:      "llm_tokens_total",
			Help:      "Total language-model tokens consumed",
		},
		[]string{"op", "model", "type"},
	)

	IntentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atletismo",
			Name:      "intent_cache_total",
			Help:      "Intent cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atletismo",
			Name:      "queries_total",
			Help:      "Executed queries by action and outcome",
		},
		[]string{"action", "outcome"}, // outcome: "results" / "empty"
	)
)

var llmMetricsRegistered bool

// RegisterLLMMetrics registers the metrics above. Must be called once from main.
func RegisterLLMMetrics() {
	if llmMetricsRegistered {
		return
	}
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(LLMTokensTotal)
	prometheus.MustRegister(IntentCacheTotal)
	prometheus.MustRegister(QueriesTotal)
	llmMetricsRegistered = true
}

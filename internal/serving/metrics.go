package serving

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcome labels for predictionsTotal.
const (
	outcomeSuccess         = "success"
	outcomeValidationError = "validation_error"
	outcomeInferenceError  = "inference_error"
	outcomeNotLoaded       = "not_loaded"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "predict",
			Name:      "requests_total",
			Help:      "Total prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inferd",
			Subsystem: "predict",
			Name:      "inference_duration_seconds",
			Help:      "Duration of model inference calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Total model load and reload attempts by result",
		},
		[]string{"result"},
	)

	modelInfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "inferd",
			Subsystem: "model",
			Name:      "info",
			Help:      "Active model info (value is always 1 for the active version)",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, inferenceDuration, modelLoadsTotal, modelInfoGauge)
}

// observePrediction records one request outcome and, on success, its latency.
// Fire-and-forget: it never blocks or fails the request path.
func observePrediction(outcome string, seconds float64) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	if outcome == outcomeSuccess {
		inferenceDuration.Observe(seconds)
	}
}

// recordModelLoad tracks load attempts and keeps the version info gauge
// pointing at the active version.
func recordModelLoad(result, version string) {
	modelLoadsTotal.WithLabelValues(result).Inc()
	if result == "success" && version != "" {
		modelInfoGauge.Reset()
		modelInfoGauge.WithLabelValues(version).Set(1)
	}
}

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records predictor metrics using Prometheus
type Collector struct {
	predictions      *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	featureCount     prometheus.Histogram
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewCollector creates a new Prometheus metrics collector registered with reg.
// Passing prometheus.DefaultRegisterer exposes the metrics on promhttp.Handler.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_predictions_total",
				Help: "Total number of predict requests by outcome",
			},
			[]string{"status"},
		),
		rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_rejections_total",
				Help: "Total number of rejected predict requests by reason",
			},
			[]string{"reason"},
		),
		featureCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "predictor_features_per_request",
				Help:    "Number of features in accepted predict requests",
				Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 10000},
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "predictor_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "predictor_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// RecordPrediction records an accepted predict request
func (c *Collector) RecordPrediction(featureCount int) {
	c.predictions.WithLabelValues("ok").Inc()
	c.featureCount.Observe(float64(featureCount))
}

// RecordRejection records a predict request that failed validation
func (c *Collector) RecordRejection(reason string) {
	c.predictions.WithLabelValues("rejected").Inc()
	c.rejections.WithLabelValues(reason).Inc()
}

// IncInFlight marks the start of an HTTP request
func (c *Collector) IncInFlight() {
	c.requestsInFlight.Inc()
}

// DecInFlight marks the end of an HTTP request
func (c *Collector) DecInFlight() {
	c.requestsInFlight.Dec()
}

// ObserveRequest records a completed HTTP request
func (c *Collector) ObserveRequest(method, route, code string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, code).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

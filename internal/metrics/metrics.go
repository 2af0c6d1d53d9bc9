package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	ReportsTotal  *prometheus.CounterVec

	RecommendationsTotal *prometheus.CounterVec
}

// NewCollector creates a new metrics collector.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"route"},
		),

		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_fetch_total",
				Help:      "Total number of provider fetches by provider and result",
			},
			[]string{"provider", "result"},
		),

		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_fetch_duration_seconds",
				Help:      "Provider fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_reports_total",
				Help:      "Total number of weather reports by outcome",
			},
			[]string{"outcome"},
		),

		RecommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Total number of restaurant recommendations by cuisine and result",
			},
			[]string{"cuisine", "result"},
		),
	}
}

// ObserveFetch implements weather.Recorder.
func (c *Collector) ObserveFetch(provider string, ok bool, elapsed time.Duration) {
	result := "error"
	if ok {
		result = "success"
	}
	c.FetchTotal.WithLabelValues(provider, result).Inc()
	c.FetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveReport implements weather.Recorder.
func (c *Collector) ObserveReport(outcome string) {
	c.ReportsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRecommendation counts one recommendation attempt.
func (c *Collector) ObserveRecommendation(cuisine string, ok bool) {
	result := "error"
	if ok {
		result = "success"
	}
	c.RecommendationsTotal.WithLabelValues(cuisine, result).Inc()
}

// ObserveRequest records an API request.
func (c *Collector) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	c.APIRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.APIRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

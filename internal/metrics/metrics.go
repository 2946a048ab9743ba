package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Labels of the records processed counter.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type Metrics struct {
	RecordsProcessed *prometheus.CounterVec
	Failures         *prometheus.CounterVec
	RequestSeconds   *prometheus.HistogramVec
	RecordsSkipped   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RecordsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_records_processed_total",
			Help: "Total number of address records processed.",
		}, []string{"status"}),
		Failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_failures_total",
			Help: "Total number of failed records by failure kind.",
		}, []string{"kind"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		RecordsSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_records_skipped_total",
			Help: "Total number of malformed input lines that were skipped.",
		}),
	}
}

package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CallbacksProcessed   prometheus.Counter
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
	ScreenViews          *prometheus.CounterVec
	ExportsTotal         prometheus.Counter
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admin_bot_messages_processed_total",
			Help: "Total number of messages processed",
		}),
		CallbacksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admin_bot_callbacks_processed_total",
			Help: "Total number of callback queries processed",
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admin_bot_errors_total",
			Help: "Total number of recovered handler errors",
		}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "admin_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
		ScreenViews: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_bot_screen_views_total",
			Help: "Screen activations by screen name",
		}, []string{"screen"}),
		ExportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admin_bot_exports_total",
			Help: "Total number of Excel exports generated",
		}),
	}
}

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rogenecarl/inventory-pos/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Registration metrics
	RegistrationsCounter prometheus.Counter

	// Catalog metrics
	ProductOperationsCounter  prometheus.CounterVec
	CategoryOperationsCounter prometheus.CounterVec

	// Inventory metrics
	StockAdjustmentsCounter prometheus.CounterVec

	// Sales metrics
	SalesRecordedCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	RegistrationsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_registrations_total",
			Help: "Total number of store registrations",
		},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	StockAdjustmentsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_adjustments_total",
			Help: "Total number of stock adjustments by result",
		},
		[]string{"result"},
	)

	SalesRecordedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_recorded_total",
			Help: "Total number of recorded sales",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordStockAdjustment increments the counter for stock adjustments
func RecordStockAdjustment(result string) {
	StockAdjustmentsCounter.WithLabelValues(result).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests by how they were served
	CaptureRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_requests_total",
			Help: "Total number of screenshot requests by cache status",
		},
		[]string{"cache_status"}, // HIT, MISS, DEGRADED
	)

	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_request_errors_total",
			Help: "Total number of failed screenshot requests by error kind",
		},
		[]string{"kind"},
	)

	// Existence lookups answered per tier (l1, l2, storage)
	IndexHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_index_hits_total",
			Help: "Total number of existence lookups answered by each tier",
		},
		[]string{"level"},
	)

	IndexErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_index_errors_total",
			Help: "Total number of existence index errors",
		},
		[]string{"level", "kind"},
	)

	IndexEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screenshot_index_entries",
			Help: "Number of entries held by an existence index tier",
		},
		[]string{"level"},
	)

	IndexCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screenshot_index_capacity_bytes",
			Help: "L1 existence index capacity in bytes",
		},
		[]string{"level"}, // only "l1"
	)

	Captures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_captures_total",
			Help: "Total number of browser captures by result",
		},
		[]string{"result"},
	)

	NavigationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_navigation_attempts_total",
			Help: "Total number of page navigation attempts by result",
		},
		[]string{"result"},
	)

	CaptureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screenshot_capture_duration_seconds",
			Help:    "Duration of browser captures including launch and teardown",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screenshot_storage_operation_duration_seconds",
			Help:    "Duration of object storage operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenshot_storage_errors_total",
			Help: "Total number of object storage errors",
		},
		[]string{"operation"},
	)
)

// RecordCaptureRequest records a served request
func RecordCaptureRequest(cacheStatus string) {
	CaptureRequests.WithLabelValues(cacheStatus).Inc()
}

// RecordRequestError records a failed request
func RecordRequestError(kind string) {
	RequestErrors.WithLabelValues(kind).Inc()
}

// RecordIndexHit records which tier answered an existence lookup
func RecordIndexHit(level string) {
	IndexHits.WithLabelValues(level).Inc()
}

// RecordIndexError records an existence index error
func RecordIndexError(level, kind string) {
	IndexErrors.WithLabelValues(level, kind).Inc()
}

// UpdateIndexEntries updates the number of entries in an index tier
func UpdateIndexEntries(level string, count int64) {
	IndexEntries.WithLabelValues(level).Set(float64(count))
}

// UpdateL1IndexCapacity updates L1 index capacity
func UpdateL1IndexCapacity(capacity int64) {
	IndexCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// RecordCapture records the outcome of a capture
func RecordCapture(result string) {
	Captures.WithLabelValues(result).Inc()
}

// RecordNavigationAttempt records one navigation attempt
func RecordNavigationAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	NavigationAttempts.WithLabelValues(result).Inc()
}

// RecordStorageError records an object storage failure
func RecordStorageError(operation string) {
	StorageErrors.WithLabelValues(operation).Inc()
}

// TimeCapture returns a timer function for measuring capture duration
func TimeCapture() func() {
	timer := prometheus.NewTimer(CaptureDuration)
	return func() {
		timer.ObserveDuration()
	}
}

// TimeStorageOperation returns a timer function for measuring a storage operation
func TimeStorageOperation(operation string) func() {
	timer := prometheus.NewTimer(StorageDuration.WithLabelValues(operation))
	return func() {
		timer.ObserveDuration()
	}
}

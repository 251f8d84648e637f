package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	attendanceMarksTotal *prometheus.CounterVec
	examConflictsTotal   prometheus.Counter
	uploadRejectedTotal  *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram
	feedClientsActive    prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campus_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		attendanceMarksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_attendance_marks_total",
			Help: "Total number of attendance records marked, by resulting status.",
		}, []string{"status"})

		examConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campus_exam_conflicts_total",
			Help: "Total number of exam schedule conflicts detected.",
		})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_upload_rejected_total",
			Help: "Total number of import uploads rejected, by reason.",
		}, []string{"reason"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "campus_upload_latency_seconds",
			Help:    "Latency distribution for import uploads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		feedClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campus_feed_clients_active",
			Help: "Number of websocket clients subscribed to attendance feeds.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			attendanceMarksTotal,
			examConflictsTotal,
			uploadRejectedTotal,
			uploadLatencySeconds,
			feedClientsActive,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// AttendanceMarks exposes the counter for attendance marks.
func AttendanceMarks() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceMarksTotal
}

// ExamConflicts exposes the counter for detected schedule conflicts.
func ExamConflicts() prometheus.Counter {
	RegisterMetrics()
	return examConflictsTotal
}

// UploadRejected exposes the counter for rejected import uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency exposes the latency histogram for import uploads.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// FeedClientsActive exposes the gauge of live attendance feed subscribers.
func FeedClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return feedClientsActive
}

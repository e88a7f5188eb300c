package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LoginAttempts counts log-in submissions by outcome (success, no_such_user, wrong_password, invalid).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_login_attempts_total",
			Help: "Log-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	// FormRejections counts form submissions rejected by validation, by form.
	FormRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_form_rejections_total",
			Help: "Form submissions rejected by validation",
		},
		[]string{"form"},
	)

	// Users is the number of registered users by membership status.
	Users = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forum_users",
			Help: "Registered users by membership status",
		},
		[]string{"status"},
	)

	// Posts is the number of stored posts.
	Posts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forum_posts",
			Help: "Number of stored posts",
		},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, LoginAttempts, FormRejections, Users, Posts)
	})
}

// NormalizePath reduces cardinality by replacing numeric and UUID path segments with {id}.
// E.g. /post/delete/3f1c...-... -> /post/delete/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLogin counts one log-in attempt.
func RecordLogin(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}

// RecordRejection counts one form that failed validation.
func RecordRejection(form string) {
	FormRejections.WithLabelValues(form).Inc()
}

// SetTotals publishes the forum totals gathered by the stats job.
func SetTotals(usersByStatus map[string]int, posts int) {
	for status, n := range usersByStatus {
		Users.WithLabelValues(status).Set(float64(n))
	}
	Posts.Set(float64(posts))
}

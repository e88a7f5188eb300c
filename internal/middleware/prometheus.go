package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kulewers/members-only/internal/metrics"
)

// Prometheus records request duration and count for each request, labelled by
// the matched chi route pattern so ids do not explode label cardinality.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := wrap(w)
		next.ServeHTTP(ww, r)
		if r.URL.Path == "/metrics" {
			return
		}

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		metrics.RecordRequest(r.Method, path, ww.status, time.Since(start).Seconds())
	})
}

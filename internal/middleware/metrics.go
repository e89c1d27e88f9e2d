package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type requestRecorder interface {
	RecordHTTPRequest(method string, route string, status int, duration time.Duration)
}

// Metrics records every request under its chi route pattern so that path
// parameters do not explode label cardinality.
func Metrics(recorder requestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrapped := newStatusRecorder(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			recorder.RecordHTTPRequest(r.Method, route, wrapped.status, time.Since(started))
		})
	}
}

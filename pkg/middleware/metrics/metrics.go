// middleware/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
)

// Dispatch outcome labels recorded by hosts around Controller.Execute.
const (
	OutcomeOK           = "ok"
	OutcomeDenied       = "denied"
	OutcomeUnmatched    = "unmatched"
	OutcomeUnregistered = "unregistered"
	OutcomeBadRequest   = "bad_request"
	OutcomeError        = "error"
)

// ObserveDispatch records one dispatch outcome.
func ObserveDispatch(request, outcome string, d time.Duration) {
	totalDispatches.WithLabelValues(request, outcome).Inc()
	dispatchDuration.Observe(d.Seconds())
}

// Collect produces the HTTP middleware recording request counters.
func Collect() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if r.URL.Path == "/metrics" {
					return
				}
				totalHttpRequests.WithLabelValues(strconv.Itoa(ww.Status()), r.Method).Inc()
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

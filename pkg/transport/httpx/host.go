// pkg/transport/httpx/host.go
package httpx

import (
	"errors"
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/codec"
	"github.com/RyanR100/ServiceStack/pkg/dispatch"
	"github.com/RyanR100/ServiceStack/pkg/middleware/auth"
	"github.com/RyanR100/ServiceStack/pkg/middleware/logger"
	hmetrics "github.com/RyanR100/ServiceStack/pkg/middleware/metrics"
	"github.com/RyanR100/ServiceStack/pkg/route"
)

type BuildDeps struct {
	Controller *dispatch.Controller
	Auth       *auth.Middleware
	LogMW      *logger.Middleware
	Metrics    http.Handler
	Router     Router
}

// BuildHandler assembles the HTTP surface: fixed endpoints on the chi mux,
// everything else routed through the dispatch controller's route table.
func BuildHandler(d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware(d.Auth))
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	r.NotFound(DispatchHandler(d.Controller, d.Auth))
	return r.Mux()
}

// DispatchHandler serves every dynamic route: resolve the pattern,
// materialize and decode the request, then execute through the controller.
func DispatchHandler(c *dispatch.Controller, ca *auth.Middleware) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		pattern := c.ResolveRoute(r.Method, r.URL.Path)
		if pattern == nil {
			hmetrics.ObserveDispatch("", hmetrics.OutcomeUnmatched, time.Since(start))
			http.Error(w, "no route matches", http.StatusNotFound)
			return
		}
		ident := pattern.Identity.String()

		req, err := c.CreateRequest(pattern.Identity)
		if err != nil {
			hmetrics.ObserveDispatch(ident, hmetrics.OutcomeUnregistered, time.Since(start))
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		body, _ := io.ReadAll(r.Body)
		if err := codec.DecodeBody(codec.JSONStrict, body, req); err != nil {
			hmetrics.ObserveDispatch(ident, hmetrics.OutcomeBadRequest, time.Since(start))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if vars := pattern.Variables(route.SplitPath(r.URL.Path)); len(vars) > 0 {
			if err := hydrate(req, vars); err != nil {
				hmetrics.ObserveDispatch(ident, hmetrics.OutcomeBadRequest, time.Since(start))
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		rc := &dispatch.RequestContext{
			Req:   r,
			Res:   w,
			Attrs: RequestAttributes(r, ca),
		}

		resp, err := c.ExecuteWith(r.Context(), req, rc)
		if err != nil {
			outcome, status := classify(err)
			hmetrics.ObserveDispatch(ident, outcome, time.Since(start))
			http.Error(w, err.Error(), status)
			return
		}

		hmetrics.ObserveDispatch(ident, hmetrics.OutcomeOK, time.Since(start))
		writeJSON(w, resp, http.StatusOK)
	}
}

func classify(err error) (outcome string, status int) {
	var ae *access.AuthorizationError
	if errors.As(err, &ae) {
		return hmetrics.OutcomeDenied, http.StatusUnauthorized
	}
	var nre *dispatch.NotRegisteredError
	if errors.As(err, &nre) {
		return hmetrics.OutcomeUnregistered, http.StatusNotFound
	}
	return hmetrics.OutcomeError, http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, resp any, status int) {
	payload, err := codec.JSONStrict.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", codec.JSONStrict.ContentType())
	w.WriteHeader(status)
	if len(payload) > 0 && string(payload) != "null" {
		_, _ = w.Write(payload)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

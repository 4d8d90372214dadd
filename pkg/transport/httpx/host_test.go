package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/dispatch"
	"github.com/RyanR100/ServiceStack/pkg/route"
)

type getOrder struct {
	ID     int    `json:"id"`
	Region string `json:"region"`
}

type adminReport struct{}

func buildController(t *testing.T) *dispatch.Controller {
	t.Helper()

	tbl := route.NewTable()
	ev := access.NewEvaluator(true)
	reg := dispatch.NewRegistry(tbl, ev, nil)

	require.NoError(t, reg.Register(dispatch.Descriptor{
		Request: getOrder{},
		Handler: "OrderService",
		Execute: dispatch.FuncExecutor(func(_ context.Context, _ *dispatch.RequestContext, req *getOrder) (any, error) {
			return map[string]any{"id": req.ID, "region": req.Region}, nil
		}),
		Routes: []dispatch.RouteDecl{
			{Path: "/orders/{id}", Verbs: []string{"GET"}},
			{Path: "/regions/{region}/orders/{id}", Verbs: []string{"GET"}},
		},
	}))
	require.NoError(t, reg.Register(dispatch.Descriptor{
		Request: adminReport{},
		Handler: "AdminService",
		Execute: dispatch.FuncExecutor(func(context.Context, *dispatch.RequestContext, *adminReport) (any, error) {
			return "report", nil
		}),
		Routes:   []dispatch.RouteDecl{{Path: "/admin/report", Verbs: []string{"GET"}}},
		Restrict: []access.Attributes{access.Authenticated},
	}))
	reg.Freeze()

	return dispatch.NewController(reg, tbl, ev, dispatch.NewPipeline(nil, nil, nil))
}

func TestDispatchHandler_PathVariables(t *testing.T) {
	t.Parallel()

	h := DispatchHandler(buildController(t), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/regions/eu/orders/42", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"region":"eu"}`, w.Body.String())
}

func TestDispatchHandler_BodyDecode(t *testing.T) {
	t.Parallel()

	h := DispatchHandler(buildController(t), nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/orders/7", strings.NewReader(`{"region":"us"}`))
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"region":"us"}`, w.Body.String())
}

func TestDispatchHandler_BadBody(t *testing.T) {
	t.Parallel()

	h := DispatchHandler(buildController(t), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/7", strings.NewReader(`{"bogus":true}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchHandler_NoRoute(t *testing.T) {
	t.Parallel()

	h := DispatchHandler(buildController(t), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Verb mismatch is unmatched too.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/orders/7", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispatchHandler_DeniedFailsClosed(t *testing.T) {
	t.Parallel()

	h := DispatchHandler(buildController(t), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/report", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuildHandler_FixedEndpoints(t *testing.T) {
	t.Parallel()

	mux := BuildHandler(BuildDeps{
		Controller: buildController(t),
		Router:     NewChi(),
		Metrics:    http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Dynamic routes flow through the dispatch table.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"region":""}`, w.Body.String())
}

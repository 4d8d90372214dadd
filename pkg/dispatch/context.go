// pkg/dispatch/context.go
package dispatch

import (
	"net/http"

	"github.com/RyanR100/ServiceStack/pkg/access"
)

// RequestContext is the per-request carrier handed through one dispatch.
// It holds the raw transport request/response when the call came over HTTP,
// the actual access attributes of the call, and free-form items. Owned by
// the caller, borrowed by the pipeline for the duration of one dispatch,
// never shared across concurrent dispatches.
type RequestContext struct {
	Req   *http.Request
	Res   http.ResponseWriter
	Attrs access.Attributes

	items map[string]any
}

// NewRequestContext returns a minimal empty context, as used by the
// request-only Execute convenience path.
func NewRequestContext() *RequestContext {
	return &RequestContext{}
}

// Set stores a per-request item.
func (rc *RequestContext) Set(key string, v any) {
	if rc.items == nil {
		rc.items = make(map[string]any)
	}
	rc.items[key] = v
}

// Get retrieves a per-request item.
func (rc *RequestContext) Get(key string) (any, bool) {
	v, ok := rc.items[key]
	return v, ok
}

// ContextAware is the capability interface a handler instance implements to
// receive the ambient request context before execution. Membership in this
// small fixed set of capabilities is the only instance inspection the
// pipeline performs.
type ContextAware interface {
	SetRequestContext(*RequestContext)
}

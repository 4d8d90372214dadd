// pkg/dispatch/controller.go
package dispatch

import (
	"context"
	"reflect"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/route"
)

// Controller is the single public entry point for executing requests. It
// combines the registry, route table, access evaluator, and pipeline; all
// collaborators are injected at construction, never reached through
// ambient process state.
type Controller struct {
	registry *Registry
	routes   *route.Table
	access   *access.Evaluator
	pipeline *Pipeline
}

// NewController wires a controller from frozen build-phase structures.
func NewController(reg *Registry, rt *route.Table, ev *access.Evaluator, p *Pipeline) *Controller {
	return &Controller{registry: reg, routes: rt, access: ev, pipeline: p}
}

// Execute dispatches a request with a minimal empty request context.
func (c *Controller) Execute(ctx context.Context, req any) (any, error) {
	return c.ExecuteWith(ctx, req, NewRequestContext())
}

// ExecuteWith dispatches a request under a caller-built request context.
// The access policy is checked first and fails closed: a denied request
// returns an AuthorizationError before any handler code runs.
func (c *Controller) ExecuteWith(ctx context.Context, req any, rc *RequestContext) (any, error) {
	identity := IdentityOf(req)

	if d := c.access.Check(identity, rc.Attrs); !d.Allowed {
		return nil, d.Err(identity)
	}

	entry, err := c.registry.Resolve(identity)
	if err != nil {
		return nil, err
	}
	return c.pipeline.Run(ctx, entry, rc, req)
}

// ExecuteMessage unwraps a message envelope and dispatches its body with a
// fresh context stamped as queue-originated.
func (c *Controller) ExecuteMessage(ctx context.Context, m Message) (any, error) {
	return c.ExecuteMessageWith(ctx, m, NewRequestContext())
}

// ExecuteMessageWith is ExecuteMessage under a caller-built context.
func (c *Controller) ExecuteMessageWith(ctx context.Context, m Message, rc *RequestContext) (any, error) {
	rc.Attrs |= access.MessageQueue
	return c.ExecuteWith(ctx, m.Body(), rc)
}

// ResolveRoute finds the best pattern for an HTTP-style verb and path, or
// nil. Read-only; safe for concurrent use.
func (c *Controller) ResolveRoute(verb, path string) *route.Pattern {
	return c.routes.BestMatch(verb, path)
}

// CreateRequest materializes a fresh request value for a resolved identity.
func (c *Controller) CreateRequest(identity reflect.Type) (any, error) {
	return c.registry.NewRequest(identity)
}

// pkg/dispatch/registry.go
package dispatch

import (
	"context"
	"fmt"
	"reflect"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/route"
)

// Executor runs one bound handler. The instance comes from the pipeline's
// factory; req is the (possibly hook-transformed) request value.
type Executor func(ctx context.Context, rc *RequestContext, instance any, req any) (any, error)

// RouteDecl is one URL declaration attached to a request identity.
type RouteDecl struct {
	Path     string
	Verbs    []string
	Summary  string
	Notes    string
	Fallback bool
}

// Descriptor is the discovery layer's view of one handler binding: the
// request prototype naming the identity, the handler it belongs to, the
// executor closure, and any route and restriction declarations.
type Descriptor struct {
	Request  any
	Handler  string
	Execute  Executor
	Routes   []RouteDecl
	Restrict []access.Attributes
}

// Source produces descriptors for registration, consumed once during the
// build phase. Usually backed by generated or hand-written wiring code.
type Source func() ([]Descriptor, error)

// Observer receives registry lifecycle events. The registry itself never
// logs; hosts wire an observer backed by their logger.
type Observer interface {
	EntryRegistered(identity reflect.Type, handler string)
	AmbiguityDetected(identity reflect.Type, existing, proposed string)
}

// Entry is one immutable registry binding.
type Entry struct {
	Request reflect.Type
	Handler string
	Exec    Executor
}

// Registry maps each request identity to exactly one executable handler.
// Built single-threaded, then frozen; Resolve is lock-free afterwards.
type Registry struct {
	entries map[reflect.Type]*Entry
	routes  *route.Table
	access  *access.Evaluator
	obs     Observer
	frozen  bool
}

// NewRegistry returns an empty registry wired to a route table and access
// evaluator. obs may be nil.
func NewRegistry(rt *route.Table, ev *access.Evaluator, obs Observer) *Registry {
	return &Registry{
		entries: make(map[reflect.Type]*Entry),
		routes:  rt,
		access:  ev,
		obs:     obs,
	}
}

// IdentityOf derives the stable request identity from a value: its
// pointer-dereferenced dynamic type.
func IdentityOf(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Register binds one descriptor. A second registration for an identity
// already bound to a different handler fails; re-registering the identical
// identity+handler pair is a no-op. Route declarations are forwarded to the
// route table and restriction scenarios to the evaluator as a side effect.
func (r *Registry) Register(d Descriptor) error {
	if r.frozen {
		panic("dispatch: Register after Freeze")
	}
	identity := IdentityOf(d.Request)
	if identity == nil {
		return fmt.Errorf("descriptor for handler %q carries no request prototype", d.Handler)
	}

	if existing, ok := r.entries[identity]; ok {
		if existing.Handler == d.Handler {
			return nil
		}
		if r.obs != nil {
			r.obs.AmbiguityDetected(identity, existing.Handler, d.Handler)
		}
		return &AmbiguousBindingError{Request: identity, Existing: existing.Handler, Proposed: d.Handler}
	}
	if d.Execute == nil {
		return fmt.Errorf("descriptor for %s (handler %q) carries no executor", identity, d.Handler)
	}

	for _, decl := range d.Routes {
		p, err := route.Compile(identity, route.Spec{
			Path:     decl.Path,
			Verbs:    decl.Verbs,
			Summary:  decl.Summary,
			Notes:    decl.Notes,
			Fallback: decl.Fallback,
		})
		if err != nil {
			return err
		}
		if err := r.routes.Insert(p); err != nil {
			return err
		}
	}

	if len(d.Restrict) > 0 {
		r.access.Declare(identity, d.Restrict...)
	}

	r.entries[identity] = &Entry{Request: identity, Handler: d.Handler, Exec: d.Execute}
	if r.obs != nil {
		r.obs.EntryRegistered(identity, d.Handler)
	}
	return nil
}

// Load consumes a discovery source. Errors and panics from the source are
// wrapped in a DiscoveryError naming the last handler processed.
// Registration errors propagate as-is since they already name the binding.
func (r *Registry) Load(src Source) (err error) {
	last := ""
	defer func() {
		if p := recover(); p != nil {
			err = &DiscoveryError{LastHandler: last, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	descs, srcErr := src()
	if srcErr != nil {
		return &DiscoveryError{LastHandler: last, Err: srcErr}
	}
	for _, d := range descs {
		last = d.Handler
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the entry bound to an identity.
func (r *Registry) Resolve(identity reflect.Type) (*Entry, error) {
	e, ok := r.entries[identity]
	if !ok {
		return nil, &NotRegisteredError{Request: identity}
	}
	return e, nil
}

// NewRequest constructs a fresh pointer to the identity's request type, for
// transports that must materialize a request value before decoding into it.
func (r *Registry) NewRequest(identity reflect.Type) (any, error) {
	if _, ok := r.entries[identity]; !ok {
		return nil, &NotRegisteredError{Request: identity}
	}
	return reflect.New(identity).Interface(), nil
}

// Len reports the number of registered bindings.
func (r *Registry) Len() int { return len(r.entries) }

// Freeze marks the registry read-only and freezes the route table and
// evaluator with it. Registering afterwards panics.
func (r *Registry) Freeze() {
	r.frozen = true
	r.routes.Freeze()
	r.access.Freeze()
}

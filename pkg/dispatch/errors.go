// pkg/dispatch/errors.go
package dispatch

import (
	"fmt"
	"reflect"
)

// AmbiguousBindingError reports a second handler registered against a
// request identity already bound to a different handler. Build phase.
type AmbiguousBindingError struct {
	Request  reflect.Type
	Existing string
	Proposed string
}

func (e *AmbiguousBindingError) Error() string {
	return fmt.Sprintf("request %s already handled by %s; cannot also bind %s",
		e.Request, e.Existing, e.Proposed)
}

// NotRegisteredError reports a dispatch against an unbound identity. Serve phase.
type NotRegisteredError struct {
	Request reflect.Type
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no handler registered for request %s", e.Request)
}

// DiscoveryError wraps a failure while consuming a discovery source,
// naming the last handler processed before the failure.
type DiscoveryError struct {
	LastHandler string
	Err         error
}

func (e *DiscoveryError) Error() string {
	if e.LastHandler == "" {
		return fmt.Sprintf("handler discovery failed: %v", e.Err)
	}
	return fmt.Sprintf("handler discovery failed after %s: %v", e.LastHandler, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// InvocationError wraps a failure raised inside a reflective handler
// invocation. The pipeline unwraps it so callers see the real cause
// rather than the invocation mechanism.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string { return fmt.Sprintf("handler invocation: %v", e.Err) }

func (e *InvocationError) Unwrap() error { return e.Err }

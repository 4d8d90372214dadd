// pkg/dispatch/executor.go
package dispatch

import (
	"context"
	"fmt"
	"reflect"
)

// FuncExecutor adapts a typed handler function into an Executor. The
// request arrives as *T (transport-materialized) or T (direct callers);
// both forms are accepted.
func FuncExecutor[T any](fn func(ctx context.Context, rc *RequestContext, req *T) (any, error)) Executor {
	return func(ctx context.Context, rc *RequestContext, _ any, req any) (any, error) {
		switch v := req.(type) {
		case *T:
			return fn(ctx, rc, v)
		case T:
			return fn(ctx, rc, &v)
		default:
			var want T
			return nil, fmt.Errorf("executor for %T received %T", want, req)
		}
	}
}

// MethodExecutor binds a named method on the factory-supplied instance,
// invoked reflectively. The method must have the shape
//
//	func (h *H) Name(ctx context.Context, req any-request-shape) (any, error)
//
// Panics raised inside the reflective call are converted to an
// InvocationError wrapping the cause; the pipeline unwraps it so the
// caller sees the handler's own failure.
func MethodExecutor(name string) Executor {
	return func(ctx context.Context, rc *RequestContext, instance any, req any) (resp any, err error) {
		if instance == nil {
			return nil, &InvocationError{Err: fmt.Errorf("no instance supplied for method %s", name)}
		}
		m := reflect.ValueOf(instance).MethodByName(name)
		if !m.IsValid() {
			return nil, &InvocationError{Err: fmt.Errorf("%T has no method %s", instance, name)}
		}
		mt := m.Type()
		if mt.NumIn() != 2 || mt.NumOut() != 2 {
			return nil, &InvocationError{Err: fmt.Errorf("%T.%s does not have shape (context.Context, request) (response, error)", instance, name)}
		}

		defer func() {
			if p := recover(); p != nil {
				if cause, ok := p.(error); ok {
					err = &InvocationError{Err: cause}
				} else {
					err = &InvocationError{Err: fmt.Errorf("%v", p)}
				}
			}
		}()

		rv := reflect.ValueOf(req)
		if rv.Kind() == reflect.Pointer && mt.In(1).Kind() != reflect.Pointer {
			rv = rv.Elem()
		}
		out := m.Call([]reflect.Value{reflect.ValueOf(ctx), rv})
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
		return out[0].Interface(), nil
	}
}

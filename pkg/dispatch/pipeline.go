// pkg/dispatch/pipeline.go
package dispatch

import (
	"context"
	"errors"
)

// InstanceFactory supplies and releases handler instances. Implemented by
// the host's DI container; the pipeline never constructs instances itself.
type InstanceFactory interface {
	New(handler string) (any, error)
	Release(instance any)
}

// FactoryFuncs adapts plain functions to InstanceFactory.
type FactoryFuncs struct {
	NewFunc     func(handler string) (any, error)
	ReleaseFunc func(instance any)
}

func (f FactoryFuncs) New(handler string) (any, error) {
	if f.NewFunc == nil {
		return nil, nil
	}
	return f.NewFunc(handler)
}

func (f FactoryFuncs) Release(instance any) {
	if f.ReleaseFunc != nil {
		f.ReleaseFunc(instance)
	}
}

// PreHook runs before the executor and may replace the request.
// PostHook runs after and may replace the response.
type (
	PreHook  func(rc *RequestContext, instance any, req any) (any, error)
	PostHook func(rc *RequestContext, instance any, resp any) (any, error)
)

// Pipeline orchestrates the lifecycle around a single dispatch: acquire
// instance, inject context, pre-hook, execute, post-hook, release. Release
// is guaranteed on every exit path, including panics, which re-raise after
// the instance is returned to the factory.
type Pipeline struct {
	factory InstanceFactory
	pre     PreHook
	post    PostHook
}

// NewPipeline builds a pipeline. Any argument may be nil; a nil factory
// means handlers execute without an instance.
func NewPipeline(factory InstanceFactory, pre PreHook, post PostHook) *Pipeline {
	if factory == nil {
		factory = FactoryFuncs{}
	}
	return &Pipeline{factory: factory, pre: pre, post: post}
}

// Run executes one dispatch through the full lifecycle.
func (p *Pipeline) Run(ctx context.Context, e *Entry, rc *RequestContext, req any) (any, error) {
	instance, err := p.factory.New(e.Handler)
	if err != nil {
		return nil, err
	}
	defer p.factory.Release(instance)

	if aware, ok := instance.(ContextAware); ok {
		aware.SetRequestContext(rc)
	}

	if p.pre != nil {
		if req, err = p.pre(rc, instance, req); err != nil {
			return nil, err
		}
	}

	resp, err := e.Exec(ctx, rc, instance, req)
	if err != nil {
		return nil, unwrapInvocation(err)
	}

	if p.post != nil {
		if resp, err = p.post(rc, instance, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// unwrapInvocation strips InvocationError layers so the caller receives the
// handler's own failure, not the invocation mechanism's wrapper.
func unwrapInvocation(err error) error {
	for {
		var ie *InvocationError
		if !errors.As(err, &ie) || ie.Err == nil {
			return err
		}
		err = ie.Err
	}
}

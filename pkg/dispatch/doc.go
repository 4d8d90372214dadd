// Package dispatch is the request-dispatch core: a one-to-one registry from
// request type to handler executor, an execution pipeline managing handler
// instance lifecycle around each call, and a controller façade combining
// them with route resolution and access policy checks.
//
// The package splits process life into two phases. During the build phase a
// single goroutine registers descriptors (usually via Registry.Load) and
// then calls Freeze. During the serve phase any number of goroutines call
// Controller.Execute concurrently; every shared structure is read-only by
// then, so no locking happens on the dispatch path.
package dispatch

// Package kit provides the transport-neutral endpoint plumbing shared by the
// HTTP and MCP surfaces: a uniform Endpoint signature, middleware chaining,
// and request-scoped context helpers.
package kit

import "context"

// Endpoint is the uniform shape of a service operation as seen by a
// transport: typed request in, typed response out, error.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behavior.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first argument is the outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

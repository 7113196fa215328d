// Copyright 2025 The Cascade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cascade

import "net/http"

// Endpoint is the final handler of a chain.
type Endpoint[S any] func(*Context[S]) error

// Next is a single-use continuation driving the remainder of the chain.
// Not calling it short-circuits the downstream; calling it a second time
// fails with a 500 Status.
type Next func() error

// Middleware wraps the remainder of the chain. It may mutate the context
// before and after awaiting next — pre-processing runs in registration
// order, post-processing in reverse:
//
//	func elapsed(c *cascade.Context[S], next cascade.Next) error {
//	    start := time.Now()
//	    err := next()
//	    c.Resp.SetHeader("x-elapsed", time.Since(start).String())
//	    return err
//	}
type Middleware[S any] func(*Context[S], Next) error

// Chain composes a middleware sequence and an endpoint into a single
// endpoint with the cascading call shape
//
//	m1(ctx, next1) where next1() = m2(ctx, next2) where ... nextN() = end(ctx)
//
// Errors returned by next propagate outward; an outer middleware may
// replace or swallow them.
func Chain[S any](middlewares []Middleware[S], end Endpoint[S]) Endpoint[S] {
	if len(middlewares) == 0 {
		return end
	}
	// The chain owns its own copy so later builder mutations cannot
	// change an already-composed handler.
	mws := make([]Middleware[S], len(middlewares))
	copy(mws, middlewares)

	return func(ctx *Context[S]) error {
		var run func(i int) error
		run = func(i int) error {
			if i == len(mws) {
				return end(ctx)
			}
			called := false
			next := func() error {
				if called {
					return NewStatus(http.StatusInternalServerError,
						"next called twice in one middleware", false)
				}
				called = true
				return run(i + 1)
			}
			return mws[i](ctx, next)
		}
		return run(0)
	}
}

// JoinAll composes middlewares into one middleware, preserving the
// cascading order. Useful for registering a prepared stack as a unit.
func JoinAll[S any](middlewares ...Middleware[S]) Middleware[S] {
	mws := make([]Middleware[S], len(middlewares))
	copy(mws, middlewares)

	return func(ctx *Context[S], next Next) error {
		var run func(i int) error
		run = func(i int) error {
			if i == len(mws) {
				return next()
			}
			called := false
			inner := func() error {
				if called {
					return NewStatus(http.StatusInternalServerError,
						"next called twice in one middleware", false)
				}
				called = true
				return run(i + 1)
			}
			return mws[i](ctx, inner)
		}
		return run(0)
	}
}

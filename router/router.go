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

package router

import "cascade.dev/cascade"

// Router is a builder of RouteTable. Endpoints are registered against
// relative paths; middleware gate every endpoint of the router, wrapped
// in at build time so registration order relative to Gate does not
// matter. Routers nest with Include, joining prefixes:
//
//	users := router.NewRouter[State]().
//	    On("/", router.Get(list).Post(create).Call).
//	    On("/:id", router.Get(read).Call)
//
//	table, err := router.NewRouter[State]().
//	    Gate(auth).
//	    Include("/user", users).
//	    Routes("/api")
type Router[S any] struct {
	middleware []cascade.Middleware[S]
	endpoints  []routeEntry[S]
}

type routeEntry[S any] struct {
	path     string
	endpoint cascade.Endpoint[S]
}

// NewRouter constructs an empty router.
func NewRouter[S any]() *Router[S] {
	return &Router[S]{}
}

// On registers an endpoint at path.
func (r *Router[S]) On(path string, endpoint cascade.Endpoint[S]) *Router[S] {
	r.endpoints = append(r.endpoints, routeEntry[S]{path: path, endpoint: endpoint})
	return r
}

// Gate appends a middleware to the router's chain. The chain wraps every
// endpoint of this router, whether registered before or after the Gate
// call.
func (r *Router[S]) Gate(mw cascade.Middleware[S]) *Router[S] {
	r.middleware = append(r.middleware, mw)
	return r
}

// Include absorbs each of sub's endpoints under prefix. The sub-router's
// own chain is applied first, then this router's chain wraps the result
// at build time.
func (r *Router[S]) Include(prefix string, sub *Router[S]) *Router[S] {
	for _, entry := range sub.endpoints {
		r.endpoints = append(r.endpoints, routeEntry[S]{
			path:     JoinPath(prefix, entry.path),
			endpoint: cascade.Chain(sub.middleware, entry.endpoint),
		})
	}
	return r
}

// Routes finalizes the router into a RouteTable: every endpoint is
// wrapped with the router's middleware chain and inserted under
// JoinPath(prefix, path).
func (r *Router[S]) Routes(prefix string) (*RouteTable[S], error) {
	table := NewRouteTable[S]()
	for _, entry := range r.endpoints {
		wrapped := cascade.Chain(r.middleware, entry.endpoint)
		if err := table.Insert(JoinPath(prefix, entry.path), wrapped); err != nil {
			return nil, err
		}
	}
	return table, nil
}

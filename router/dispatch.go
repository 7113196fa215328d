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

import (
	"fmt"
	"net/http"

	"cascade.dev/cascade"
)

// allMethods lists the nine canonical HTTP methods handled by
// dispatchers and guards.
var allMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodOptions,
	http.MethodDelete,
	http.MethodHead,
	http.MethodTrace,
	http.MethodConnect,
}

func methodNotAllowed(method string) error {
	return cascade.NewStatus(http.StatusMethodNotAllowed,
		fmt.Sprintf("Method %s not allowed", method), true)
}

// Dispatcher routes a request to one of several endpoints by HTTP
// method. Construct one with a method factory and chain further methods:
//
//	router.Get(read).Put(update).Delete(remove)
//
// A request with no endpoint for its method fails with 405.
type Dispatcher[S any] struct {
	endpoints map[string]cascade.Endpoint[S]
}

// NewDispatcher constructs an empty dispatcher; every method fails with
// 405 until endpoints are added.
func NewDispatcher[S any]() *Dispatcher[S] {
	return &Dispatcher[S]{endpoints: make(map[string]cascade.Endpoint[S])}
}

func (d *Dispatcher[S]) set(method string, endpoint cascade.Endpoint[S]) *Dispatcher[S] {
	d.endpoints[method] = endpoint
	return d
}

// Get adds or overrides the GET endpoint.
func (d *Dispatcher[S]) Get(e cascade.Endpoint[S]) *Dispatcher[S] { return d.set(http.MethodGet, e) }

// Post adds or overrides the POST endpoint.
func (d *Dispatcher[S]) Post(e cascade.Endpoint[S]) *Dispatcher[S] { return d.set(http.MethodPost, e) }

// Put adds or overrides the PUT endpoint.
func (d *Dispatcher[S]) Put(e cascade.Endpoint[S]) *Dispatcher[S] { return d.set(http.MethodPut, e) }

// Patch adds or overrides the PATCH endpoint.
func (d *Dispatcher[S]) Patch(e cascade.Endpoint[S]) *Dispatcher[S] {
	return d.set(http.MethodPatch, e)
}

// Options adds or overrides the OPTIONS endpoint.
func (d *Dispatcher[S]) Options(e cascade.Endpoint[S]) *Dispatcher[S] {
	return d.set(http.MethodOptions, e)
}

// Delete adds or overrides the DELETE endpoint.
func (d *Dispatcher[S]) Delete(e cascade.Endpoint[S]) *Dispatcher[S] {
	return d.set(http.MethodDelete, e)
}

// Head adds or overrides the HEAD endpoint.
func (d *Dispatcher[S]) Head(e cascade.Endpoint[S]) *Dispatcher[S] { return d.set(http.MethodHead, e) }

// Trace adds or overrides the TRACE endpoint.
func (d *Dispatcher[S]) Trace(e cascade.Endpoint[S]) *Dispatcher[S] {
	return d.set(http.MethodTrace, e)
}

// Connect adds or overrides the CONNECT endpoint.
func (d *Dispatcher[S]) Connect(e cascade.Endpoint[S]) *Dispatcher[S] {
	return d.set(http.MethodConnect, e)
}

// Call dispatches the context by request method.
func (d *Dispatcher[S]) Call(ctx *cascade.Context[S]) error {
	if endpoint, ok := d.endpoints[ctx.Method()]; ok {
		return endpoint(ctx)
	}
	return methodNotAllowed(ctx.Method())
}

// Get constructs a dispatcher with a GET endpoint.
func Get[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Get(e) }

// Post constructs a dispatcher with a POST endpoint.
func Post[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Post(e) }

// Put constructs a dispatcher with a PUT endpoint.
func Put[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Put(e) }

// Patch constructs a dispatcher with a PATCH endpoint.
func Patch[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Patch(e) }

// Options constructs a dispatcher with an OPTIONS endpoint.
func Options[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Options(e) }

// Delete constructs a dispatcher with a DELETE endpoint.
func Delete[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Delete(e) }

// Head constructs a dispatcher with a HEAD endpoint.
func Head[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Head(e) }

// Trace constructs a dispatcher with a TRACE endpoint.
func Trace[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Trace(e) }

// Connect constructs a dispatcher with a CONNECT endpoint.
func Connect[S any](e cascade.Endpoint[S]) *Dispatcher[S] { return NewDispatcher[S]().Connect(e) }

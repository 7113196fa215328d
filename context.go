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

import "net/url"

// Context carries the state of one request through the middleware chain:
// the request, the response under construction, a clone of the shared
// application state, the per-request scoped storage, and a handle to the
// application's executor.
//
// ⚠️ THREAD SAFETY: Context is NOT thread-safe. A Context is bound to a
// single request and must only be touched by the goroutine handling it.
// For work that outlives the handler, copy the data you need and hand it
// to Spawn or SpawnBlocking; do not share the Context itself.
//
// Example:
//
//	func handler(c *cascade.Context[State]) error {
//	    id := c.Req.URL.Query().Get("id")
//	    c.Spawn(func() { audit(id) }) // copied data only
//	    c.Resp.WriteString("ok")
//	    return nil
//	}
type Context[S any] struct {
	// Req is the inbound request.
	Req *Request

	// Resp is the response under construction.
	Resp *Response

	state   S
	exec    Executor
	storage storage
}

// NewContext constructs a context from a request and a state clone. It is
// primarily used internally by App and in tests.
func NewContext[S any](req *Request, state S, exec Executor) *Context[S] {
	if req == nil {
		req = NewRequest("GET", "/", nil)
	}
	return &Context[S]{
		Req:     req,
		Resp:    NewResponse(),
		state:   state,
		exec:    exec,
		storage: make(storage),
	}
}

// State returns a mutable reference to this request's state clone. Shared
// mutation across requests must go through synchronized containers inside
// S; the framework clones the value itself per request.
func (c *Context[S]) State() *S {
	return &c.state
}

// Method returns the request method.
func (c *Context[S]) Method() string {
	return c.Req.Method
}

// URL returns the request URI.
func (c *Context[S]) URL() *url.URL {
	return c.Req.URL
}

// Path returns the request URI path.
func (c *Context[S]) Path() string {
	return c.Req.URL.Path
}

// Proto returns the request protocol version.
func (c *Context[S]) Proto() string {
	return c.Req.Proto
}

// Status returns the response status code.
func (c *Context[S]) Status() int {
	return c.Resp.Status
}

// RemoteAddr returns the peer address of the underlying connection.
func (c *Context[S]) RemoteAddr() string {
	return c.Req.remoteAddr
}

// Header returns the first value of a request header. ok reports
// presence; a present but non-UTF-8 value yields a 400 Status.
func (c *Context[S]) Header(name string) (value string, ok bool, err error) {
	return c.Req.HeaderValue(name)
}

// StoreScoped stores a key-value pair in the given scope, returning the
// replaced variable if any. The scope is any comparable value,
// conventionally an unexported zero-size struct type owned by the
// extension, so two extensions never collide even on equal keys.
//
//	type authScope struct{}
//	c.StoreScoped(authScope{}, "user", user)
func (c *Context[S]) StoreScoped(scope any, name string, value any) *Variable {
	return c.storage.insert(scope, name, value)
}

// LoadScoped returns the variable stored under (scope, name), or nil.
func (c *Context[S]) LoadScoped(scope any, name string) *Variable {
	return c.storage.load(scope, name)
}

// Store stores a key-value pair in the public scope.
func (c *Context[S]) Store(name string, value any) *Variable {
	return c.StoreScoped(publicScope{}, name, value)
}

// Load returns the public-scope variable stored under name, or nil.
func (c *Context[S]) Load(name string) *Variable {
	return c.LoadScoped(publicScope{}, name)
}

// Exec returns the application executor handle.
func (c *Context[S]) Exec() Executor {
	return c.exec
}

// Spawn schedules a task on the application executor. The returned handle
// resolves when the task completes. The task must not touch this Context.
func (c *Context[S]) Spawn(task func()) *JoinHandle[struct{}] {
	return Go(c.exec, func() struct{} {
		task()
		return struct{}{}
	})
}

// SpawnBlocking schedules a blocking task on the executor's blocking
// pool, keeping it off the async workers. The returned handle resolves
// when the task completes.
func (c *Context[S]) SpawnBlocking(task func()) *JoinHandle[struct{}] {
	return GoBlocking(c.exec, func() struct{} {
		task()
		return struct{}{}
	})
}

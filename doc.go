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

// Package cascade is the core of an HTTP middleware framework built
// around an onion-shaped handler chain.
//
// An application is a typed state value, a middleware chain, and a final
// endpoint. Middleware receive the request context and a single-use Next
// continuation; work before next() runs in registration order, work after
// it runs in reverse:
//
//	type State struct{ Hits *atomic.Int64 }
//
//	app := cascade.New(State{Hits: new(atomic.Int64)}).
//	    Gate(func(c *cascade.Context[State], next cascade.Next) error {
//	        c.State().Hits.Add(1)
//	        return next()
//	    }).
//	    End(func(c *cascade.Context[State]) error {
//	        return c.WriteText("Hello, World")
//	    })
//
//	log.Fatal(app.ListenAndServe(":8080"))
//
// Errors are values: handlers return a *Status (or any error, which is
// wrapped as a 500) and the top-level status handler materializes it into
// the response. Routing lives in the router subpackage; ready-made
// middleware live under middleware/.
package cascade

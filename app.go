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

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// StatusHandler materializes an unhandled Status into the response. A
// returned error re-raises the status to the transport layer.
type StatusHandler[S any] func(*Context[S], *Status) error

// Option defines functional options for app configuration.
type Option[S any] func(*App[S])

// App owns the shared state, the executor, the composed middleware chain
// and the top-level status handler. Build it once at startup, then serve:
//
//	app := cascade.New(state).
//	    Gate(accesslog.New[State]()).
//	    End(table.Call)
//	http.ListenAndServe(":8080", app)
//
// App implements http.Handler and is safe for concurrent use once built;
// Gate and End are not safe to call while serving.
type App[S any] struct {
	state         S
	exec          Executor
	middleware    []Middleware[S]
	endpoint      Endpoint[S]
	statusHandler StatusHandler[S]
	logger        *slog.Logger

	enableH2C bool
	timeouts  *serverTimeouts
}

// New constructs an app with the default executor and the default status
// handler. The state value is cloned into every request context; interior
// mutation shared across requests must go through synchronized containers.
func New[S any](state S, opts ...Option[S]) *App[S] {
	app := &App[S]{
		state:         state,
		exec:          DefaultExecutor(),
		endpoint:      func(*Context[S]) error { return nil },
		statusHandler: DefaultStatusHandler[S],
		logger:        noopLogger,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithExec constructs an app with a custom executor.
func WithExec[S any](state S, exec Executor, opts ...Option[S]) *App[S] {
	return New(state, append([]Option[S]{WithExecutor[S](exec)}, opts...)...)
}

// WithExecutor overrides the app executor.
func WithExecutor[S any](exec Executor) Option[S] {
	return func(a *App[S]) {
		a.exec = exec
	}
}

// WithLogger installs the server logger. The core logs re-raised 5xx
// statuses and response body stream failures; per-request lines belong
// to the access-log middleware.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(a *App[S]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStatusHandler overrides the top-level status handler.
func WithStatusHandler[S any](handler StatusHandler[S]) Option[S] {
	return func(a *App[S]) {
		if handler != nil {
			a.statusHandler = handler
		}
	}
}

// WithH2C enables HTTP/2 cleartext support.
//
// ⚠️ Only use in development or behind a trusted load balancer.
func WithH2C[S any](enable bool) Option[S] {
	return func(a *App[S]) {
		a.enableH2C = enable
	}
}

// WithServerTimeouts configures the HTTP server timeouts used by Accept,
// ListenAndServe and ListenAndServeTLS.
func WithServerTimeouts[S any](readHeader, read, write, idle time.Duration) Option[S] {
	return func(a *App[S]) {
		a.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// Gate appends a middleware to the chain. Middleware run in registration
// order on the way in and in reverse on the way out.
func (a *App[S]) Gate(mw Middleware[S]) *App[S] {
	a.middleware = append(a.middleware, mw)
	return a
}

// End finalizes the chain with an endpoint.
func (a *App[S]) End(endpoint Endpoint[S]) *App[S] {
	a.endpoint = endpoint
	return a
}

// Handler returns the composed endpoint: the full middleware chain
// terminated by the endpoint registered with End.
func (a *App[S]) Handler() Endpoint[S] {
	return Chain(a.middleware, a.endpoint)
}

// DefaultStatusHandler is the default Status-to-response materialization:
// it sets the response status, re-raises server errors before writing
// anything (silencing their messages regardless of Expose), and writes
// the message as the body for exposed client-visible statuses.
func DefaultStatusHandler[S any](ctx *Context[S], status *Status) error {
	ctx.Resp.Status = status.Code
	if status.ServerError() {
		return status
	}
	if status.Expose {
		ctx.Resp.WriteString(status.Message)
	}
	return nil
}

// ServeHTTP implements http.Handler. For each request it clones the
// shared state into a fresh Context, runs the composed chain, hands any
// unhandled Status to the status handler, and streams the finalized
// response to the transport.
func (a *App[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hijacker, _ := w.(http.Hijacker)
	ctx := NewContext(fromHTTP(r, hijacker), a.state, a.exec)

	if err := a.Handler()(ctx); err != nil {
		status := AsStatus(err)
		if raised := a.statusHandler(ctx, status); raised != nil {
			// Connection-level failure: log it and suppress the body.
			a.logger.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status.Code,
				"message", status.Message,
			)
			ctx.Resp.Body = NewBody()
		}
	}

	a.writeResponse(w, ctx.Resp)
}

// writeResponse streams a finalized Response to the transport.
func (a *App[S]) writeResponse(w http.ResponseWriter, resp *Response) {
	header := w.Header()
	for name, values := range resp.Header {
		header[name] = values
	}
	w.WriteHeader(resp.Status)

	flusher, _ := w.(http.Flusher)
	for {
		chunk, err := resp.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			a.logger.Error("response body failed", "error", err)
			return
		}
		if _, err := w.Write(chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

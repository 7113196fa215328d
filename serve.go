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
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns production-safe defaults; they bound
// slow-client reads so a stalled peer cannot pin a connection forever.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// server builds the http.Server around the app, honoring the configured
// timeouts and the h2c option.
func (a *App[S]) server(addr string) *http.Server {
	handler := http.Handler(a)
	if a.enableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	timeouts := a.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}
}

// Accept consumes a listener and serves requests from its connections.
// Any accept source works: TCP, TLS-wrapped, or an in-memory test
// listener.
func (a *App[S]) Accept(listener net.Listener) error {
	return a.server("").Serve(listener)
}

// ListenAndServe binds addr and serves.
//
//	app := cascade.New(state).End(hello)
//	if err := app.ListenAndServe(":8080"); err != nil {
//	    log.Fatal(err)
//	}
func (a *App[S]) ListenAndServe(addr string) error {
	return a.server(addr).ListenAndServe()
}

// ListenAndServeTLS binds addr and serves over TLS. HTTP/2 is negotiated
// via ALPN.
func (a *App[S]) ListenAndServeTLS(addr, certFile, keyFile string) error {
	return a.server(addr).ListenAndServeTLS(certFile, keyFile)
}

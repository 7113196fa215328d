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

// Package requestid assigns a unique id to every request.
package requestid

import (
	"github.com/google/uuid"

	"cascade.dev/cascade"
)

// HeaderName is the header carrying the request id.
const HeaderName = "X-Request-Id"

// scope keys the storage namespace holding the request id.
type scope struct{}

// Option defines functional options for request-id configuration.
type Option func(*config)

type config struct {
	trustInbound bool
	generator    func() string
}

// WithTrustInbound reuses an inbound X-Request-Id instead of generating
// a fresh one. Default: false (always generate).
func WithTrustInbound(trust bool) Option {
	return func(cfg *config) {
		cfg.trustInbound = trust
	}
}

// WithGenerator overrides the id generator. Defaults to UUIDv4.
func WithGenerator(generator func() string) Option {
	return func(cfg *config) {
		if generator != nil {
			cfg.generator = generator
		}
	}
}

// New returns a middleware that stores a request id in its own scope and
// echoes it on the response.
//
//	app.Gate(requestid.New[State]())
func New[S any](opts ...Option) cascade.Middleware[S] {
	cfg := &config{generator: func() string { return uuid.NewString() }}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *cascade.Context[S], next cascade.Next) error {
		id := ""
		if cfg.trustInbound {
			if inbound, ok, _ := c.Req.HeaderValue(HeaderName); ok {
				id = inbound
			}
		}
		if id == "" {
			id = cfg.generator()
		}
		c.StoreScoped(scope{}, "id", id)
		if _, err := c.Resp.SetHeader(HeaderName, id); err != nil {
			return err
		}
		return next()
	}
}

// FromContext returns the request id assigned by New, or "" when the
// middleware is not installed.
func FromContext[S any](c *cascade.Context[S]) string {
	if v := c.LoadScoped(scope{}, "id"); v != nil {
		return v.String()
	}
	return ""
}

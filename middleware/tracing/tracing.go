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

// Package tracing provides an OpenTelemetry span-per-request middleware.
package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cascade.dev/cascade"
)

// tracerName identifies this instrumentation to the tracer provider.
const tracerName = "cascade.dev/cascade/middleware/tracing"

// Option defines functional options for tracing configuration.
type Option func(*config)

type config struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the tracer provider. Defaults to the global
// otel provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.provider = provider
		}
	}
}

// New returns a middleware that opens a server span around the
// downstream chain and records the outcome on it.
//
//	app.Gate(tracing.New[State]())
func New[S any](opts ...Option) cascade.Middleware[S] {
	cfg := &config{provider: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(cfg)
	}
	tracer := cfg.provider.Tracer(tracerName)

	return func(c *cascade.Context[S], next cascade.Next) error {
		_, span := tracer.Start(c.Req.Context(), c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
			),
		)
		defer span.End()

		err := next()

		status := c.Resp.Status
		if err != nil {
			status = cascade.AsStatus(err).Code
			span.RecordError(err)
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= 500 {
			message := http.StatusText(status)
			if err != nil {
				message = cascade.AsStatus(err).Message
			}
			span.SetStatus(codes.Error, message)
		}
		return err
	}
}

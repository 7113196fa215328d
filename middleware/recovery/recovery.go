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

// Package recovery provides a panic-recovery middleware.
package recovery

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"cascade.dev/cascade"
)

// Option defines functional options for recovery configuration.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	stackTrace bool
}

// WithLogger sets the logger receiving panic reports. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStackTrace enables or disables stack capture on panic.
// Default: enabled.
func WithStackTrace(enabled bool) Option {
	return func(cfg *config) {
		cfg.stackTrace = enabled
	}
}

// New returns a middleware that converts a panic anywhere downstream
// into a non-exposed 500 Status. Register it first so it covers the
// whole chain.
//
//	app.Gate(recovery.New[State]())
func New[S any](opts ...Option) cascade.Middleware[S] {
	cfg := &config{logger: slog.Default(), stackTrace: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *cascade.Context[S], next cascade.Next) (err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			attrs := []any{
				slog.Any("panic", rec),
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
			}
			if cfg.stackTrace {
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			}
			cfg.logger.Error("panic recovered", attrs...)
			err = cascade.NewStatus(http.StatusInternalServerError,
				fmt.Sprintf("panic recovered: %v", rec), false)
		}()
		return next()
	}
}

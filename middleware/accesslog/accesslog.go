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

// Package accesslog provides a structured request-logging middleware.
package accesslog

import (
	"log/slog"
	"time"

	"cascade.dev/cascade"
)

// Option defines functional options for access-log configuration.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	skipPaths map[string]bool
}

// WithLogger sets the destination logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSkipPaths configures paths that should not be logged. Useful for
// health and metrics endpoints that create log noise.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		if cfg.skipPaths == nil {
			cfg.skipPaths = make(map[string]bool)
		}
		for _, path := range paths {
			cfg.skipPaths[path] = true
		}
	}
}

// New returns a middleware that logs one line per request: method, path,
// status, duration and remote address. Statuses in the 5xx class log at
// error level, 4xx at warn, everything else at info.
//
//	app.Gate(accesslog.New[State](accesslog.WithSkipPaths("/healthz")))
func New[S any](opts ...Option) cascade.Middleware[S] {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *cascade.Context[S], next cascade.Next) error {
		if cfg.skipPaths[c.Path()] {
			return next()
		}

		start := time.Now()
		err := next()

		status := c.Resp.Status
		if err != nil {
			status = cascade.AsStatus(err).Code
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		cfg.logger.LogAttrs(c.Req.Context(), level, "request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", c.RemoteAddr()),
		)
		return err
	}
}

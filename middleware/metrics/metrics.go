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

// Package metrics provides a Prometheus instrumentation middleware.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cascade.dev/cascade"
)

// Option defines functional options for metrics configuration.
type Option func(*config)

type config struct {
	registerer prometheus.Registerer
	namespace  string
}

// WithRegisterer sets the registry receiving the collectors. Defaults to
// prometheus.DefaultRegisterer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(cfg *config) {
		if registerer != nil {
			cfg.registerer = registerer
		}
	}
}

// WithNamespace prefixes the metric names.
func WithNamespace(namespace string) Option {
	return func(cfg *config) {
		cfg.namespace = namespace
	}
}

// New returns a middleware recording a request counter and a duration
// histogram, both labeled by method and status.
//
//	app.Gate(metrics.New[State](metrics.WithNamespace("api")))
//
// The collectors are registered when New is called; constructing two
// instances against the same registry panics, as MustRegister does.
func New[S any](opts ...Option) cascade.Middleware[S] {
	cfg := &config{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(cfg)
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, by method and status.",
	}, []string{"method", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})

	cfg.registerer.MustRegister(requests, duration)

	return func(c *cascade.Context[S], next cascade.Next) error {
		start := time.Now()
		err := next()

		status := c.Resp.Status
		if err != nil {
			status = cascade.AsStatus(err).Code
		}
		labels := prometheus.Labels{
			"method": c.Method(),
			"status": strconv.Itoa(status),
		}
		requests.With(labels).Inc()
		duration.With(labels).Observe(time.Since(start).Seconds())
		return err
	}
}

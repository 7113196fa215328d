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

package tracing

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"cascade.dev/cascade"
)

func run(t *testing.T, endpoint cascade.Endpoint[struct{}]) error {
	t.Helper()
	mw := New[struct{}](WithTracerProvider(noop.NewTracerProvider()))
	ctx := cascade.NewContext(cascade.NewRequest(http.MethodGet, "/traced", nil),
		struct{}{}, cascade.DefaultExecutor())
	return cascade.Chain([]cascade.Middleware[struct{}]{mw}, endpoint)(ctx)
}

func TestRunsDownstream(t *testing.T) {
	t.Parallel()

	called := false
	err := run(t, func(c *cascade.Context[struct{}]) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestPropagatesError(t *testing.T) {
	t.Parallel()

	err := run(t, func(c *cascade.Context[struct{}]) error {
		return cascade.Throw(http.StatusTeapot, "tea")
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusTeapot, cascade.AsStatus(err).Code)
}

func TestServerErrorWithoutReturnedError(t *testing.T) {
	t.Parallel()

	// A handler may set a 5xx status without returning an error; the
	// span still records the failure without panicking.
	err := run(t, func(c *cascade.Context[struct{}]) error {
		c.Resp.Status = http.StatusInternalServerError
		return nil
	})
	assert.NoError(t, err)
}

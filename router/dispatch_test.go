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

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cascade.dev/cascade"
)

func methodContext(method string) *cascade.Context[struct{}] {
	req := cascade.NewRequest(method, "/", nil)
	return cascade.NewContext(req, struct{}{}, cascade.DefaultExecutor())
}

func TestDispatcherRoutesByMethod(t *testing.T) {
	t.Parallel()

	var hit string
	d := Get(func(c *cascade.Context[struct{}]) error {
		hit = "get"
		return nil
	}).Post(func(c *cascade.Context[struct{}]) error {
		hit = "post"
		return nil
	})

	require.NoError(t, d.Call(methodContext(http.MethodGet)))
	assert.Equal(t, "get", hit)

	require.NoError(t, d.Call(methodContext(http.MethodPost)))
	assert.Equal(t, "post", hit)
}

func TestDispatcherMethodNotAllowed(t *testing.T) {
	t.Parallel()

	d := Get(func(c *cascade.Context[struct{}]) error { return nil })

	err := d.Call(methodContext(http.MethodDelete))
	require.Error(t, err)

	status := cascade.AsStatus(err)
	assert.Equal(t, http.StatusMethodNotAllowed, status.Code)
	assert.Equal(t, "Method DELETE not allowed", status.Message)
	assert.True(t, status.Expose)
}

func TestDispatcherOverride(t *testing.T) {
	t.Parallel()

	var hit string
	d := Get(func(c *cascade.Context[struct{}]) error {
		hit = "first"
		return nil
	}).Get(func(c *cascade.Context[struct{}]) error {
		hit = "second"
		return nil
	})

	require.NoError(t, d.Call(methodContext(http.MethodGet)))
	assert.Equal(t, "second", hit)
}

func TestDispatcherAllFactories(t *testing.T) {
	t.Parallel()

	noop := func(c *cascade.Context[struct{}]) error { return nil }
	dispatchers := map[string]*Dispatcher[struct{}]{
		http.MethodGet:     Get(noop),
		http.MethodPost:    Post(noop),
		http.MethodPut:     Put(noop),
		http.MethodPatch:   Patch(noop),
		http.MethodOptions: Options(noop),
		http.MethodDelete:  Delete(noop),
		http.MethodHead:    Head(noop),
		http.MethodTrace:   Trace(noop),
		http.MethodConnect: Connect(noop),
	}
	for method, d := range dispatchers {
		assert.NoError(t, d.Call(methodContext(method)), "method %s", method)
	}
}

func TestGuardAllow(t *testing.T) {
	t.Parallel()

	guarded := Allow([]string{http.MethodGet}, func(c *cascade.Context[struct{}]) error {
		return c.WriteText("ok")
	})

	require.NoError(t, guarded(methodContext(http.MethodGet)))

	for _, method := range []string{
		http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions,
		http.MethodDelete, http.MethodHead, http.MethodTrace, http.MethodConnect,
	} {
		err := guarded(methodContext(method))
		require.Error(t, err, "method %s", method)
		assert.Equal(t, http.StatusMethodNotAllowed, cascade.AsStatus(err).Code)
	}
}

func TestGuardDeny(t *testing.T) {
	t.Parallel()

	guarded := Deny([]string{http.MethodGet}, func(c *cascade.Context[struct{}]) error {
		return nil
	})

	err := guarded(methodContext(http.MethodGet))
	require.Error(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, cascade.AsStatus(err).Code)

	for _, method := range []string{
		http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions,
		http.MethodDelete, http.MethodHead, http.MethodTrace, http.MethodConnect,
	} {
		assert.NoError(t, guarded(methodContext(method)), "method %s", method)
	}
}

func TestGuardEndToEnd(t *testing.T) {
	t.Parallel()

	app := cascade.New(struct{}{}).End(
		Allow([]string{http.MethodGet}, func(c *cascade.Context[struct{}]) error {
			return c.WriteText("ok")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method POST not allowed", rec.Body.String())
}

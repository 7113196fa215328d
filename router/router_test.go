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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cascade.dev/cascade"
)

func TestRouterGateWrapsAllEndpoints(t *testing.T) {
	t.Parallel()

	var order []string
	gate := func(c *cascade.Context[struct{}], next cascade.Next) error {
		order = append(order, "gate")
		return next()
	}

	// The endpoint is registered before the gate; build-time wrapping
	// applies the gate anyway.
	table, err := NewRouter[struct{}]().
		On("/", func(c *cascade.Context[struct{}]) error {
			order = append(order, "end")
			return nil
		}).
		Gate(gate).
		Routes("/route")
	require.NoError(t, err)

	require.NoError(t, table.Call(tableContext("/route")))
	assert.Equal(t, []string{"gate", "end"}, order)
}

func TestRouterInclude(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) cascade.Middleware[struct{}] {
		return func(c *cascade.Context[struct{}], next cascade.Next) error {
			order = append(order, name)
			return next()
		}
	}

	inner := NewRouter[struct{}]().
		Gate(tag("inner")).
		On("/", func(c *cascade.Context[struct{}]) error {
			order = append(order, "end")
			return nil
		})

	table, err := NewRouter[struct{}]().
		Gate(tag("outer")).
		Include("/user", inner).
		Routes("/route")
	require.NoError(t, err)

	require.NoError(t, table.Call(tableContext("/route/user")))
	assert.Equal(t, []string{"outer", "inner", "end"}, order)
}

func TestRouterConflictThroughInclude(t *testing.T) {
	t.Parallel()

	noop := func(c *cascade.Context[struct{}]) error { return nil }
	evil := NewRouter[struct{}]().On("/endpoint", noop)

	_, err := NewRouter[struct{}]().
		On("/route/endpoint", noop).
		Include("/route", evil).
		Routes("/")

	var conflict *PathConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRouterPrefixJoin(t *testing.T) {
	t.Parallel()

	table, err := NewRouter[struct{}]().
		On("/:id", func(c *cascade.Context[struct{}]) error {
			id, err := MustParam(c, "id")
			if err != nil {
				return err
			}
			assert.Equal(t, "0", id.String())
			return nil
		}).
		Routes("/user")
	require.NoError(t, err)

	require.NoError(t, table.Call(tableContext("/user/0")))

	err = table.Call(tableContext("/0"))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, cascade.AsStatus(err).Code)
}

// crudUser is the payload of the RESTful round-trip test.
type crudUser struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"`
}

// crudState is shared across requests; all mutation goes through the
// mutex.
type crudState struct {
	mu    *sync.Mutex
	next  *uint64
	users map[uint64]crudUser
}

func newCRUDApp(t *testing.T) *cascade.App[crudState] {
	t.Helper()

	state := crudState{
		mu:    new(sync.Mutex),
		next:  new(uint64),
		users: make(map[uint64]crudUser),
	}

	create := func(c *cascade.Context[crudState]) error {
		var user crudUser
		if err := c.ReadJSON(&user); err != nil {
			return err
		}
		s := c.State()
		s.mu.Lock()
		id := *s.next
		*s.next++
		s.users[id] = user
		s.mu.Unlock()
		c.Resp.Status = http.StatusCreated
		return c.WriteJSON(map[string]uint64{"id": id})
	}

	read := func(c *cascade.Context[crudState]) error {
		v, err := MustParam(c, "id")
		if err != nil {
			return err
		}
		id, err := v.Uint64()
		if err != nil {
			return err
		}
		s := c.State()
		s.mu.Lock()
		user, ok := s.users[id]
		s.mu.Unlock()
		if !ok {
			return cascade.Throw(http.StatusNotFound)
		}
		return c.WriteJSON(user)
	}

	update := func(c *cascade.Context[crudState]) error {
		v, err := MustParam(c, "id")
		if err != nil {
			return err
		}
		id, err := v.Uint64()
		if err != nil {
			return err
		}
		var user crudUser
		if err := c.ReadJSON(&user); err != nil {
			return err
		}
		s := c.State()
		s.mu.Lock()
		prev, ok := s.users[id]
		if ok {
			s.users[id] = user
		}
		s.mu.Unlock()
		if !ok {
			return cascade.Throw(http.StatusNotFound)
		}
		// The previous value is returned so clients can diff.
		return c.WriteJSON(prev)
	}

	remove := func(c *cascade.Context[crudState]) error {
		v, err := MustParam(c, "id")
		if err != nil {
			return err
		}
		id, err := v.Uint64()
		if err != nil {
			return err
		}
		s := c.State()
		s.mu.Lock()
		prev, ok := s.users[id]
		if ok {
			delete(s.users, id)
		}
		s.mu.Unlock()
		if !ok {
			return cascade.Throw(http.StatusNotFound)
		}
		return c.WriteJSON(prev)
	}

	users := NewRouter[crudState]().
		On("/", Post(create).Call).
		On("/:id", Get(read).Put(update).Delete(remove).Call)

	table, err := NewRouter[crudState]().
		Include("/user", users).
		Routes("/api")
	require.NoError(t, err)

	return cascade.New(state).End(table.Call)
}

func crudRequest(app *cascade.App[crudState], method, target, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestRESTfulRoundTrip(t *testing.T) {
	t.Parallel()

	app := newCRUDApp(t)

	// Create.
	rec := crudRequest(app, http.MethodPost, "/api/user", `{"name":"Alice","age":20}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":0}`, rec.Body.String())

	// Read it back.
	rec = crudRequest(app, http.MethodGet, "/api/user/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Alice","age":20}`, rec.Body.String())

	// Update returns the previous value.
	rec = crudRequest(app, http.MethodPut, "/api/user/0", `{"name":"Bob","age":30}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Alice","age":20}`, rec.Body.String())

	// Read reflects the update.
	rec = crudRequest(app, http.MethodGet, "/api/user/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Bob","age":30}`, rec.Body.String())

	// Delete, then the user is gone.
	rec = crudRequest(app, http.MethodDelete, "/api/user/0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = crudRequest(app, http.MethodGet, "/api/user/0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var decoded map[string]any
	assert.Error(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "404 body should be empty")
}

func TestUnroutedRequest404(t *testing.T) {
	t.Parallel()

	table, err := NewRouter[struct{}]().Routes("/")
	require.NoError(t, err)
	app := cascade.New(struct{}{}).End(table.Call)

	rec := crudRequestStructless(app, http.MethodGet, "/anything")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func crudRequestStructless(app *cascade.App[struct{}], method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

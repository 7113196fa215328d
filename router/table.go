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
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"cascade.dev/cascade"
)

// RouteTable routes requests by URI path: a segment trie resolves static
// paths by exact match, and dynamic patterns are probed in insertion
// order. Static always wins over dynamic.
//
// Build a table with Router.Routes, then install it as the app endpoint:
//
//	table, err := router.NewRouter[State]().
//	    On("/user/:id", read).
//	    Routes("/api")
//	app.End(table.Call)
type RouteTable[S any] struct {
	static  *trieNode[S]
	dynamic []dynamicRoute[S]
}

type dynamicRoute[S any] struct {
	path     *Path
	endpoint cascade.Endpoint[S]
}

// trieNode is one path segment in the static route trie.
type trieNode[S any] struct {
	children map[string]*trieNode[S]
	endpoint cascade.Endpoint[S]
}

func (n *trieNode[S]) insert(segments []string, endpoint cascade.Endpoint[S]) bool {
	if len(segments) == 0 {
		if n.endpoint != nil {
			return false
		}
		n.endpoint = endpoint
		return true
	}
	if n.children == nil {
		n.children = make(map[string]*trieNode[S])
	}
	child, ok := n.children[segments[0]]
	if !ok {
		child = &trieNode[S]{}
		n.children[segments[0]] = child
	}
	return child.insert(segments[1:], endpoint)
}

func (n *trieNode[S]) lookup(segments []string) cascade.Endpoint[S] {
	if len(segments) == 0 {
		return n.endpoint
	}
	child, ok := n.children[segments[0]]
	if !ok {
		return nil
	}
	return child.lookup(segments[1:])
}

func splitSegments(normalized string) []string {
	trimmed := strings.Trim(normalized, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// NewRouteTable constructs an empty table. Requests against it fail with
// 404 until routes are inserted.
func NewRouteTable[S any]() *RouteTable[S] {
	return &RouteTable[S]{static: &trieNode[S]{}}
}

// Insert compiles raw and registers the endpoint. Static duplicates are
// a conflict; dynamic routes keep insertion order.
func (t *RouteTable[S]) Insert(raw string, endpoint cascade.Endpoint[S]) error {
	path, err := CompilePath(raw)
	if err != nil {
		return err
	}
	if path.Static() {
		if !t.static.insert(splitSegments(path.Raw), endpoint) {
			return &PathConflictError{Path: path.Raw}
		}
		return nil
	}
	t.dynamic = append(t.dynamic, dynamicRoute[S]{path: path, endpoint: endpoint})
	return nil
}

// routerScope keys the storage namespace holding captured path variables.
type routerScope struct{}

// Call routes the context to the matching endpoint. The request path is
// percent-decoded (non-UTF-8 → 400) and normalized; a static hit
// dispatches directly, otherwise dynamic patterns are probed in insertion
// order and the first match captures its variables into the context
// before dispatching. No match fails with 404.
func (t *RouteTable[S]) Call(ctx *cascade.Context[S]) error {
	rawPath := ctx.Req.URL.EscapedPath()
	decoded, err := url.PathUnescape(rawPath)
	if err != nil || !utf8.ValidString(decoded) {
		return cascade.NewStatus(http.StatusBadRequest,
			fmt.Sprintf("path `%s` is not a valid utf-8 string", rawPath), true)
	}
	path := StandardizePath(decoded)

	if endpoint := t.static.lookup(splitSegments(path)); endpoint != nil {
		return endpoint(ctx)
	}

	for _, route := range t.dynamic {
		match := route.path.Re.FindStringSubmatch(path)
		if match == nil {
			continue
		}
		for i, name := range route.path.Re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			ctx.StoreScoped(routerScope{}, name, match[i])
		}
		return route.endpoint(ctx)
	}

	return cascade.Throw(http.StatusNotFound)
}

// Param returns the captured router variable, or nil if the matched
// pattern does not bind it.
func Param[S any](ctx *cascade.Context[S], name string) *cascade.Variable {
	return ctx.LoadScoped(routerScope{}, name)
}

// MustParam returns the captured router variable. A missing variable
// means the endpoint is mounted on a pattern that does not bind it — a
// server bug, so it fails with 500.
func MustParam[S any](ctx *cascade.Context[S], name string) (*cascade.Variable, error) {
	if v := Param(ctx, name); v != nil {
		return v, nil
	}
	return nil, cascade.NewStatus(http.StatusInternalServerError,
		fmt.Sprintf("router variable `%s` is required", name), false)
}

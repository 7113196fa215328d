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
	"fmt"
	"net/http"
)

// queryScope keys the storage namespace holding parsed query variables.
type queryScope struct{}

// queryParsedScope marks a context whose query string is already parsed,
// kept apart from the variables so no query name can collide with it.
type queryParsedScope struct{}

func (c *Context[S]) parseQueries() {
	if c.LoadScoped(queryParsedScope{}, "done") != nil {
		return
	}
	for name, values := range c.Req.URL.Query() {
		if len(values) > 0 {
			c.StoreScoped(queryScope{}, name, values[0])
		}
	}
	c.StoreScoped(queryParsedScope{}, "done", true)
}

// Query returns the first value of a URL query variable, or nil if the
// variable is absent. The query string is parsed once per request.
//
//	if v := c.Query("page"); v != nil {
//	    page, err := v.Int()
//	    ...
//	}
func (c *Context[S]) Query(name string) *Variable {
	c.parseQueries()
	return c.LoadScoped(queryScope{}, name)
}

// MustQuery returns the first value of a required URL query variable. An
// absent variable yields a 400 Status.
func (c *Context[S]) MustQuery(name string) (*Variable, error) {
	if v := c.Query(name); v != nil {
		return v, nil
	}
	return nil, NewStatus(http.StatusBadRequest,
		fmt.Sprintf("query `%s` is required", name), true)
}

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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	req := NewRequest(http.MethodGet, "/search?name=alice&age=20", nil)
	c := NewContext(req, struct{}{}, DefaultExecutor())

	name := c.Query("name")
	require.NotNil(t, name)
	assert.Equal(t, "alice", name.String())

	age, err := c.Query("age").Int()
	require.NoError(t, err)
	assert.Equal(t, 20, age)

	assert.Nil(t, c.Query("missing"))
}

func TestMustQuery(t *testing.T) {
	t.Parallel()

	req := NewRequest(http.MethodGet, "/search", nil)
	c := NewContext(req, struct{}{}, DefaultExecutor())

	_, err := c.MustQuery("name")
	require.Error(t, err)

	status := AsStatus(err)
	assert.Equal(t, http.StatusBadRequest, status.Code)
	assert.Equal(t, "query `name` is required", status.Message)
	assert.True(t, status.Expose)
}

func TestQueryFirstValueWins(t *testing.T) {
	t.Parallel()

	req := NewRequest(http.MethodGet, "/?id=1&id=2", nil)
	c := NewContext(req, struct{}{}, DefaultExecutor())

	assert.Equal(t, "1", c.Query("id").String())
}

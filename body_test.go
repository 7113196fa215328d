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
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBody(t *testing.T, body *Body) string {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	return string(data)
}

func TestBodyEmpty(t *testing.T) {
	t.Parallel()

	body := NewBody()
	assert.Equal(t, "", readBody(t, body))

	_, err := body.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBodySingle(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteString("Hello, World")
	assert.Equal(t, "Hello, World", readBody(t, body))
}

func TestBodyOnceYieldsExactlyOnce(t *testing.T) {
	t.Parallel()

	body := Once([]byte("payload"))

	chunk, err := body.Next()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(chunk))

	// The body transitions to empty after the single yield.
	_, err = body.Next()
	assert.Equal(t, io.EOF, err)
	_, err = body.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBodyMultipleWrites(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteString("He").WriteString("llo, ").WriteString("World")
	assert.Equal(t, "Hello, World", readBody(t, body))
}

func TestBodyComposed(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteString("He").
		WriteString("llo, ").
		WriteReader(strings.NewReader("World")).
		WriteString(".")
	assert.Equal(t, "Hello, World.", readBody(t, body))
}

func TestBodyWriteStreamConcatenatesPriorContent(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteString("head ")
	body.WriteStream(&onceStream{data: []byte("tail")})
	assert.Equal(t, "head tail", readBody(t, body))
}

func TestBodyWriteChunkSize(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteChunk(strings.NewReader("abcdefghij"), 4)

	var chunks []string
	for {
		chunk, err := body.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		chunks = append(chunks, string(chunk))
	}
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestBodyStreamError(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteReader(failingReader{})

	_, err := body.Next()
	require.Error(t, err)
	assert.Equal(t, "broken pipe", err.Error())
}

func TestBodyReadAdapter(t *testing.T) {
	t.Parallel()

	body := NewBody()
	body.WriteString("stream me")

	buf := make([]byte, 3)
	n, err := body.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "str", string(buf[:n]))

	rest, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "eam me", string(rest))
}

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

import "io"

// DefaultChunkSize is the chunk size used when adapting a byte reader to a
// stream without an explicit size.
const DefaultChunkSize = 4096

// Stream is a finite sequence of byte chunks. Next returns the next chunk
// or io.EOF once the stream is exhausted; any other error is an I/O failure
// of the underlying source. Streams are not restartable.
type Stream interface {
	Next() ([]byte, error)
}

type bodyKind uint8

const (
	bodyEmpty bodyKind = iota
	bodyOnce
	bodyStream
)

// Body is a composable message body with three shapes: empty, a single
// in-memory buffer, or a stream of chunks. Writes compose in order and
// upgrade the shape as needed: writing bytes to an empty body makes it a
// single buffer; any further write converts it to a stream with the
// existing content prepended.
//
//	body := cascade.NewBody()
//	body.Write([]byte("He")).Write([]byte("llo, ")).WriteReader(file)
//
// Body implements Stream for chunk iteration and io.Reader for draining.
// Iterating a single-buffer body yields its buffer exactly once, after
// which the body is empty.
type Body struct {
	kind     bodyKind
	once     []byte
	segments []Stream
	leftover []byte // partially consumed chunk held by Read
}

// NewBody constructs an empty body.
func NewBody() *Body {
	return &Body{}
}

// Once constructs a body holding a single in-memory buffer.
func Once(data []byte) *Body {
	return &Body{kind: bodyOnce, once: data}
}

// Write appends bytes to the body.
func (b *Body) Write(data []byte) *Body {
	switch b.kind {
	case bodyEmpty:
		b.kind = bodyOnce
		b.once = data
	default:
		b.WriteStream(&onceStream{data: data})
	}
	return b
}

// WriteString appends a string to the body.
func (b *Body) WriteString(s string) *Body {
	return b.Write([]byte(s))
}

// WriteStream appends a stream to the body, concatenating any prior
// content first.
func (b *Body) WriteStream(stream Stream) *Body {
	switch b.kind {
	case bodyEmpty:
		b.kind = bodyStream
		b.segments = append(b.segments, stream)
	case bodyOnce:
		b.kind = bodyStream
		b.segments = append(b.segments, &onceStream{data: b.once}, stream)
		b.once = nil
	case bodyStream:
		b.segments = append(b.segments, stream)
	}
	return b
}

// WriteReader appends a byte reader adapted to a stream of
// DefaultChunkSize chunks.
func (b *Body) WriteReader(reader io.Reader) *Body {
	return b.WriteChunk(reader, DefaultChunkSize)
}

// WriteChunk appends a byte reader adapted to a stream of size-byte
// chunks. The last chunk may be smaller; a zero-byte read ends the stream.
func (b *Body) WriteChunk(reader io.Reader, size int) *Body {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return b.WriteStream(&readerStream{reader: reader, size: size})
}

// Next implements Stream. A single-buffer body yields its buffer once and
// becomes empty; a stream body drains its segments in write order.
func (b *Body) Next() ([]byte, error) {
	switch b.kind {
	case bodyEmpty:
		return nil, io.EOF
	case bodyOnce:
		data := b.once
		b.kind = bodyEmpty
		b.once = nil
		return data, nil
	default:
		for len(b.segments) > 0 {
			chunk, err := b.segments[0].Next()
			if err == io.EOF {
				b.segments = b.segments[1:]
				continue
			}
			if err != nil {
				return nil, err
			}
			return chunk, nil
		}
		b.kind = bodyEmpty
		return nil, io.EOF
	}
}

// Read implements io.Reader over the chunk stream.
func (b *Body) Read(p []byte) (int, error) {
	for len(b.leftover) == 0 {
		chunk, err := b.Next()
		if err != nil {
			return 0, err
		}
		b.leftover = chunk
	}
	n := copy(p, b.leftover)
	b.leftover = b.leftover[n:]
	return n, nil
}

// onceStream yields a single chunk then ends.
type onceStream struct {
	data []byte
	done bool
}

func (s *onceStream) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.data, nil
}

// readerStream adapts an io.Reader to a chunk stream.
type readerStream struct {
	reader io.Reader
	size   int
	done   bool
}

func (s *readerStream) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	chunk := make([]byte, s.size)
	n, err := s.reader.Read(chunk)
	if n > 0 {
		if err == io.EOF {
			s.done = true
		}
		return chunk[:n], nil
	}
	s.done = true
	if err != nil && err != io.EOF {
		return nil, err
	}
	return nil, io.EOF
}

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
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Request is the inbound HTTP message.
//
// The body is a lazy byte stream: it is consumed by Stream or Reader, each
// of which takes ownership of the remaining bytes.
type Request struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string

	// URL is the parsed request URI.
	URL *url.URL

	// Proto is the protocol version, e.g. "HTTP/1.1".
	Proto string

	// Header holds the request headers.
	Header http.Header

	ctx        context.Context
	body       io.Reader
	remoteAddr string
	upgrade    *Upgraded
}

// NewRequest constructs a Request from its parts. It is mostly useful for
// tests; the server builds requests from the transport.
func NewRequest(method, rawURL string, body io.Reader) *Request {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{Path: rawURL}
	}
	if body == nil {
		body = strings.NewReader("")
	}
	return &Request{
		Method: method,
		URL:    u,
		Proto:  "HTTP/1.1",
		Header: make(http.Header),
		ctx:    context.Background(),
		body:   body,
	}
}

// fromHTTP wraps an inbound net/http request. The hijack handle, when the
// transport supports it, backs protocol upgrades.
func fromHTTP(r *http.Request, hijacker http.Hijacker) *Request {
	req := &Request{
		Method:     r.Method,
		URL:        r.URL,
		Proto:      r.Proto,
		Header:     r.Header,
		ctx:        r.Context(),
		body:       r.Body,
		remoteAddr: r.RemoteAddr,
	}
	if hijacker != nil {
		req.upgrade = &Upgraded{hijack: hijacker.Hijack}
	}
	return req
}

// Context returns the request-scoped context. It is canceled when the
// client goes away or the server shuts the request down.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Stream consumes the request body into a stream of byte chunks.
func (r *Request) Stream() Stream {
	body := r.body
	r.body = nil
	if body == nil {
		body = strings.NewReader("")
	}
	return &readerStream{reader: body, size: DefaultChunkSize}
}

// Reader consumes the request body into a sequential byte reader.
func (r *Request) Reader() io.Reader {
	body := r.body
	r.body = nil
	if body == nil {
		body = strings.NewReader("")
	}
	return body
}

// OnUpgrade returns the handle to the post-handshake connection. The
// handle is retained exactly once; a second call fails with 500.
func (r *Request) OnUpgrade() (*Upgraded, error) {
	if r.upgrade == nil {
		return nil, NewStatus(http.StatusInternalServerError,
			"each request can only be upgraded once", false)
	}
	upgraded := r.upgrade
	r.upgrade = nil
	return upgraded, nil
}

// Upgraded is the handle to a connection that left the HTTP protocol.
// Taking over the connection detaches it from the server; the caller
// becomes responsible for closing it.
type Upgraded struct {
	hijack func() (net.Conn, *bufio.ReadWriter, error)
}

// TakeOver yields the raw connection and its buffered reader/writer.
func (u *Upgraded) TakeOver() (net.Conn, *bufio.ReadWriter, error) {
	return u.hijack()
}

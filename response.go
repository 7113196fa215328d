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

import "net/http"

// Response is the outbound HTTP message. It embeds Body, so all body
// composition methods are available directly:
//
//	c.Resp.WriteString("Hello, World")
//	c.Resp.WriteReader(file)
//
// The response stays mutable until it is handed to the transport.
type Response struct {
	// Status is the HTTP status code. Defaults to 200.
	Status int

	// Header holds the response headers.
	Header http.Header

	*Body
}

// NewResponse constructs a response with status 200 and an empty body.
func NewResponse() *Response {
	return &Response{
		Status: http.StatusOK,
		Header: make(http.Header),
		Body:   NewBody(),
	}
}

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
	"fmt"
	"net/http"
)

// Status is the unified fail value of the request pipeline. It carries an
// HTTP status code, a message, and a flag deciding whether the message is
// safe to show to clients.
//
// Status implements error, so endpoints and middleware surface it through
// the ordinary error return:
//
//	func login(c *cascade.Context[State]) error {
//	    if !authenticated(c) {
//	        return cascade.Throw(http.StatusUnauthorized, "who are you?")
//	    }
//	    return nil
//	}
//
// A Status with a 4xx code represents a client error; 5xx represents a
// server error. Any non-Status error escaping a handler is wrapped by
// AsStatus as a 500 with Expose=false.
type Status struct {
	// Code is the HTTP status code written to the response when the
	// Status reaches the top-level status handler.
	Code int

	// Message is written as the response body when Expose is true.
	// When Expose is false the message is dropped from the response but
	// may still be logged.
	Message string

	// Expose reports whether Message is safe to show to clients.
	Expose bool
}

// NewStatus constructs a Status from a code, message and expose flag.
func NewStatus(code int, message string, expose bool) *Status {
	return &Status{Code: code, Message: message, Expose: expose}
}

// Throw constructs a client-visible Status. The message is optional and
// defaults to ""; Expose defaults to true. Use NewStatus when the message
// must stay server-side.
//
//	return cascade.Throw(http.StatusNotFound)
//	return cascade.Throw(http.StatusBadRequest, "malformed id")
func Throw(code int, message ...string) *Status {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	return &Status{Code: code, Message: msg, Expose: true}
}

// Throwf is Throw with a formatted message.
func Throwf(code int, format string, args ...any) *Status {
	return &Status{Code: code, Message: fmt.Sprintf(format, args...), Expose: true}
}

// AsStatus coerces an error into a Status. A *Status anywhere in the chain
// is returned as-is; every other error becomes
// {500, err.Error(), Expose: false}.
func AsStatus(err error) *Status {
	var status *Status
	if errors.As(err, &status) {
		return status
	}
	return &Status{Code: http.StatusInternalServerError, Message: err.Error(), Expose: false}
}

// Error implements the error interface.
func (s *Status) Error() string {
	return fmt.Sprintf("%d %s: %s", s.Code, http.StatusText(s.Code), s.Message)
}

// ServerError reports whether the status is in the 5xx class. Server
// errors are re-raised by the default status handler so the transport
// layer can log them.
func (s *Status) ServerError() bool {
	return s.Code/100 == 5
}

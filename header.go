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
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
)

// Friendly header access. Raw http.Header is always available on Request
// and Response; these wrappers convert the usual failure modes into Status
// values so handlers can propagate them with a bare return. Failures on
// request headers are the client's fault (400); failures on response
// headers are ours (500).

func headerValue(h http.Header, code int, name string) (string, bool, error) {
	values, ok := h[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false, nil
	}
	value := values[0]
	if !utf8.ValidString(value) {
		return "", true, NewStatus(code,
			fmt.Sprintf("%q is not a valid string", value), true)
	}
	return value, true, nil
}

func mustHeaderValue(h http.Header, code int, name string) (string, error) {
	value, ok, err := headerValue(h, code, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", NewStatus(code, fmt.Sprintf("header `%s` is required", name), true)
	}
	return value, nil
}

func headerValues(h http.Header, code int, name string) ([]string, error) {
	values := h.Values(name)
	for _, value := range values {
		if !utf8.ValidString(value) {
			return nil, NewStatus(code,
				fmt.Sprintf("%q is not a valid string", value), true)
		}
	}
	return values, nil
}

func setHeaderValue(h http.Header, name, value string) (string, error) {
	if !httpguts.ValidHeaderFieldValue(value) {
		return "", NewStatus(http.StatusInternalServerError,
			fmt.Sprintf("%s is not a valid header value", value), false)
	}
	prev := h.Get(name)
	h.Set(name, value)
	return prev, nil
}

func addHeaderValue(h http.Header, name, value string) error {
	if !httpguts.ValidHeaderFieldValue(value) {
		return NewStatus(http.StatusInternalServerError,
			fmt.Sprintf("%s is not a valid header value", value), false)
	}
	h.Add(name, value)
	return nil
}

// HeaderValue returns the first value of a request header. ok reports
// presence; a present but non-UTF-8 value yields a 400 Status.
func (r *Request) HeaderValue(name string) (value string, ok bool, err error) {
	return headerValue(r.Header, http.StatusBadRequest, name)
}

// MustHeader returns the first value of a required request header. An
// absent header yields a 400 Status.
func (r *Request) MustHeader(name string) (string, error) {
	return mustHeaderValue(r.Header, http.StatusBadRequest, name)
}

// HeaderValues aggregates all values of a multi-valued request header.
func (r *Request) HeaderValues(name string) ([]string, error) {
	return headerValues(r.Header, http.StatusBadRequest, name)
}

// HeaderValue returns the first value of a response header. ok reports
// presence; a present but non-UTF-8 value yields a 500 Status.
func (r *Response) HeaderValue(name string) (value string, ok bool, err error) {
	return headerValue(r.Header, http.StatusInternalServerError, name)
}

// MustHeader returns the first value of a required response header. An
// absent header yields a 500 Status.
func (r *Response) MustHeader(name string) (string, error) {
	return mustHeaderValue(r.Header, http.StatusInternalServerError, name)
}

// HeaderValues aggregates all values of a multi-valued response header.
func (r *Response) HeaderValues(name string) ([]string, error) {
	return headerValues(r.Header, http.StatusInternalServerError, name)
}

// SetHeader sets a response header, returning the replaced value if any.
// An invalid header value yields a 500 Status.
func (r *Response) SetHeader(name, value string) (string, error) {
	return setHeaderValue(r.Header, name, value)
}

// AddHeader appends a response header value. An invalid header value
// yields a 500 Status.
func (r *Response) AddHeader(name, value string) error {
	return addHeaderValue(r.Header, name, value)
}

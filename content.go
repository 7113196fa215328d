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
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for ReadJSON. Validation rules
// come from `validate` struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadJSON consumes the request body and decodes it into dst. A
// content-type other than application/json or text/json fails with 415
// (an absent content-type is accepted); a decode
// failure fails with 400. When dst points to a struct, its `validate`
// tags are enforced and violations fail with 400.
func (c *Context[S]) ReadJSON(dst any) error {
	if value, ok, _ := c.Req.HeaderValue("Content-Type"); ok {
		mediaType, _, err := mime.ParseMediaType(value)
		if err != nil || (mediaType != "application/json" && mediaType != "text/json") {
			return NewStatus(http.StatusUnsupportedMediaType,
				fmt.Sprintf("content type `%s` is not supported", value), true)
		}
	}

	data, err := io.ReadAll(c.Req.Reader())
	if err != nil {
		return AsStatus(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return NewStatus(http.StatusBadRequest, err.Error(), true)
	}

	if isStruct(dst) {
		if err := validate.Struct(dst); err != nil {
			return NewStatus(http.StatusBadRequest, err.Error(), true)
		}
	}
	return nil
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

// WriteJSON encodes v into the response body and sets the content type.
// An encode failure yields a 500 Status.
func (c *Context[S]) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return AsStatus(err)
	}
	if _, err := c.Resp.SetHeader("Content-Type", "application/json; charset=utf-8"); err != nil {
		return err
	}
	c.Resp.Write(data)
	return nil
}

// WriteText writes a plain-text response body and sets the content type.
func (c *Context[S]) WriteText(text string) error {
	if _, err := c.Resp.SetHeader("Content-Type", "text/plain; charset=utf-8"); err != nil {
		return err
	}
	c.Resp.WriteString(text)
	return nil
}

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
	"strconv"
)

// publicScope keys the storage namespace used by Context.Store and
// Context.Load.
type publicScope struct{}

// storage is the per-request scoped key/value store. Each scope value
// keys its own sub-map, so two extensions never collide even if they pick
// the same key. Scopes follow the context-key idiom: an unexported
// zero-size struct type owned by the extension.
type storage map[any]map[string]any

func (s storage) insert(scope any, name string, value any) *Variable {
	bucket, ok := s[scope]
	if !ok {
		bucket = make(map[string]any)
		s[scope] = bucket
	}
	var prev *Variable
	if old, ok := bucket[name]; ok {
		prev = &Variable{name: name, value: old}
	}
	bucket[name] = value
	return prev
}

func (s storage) load(scope any, name string) *Variable {
	bucket, ok := s[scope]
	if !ok {
		return nil
	}
	value, ok := bucket[name]
	if !ok {
		return nil
	}
	return &Variable{name: name, value: value}
}

// Variable is a named reference to a stored value. Values that behave as
// strings support the typed parse accessors; a parse failure becomes a
// 400 Status naming the variable and the expected type.
type Variable struct {
	name  string
	value any
}

// NewVariable constructs a variable from a name and value. Mostly useful
// for tests and extensions that produce variables outside the storage.
func NewVariable(name string, value any) *Variable {
	return &Variable{name: name, value: value}
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Value returns the stored value.
func (v *Variable) Value() any { return v.value }

// String returns the stored value as a string. Non-string values render
// through fmt.
func (v *Variable) String() string {
	if s, ok := v.value.(string); ok {
		return s
	}
	return fmt.Sprint(v.value)
}

func (v *Variable) parseErr(err error, want string) error {
	return NewStatus(http.StatusBadRequest,
		fmt.Sprintf("%s\ntype of variable `%s` should be %s", err, v.name, want), true)
}

// Int parses the variable as an int.
func (v *Variable) Int() (int, error) {
	n, err := strconv.Atoi(v.String())
	if err != nil {
		return 0, v.parseErr(err, "int")
	}
	return n, nil
}

// Int64 parses the variable as an int64.
func (v *Variable) Int64() (int64, error) {
	n, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return 0, v.parseErr(err, "int64")
	}
	return n, nil
}

// Uint64 parses the variable as a uint64.
func (v *Variable) Uint64() (uint64, error) {
	n, err := strconv.ParseUint(v.String(), 10, 64)
	if err != nil {
		return 0, v.parseErr(err, "uint64")
	}
	return n, nil
}

// Float64 parses the variable as a float64.
func (v *Variable) Float64() (float64, error) {
	n, err := strconv.ParseFloat(v.String(), 64)
	if err != nil {
		return 0, v.parseErr(err, "float64")
	}
	return n, nil
}

// Bool parses the variable as a bool.
func (v *Variable) Bool() (bool, error) {
	b, err := strconv.ParseBool(v.String())
	if err != nil {
		return false, v.parseErr(err, "bool")
	}
	return b, nil
}

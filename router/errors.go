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

package router

import "fmt"

// MissingVariableError reports a pattern containing an empty `:` or
// `*{}` placeholder.
type MissingVariableError struct {
	Path string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable name in path `%s`", e.Path)
}

// PathConflictError reports two static routes colliding on the same
// normalized path.
type PathConflictError struct {
	Path string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("conflict path: `%s`", e.Path)
}

// VariableConflictError reports the same variable name bound twice.
type VariableConflictError struct {
	Paths [2]string
	Var   string
}

func (e *VariableConflictError) Error() string {
	return fmt.Sprintf("conflict variable `%s`: between `%s` and `%s`",
		e.Var, e.Paths[0], e.Paths[1])
}

// InvalidPathError reports a path that refuses to compile.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path `%s`: %v", e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

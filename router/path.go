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

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// wildcardRe matches the pattern *{variable}.
	wildcardRe = regexp.MustCompile(`\*\{(\w*)\}`)

	// segmentRe matches the pattern /:variable/.
	segmentRe = regexp.MustCompile(`/:(\w*)/`)
)

// StandardizePath normalizes a raw path to the /path/ form: exactly one
// leading and one trailing slash.
//
//	StandardizePath("user/1")   // "/user/1/"
//	StandardizePath("/user/1")  // "/user/1/"
//	StandardizePath("user/1/")  // "/user/1/"
func StandardizePath(raw string) string {
	return "/" + strings.Trim(raw, "/") + "/"
}

// JoinPath trims and joins non-empty segments with a slash.
//
//	JoinPath("/api/", "user", "", ":id") // "api/user/:id"
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "/")
}

// Path is a compiled route pattern. A path without variables is static
// and matched by exact string equality after normalization; a path with
// `:name` or `*{name}` placeholders compiles to an anchored regexp with
// one named group per variable.
type Path struct {
	// Raw is the normalized pattern.
	Raw string

	// Vars holds the variable names, empty for static paths.
	Vars []string

	// Re is the anchored matcher, nil for static paths.
	Re *regexp.Regexp
}

// Static reports whether the path carries no variables.
func (p *Path) Static() bool {
	return p.Re == nil
}

// CompilePath parses a raw route pattern. Segment variables `:name`
// match a single path segment ([^/\s]+); wildcards `*{name}` match any
// non-whitespace run including slashes (\S+). Empty or duplicate
// variable names are rejected.
func CompilePath(raw string) (*Path, error) {
	path := StandardizePath(raw)

	wildcards := wildcardRe.FindAllStringSubmatch(path, -1)
	// Doubling the slashes lets the segment pattern catch consecutive
	// variables like /:year/:month/:day/.
	template := strings.ReplaceAll(path, "/", "//")
	segments := segmentRe.FindAllStringSubmatch(template, -1)

	if len(wildcards) == 0 && len(segments) == 0 {
		return &Path{Raw: path}, nil
	}

	pattern := regexp.QuoteMeta(path)
	seen := make(map[string]bool)
	vars := make([]string, 0, len(wildcards)+len(segments))
	addVar := func(name string) error {
		if name == "" {
			return &MissingVariableError{Path: path}
		}
		if seen[name] {
			return &VariableConflictError{Paths: [2]string{path, path}, Var: name}
		}
		seen[name] = true
		vars = append(vars, name)
		return nil
	}

	for _, match := range wildcards {
		name := match[1]
		if err := addVar(name); err != nil {
			return nil, err
		}
		pattern = strings.ReplaceAll(pattern,
			regexp.QuoteMeta(fmt.Sprintf("*{%s}", name)),
			fmt.Sprintf(`(?P<%s>\S+)`, name))
	}

	for _, match := range segments {
		name := match[1]
		if err := addVar(name); err != nil {
			return nil, err
		}
		// The trailing slash disambiguates variables sharing a prefix,
		// e.g. :id and :idx.
		pattern = strings.ReplaceAll(pattern,
			regexp.QuoteMeta(":"+name+"/"),
			fmt.Sprintf(`(?P<%s>[^\s/]+)/`, name))
	}

	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return nil, &InvalidPathError{Path: raw, Err: err}
	}
	return &Path{Raw: path, Vars: vars, Re: re}, nil
}

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

import "cascade.dev/cascade"

func methodSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, method := range methods {
		set[method] = true
	}
	return set
}

// Allow wraps an endpoint with a method allowlist. Requests with a
// method outside the list fail with 405.
//
//	app.End(router.Allow([]string{http.MethodGet}, hello))
func Allow[S any](methods []string, endpoint cascade.Endpoint[S]) cascade.Endpoint[S] {
	allowed := methodSet(methods)
	return func(ctx *cascade.Context[S]) error {
		if !allowed[ctx.Method()] {
			return methodNotAllowed(ctx.Method())
		}
		return endpoint(ctx)
	}
}

// Deny wraps an endpoint with a method denylist: every canonical method
// except the listed ones is admitted. Requests with a listed method fail
// with 405.
func Deny[S any](methods []string, endpoint cascade.Endpoint[S]) cascade.Endpoint[S] {
	denied := methodSet(methods)
	allowed := make([]string, 0, len(allMethods))
	for _, method := range allMethods {
		if !denied[method] {
			allowed = append(allowed, method)
		}
	}
	return Allow(allowed, endpoint)
}

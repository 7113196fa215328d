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

// Package timeout bounds the time a request may spend in the downstream
// chain.
package timeout

import (
	"net/http"
	"time"

	"cascade.dev/cascade"
)

// New returns a middleware that races the downstream chain against a
// timer and fails with 504 when the timer wins.
//
// ⚠️ On timeout the downstream chain keeps running on its goroutine;
// it must not touch the response after its deadline. Prefer deadlines
// inside handlers for work that can observe cancellation.
//
//	app.Gate(timeout.New[State](2 * time.Second))
func New[S any](limit time.Duration) cascade.Middleware[S] {
	return func(c *cascade.Context[S], next cascade.Next) error {
		done := make(chan error, 1)
		go func() {
			done <- next()
		}()

		timer := time.NewTimer(limit)
		defer timer.Stop()

		select {
		case err := <-done:
			return err
		case <-timer.C:
			return cascade.NewStatus(http.StatusGatewayTimeout,
				"request timed out", true)
		}
	}
}

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

// Package router provides URI routing for cascade applications: a
// RouteTable endpoint with static-trie plus ordered dynamic patterns, a
// nesting Router builder, per-method Dispatchers, and method Guards.
//
//	users := router.NewRouter[State]().
//	    On("/", router.Post(create).Call).
//	    On("/:id", router.Get(read).Put(update).Delete(remove).Call)
//
//	table, err := router.NewRouter[State]().
//	    Include("/user", users).
//	    Routes("/api")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app := cascade.New(state).End(table.Call)
//
// Captured path variables are read back with router.Param and
// router.MustParam:
//
//	id, err := router.MustParam(c, "id")
package router

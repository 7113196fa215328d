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
	"context"
	"runtime"
)

// Spawn is the executor constraint. Spawn schedules an asynchronous task;
// SpawnBlocking schedules a task expected to block, on capacity distinct
// from the async workers so blocking work cannot starve request handling.
type Spawn interface {
	Spawn(task func())
	SpawnBlocking(task func())
}

// Executor is the process-wide spawn handle configured per application
// and carried by every Context. The zero value falls back to the default
// goroutine executor.
type Executor struct {
	impl Spawn
}

// NewExecutor wraps a Spawn implementation.
func NewExecutor(impl Spawn) Executor {
	return Executor{impl: impl}
}

func (e Executor) spawner() Spawn {
	if e.impl == nil {
		return defaultExecutor
	}
	return e.impl
}

// Spawn schedules a task.
func (e Executor) Spawn(task func()) {
	e.spawner().Spawn(task)
}

// SpawnBlocking schedules a blocking task.
func (e Executor) SpawnBlocking(task func()) {
	e.spawner().SpawnBlocking(task)
}

// JoinHandle resolves to the output of a spawned task.
type JoinHandle[T any] struct {
	out chan T
}

// Wait blocks until the task completes or ctx is done.
func (h *JoinHandle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case out := <-h.out:
		return out, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Join blocks until the task completes.
func (h *JoinHandle[T]) Join() T {
	return <-h.out
}

// Go schedules a task on the executor and returns a handle to its output.
func Go[T any](e Executor, task func() T) *JoinHandle[T] {
	handle := &JoinHandle[T]{out: make(chan T, 1)}
	e.Spawn(func() {
		handle.out <- task()
	})
	return handle
}

// GoBlocking schedules a blocking task on the executor and returns a
// handle to its output.
func GoBlocking[T any](e Executor, task func() T) *JoinHandle[T] {
	handle := &JoinHandle[T]{out: make(chan T, 1)}
	e.SpawnBlocking(func() {
		handle.out <- task()
	})
	return handle
}

// GoExecutor is the default executor: async tasks run on their own
// goroutines under the runtime's work-stealing scheduler, and blocking
// tasks run behind a semaphore bounding concurrent blocking work.
type GoExecutor struct {
	blocking chan struct{}
}

// NewGoExecutor constructs a GoExecutor with the given blocking-task
// limit. A limit <= 0 uses a default derived from GOMAXPROCS.
func NewGoExecutor(blockingLimit int) *GoExecutor {
	if blockingLimit <= 0 {
		blockingLimit = 4 * runtime.GOMAXPROCS(0)
	}
	return &GoExecutor{blocking: make(chan struct{}, blockingLimit)}
}

// Spawn implements Spawn.
func (e *GoExecutor) Spawn(task func()) {
	go task()
}

// SpawnBlocking implements Spawn.
func (e *GoExecutor) SpawnBlocking(task func()) {
	go func() {
		e.blocking <- struct{}{}
		defer func() { <-e.blocking }()
		task()
	}()
}

var defaultExecutor = NewGoExecutor(0)

// DefaultExecutor returns the process-wide default executor.
func DefaultExecutor() Executor {
	return NewExecutor(defaultExecutor)
}

/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package future

import (
	"context"
	"sync"
)

// Awaitable is the type-erased view of a Future. The actor manager relies on it
// to detect methods that return a deferred value and wait for that value before
// serializing it.
type Awaitable interface {
	// AwaitAny blocks until the value is available or the context is done.
	AwaitAny(ctx context.Context) (any, error)
}

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that value
// could not be made available.
//
// Example usage:
//
//	f := future.New(func() (int, error) {
//	    return compute(), nil
//	})
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	value, err := f.Await(ctx)
type Future[T any] interface {
	Awaitable
	// Await blocks until the Future is completed or context is canceled and
	// returns either a result or an error.
	Await(ctx context.Context) (T, error)
	// Done is closed once the Future is completed.
	Done() <-chan struct{}
}

// New creates a Future that executes the given task in its own goroutine.
// The Future is completed with the value returned by the task or failed with the error.
func New[T any](task func() (T, error)) Future[T] {
	f := newFuture[T]()
	go func() {
		f.complete(task())
	}()
	return f
}

// Completed returns a Future already holding the given value.
func Completed[T any](value T) Future[T] {
	f := newFuture[T]()
	f.complete(value, nil)
	return f
}

// Failed returns a Future already failed with the given error.
func Failed[T any](err error) Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

// future implements the Future interface.
type future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// Verify future satisfies the Future interface.
var _ Future[any] = (*future[any])(nil)

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// Await blocks until the Future is completed or context is canceled.
// Canceling the context does not affect the underlying task; a later Await
// still observes its result.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitAny implements Awaitable.
func (x *future[T]) AwaitAny(ctx context.Context) (any, error) {
	value, err := x.Await(ctx)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Done returns a channel closed on completion.
func (x *future[T]) Done() <-chan struct{} {
	return x.done
}

// complete sets the result exactly once.
func (x *future[T]) complete(value T, err error) {
	x.once.Do(func() {
		x.value = value
		x.err = err
		close(x.done)
	})
}

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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	t.Run("formatted sentinels", func(t *testing.T) {
		err := NewErrActorNotFound("counter", "a1")
		require.EqualError(t, err, "(actor=counter/a1) actor not found")
		assert.ErrorIs(t, err, ErrActorNotFound)

		err = NewErrNoSuchMethod("counter", "Increment")
		require.EqualError(t, err, "method=(Increment) on actor type=(counter) no such method")
		assert.ErrorIs(t, err, ErrNoSuchMethod)

		err = NewErrInvalidState("a1", "tick")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NotErrorIs(t, err, ErrActorNotFound)

		assert.ErrorIs(t, NewErrDuplicateState("k"), ErrDuplicateState)
		assert.ErrorIs(t, NewErrDuplicateCachedState("k"), ErrDuplicateCachedState)
		assert.ErrorIs(t, NewErrStateNotFound("k"), ErrStateNotFound)
		assert.ErrorIs(t, NewErrActorTypeNotRegistered("counter"), ErrActorTypeNotRegistered)
		assert.ErrorIs(t, NewErrInvalidDuration("1x"), ErrInvalidDuration)
	})

	t.Run("store failure keeps the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewErrStoreFailure(cause)
		assert.ErrorIs(t, err, ErrStoreFailure)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("invalid payload keeps the cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := NewErrInvalidPayload(cause)
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("panic error", func(t *testing.T) {
		err := errors.New("boom")
		panicErr := NewPanicError(err)
		require.EqualError(t, panicErr, "panic: boom")
		assert.ErrorIs(t, panicErr.Unwrap(), err)
	})
}

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

package errorschain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestChain(t *testing.T) {
	errTimers := errors.New("cancel timers")
	errHook := errors.New("deactivate hook")

	t.Run("empty chain", func(t *testing.T) {
		assert.NoError(t, New().Error())
	})

	t.Run("nil errors are ignored", func(t *testing.T) {
		chain := New(ReturnAll()).
			AddError(nil).
			AddErrors(nil, nil).
			AddErrorFn(func() error { return nil })
		assert.NoError(t, chain.Error())
	})

	t.Run("deferred steps run when the chain is evaluated", func(t *testing.T) {
		ran := false
		chain := New(ReturnFirst()).AddErrorFn(func() error {
			ran = true
			return nil
		})
		require.False(t, ran)
		require.NoError(t, chain.Error())
		assert.True(t, ran)
	})

	t.Run("return first skips the steps after a failure", func(t *testing.T) {
		var ran []string
		err := New(ReturnFirst()).
			AddErrorFn(func() error {
				ran = append(ran, "timers")
				return errTimers
			}).
			AddErrorFn(func() error {
				ran = append(ran, "hook")
				return errHook
			}).
			Error()

		assert.Same(t, errTimers, err)
		assert.Equal(t, []string{"timers"}, ran)
	})

	t.Run("return first runs the next step after a success", func(t *testing.T) {
		var ran []string
		err := New(ReturnFirst()).
			AddErrorFn(func() error {
				ran = append(ran, "timers")
				return nil
			}).
			AddErrorFn(func() error {
				ran = append(ran, "hook")
				return errHook
			}).
			Error()

		assert.Same(t, errHook, err)
		assert.Equal(t, []string{"timers", "hook"}, ran)
	})

	t.Run("return all runs every step and keeps every error", func(t *testing.T) {
		var ran []string
		chain := New(ReturnAll()).AddError(errTimers)
		for _, id := range []string{"a", "b", "c"} {
			chain.AddErrorFn(func() error {
				ran = append(ran, id)
				if id == "b" {
					return errHook
				}
				return nil
			})
		}

		err := chain.Error()
		require.Error(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ran)
		assert.ErrorIs(t, err, errTimers)
		assert.ErrorIs(t, err, errHook)
		assert.Equal(t, []error{errTimers, errHook}, multierr.Errors(err))
	})

	t.Run("errors keep insertion order", func(t *testing.T) {
		e1 := errors.New("err1")
		e2 := errors.New("err2")
		e3 := errors.New("err3")

		err := New(ReturnAll()).
			AddError(e1).
			AddErrorFn(func() error { return e2 }).
			AddErrors(nil, e3).
			Error()
		assert.EqualError(t, err, "err1; err2; err3")
	})
}

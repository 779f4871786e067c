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

package actor

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/actorhost/errors"
)

type base struct {
	NoopHooks
}

func (base) Greet(context.Context) (string, error) { return "base", nil }
func (base) Kind(context.Context) (string, error)  { return "base", nil }

type child struct {
	base
}

func (child) Greet(context.Context) (string, error) { return "child", nil }

func TestMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("descriptors", func(t *testing.T) {
		zero := Method0("Balance", (*account).Balance)
		assert.Equal(t, "Balance", zero.Name())
		assert.Zero(t, zero.Arity())
		assert.Nil(t, zero.ParamType())
		assert.Nil(t, zero.NewParam())
		assert.False(t, zero.Accepts(1))

		one := Method1("Deposit", (*account).Deposit)
		assert.Equal(t, 1, one.Arity())
		assert.Equal(t, reflect.TypeFor[*deposit](), one.ParamType())
		assert.IsType(t, new(*deposit), one.NewParam())
		assert.True(t, one.Accepts(&deposit{}))
		assert.False(t, one.Accepts(deposit{}))
	})

	t.Run("wrong receiver", func(t *testing.T) {
		method := Method0("Greet", base.Greet)
		_, err := method.Invoke(ctx, &account{})
		assert.ErrorIs(t, err, gerrors.ErrInvalidActorType)
	})

	t.Run("nil argument yields the zero value", func(t *testing.T) {
		var received *deposit = &deposit{Amount: 1}
		method := Action1("Set", func(_ base, _ context.Context, in *deposit) error {
			received = in
			return nil
		})
		_, err := method.Invoke(ctx, base{}, nil)
		require.NoError(t, err)
		assert.Nil(t, received)
	})

	t.Run("wrong argument type", func(t *testing.T) {
		method := Action1("Set", func(base, context.Context, int) error { return nil })
		_, err := method.Invoke(ctx, base{}, "one")
		assert.ErrorIs(t, err, gerrors.ErrInvalidPayload)
	})
}

func TestMethodTable(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewMethodTable(Method0("Greet", base.Greet), Method0("Greet", base.Kind))
		assert.ErrorIs(t, err, gerrors.ErrDuplicateMethod)

		_, err = NewMethodTable(Method0("", base.Greet))
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
	})

	t.Run("extend overrides deterministically", func(t *testing.T) {
		parent, err := NewMethodTable(
			Method0("Greet", func(c child, ctx context.Context) (string, error) { return c.base.Greet(ctx) }),
			Method0("Kind", func(c child, ctx context.Context) (string, error) { return c.Kind(ctx) }),
		)
		require.NoError(t, err)

		table, err := parent.Extend(Method0("Greet", child.Greet))
		require.NoError(t, err)
		assert.Equal(t, []string{"Greet", "Kind"}, table.Names())
		assert.Equal(t, 2, table.Len())

		greet, ok := table.Resolve("Greet")
		require.True(t, ok)
		result, err := greet.Invoke(ctx, child{})
		require.NoError(t, err)
		assert.Equal(t, "child", result)

		kind, ok := table.Resolve("Kind")
		require.True(t, ok)
		result, err = kind.Invoke(ctx, child{})
		require.NoError(t, err)
		assert.Equal(t, "base", result)

		greet, ok = parent.Resolve("Greet")
		require.True(t, ok)
		result, err = greet.Invoke(ctx, child{})
		require.NoError(t, err)
		assert.Equal(t, "base", result)

		_, ok = table.Resolve("Missing")
		assert.False(t, ok)
	})
}

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

package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

// ProviderContract runs the behaviour every state.Provider must honour
// against the given provider. The provider must start empty for the
// "Account" actor type.
func ProviderContract(t *testing.T, provider state.Provider) {
	t.Helper()
	ctx := context.Background()

	t.Run("load unknown state", func(t *testing.T) {
		value, found, err := provider.Load(ctx, "Account", "alice", "balance")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)

		exists, err := provider.Contains(ctx, "Account", "alice", "balance")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("apply upserts and deletes", func(t *testing.T) {
		require.NoError(t, provider.Apply(ctx, "Account", "alice", []state.Operation{
			state.NewUpsert("balance", []byte("100")),
			state.NewUpsert("owner", []byte(`"alice"`)),
		}))

		value, found, err := provider.Load(ctx, "Account", "alice", "balance")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []byte("100"), value)

		exists, err := provider.Contains(ctx, "Account", "alice", "owner")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, provider.Apply(ctx, "Account", "alice", []state.Operation{
			state.NewDelete("owner"),
			state.NewUpsert("balance", []byte("50")),
			state.NewDelete("unknown"),
		}))

		exists, err = provider.Contains(ctx, "Account", "alice", "owner")
		require.NoError(t, err)
		assert.False(t, exists)

		value, _, err = provider.Load(ctx, "Account", "alice", "balance")
		require.NoError(t, err)
		assert.Equal(t, []byte("50"), value)
	})

	t.Run("states are scoped to the actor", func(t *testing.T) {
		require.NoError(t, provider.Apply(ctx, "Account", "bob", []state.Operation{
			state.NewUpsert("balance", []byte("7")),
		}))

		value, _, err := provider.Load(ctx, "Account", "alice", "balance")
		require.NoError(t, err)
		assert.Equal(t, []byte("50"), value)

		value, _, err = provider.Load(ctx, "Account", "bob", "balance")
		require.NoError(t, err)
		assert.Equal(t, []byte("7"), value)
	})

	t.Run("invalid batch is rejected as a whole", func(t *testing.T) {
		err := provider.Apply(ctx, "Account", "carol", []state.Operation{
			state.NewUpsert("balance", []byte("1")),
			state.NewUpsert("", []byte("2")),
		})
		require.ErrorIs(t, err, gerrors.ErrInvalidArgument)

		exists, err := provider.Contains(ctx, "Account", "carol", "balance")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty batch", func(t *testing.T) {
		require.NoError(t, provider.Apply(ctx, "Account", "dave", nil))
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := provider.Apply(canceled, "Account", "erin", []state.Operation{state.NewUpsert("balance", []byte("1"))})
		require.Error(t, err)

		_, _, err = provider.Load(canceled, "Account", "erin", "balance")
		require.Error(t, err)
	})
}

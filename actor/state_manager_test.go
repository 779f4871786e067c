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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/actorhost/codec"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

func newTestStateManager(provider state.Provider) *StateManager {
	return NewStateManager("Account", "alice", provider, codec.NewJSON())
}

func TestStateManagerAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("with empty name", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		err := manager.Add(ctx, "", 1)
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
	})

	t.Run("twice on a fresh cache", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Add(ctx, "k", 1))
		err := manager.Add(ctx, "k", 2)
		assert.ErrorIs(t, err, gerrors.ErrDuplicateCachedState)
	})

	t.Run("when the store already holds the name", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte("1"))
		manager := newTestStateManager(provider)
		err := manager.Add(ctx, "k", 2)
		assert.ErrorIs(t, err, gerrors.ErrDuplicateState)
	})

	t.Run("add remove add", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Add(ctx, "k", "v"))
		require.NoError(t, manager.Remove(ctx, "k"))
		require.NoError(t, manager.Add(ctx, "k", "v2"))

		actual, err := GetState[string](ctx, manager, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", actual)
	})

	t.Run("after removing a stored state", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte(`"v"`))
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Remove(ctx, "k"))
		require.NoError(t, manager.Add(ctx, "k", "v2"))

		require.NoError(t, manager.Save(ctx))
		require.Len(t, provider.lastApply, 1)
		assert.Equal(t, state.Upsert, provider.lastApply[0].Operation)
		assert.Equal(t, []byte(`"v2"`), provider.lastApply[0].Request.Value)
	})

	t.Run("with store failure", func(t *testing.T) {
		provider := &failingProvider{err: errBoom}
		manager := newTestStateManager(provider)
		err := manager.Add(ctx, "k", 1)
		assert.ErrorIs(t, err, gerrors.ErrStoreFailure)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestStateManagerGet(t *testing.T) {
	ctx := context.Background()

	t.Run("with empty name", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		var value int
		assert.ErrorIs(t, manager.Get(ctx, "", &value), gerrors.ErrInvalidArgument)
	})

	t.Run("names containing the key separator are rejected", func(t *testing.T) {
		provider := newCountingProvider()
		// same store key as state y||z of alice
		provider.seed("Account", "alice||y", "z", []byte(`"from another actor"`))
		manager := newTestStateManager(provider)

		var value string
		assert.ErrorIs(t, manager.Get(ctx, "y||z", &value), gerrors.ErrInvalidArgument)
		assert.Empty(t, value)
		assert.ErrorIs(t, manager.Set(ctx, "y||z", "v"), gerrors.ErrInvalidArgument)
		assert.ErrorIs(t, manager.Add(ctx, "y||z", "v"), gerrors.ErrInvalidArgument)
		assert.ErrorIs(t, manager.Remove(ctx, "y||z"), gerrors.ErrInvalidArgument)
		assert.Zero(t, provider.calls())
	})

	t.Run("with absent state", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		_, err := GetState[int](ctx, manager, "k")
		assert.ErrorIs(t, err, gerrors.ErrStateNotFound)
	})

	t.Run("loads once then serves from cache", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte(`{"amount":5}`))
		manager := newTestStateManager(provider)

		first, err := GetState[deposit](ctx, manager, "k")
		require.NoError(t, err)
		assert.EqualValues(t, 5, first.Amount)

		second, err := GetState[*deposit](ctx, manager, "k")
		require.NoError(t, err)
		assert.EqualValues(t, 5, second.Amount)
		assert.Equal(t, 1, provider.loads)
		assert.Zero(t, manager.Pending())
	})

	t.Run("after remove", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte("1"))
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Remove(ctx, "k"))
		_, err := GetState[int](ctx, manager, "k")
		assert.ErrorIs(t, err, gerrors.ErrStateNotFound)
	})

	t.Run("with a non pointer target", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Set(ctx, "k", 1))
		var value int
		assert.ErrorIs(t, manager.Get(ctx, "k", value), gerrors.ErrInvalidArgument)
	})

	t.Run("converts cached values of another type", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Set(ctx, "k", map[string]int64{"amount": 7}))
		actual, err := GetState[deposit](ctx, manager, "k")
		require.NoError(t, err)
		assert.EqualValues(t, 7, actual.Amount)
	})

	t.Run("with load failure", func(t *testing.T) {
		provider := newCountingProvider()
		provider.loadErr = errBoom
		manager := newTestStateManager(provider)
		_, err := GetState[int](ctx, manager, "k")
		assert.ErrorIs(t, err, gerrors.ErrStoreFailure)
	})
}

func TestStateManagerSet(t *testing.T) {
	ctx := context.Background()

	t.Run("read your writes without store calls", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", "v1"))
		calls := provider.calls()
		require.NoError(t, manager.Set(ctx, "k", "v2"))
		assert.Equal(t, calls, provider.calls())

		actual, err := GetState[string](ctx, manager, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", actual)
		assert.Equal(t, calls, provider.calls())
	})

	t.Run("add then set stays an add", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Add(ctx, "k", 1))
		require.NoError(t, manager.Set(ctx, "k", 2))
		assert.Equal(t, StateChangeAdd, manager.cache["k"].kind)
	})

	t.Run("on a stored state is an update", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte("1"))
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", 2))
		assert.Equal(t, StateChangeUpdate, manager.cache["k"].kind)
	})

	t.Run("after remove is an update", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte("1"))
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Remove(ctx, "k"))
		require.NoError(t, manager.Set(ctx, "k", 2))
		assert.Equal(t, StateChangeUpdate, manager.cache["k"].kind)
	})

	t.Run("with empty name", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		assert.ErrorIs(t, manager.Set(ctx, "", 1), gerrors.ErrInvalidArgument)
	})
}

func TestStateManagerRemoveAndContains(t *testing.T) {
	ctx := context.Background()

	t.Run("remove of an absent state is a no-op", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		require.NoError(t, manager.Remove(ctx, "k"))
		assert.Empty(t, manager.cache)

		ok, err := manager.Contains(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove of a pending add drops it", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Add(ctx, "k", 1))
		require.NoError(t, manager.Remove(ctx, "k"))
		assert.Empty(t, manager.cache)

		require.NoError(t, manager.Save(ctx))
		assert.Zero(t, provider.applies)
	})

	t.Run("remove twice", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "k", []byte("1"))
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Remove(ctx, "k"))
		require.NoError(t, manager.Remove(ctx, "k"))
		assert.Equal(t, StateChangeRemove, manager.cache["k"].kind)
	})

	t.Run("contains follows the cache", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "stored", []byte("1"))
		manager := newTestStateManager(provider)

		ok, err := manager.Contains(ctx, "stored")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, manager.Set(ctx, "pending", 1))
		ok, err = manager.Contains(ctx, "pending")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, manager.Remove(ctx, "stored"))
		ok, err = manager.Contains(ctx, "stored")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("with empty name", func(t *testing.T) {
		manager := newTestStateManager(newCountingProvider())
		assert.ErrorIs(t, manager.Remove(ctx, ""), gerrors.ErrInvalidArgument)
		_, err := manager.Contains(ctx, "")
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
	})
}

func TestStateManagerSave(t *testing.T) {
	ctx := context.Background()

	t.Run("with empty cache", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Save(ctx))
		assert.Zero(t, provider.calls())
	})

	t.Run("submits a single transaction and folds the cache", func(t *testing.T) {
		provider := newCountingProvider()
		provider.seed("Account", "alice", "gone", []byte("1"))
		provider.seed("Account", "alice", "updated", []byte("1"))
		manager := newTestStateManager(provider)

		require.NoError(t, manager.Add(ctx, "added", "a"))
		require.NoError(t, manager.Set(ctx, "updated", "u"))
		require.NoError(t, manager.Remove(ctx, "gone"))
		require.NoError(t, manager.Save(ctx))

		assert.Equal(t, 1, provider.applies)
		assert.Equal(t, []state.Operation{
			state.NewUpsert("added", []byte(`"a"`)),
			state.NewDelete("gone"),
			state.NewUpsert("updated", []byte(`"u"`)),
		}, provider.lastApply)

		assert.Zero(t, manager.Pending())
		_, ok := manager.cache["gone"]
		assert.False(t, ok)

		calls := provider.calls()
		actual, err := GetState[string](ctx, manager, "added")
		require.NoError(t, err)
		assert.Equal(t, "a", actual)
		assert.Equal(t, calls, provider.calls())

		ok, err = manager.Contains(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, calls+1, provider.calls())
	})

	t.Run("second save after fold is a no-op", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", 1))
		require.NoError(t, manager.Save(ctx))
		require.NoError(t, manager.Save(ctx))
		assert.Equal(t, 1, provider.applies)
	})

	t.Run("failure leaves the cache untouched", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", 1))

		provider.applyErr = errBoom
		err := manager.Save(ctx)
		require.ErrorIs(t, err, gerrors.ErrStoreFailure)
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, manager.Pending())

		provider.applyErr = nil
		require.NoError(t, manager.Save(ctx))
		assert.Equal(t, []state.Operation{state.NewUpsert("k", []byte("1"))}, provider.lastApply)
		assert.Zero(t, manager.Pending())
	})

	t.Run("with a value that cannot be encoded", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", make(chan int)))
		err := manager.Save(ctx)
		assert.ErrorIs(t, err, gerrors.ErrInvalidPayload)
		assert.Zero(t, provider.applies)
		assert.Equal(t, 1, manager.Pending())
	})

	t.Run("clear drops pending writes", func(t *testing.T) {
		provider := newCountingProvider()
		manager := newTestStateManager(provider)
		require.NoError(t, manager.Set(ctx, "k", 1))
		manager.Clear()
		require.NoError(t, manager.Save(ctx))
		assert.Zero(t, provider.applies)
	})
}

func TestStateChangeKind(t *testing.T) {
	assert.Equal(t, "none", StateChangeNone.String())
	assert.Equal(t, "add", StateChangeAdd.String())
	assert.Equal(t, "update", StateChangeUpdate.String())
	assert.Equal(t, "remove", StateChangeRemove.String())
	assert.Equal(t, "unknown", StateChangeKind(42).String())
}

// failingProvider fails every call
type failingProvider struct {
	err error
}

func (p *failingProvider) Load(context.Context, string, string, string) ([]byte, bool, error) {
	return nil, false, p.err
}

func (p *failingProvider) Contains(context.Context, string, string, string) (bool, error) {
	return false, p.err
}

func (p *failingProvider) Apply(context.Context, string, string, []state.Operation) error {
	return p.err
}

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

package locker

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed(t *testing.T) {
	t.Run("serializes work on the same key", func(t *testing.T) {
		lock := New(16)
		counter := 0
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = lock.Do("Counter||actor-1||", func() error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, counter)
		assert.Zero(t, lock.Len())
	})

	t.Run("lock and unlock", func(t *testing.T) {
		lock := New(4)
		lock.Lock("a")
		done := make(chan struct{})
		go func() {
			lock.Lock("a")
			lock.Unlock("a")
			close(done)
		}()
		lock.Unlock("a")
		<-done
		assert.Zero(t, lock.Len())
	})

	t.Run("distinct keys never block each other", func(t *testing.T) {
		// a single shard forces every key through the same bookkeeping
		lock := New(1)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = lock.Do("caller||user-1||", func() error {
				for i := range 512 {
					assert.NoError(t, lock.Do("callee||user-"+strconv.Itoa(i)+"||", func() error { return nil }))
				}
				return nil
			})
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("nested lock on a distinct key never returned")
		}
		assert.Zero(t, lock.Len())
	})

	t.Run("do returns the function error", func(t *testing.T) {
		lock := New(4)
		expected := errors.New("boom")
		err := lock.Do("a", func() error { return expected })
		require.ErrorIs(t, err, expected)
		// the key is released after an error
		require.NoError(t, lock.Do("a", func() error { return nil }))
	})

	t.Run("unlock of unlocked key panics", func(t *testing.T) {
		lock := New(0)
		assert.Panics(t, func() { lock.Unlock("missing") })
	})
}

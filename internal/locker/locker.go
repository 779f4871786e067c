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

// Package locker provides mutual exclusion keyed by string.
package locker

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// DefaultShards is the number of shards used when none is given.
const DefaultShards = 64

// entry is a per-key mutex shared by the callers currently holding or
// waiting on that key.
type entry struct {
	mu    sync.Mutex
	users int
}

// shard guards a subset of the keyed entries.
type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Keyed serializes work per key. Distinct keys never share a mutex.
// Entries exist only while some caller holds or waits on their key.
type Keyed struct {
	shards []*shard
	mask   uint64
}

// New creates a Keyed lock whose bookkeeping is split over at least n shards,
// rounded up to a power of two.
func New(n int) *Keyed {
	if n <= 0 {
		n = DefaultShards
	}
	size := 1
	for size < n {
		size <<= 1
	}

	shards := make([]*shard, size)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]*entry)}
	}

	return &Keyed{
		shards: shards,
		mask:   uint64(size - 1),
	}
}

// Lock acquires the mutex of the given key.
func (x *Keyed) Lock(key string) {
	s := x.shard(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = new(entry)
		s.entries[key] = e
	}
	e.users++
	s.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex of the given key. Unlocking a key that is not
// locked panics, like sync.Mutex.
func (x *Keyed) Unlock(key string) {
	s := x.shard(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		panic("locker: unlock of unlocked key " + key)
	}
	e.users--
	if e.users == 0 {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	e.mu.Unlock()
}

// Do runs fn while holding the mutex of key.
func (x *Keyed) Do(key string, fn func() error) error {
	x.Lock(key)
	defer x.Unlock(key)
	return fn()
}

// Len returns the number of keys currently held or waited on
func (x *Keyed) Len() int {
	total := 0
	for _, s := range x.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

func (x *Keyed) shard(key string) *shard {
	return x.shards[xxh3.HashString(key)&x.mask]
}

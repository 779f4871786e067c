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

package state

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Provider. It is mostly useful for tests and
// single-node deployments where state does not need to outlive the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// enforce compilation error
var _ Provider = (*Memory)(nil)

// NewMemory creates an empty in-memory provider
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// Load implements Provider.
func (x *Memory) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	x.mu.RLock()
	value, ok := x.values[Key(actorType, actorID, stateName)]
	x.mu.RUnlock()
	return slices.Clone(value), ok, nil
}

// Contains implements Provider.
func (x *Memory) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	x.mu.RLock()
	_, ok := x.values[Key(actorType, actorID, stateName)]
	x.mu.RUnlock()
	return ok, nil
}

// Apply implements Provider.
func (x *Memory) Apply(ctx context.Context, actorType, actorID string, operations []Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ValidateAll(operations); err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for _, operation := range operations {
		key := Key(actorType, actorID, operation.Request.Key)
		switch operation.Operation {
		case Upsert:
			x.values[key] = slices.Clone(operation.Request.Value)
		case Delete:
			delete(x.values, key)
		}
	}
	return nil
}

// Len returns the number of stored states
func (x *Memory) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.values)
}

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

package testkit

import (
	"context"
	"slices"
	"sync"

	"github.com/tochemey/actorhost/state"
)

// Apply is a transaction recorded by Provider
type Apply struct {
	ActorType  string
	ActorID    string
	Operations []state.Operation
}

// Provider is an in-memory state.Provider recording every interaction.
// It lets actor authors assert what their actors load and persist.
type Provider struct {
	*state.Memory

	mu        sync.Mutex
	loads     int
	probes    int
	applies   []Apply
	applyErrs []error
}

// enforce compilation error
var _ state.Provider = (*Provider)(nil)

// NewProvider creates an empty recording Provider
func NewProvider() *Provider {
	return &Provider{Memory: state.NewMemory()}
}

// Load implements state.Provider.
func (x *Provider) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	x.mu.Lock()
	x.loads++
	x.mu.Unlock()
	return x.Memory.Load(ctx, actorType, actorID, stateName)
}

// Contains implements state.Provider.
func (x *Provider) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	x.mu.Lock()
	x.probes++
	x.mu.Unlock()
	return x.Memory.Contains(ctx, actorType, actorID, stateName)
}

// Apply implements state.Provider. Scheduled failures are returned first
// and leave the store untouched.
func (x *Provider) Apply(ctx context.Context, actorType, actorID string, operations []state.Operation) error {
	x.mu.Lock()
	x.applies = append(x.applies, Apply{
		ActorType:  actorType,
		ActorID:    actorID,
		Operations: slices.Clone(operations),
	})

	if len(x.applyErrs) > 0 {
		err := x.applyErrs[0]
		x.applyErrs = x.applyErrs[1:]
		x.mu.Unlock()
		return err
	}
	x.mu.Unlock()

	return x.Memory.Apply(ctx, actorType, actorID, operations)
}

// FailNextApply makes the next Apply return err
func (x *Provider) FailNextApply(err error) {
	x.mu.Lock()
	x.applyErrs = append(x.applyErrs, err)
	x.mu.Unlock()
}

// Seed stores a value as if an earlier activation saved it. It is not recorded.
func (x *Provider) Seed(actorType, actorID, stateName string, value []byte) error {
	return x.Memory.Apply(context.Background(), actorType, actorID, []state.Operation{state.NewUpsert(stateName, value)})
}

// Loads returns the number of Load calls
func (x *Provider) Loads() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.loads
}

// Probes returns the number of Contains calls
func (x *Provider) Probes() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.probes
}

// Applies returns the recorded transactions, oldest first
func (x *Provider) Applies() []Apply {
	x.mu.Lock()
	defer x.mu.Unlock()
	return slices.Clone(x.applies)
}

// Reset forgets the recorded interactions, keeping the stored values
func (x *Provider) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.loads = 0
	x.probes = 0
	x.applies = nil
	x.applyErrs = nil
}

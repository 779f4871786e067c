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
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/tochemey/actorhost/codec"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

// StateChangeKind is the pending write of a cached state.
type StateChangeKind int

const (
	// StateChangeNone means the cached value matches the backing store.
	StateChangeNone StateChangeKind = iota
	// StateChangeAdd means the state is new to the backing store.
	StateChangeAdd
	// StateChangeUpdate means the state replaces a stored value.
	StateChangeUpdate
	// StateChangeRemove means the state is pending deletion.
	StateChangeRemove
)

// String returns the string representation of the kind
func (k StateChangeKind) String() string {
	switch k {
	case StateChangeNone:
		return "none"
	case StateChangeAdd:
		return "add"
	case StateChangeUpdate:
		return "update"
	case StateChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// stateChange is the cache record of one state name.
// Values loaded from the store stay encoded until they are read.
type stateChange struct {
	value   any
	encoded bool
	kind    StateChangeKind
}

// StateManager caches the state mutations of one actor instance and flushes
// them to the backing store on Save.
//
// Reads observe pending writes. The store is only consulted when the cache
// cannot answer. A StateManager belongs to a single actor instance and is not
// meant to be used by concurrent invocations.
type StateManager struct {
	actorType  string
	actorID    ID
	provider   state.Provider
	serializer codec.Serializer
	cache      map[string]*stateChange
}

// NewStateManager creates a StateManager for the given actor instance
func NewStateManager(actorType string, actorID ID, provider state.Provider, serializer codec.Serializer) *StateManager {
	return &StateManager{
		actorType:  actorType,
		actorID:    actorID,
		provider:   provider,
		serializer: serializer,
		cache:      make(map[string]*stateChange),
	}
}

// Add creates a new state. It fails with ErrDuplicateCachedState when the name
// is already pending and with ErrDuplicateState when the store holds it.
// Adding a name pending removal replaces it.
func (x *StateManager) Add(ctx context.Context, name string, value any) error {
	if err := checkStateName(name); err != nil {
		return err
	}

	if cached, ok := x.cache[name]; ok {
		if cached.kind != StateChangeRemove {
			return gerrors.NewErrDuplicateCachedState(name)
		}
		x.cache[name] = &stateChange{value: value, kind: StateChangeUpdate}
		return nil
	}

	exists, err := x.contains(ctx, name)
	if err != nil {
		return err
	}

	if exists {
		return gerrors.NewErrDuplicateState(name)
	}

	x.cache[name] = &stateChange{value: value, kind: StateChangeAdd}
	return nil
}

// Get reads the given state into target, which must be a non-nil pointer.
// It fails with ErrStateNotFound when the state is absent or pending removal.
// A value loaded from the store is cached so the store is hit once per name.
func (x *StateManager) Get(ctx context.Context, name string, target any) error {
	if err := checkStateName(name); err != nil {
		return err
	}

	cached, ok := x.cache[name]
	if !ok {
		value, found, err := x.provider.Load(ctx, x.actorType, x.actorID.String(), name)
		if err != nil {
			return gerrors.NewErrStoreFailure(err)
		}

		if !found {
			return gerrors.NewErrStateNotFound(name)
		}

		cached = &stateChange{value: value, encoded: true, kind: StateChangeNone}
		x.cache[name] = cached
	}

	if cached.kind == StateChangeRemove {
		return gerrors.NewErrStateNotFound(name)
	}

	return x.assign(cached, target)
}

// Set creates or replaces the given state.
func (x *StateManager) Set(ctx context.Context, name string, value any) error {
	if err := checkStateName(name); err != nil {
		return err
	}

	if cached, ok := x.cache[name]; ok {
		kind := StateChangeUpdate
		if cached.kind == StateChangeAdd {
			kind = StateChangeAdd
		}
		x.cache[name] = &stateChange{value: value, kind: kind}
		return nil
	}

	exists, err := x.contains(ctx, name)
	if err != nil {
		return err
	}

	kind := StateChangeAdd
	if exists {
		kind = StateChangeUpdate
	}
	x.cache[name] = &stateChange{value: value, kind: kind}
	return nil
}

// Remove deletes the given state. Removing an absent state is a no-op.
func (x *StateManager) Remove(ctx context.Context, name string) error {
	if err := checkStateName(name); err != nil {
		return err
	}

	if cached, ok := x.cache[name]; ok {
		switch cached.kind {
		case StateChangeRemove:
			// already pending removal
		case StateChangeAdd:
			delete(x.cache, name)
		default:
			cached.kind = StateChangeRemove
		}
		return nil
	}

	exists, err := x.contains(ctx, name)
	if err != nil {
		return err
	}

	if exists {
		x.cache[name] = &stateChange{kind: StateChangeRemove}
	}
	return nil
}

// Contains reports whether the given state logically exists.
func (x *StateManager) Contains(ctx context.Context, name string) (bool, error) {
	if err := checkStateName(name); err != nil {
		return false, err
	}

	if cached, ok := x.cache[name]; ok {
		return cached.kind != StateChangeRemove, nil
	}

	return x.contains(ctx, name)
}

// Save submits every pending change to the store in a single transaction.
// On success removed states are evicted and the others are marked clean.
// On failure the cache is left as is so Save can be retried.
func (x *StateManager) Save(ctx context.Context) error {
	if len(x.cache) == 0 {
		return nil
	}

	operations := make([]state.Operation, 0, len(x.cache))
	for _, name := range slices.Sorted(maps.Keys(x.cache)) {
		cached := x.cache[name]
		switch cached.kind {
		case StateChangeNone:
			continue
		case StateChangeRemove:
			operations = append(operations, state.NewDelete(name))
		default:
			value, err := x.encode(cached)
			if err != nil {
				return gerrors.NewErrInvalidPayload(fmt.Errorf("state=(%s): %w", name, err))
			}
			operations = append(operations, state.NewUpsert(name, value))
		}
	}

	if len(operations) == 0 {
		return nil
	}

	if err := x.provider.Apply(ctx, x.actorType, x.actorID.String(), operations); err != nil {
		return gerrors.NewErrStoreFailure(err)
	}

	for name, cached := range x.cache {
		if cached.kind == StateChangeRemove {
			delete(x.cache, name)
			continue
		}
		cached.kind = StateChangeNone
	}
	return nil
}

// Clear discards every cached change without touching the store.
func (x *StateManager) Clear() {
	clear(x.cache)
}

// Pending returns the number of cached changes not yet saved
func (x *StateManager) Pending() int {
	count := 0
	for _, cached := range x.cache {
		if cached.kind != StateChangeNone {
			count++
		}
	}
	return count
}

// GetState reads a typed state through the given StateManager.
func GetState[T any](ctx context.Context, manager *StateManager, name string) (T, error) {
	var value T
	err := manager.Get(ctx, name, &value)
	return value, err
}

func (x *StateManager) contains(ctx context.Context, name string) (bool, error) {
	exists, err := x.provider.Contains(ctx, x.actorType, x.actorID.String(), name)
	if err != nil {
		return false, gerrors.NewErrStoreFailure(err)
	}
	return exists, nil
}

func (x *StateManager) encode(cached *stateChange) ([]byte, error) {
	if cached.encoded {
		return cached.value.([]byte), nil
	}
	return x.serializer.Marshal(cached.value)
}

// assign copies the cached value into target. Encoded values are decoded,
// values of the target type are copied directly and anything else goes
// through an encode/decode round trip.
func (x *StateManager) assign(cached *stateChange, target any) error {
	destination := reflect.ValueOf(target)
	if destination.Kind() != reflect.Pointer || destination.IsNil() {
		return fmt.Errorf("state target (%T) must be a non-nil pointer: %w", target, gerrors.ErrInvalidArgument)
	}

	if cached.encoded {
		return x.serializer.Unmarshal(cached.value.([]byte), target)
	}

	element := destination.Elem()
	if cached.value == nil {
		element.SetZero()
		return nil
	}

	source := reflect.ValueOf(cached.value)
	if source.Type().AssignableTo(element.Type()) {
		element.Set(source)
		return nil
	}

	if source.Kind() == reflect.Pointer && !source.IsNil() && source.Elem().Type().AssignableTo(element.Type()) {
		element.Set(source.Elem())
		return nil
	}

	bytea, err := x.serializer.Marshal(cached.value)
	if err != nil {
		return err
	}
	return x.serializer.Unmarshal(bytea, target)
}

func checkStateName(name string) error {
	if name == "" {
		return fmt.Errorf("state name is required: %w", gerrors.ErrInvalidArgument)
	}
	if strings.Contains(name, state.KeySeparator) {
		return fmt.Errorf("state name (%s) must not contain %q: %w", name, state.KeySeparator, gerrors.ErrInvalidArgument)
	}
	return nil
}

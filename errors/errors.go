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
	"fmt"
)

var (
	// ErrActorNotFound is returned when an operation targets an actor id that is not in the active registry.
	ErrActorNotFound = errors.New("actor not found")

	// ErrNoSuchMethod is returned when a method or handler name has no registered descriptor.
	ErrNoSuchMethod = errors.New("no such method")

	// ErrInvalidState is returned when a timer is invoked on a live actor that never registered it.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument is returned when a state name is empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateState is returned when adding a state name that the backing store already holds.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrDuplicateCachedState is returned when adding a state name already pending in the cache.
	ErrDuplicateCachedState = errors.New("duplicate cached state")

	// ErrStateNotFound is returned when reading a state name that is logically absent.
	ErrStateNotFound = errors.New("no such element")

	// ErrStoreFailure is returned when the backing state provider fails to load, probe or apply.
	ErrStoreFailure = errors.New("state store failure")

	// ErrActorTypeNotRegistered is returned when the runtime has no manager for an actor type.
	ErrActorTypeNotRegistered = errors.New("actor type is not registered")

	// ErrActorTypeAlreadyRegistered is returned when registering the same actor type twice.
	ErrActorTypeAlreadyRegistered = errors.New("actor type is already registered")

	// ErrInvalidActorType is returned when an actor type descriptor is malformed.
	ErrInvalidActorType = errors.New("invalid actor type")

	// ErrInvalidActorID is returned when an actor id is empty or malformed.
	ErrInvalidActorID = errors.New("invalid actor id")

	// ErrDuplicateMethod is returned when a method table receives two entries with the same name.
	ErrDuplicateMethod = errors.New("duplicate method")

	// ErrInvalidPayload is returned when a payload cannot be converted to the declared parameter type.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidDuration is returned when a duration text does not follow the "{h}h{m}m{s}s{ms}ms" format.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidReminderParams is returned when reminder parameters violate their invariants.
	ErrInvalidReminderParams = errors.New("invalid reminder parameters")

	// ErrInvalidTimerParams is returned when timer parameters violate their invariants.
	ErrInvalidTimerParams = errors.New("invalid timer parameters")

	// ErrRuntimeNotStarted is returned when the runtime is used before Start or after Stop.
	ErrRuntimeNotStarted = errors.New("actor runtime is not running")

	// ErrRuntimeAlreadyStarted is returned when Start is called twice.
	ErrRuntimeAlreadyStarted = errors.New("actor runtime has already started")

	// ErrSchedulerNotStarted is returned when the local scheduler is used before it starts.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrProviderClosed is returned when a closed state provider is used.
	ErrProviderClosed = errors.New("state provider is closed")
)

// NewErrActorNotFound formats an ErrActorNotFound with the given actor type and id.
func NewErrActorNotFound(actorType, actorID string) error {
	return fmt.Errorf("(actor=%s/%s) %w", actorType, actorID, ErrActorNotFound)
}

// NewErrNoSuchMethod formats an ErrNoSuchMethod with the given method name.
func NewErrNoSuchMethod(actorType, method string) error {
	return fmt.Errorf("method=(%s) on actor type=(%s) %w", method, actorType, ErrNoSuchMethod)
}

// NewErrInvalidState formats an ErrInvalidState for a timer that was never registered.
func NewErrInvalidState(actorID, timerName string) error {
	return fmt.Errorf("timer=(%s) is not registered on actor=(%s) %w", timerName, actorID, ErrInvalidState)
}

// NewErrDuplicateState formats an ErrDuplicateState with the given state name.
func NewErrDuplicateState(name string) error {
	return fmt.Errorf("state=(%s) %w", name, ErrDuplicateState)
}

// NewErrDuplicateCachedState formats an ErrDuplicateCachedState with the given state name.
func NewErrDuplicateCachedState(name string) error {
	return fmt.Errorf("state=(%s) %w", name, ErrDuplicateCachedState)
}

// NewErrStateNotFound formats an ErrStateNotFound with the given state name.
func NewErrStateNotFound(name string) error {
	return fmt.Errorf("state=(%s) %w", name, ErrStateNotFound)
}

// NewErrStoreFailure wraps a provider error with ErrStoreFailure.
func NewErrStoreFailure(err error) error {
	return errors.Join(ErrStoreFailure, err)
}

// NewErrActorTypeNotRegistered formats an ErrActorTypeNotRegistered with the given actor type.
func NewErrActorTypeNotRegistered(actorType string) error {
	return fmt.Errorf("actor type=(%s) %w", actorType, ErrActorTypeNotRegistered)
}

// NewErrInvalidPayload wraps a decoding error with ErrInvalidPayload.
func NewErrInvalidPayload(err error) error {
	return errors.Join(ErrInvalidPayload, err)
}

// NewErrInvalidDuration formats an ErrInvalidDuration with the offending text.
func NewErrInvalidDuration(text string) error {
	return fmt.Errorf("duration=(%s) %w", text, ErrInvalidDuration)
}

// PanicError wraps a value recovered from a panicking actor method.
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

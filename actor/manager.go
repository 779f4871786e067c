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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/tochemey/actorhost/codec"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/future"
	"github.com/tochemey/actorhost/internal/errorschain"
	"github.com/tochemey/actorhost/internal/locker"
	"github.com/tochemey/actorhost/internal/validation"
	"github.com/tochemey/actorhost/internal/xsync"
	"github.com/tochemey/actorhost/log"
	"github.com/tochemey/actorhost/state"
)

// activation is an entry of the active registry.
type activation struct {
	instance Actor
	context  *Context
}

// Manager owns the active instances of exactly one actor type and is the
// single entry point for activation, deactivation and invocations.
//
// Unless a locker is configured, the Manager relies on its caller to never run
// two invocations for the same actor id at once.
type Manager struct {
	actorType  *Type
	provider   state.Provider
	serializer codec.Serializer
	logger     log.Logger
	locker     *locker.Keyed
	scheduler  Scheduler
	metrics    Metrics
	registry   *xsync.Map[ID, *activation]
}

// NewManager creates a Manager for the given actor type
func NewManager(actorType *Type, provider state.Provider, opts ...ManagerOption) *Manager {
	manager := &Manager{
		actorType:  actorType,
		provider:   provider,
		serializer: codec.NewJSON(),
		logger:     log.DefaultLogger,
		scheduler:  noopScheduler{},
		metrics:    noopMetrics{},
		registry:   xsync.NewMap[ID, *activation](),
	}

	for _, opt := range opts {
		opt.Apply(manager)
	}

	return manager
}

// ActorType returns the managed actor type
func (x *Manager) ActorType() *Type {
	return x.actorType
}

// Activate creates an instance for the given id, runs its OnActivate hook,
// saves any state written by the hook and then makes the instance reachable.
// Activating an already active id replaces the registry entry and disarms the
// timers of the replaced instance that the new one did not register again.
func (x *Manager) Activate(ctx context.Context, id ID) error {
	if err := validation.NewNameValidator("actor id", id.String()).Validate(); err != nil {
		return errors.Join(gerrors.ErrInvalidActorID, err)
	}

	return x.withTurn(id, func() error {
		x.logger.Debugf("Activating actor (%s/%s)...", x.actorType.Name(), id)

		stateManager := NewStateManager(x.actorType.Name(), id, x.provider, x.serializer)
		actorContext := newContext(id, x.actorType.Name(), stateManager, x.logger, x.scheduler)

		instance, err := x.actorType.factory(actorContext)
		if err != nil {
			x.logger.Errorf("Failed to create actor (%s/%s): %v", x.actorType.Name(), id, err)
			return err
		}

		if _, err := safely(func() (any, error) { return nil, instance.OnActivate(ctx) }); err != nil {
			stateManager.Clear()
			x.logger.Errorf("Failed to activate actor (%s/%s): %v", x.actorType.Name(), id, err)
			return err
		}

		if err := stateManager.Save(ctx); err != nil {
			stateManager.Clear()
			return err
		}

		if previous, ok := x.registry.Get(id); ok {
			if err := previous.context.cancelTimersExcept(ctx, actorContext); err != nil {
				x.logger.Warnf("Failed to disarm timers of replaced actor (%s/%s): %v", x.actorType.Name(), id, err)
			}
		}

		x.registry.Set(id, &activation{instance: instance, context: actorContext})
		x.metrics.RecordActivation(ctx, x.actorType.Name())
		x.logger.Debugf("Actor (%s/%s) successfully activated.", x.actorType.Name(), id)
		return nil
	})
}

// Deactivate removes the instance from the registry and runs its OnDeactivate
// hook. Deactivating an id that is not active is a no-op.
func (x *Manager) Deactivate(ctx context.Context, id ID) error {
	return x.withTurn(id, func() error {
		entry, ok := x.registry.LoadAndDelete(id)
		if !ok {
			return nil
		}

		x.logger.Debugf("Deactivating actor (%s/%s)...", x.actorType.Name(), id)
		x.metrics.RecordDeactivation(ctx, x.actorType.Name())

		err := errorschain.New(errorschain.ReturnFirst()).
			AddErrorFn(func() error { return entry.context.cancelTimers(ctx) }).
			AddErrorFn(func() error {
				_, err := safely(func() (any, error) { return nil, entry.instance.OnDeactivate(ctx) })
				return err
			}).
			Error()

		entry.context.stateManager.Clear()
		if err != nil {
			x.logger.Errorf("Failed to deactivate actor (%s/%s): %v", x.actorType.Name(), id, err)
			return err
		}

		x.logger.Debugf("Actor (%s/%s) successfully deactivated.", x.actorType.Name(), id)
		return nil
	})
}

// InvokeMethod calls the named method on an active instance and returns its
// serialized result. A nil result yields no content.
//
// The payload is decoded into the declared parameter type unless it already
// has that type. Zero-parameter methods ignore the payload.
func (x *Manager) InvokeMethod(ctx context.Context, id ID, method string, payload any) ([]byte, error) {
	var result []byte
	err := x.withTurn(id, func() error {
		entry, err := x.lookup(id)
		if err != nil {
			return err
		}

		invocation := NewInvocationContext(CallTypeMethod, method)
		value, err := x.invoke(ctx, entry, invocation, func(ctx context.Context) (any, error) {
			return x.callMethod(ctx, entry, method, payload)
		})
		if err != nil {
			return err
		}

		result, err = x.encodeResult(value)
		return err
	})
	return result, err
}

// InvokeReminder delivers a reminder to an active instance. When the actor
// type has no reminder capability the call succeeds without doing anything.
// The payload is either the JSON encoding of ReminderParams or a ReminderParams value.
func (x *Manager) InvokeReminder(ctx context.Context, id ID, name string, payload any) error {
	if !x.actorType.Remindable() {
		return nil
	}

	return x.withTurn(id, func() error {
		entry, err := x.lookup(id)
		if err != nil {
			return err
		}

		params, err := decodeReminderParams(payload)
		if err != nil {
			return err
		}

		invocation := NewInvocationContext(CallTypeReminder, name)
		_, err = x.invoke(ctx, entry, invocation, func(ctx context.Context) (any, error) {
			return nil, x.actorType.reminder.receive(ctx, entry.instance, x.serializer, name, params)
		})
		return err
	})
}

// InvokeTimer fires a timer registered by an active instance by calling its
// callback method with the timer data. It fails with ErrInvalidState when the
// instance never registered that timer.
func (x *Manager) InvokeTimer(ctx context.Context, id ID, name string) error {
	return x.withTurn(id, func() error {
		entry, err := x.lookup(id)
		if err != nil {
			return err
		}

		params, ok := entry.context.timer(name)
		if !ok {
			return gerrors.NewErrInvalidState(id.String(), name)
		}

		var payload any
		if len(params.Data) > 0 {
			payload = params.Data
		}

		invocation := NewInvocationContext(CallTypeTimer, name)
		_, err = x.invoke(ctx, entry, invocation, func(ctx context.Context) (any, error) {
			return x.callMethod(ctx, entry, params.Callback, payload)
		})
		return err
	})
}

// IsActive reports whether the given id is active
func (x *Manager) IsActive(id ID) bool {
	_, ok := x.registry.Get(id)
	return ok
}

// ActiveIDs returns the ids of the active instances
func (x *Manager) ActiveIDs() []ID {
	return x.registry.Keys()
}

// Len returns the number of active instances
func (x *Manager) Len() int {
	return x.registry.Len()
}

// DeactivateAll deactivates every active instance and returns all the hook failures
func (x *Manager) DeactivateAll(ctx context.Context) error {
	chain := errorschain.New(errorschain.ReturnAll())
	for _, id := range x.registry.Keys() {
		chain.AddErrorFn(func() error { return x.Deactivate(ctx, id) })
	}
	return chain.Error()
}

func (x *Manager) lookup(id ID) (*activation, error) {
	entry, ok := x.registry.Get(id)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(x.actorType.Name(), id.String())
	}
	return entry, nil
}

// invoke runs one turn: pre-hook, target, post-hook, then save.
// Any failure discards the pending state changes. A post-hook failure
// supersedes the outcome of the target.
func (x *Manager) invoke(ctx context.Context, entry *activation, invocation *InvocationContext, target func(context.Context) (any, error)) (result any, err error) {
	start := time.Now()
	defer func() {
		x.metrics.RecordInvocation(ctx, x.actorType.Name(), invocation.CallType(), time.Since(start), err)
		if err != nil {
			entry.context.stateManager.Clear()
			x.logger.Errorf("Failed to invoke %s (%s) on actor (%s/%s): %v",
				invocation.CallType(), invocation.Name(), x.actorType.Name(), entry.context.id, err)
		}
	}()

	if _, err := safely(func() (any, error) { return nil, entry.instance.OnPreInvoke(ctx, invocation) }); err != nil {
		return nil, err
	}

	result, err = safely(func() (any, error) { return target(ctx) })

	if _, postErr := safely(func() (any, error) { return nil, entry.instance.OnPostInvoke(ctx, invocation) }); postErr != nil {
		return nil, postErr
	}

	if err != nil {
		return nil, err
	}

	if err := entry.context.stateManager.Save(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// callMethod resolves and calls a method, awaiting asynchronous results.
func (x *Manager) callMethod(ctx context.Context, entry *activation, name string, payload any) (any, error) {
	method, ok := x.actorType.methods.Resolve(name)
	if !ok {
		return nil, gerrors.NewErrNoSuchMethod(x.actorType.Name(), name)
	}

	var (
		result any
		err    error
	)

	if method.Arity() == 0 {
		result, err = method.Invoke(ctx, entry.instance)
	} else {
		var argument any
		if argument, err = x.decodeArgument(method, payload); err != nil {
			return nil, err
		}
		result, err = method.Invoke(ctx, entry.instance, argument)
	}

	if err != nil {
		return nil, err
	}

	if awaitable, ok := result.(future.Awaitable); ok {
		return awaitable.AwaitAny(ctx)
	}
	return result, nil
}

// decodeArgument converts the payload to the declared parameter type.
func (x *Manager) decodeArgument(method *Method, payload any) (any, error) {
	if payload == nil || method.Accepts(payload) {
		return payload, nil
	}

	var data []byte
	switch value := payload.(type) {
	case []byte:
		data = value
	case string:
		data = []byte(value)
	default:
		return nil, gerrors.NewErrInvalidPayload(fmt.Errorf("method=(%s) expects (%s), got (%T)", method.Name(), method.ParamType(), payload))
	}

	if len(data) == 0 {
		return nil, nil
	}

	param := method.NewParam()
	if err := x.serializer.Unmarshal(data, param); err != nil {
		return nil, gerrors.NewErrInvalidPayload(err)
	}
	return param, nil
}

func (x *Manager) encodeResult(value any) ([]byte, error) {
	if isNil(value) {
		return nil, nil
	}
	return x.serializer.Marshal(value)
}

func (x *Manager) withTurn(id ID, fn func() error) error {
	if x.locker == nil {
		return fn()
	}
	return x.locker.Do(state.Prefix(x.actorType.Name(), id.String()), fn)
}

func decodeReminderParams(payload any) (*ReminderParams, error) {
	switch value := payload.(type) {
	case *ReminderParams:
		if value == nil {
			return nil, fmt.Errorf("reminder parameters are required: %w", gerrors.ErrInvalidReminderParams)
		}
		return value, value.Validate()
	case ReminderParams:
		return &value, value.Validate()
	case []byte:
		params := new(ReminderParams)
		if err := json.Unmarshal(value, params); err != nil {
			return nil, gerrors.NewErrInvalidPayload(err)
		}
		return params, nil
	case string:
		return decodeReminderParams([]byte(value))
	default:
		return nil, fmt.Errorf("reminder payload (%T): %w", payload, gerrors.ErrInvalidReminderParams)
	}
}

// safely converts a panic raised by application code into a PanicError.
func safely(fn func() (any, error)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = gerrors.NewPanicError(e)
				return
			}
			err = gerrors.NewPanicError(fmt.Errorf("%v", r))
		}
	}()
	return fn()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

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

// Package runtime hosts the actor managers of a process.
//
// A Runtime is created by the application start-up code, given the actor
// types it hosts and then started. The sidecar transport calls into it to
// activate, deactivate and invoke actors by type name.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/actorhost/actor"
	"github.com/tochemey/actorhost/codec"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/future"
	"github.com/tochemey/actorhost/internal/errorschain"
	"github.com/tochemey/actorhost/internal/locker"
	"github.com/tochemey/actorhost/internal/xsync"
	"github.com/tochemey/actorhost/log"
	"github.com/tochemey/actorhost/scheduler"
	"github.com/tochemey/actorhost/state"
	"github.com/tochemey/actorhost/telemetry"
)

// DefaultDrainTimeout is how long Stop waits for the active actors by default
const DefaultDrainTimeout = 30 * time.Second

// Scheduler is a timers and reminders driver owned by the runtime.
// It is started with the runtime as its invoker and stopped before the actors are drained.
type Scheduler interface {
	actor.Scheduler
	Start(ctx context.Context, invoker scheduler.Invoker) error
	Stop(ctx context.Context) error
}

// Runtime owns one actor.Manager per registered actor type.
type Runtime struct {
	mu           sync.Mutex
	provider     state.Provider
	serializer   codec.Serializer
	logger       log.Logger
	turnBased    bool
	locker       *locker.Keyed
	scheduler    Scheduler
	telemetry    *telemetry.Telemetry
	metrics      actor.Metrics
	drainTimeout time.Duration
	types        goset.Set[string]
	managers     *xsync.Map[string, *actor.Manager]
	started      *atomic.Bool
}

// enforce compilation error
var _ scheduler.Invoker = (*Runtime)(nil)

// New creates a Runtime storing actor state in the given provider
func New(provider state.Provider, opts ...Option) (*Runtime, error) {
	if provider == nil {
		return nil, fmt.Errorf("state provider is required: %w", gerrors.ErrInvalidArgument)
	}

	runtime := &Runtime{
		provider:     provider,
		serializer:   codec.NewJSON(),
		logger:       log.DefaultLogger,
		drainTimeout: DefaultDrainTimeout,
		types:        goset.NewSet[string](),
		managers:     xsync.NewMap[string, *actor.Manager](),
		started:      atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(runtime)
	}

	if runtime.telemetry == nil {
		runtime.telemetry = telemetry.New()
	}

	metrics, err := telemetry.NewMetrics(runtime.telemetry.Meter)
	if err != nil {
		return nil, err
	}
	runtime.metrics = metrics

	if runtime.turnBased {
		runtime.locker = locker.New(locker.DefaultShards)
	}

	return runtime, nil
}

// Register adds an actor type to the runtime. Types can be registered before or after Start.
func (x *Runtime) Register(actorType *actor.Type) error {
	if actorType == nil {
		return fmt.Errorf("actor type is required: %w", gerrors.ErrInvalidActorType)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.types.Add(actorType.Name()) {
		return fmt.Errorf("actor type=(%s) %w", actorType.Name(), gerrors.ErrActorTypeAlreadyRegistered)
	}

	opts := []actor.ManagerOption{
		actor.WithManagerLogger(x.logger),
		actor.WithManagerSerializer(x.serializer),
		actor.WithManagerMetrics(x.metrics),
	}

	if x.locker != nil {
		opts = append(opts, actor.WithManagerLocker(x.locker))
	}

	if x.scheduler != nil {
		opts = append(opts, actor.WithManagerScheduler(x.scheduler))
	}

	x.managers.Set(actorType.Name(), actor.NewManager(actorType, x.provider, opts...))
	x.logger.Infof("Actor type (%s) registered.", actorType.Name())
	return nil
}

// ActorTypes returns the sorted names of the registered actor types
func (x *Runtime) ActorTypes() []string {
	names := x.types.ToSlice()
	slices.Sort(names)
	return names
}

// Start starts the runtime and its scheduler
func (x *Runtime) Start(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.started.Load() {
		return gerrors.ErrRuntimeAlreadyStarted
	}

	x.logger.Info("Starting actor runtime...")
	if x.scheduler != nil {
		if err := x.scheduler.Start(ctx, x); err != nil {
			x.logger.Errorf("Failed to start actor runtime: %v", err)
			return err
		}
	}

	x.started.Store(true)
	x.logger.Info("Actor runtime started.:)")
	return nil
}

// Stop stops the scheduler then deactivates every active actor of every type.
// All the deactivation failures are returned.
func (x *Runtime) Stop(ctx context.Context) (err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrRuntimeNotStarted
	}

	x.logger.Info("Stopping actor runtime...")
	x.started.Store(false)

	defer func() {
		err = multierr.Combine(err, x.logger.Flush())
	}()

	chain := errorschain.New(errorschain.ReturnAll())
	if x.scheduler != nil {
		chain.AddError(x.scheduler.Stop(ctx))
	}

	ctx, cancel := context.WithTimeout(ctx, x.drainTimeout)
	defer cancel()

	managers := make([]*actor.Manager, 0, x.managers.Len())
	x.managers.Range(func(_ string, manager *actor.Manager) {
		managers = append(managers, manager)
	})

	errs := make([]error, len(managers))
	eg, ctx := errgroup.WithContext(ctx)
	for index, manager := range managers {
		eg.Go(func() error {
			if err := manager.DeactivateAll(ctx); err != nil {
				x.logger.Errorf("Failed to deactivate actors of type (%s): %v", manager.ActorType().Name(), err)
				errs[index] = err
			}
			return nil
		})
	}
	_ = eg.Wait()

	if err := chain.AddErrors(errs...).Error(); err != nil {
		return err
	}

	x.logger.Info("Actor runtime stopped.:)")
	return nil
}

// Running reports whether the runtime has started
func (x *Runtime) Running() bool {
	return x.started.Load()
}

// Activate activates the given actor
func (x *Runtime) Activate(ctx context.Context, actorType string, actorID actor.ID) error {
	return x.trace(ctx, "Activate", actorType, actorID, "", func(ctx context.Context, manager *actor.Manager) error {
		return manager.Activate(ctx, actorID)
	})
}

// Deactivate deactivates the given actor. Inactive actors are ignored.
func (x *Runtime) Deactivate(ctx context.Context, actorType string, actorID actor.ID) error {
	return x.trace(ctx, "Deactivate", actorType, actorID, "", func(ctx context.Context, manager *actor.Manager) error {
		return manager.Deactivate(ctx, actorID)
	})
}

// InvokeMethod calls a method on the given actor and returns its serialized result
func (x *Runtime) InvokeMethod(ctx context.Context, actorType string, actorID actor.ID, method string, payload any) ([]byte, error) {
	var result []byte
	err := x.trace(ctx, "InvokeMethod", actorType, actorID, method, func(ctx context.Context, manager *actor.Manager) error {
		var err error
		result, err = manager.InvokeMethod(ctx, actorID, method, payload)
		return err
	})
	return result, err
}

// InvokeReminder delivers a reminder to the given actor
func (x *Runtime) InvokeReminder(ctx context.Context, actorType string, actorID actor.ID, name string, payload any) error {
	return x.trace(ctx, "InvokeReminder", actorType, actorID, name, func(ctx context.Context, manager *actor.Manager) error {
		return manager.InvokeReminder(ctx, actorID, name, payload)
	})
}

// InvokeTimer fires a timer registered by the given actor
func (x *Runtime) InvokeTimer(ctx context.Context, actorType string, actorID actor.ID, name string) error {
	return x.trace(ctx, "InvokeTimer", actorType, actorID, name, func(ctx context.Context, manager *actor.Manager) error {
		return manager.InvokeTimer(ctx, actorID, name)
	})
}

// InvokeMethodAsync is the non-blocking version of InvokeMethod
func (x *Runtime) InvokeMethodAsync(ctx context.Context, actorType string, actorID actor.ID, method string, payload any) future.Future[[]byte] {
	return future.New(func() ([]byte, error) {
		return x.InvokeMethod(ctx, actorType, actorID, method, payload)
	})
}

// InvokeReminderAsync is the non-blocking version of InvokeReminder
func (x *Runtime) InvokeReminderAsync(ctx context.Context, actorType string, actorID actor.ID, name string, payload any) future.Future[struct{}] {
	return future.New(func() (struct{}, error) {
		return struct{}{}, x.InvokeReminder(ctx, actorType, actorID, name, payload)
	})
}

// InvokeTimerAsync is the non-blocking version of InvokeTimer
func (x *Runtime) InvokeTimerAsync(ctx context.Context, actorType string, actorID actor.ID, name string) future.Future[struct{}] {
	return future.New(func() (struct{}, error) {
		return struct{}{}, x.InvokeTimer(ctx, actorType, actorID, name)
	})
}

// ActiveActors returns the ids of the active actors of the given type
func (x *Runtime) ActiveActors(actorType string) ([]actor.ID, error) {
	manager, err := x.manager(actorType)
	if err != nil {
		return nil, err
	}
	ids := manager.ActiveIDs()
	slices.Sort(ids)
	return ids, nil
}

// IsActive reports whether the given actor is active
func (x *Runtime) IsActive(actorType string, actorID actor.ID) bool {
	manager, err := x.manager(actorType)
	if err != nil {
		return false
	}
	return manager.IsActive(actorID)
}

func (x *Runtime) manager(actorType string) (*actor.Manager, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrRuntimeNotStarted
	}

	manager, ok := x.managers.Get(actorType)
	if !ok {
		return nil, gerrors.NewErrActorTypeNotRegistered(actorType)
	}
	return manager, nil
}

// trace runs fn against the manager of the actor type within a span
func (x *Runtime) trace(ctx context.Context, operation, actorType string, actorID actor.ID, name string, fn func(context.Context, *actor.Manager) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("actor.type", actorType),
		attribute.String("actor.id", actorID.String()),
	}

	if name != "" {
		attrs = append(attrs, attribute.String("actor.target", name))
	}

	ctx, span := x.telemetry.Tracer.Start(ctx, operation, trace.WithAttributes(attrs...))
	defer span.End()

	manager, err := x.manager(actorType)
	if err == nil {
		err = fn(ctx, manager)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, gerrors.ErrRuntimeNotStarted) || errors.Is(err, gerrors.ErrActorTypeNotRegistered) {
			x.logger.Warnf("%s on actor (%s/%s) rejected: %v", operation, actorType, actorID, err)
		}
		return err
	}
	return nil
}

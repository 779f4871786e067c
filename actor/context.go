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

	"github.com/google/uuid"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/internal/errorschain"
	"github.com/tochemey/actorhost/internal/xsync"
	"github.com/tochemey/actorhost/log"
)

// Context is handed to the actor factory and gives the instance access to its
// identity, its state and its timers and reminders.
type Context struct {
	id           ID
	actorType    string
	stateManager *StateManager
	logger       log.Logger
	scheduler    Scheduler
	timers       *xsync.Map[string, *TimerParams]
}

func newContext(id ID, actorType string, stateManager *StateManager, logger log.Logger, scheduler Scheduler) *Context {
	return &Context{
		id:           id,
		actorType:    actorType,
		stateManager: stateManager,
		logger:       logger,
		scheduler:    scheduler,
		timers:       xsync.NewMap[string, *TimerParams](),
	}
}

// ID returns the actor id
func (x *Context) ID() ID {
	return x.id
}

// ActorType returns the actor type name
func (x *Context) ActorType() string {
	return x.actorType
}

// StateManager returns the state manager of the instance
func (x *Context) StateManager() *StateManager {
	return x.stateManager
}

// Logger returns the logger of the instance
func (x *Context) Logger() log.Logger {
	return x.logger
}

// RegisterTimer records a timer on the instance and arms it.
// When name is empty a random one is generated. The effective name is returned.
func (x *Context) RegisterTimer(ctx context.Context, name string, params *TimerParams) (string, error) {
	if params == nil {
		return "", fmt.Errorf("timer parameters are required: %w", gerrors.ErrInvalidTimerParams)
	}

	if err := params.Validate(); err != nil {
		return "", err
	}

	if name == "" {
		name = fmt.Sprintf("%s_Timer_%s", x.id, uuid.NewString())
	}

	x.timers.Set(name, params)
	if err := x.scheduler.ScheduleTimer(ctx, x.actorType, x.id, name, params); err != nil {
		x.timers.Delete(name)
		return "", err
	}

	x.logger.Debugf("Timer (%s) registered on actor (%s/%s)", name, x.actorType, x.id)
	return name, nil
}

// UnregisterTimer disarms and forgets a timer. Unknown names are ignored.
func (x *Context) UnregisterTimer(ctx context.Context, name string) error {
	if _, ok := x.timers.LoadAndDelete(name); !ok {
		return nil
	}
	return x.scheduler.CancelTimer(ctx, x.actorType, x.id, name)
}

// RegisterReminder arms a reminder for the instance.
func (x *Context) RegisterReminder(ctx context.Context, name string, params *ReminderParams) error {
	if name == "" {
		return fmt.Errorf("reminder name is required: %w", gerrors.ErrInvalidArgument)
	}

	if params == nil {
		return fmt.Errorf("reminder parameters are required: %w", gerrors.ErrInvalidReminderParams)
	}

	if err := params.Validate(); err != nil {
		return err
	}

	return x.scheduler.ScheduleReminder(ctx, x.actorType, x.id, name, params)
}

// UnregisterReminder disarms a reminder of the instance.
func (x *Context) UnregisterReminder(ctx context.Context, name string) error {
	return x.scheduler.CancelReminder(ctx, x.actorType, x.id, name)
}

// Timers returns the names of the registered timers
func (x *Context) Timers() []string {
	return x.timers.Keys()
}

func (x *Context) timer(name string) (*TimerParams, bool) {
	return x.timers.Get(name)
}

// cancelTimers disarms every timer, used when the instance is deactivated.
func (x *Context) cancelTimers(ctx context.Context) error {
	return x.cancelTimersExcept(ctx, nil)
}

// cancelTimersExcept disarms the timers not registered on successor. Timers
// share their schedule key with a successor's timer of the same name, so
// those are only forgotten.
func (x *Context) cancelTimersExcept(ctx context.Context, successor *Context) error {
	chain := errorschain.New(errorschain.ReturnAll())
	for _, name := range x.timers.Keys() {
		if successor != nil {
			if _, ok := successor.timer(name); ok {
				x.timers.Delete(name)
				continue
			}
		}
		chain.AddErrorFn(func() error { return x.UnregisterTimer(ctx, name) })
	}
	return chain.Error()
}

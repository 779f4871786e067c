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

// Package scheduler drives actor timers and reminders inside the process.
//
// Reminders scheduled here live as long as the process. Durable reminders are
// owned by the sidecar, which delivers them through the runtime directly.
package scheduler

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/actorhost/actor"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/log"
)

// DefaultStopTimeout is how long Stop waits for running jobs by default
const DefaultStopTimeout = 5 * time.Second

// Invoker receives the timer and reminder firings.
type Invoker interface {
	InvokeTimer(ctx context.Context, actorType string, actorID actor.ID, name string) error
	InvokeReminder(ctx context.Context, actorType string, actorID actor.ID, name string, payload any) error
}

// Local is a go-quartz backed actor.Scheduler.
type Local struct {
	mu          sync.Mutex
	quartz      quartz.Scheduler
	started     *atomic.Bool
	logger      log.Logger
	stopTimeout time.Duration
	invoker     Invoker
}

// enforce compilation error
var _ actor.Scheduler = (*Local)(nil)

// New creates an instance of Local
func New(opts ...Option) *Local {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))

	scheduler := &Local{
		quartz:      quartzScheduler,
		started:     atomic.NewBool(false),
		logger:      log.DefaultLogger,
		stopTimeout: DefaultStopTimeout,
	}

	for _, opt := range opts {
		opt.Apply(scheduler)
	}

	return scheduler
}

// Start starts the scheduler. Firings are delivered to the given invoker.
func (x *Local) Start(ctx context.Context, invoker Invoker) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.started.Load() {
		return nil
	}

	x.logger.Info("starting actor timers scheduler...")
	x.invoker = invoker
	x.quartz.Start(ctx)
	x.started.Store(x.quartz.IsStarted())
	x.logger.Info("actor timers scheduler started.:)")
	return nil
}

// Stop stops the scheduler and drops every scheduled job
func (x *Local) Stop(ctx context.Context) error {
	if !x.started.Load() {
		return nil
	}

	x.logger.Info("stopping actor timers scheduler...")
	x.mu.Lock()
	_ = x.quartz.Clear()
	x.quartz.Stop()
	x.started.Store(x.quartz.IsStarted())
	x.mu.Unlock()

	// running jobs may still call back into the scheduler
	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartz.Wait(ctx)

	x.logger.Info("actor timers scheduler stopped...:)")
	return nil
}

// ScheduleTimer implements actor.Scheduler.
func (x *Local) ScheduleTimer(_ context.Context, actorType string, actorID actor.ID, name string, params *actor.TimerParams) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	fire := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			if err := x.invoker.InvokeTimer(ctx, actorType, actorID, name); err != nil {
				x.logger.Warnf("Timer (%s) on actor (%s/%s) failed: %v", name, actorType, actorID, err)
				return false, err
			}
			return true, nil
		},
	)

	return x.schedule(jobKey("timer", actorType, actorID, name), fire, newTrigger(params.DueTime, params.Period, params.TTL))
}

// CancelTimer implements actor.Scheduler.
func (x *Local) CancelTimer(_ context.Context, actorType string, actorID actor.ID, name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.unschedule(jobKey("timer", actorType, actorID, name))
	return nil
}

// ScheduleReminder implements actor.Scheduler.
// Reminders are delivered with their JSON wire encoding.
func (x *Local) ScheduleReminder(_ context.Context, actorType string, actorID actor.ID, name string, params *actor.ReminderParams) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return err
	}

	fire := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			if err := x.invoker.InvokeReminder(ctx, actorType, actorID, name, payload); err != nil {
				x.logger.Warnf("Reminder (%s) on actor (%s/%s) failed: %v", name, actorType, actorID, err)
				return false, err
			}
			return true, nil
		},
	)

	return x.schedule(jobKey("reminder", actorType, actorID, name), fire, newTrigger(params.DueTime, params.Period, 0))
}

// CancelReminder implements actor.Scheduler.
func (x *Local) CancelReminder(_ context.Context, actorType string, actorID actor.ID, name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.unschedule(jobKey("reminder", actorType, actorID, name))
	return nil
}

// Len returns the number of jobs still scheduled
func (x *Local) Len() int {
	keys, err := x.quartz.GetJobKeys()
	if err != nil {
		return 0
	}
	return len(keys)
}

// IsStarted reports whether the scheduler is running
func (x *Local) IsStarted() bool {
	return x.started.Load()
}

// schedule replaces any job registered under key. Callers hold the lock.
func (x *Local) schedule(key string, fire quartz.Job, trigger quartz.Trigger) error {
	x.unschedule(key)
	detail := quartz.NewJobDetail(fire, quartz.NewJobKey(key))
	if err := x.quartz.ScheduleJob(detail, trigger); err != nil {
		x.logger.Errorf("Failed to schedule job (%s): %v", key, err)
		return err
	}
	return nil
}

// unschedule removes the job if it exists. Callers hold the lock.
func (x *Local) unschedule(key string) {
	_ = x.quartz.DeleteJob(quartz.NewJobKey(key))
}

func jobKey(kind, actorType string, actorID actor.ID, name string) string {
	return strings.Join([]string{kind, actorType, actorID.String(), name}, "||")
}

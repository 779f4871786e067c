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
)

// Scheduler drives the timers and reminders registered by actor instances.
// Implementations call back into the runtime with InvokeTimer and InvokeReminder.
type Scheduler interface {
	// ScheduleTimer arms a timer, replacing any timer with the same name.
	ScheduleTimer(ctx context.Context, actorType string, actorID ID, name string, params *TimerParams) error
	// CancelTimer disarms a timer. Unknown timers are ignored.
	CancelTimer(ctx context.Context, actorType string, actorID ID, name string) error
	// ScheduleReminder arms a reminder, replacing any reminder with the same name.
	ScheduleReminder(ctx context.Context, actorType string, actorID ID, name string, params *ReminderParams) error
	// CancelReminder disarms a reminder. Unknown reminders are ignored.
	CancelReminder(ctx context.Context, actorType string, actorID ID, name string) error
}

// noopScheduler only lets timers be recorded on the live instance.
type noopScheduler struct{}

var _ Scheduler = noopScheduler{}

func (noopScheduler) ScheduleTimer(context.Context, string, ID, string, *TimerParams) error {
	return nil
}

func (noopScheduler) CancelTimer(context.Context, string, ID, string) error {
	return nil
}

func (noopScheduler) ScheduleReminder(context.Context, string, ID, string, *ReminderParams) error {
	return nil
}

func (noopScheduler) CancelReminder(context.Context, string, ID, string) error {
	return nil
}

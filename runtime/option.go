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

package runtime

import (
	"time"

	"github.com/tochemey/actorhost/codec"
	"github.com/tochemey/actorhost/log"
	"github.com/tochemey/actorhost/telemetry"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(runtime *Runtime)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Runtime)

// Apply applies the option
func (f OptionFunc) Apply(r *Runtime) {
	f(r)
}

// WithLogger sets the runtime logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(r *Runtime) {
		r.logger = logger
	})
}

// WithSerializer sets the serializer used for payloads, results and actor state
func WithSerializer(serializer codec.Serializer) Option {
	return OptionFunc(func(r *Runtime) {
		r.serializer = serializer
	})
}

// WithTurnBasedConcurrency makes the runtime run at most one activation,
// invocation or deactivation at a time per actor id.
// Enable it when the caller does not already provide that guarantee.
func WithTurnBasedConcurrency(enabled bool) Option {
	return OptionFunc(func(r *Runtime) {
		r.turnBased = enabled
	})
}

// WithScheduler sets the timers and reminders driver.
// Without a scheduler timers are only recorded on the live instances.
func WithScheduler(scheduler Scheduler) Option {
	return OptionFunc(func(r *Runtime) {
		r.scheduler = scheduler
	})
}

// WithTelemetry sets the tracer and meter used by the runtime
func WithTelemetry(telemetry *telemetry.Telemetry) Option {
	return OptionFunc(func(r *Runtime) {
		r.telemetry = telemetry
	})
}

// WithDrainTimeout sets how long Stop waits for the active actors to be deactivated
func WithDrainTimeout(timeout time.Duration) Option {
	return OptionFunc(func(r *Runtime) {
		r.drainTimeout = timeout
	})
}

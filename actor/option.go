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
	"github.com/tochemey/actorhost/codec"
	"github.com/tochemey/actorhost/internal/locker"
	"github.com/tochemey/actorhost/log"
)

// ManagerOption is the interface that applies a Manager configuration option.
type ManagerOption interface {
	// Apply sets the Option value of a config.
	Apply(manager *Manager)
}

// enforce compilation error
var _ ManagerOption = ManagerOptionFunc(nil)

// ManagerOptionFunc implements the ManagerOption interface.
type ManagerOptionFunc func(*Manager)

// Apply applies the option
func (f ManagerOptionFunc) Apply(m *Manager) {
	f(m)
}

// WithManagerLogger sets the manager logger
func WithManagerLogger(logger log.Logger) ManagerOption {
	return ManagerOptionFunc(func(m *Manager) {
		m.logger = logger
	})
}

// WithManagerSerializer sets the serializer used for payloads, results and state
func WithManagerSerializer(serializer codec.Serializer) ManagerOption {
	return ManagerOptionFunc(func(m *Manager) {
		m.serializer = serializer
	})
}

// WithManagerLocker serializes activation, invocation and deactivation per actor id.
// Use it when the caller does not already guarantee one turn at a time per actor.
func WithManagerLocker(lock *locker.Keyed) ManagerOption {
	return ManagerOptionFunc(func(m *Manager) {
		m.locker = lock
	})
}

// WithManagerScheduler sets the timer and reminder scheduler
func WithManagerScheduler(scheduler Scheduler) ManagerOption {
	return ManagerOptionFunc(func(m *Manager) {
		m.scheduler = scheduler
	})
}

// WithManagerMetrics sets the metrics recorder
func WithManagerMetrics(metrics Metrics) ManagerOption {
	return ManagerOptionFunc(func(m *Manager) {
		m.metrics = metrics
	})
}

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
	"time"
)

// Metrics records the activity of a Manager.
type Metrics interface {
	// RecordActivation is called after an instance becomes active.
	RecordActivation(ctx context.Context, actorType string)
	// RecordDeactivation is called after an active instance is removed.
	RecordDeactivation(ctx context.Context, actorType string)
	// RecordInvocation is called once an invocation completes, err being its outcome.
	RecordInvocation(ctx context.Context, actorType string, callType CallType, latency time.Duration, err error)
}

type noopMetrics struct{}

var _ Metrics = noopMetrics{}

func (noopMetrics) RecordActivation(context.Context, string)   {}
func (noopMetrics) RecordDeactivation(context.Context, string) {}
func (noopMetrics) RecordInvocation(context.Context, string, CallType, time.Duration, error) {
}

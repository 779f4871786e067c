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

package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/actorhost/actor"
)

const (
	activationsCounterName   = "actorhost.actor.activations"
	deactivationsCounterName = "actorhost.actor.deactivations"
	invocationsCounterName   = "actorhost.actor.invocations"
	failuresCounterName      = "actorhost.actor.invocation.failures"
	durationHistogramName    = "actorhost.actor.invocation.duration"
	activeUpDownCounterName  = "actorhost.actor.active"
	actorTypeAttributeKey    = "actor.type"
	callTypeAttributeKey     = "actor.call_type"
)

// Metrics define the instruments recorded for every actor type
type Metrics struct {
	// captures the number of activations
	ActivationsCount metric.Int64Counter
	// captures the number of deactivations
	DeactivationsCount metric.Int64Counter
	// captures the number of methods, timers and reminders invoked
	InvocationsCount metric.Int64Counter
	// captures the number of failed invocations
	FailuresCount metric.Int64Counter
	// captures the latency of invocations
	DurationHistogram metric.Float64Histogram
	// captures the number of active instances
	ActiveCount metric.Int64UpDownCounter
}

// enforce compilation error
var _ actor.Metrics = (*Metrics)(nil)

// NewMetrics creates an instance of Metrics
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	metrics := new(Metrics)
	var err error

	if metrics.ActivationsCount, err = meter.Int64Counter(
		activationsCounterName,
		metric.WithDescription("The total number of actor activations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create activations count instrument, %v", err)
	}

	if metrics.DeactivationsCount, err = meter.Int64Counter(
		deactivationsCounterName,
		metric.WithDescription("The total number of actor deactivations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deactivations count instrument, %v", err)
	}

	if metrics.InvocationsCount, err = meter.Int64Counter(
		invocationsCounterName,
		metric.WithDescription("The total number of invocations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create invocations count instrument, %v", err)
	}

	if metrics.FailuresCount, err = meter.Int64Counter(
		failuresCounterName,
		metric.WithDescription("The total number of failed invocations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failures count instrument, %v", err)
	}

	if metrics.DurationHistogram, err = meter.Float64Histogram(
		durationHistogramName,
		metric.WithDescription("The latency of invocations in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create latency instrument, %v", err)
	}

	if metrics.ActiveCount, err = meter.Int64UpDownCounter(
		activeUpDownCounterName,
		metric.WithDescription("The number of active actors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create active count instrument, %v", err)
	}

	return metrics, nil
}

// RecordActivation implements actor.Metrics.
func (x *Metrics) RecordActivation(ctx context.Context, actorType string) {
	attrs := metric.WithAttributes(attribute.String(actorTypeAttributeKey, actorType))
	x.ActivationsCount.Add(ctx, 1, attrs)
	x.ActiveCount.Add(ctx, 1, attrs)
}

// RecordDeactivation implements actor.Metrics.
func (x *Metrics) RecordDeactivation(ctx context.Context, actorType string) {
	attrs := metric.WithAttributes(attribute.String(actorTypeAttributeKey, actorType))
	x.DeactivationsCount.Add(ctx, 1, attrs)
	x.ActiveCount.Add(ctx, -1, attrs)
}

// RecordInvocation implements actor.Metrics.
func (x *Metrics) RecordInvocation(ctx context.Context, actorType string, callType actor.CallType, latency time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String(actorTypeAttributeKey, actorType),
		attribute.String(callTypeAttributeKey, callType.String()),
	)

	x.InvocationsCount.Add(ctx, 1, attrs)
	x.DurationHistogram.Record(ctx, float64(latency)/float64(time.Millisecond), attrs)
	if err != nil {
		x.FailuresCount.Add(ctx, 1, attrs)
	}
}

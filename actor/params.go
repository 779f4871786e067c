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
	"encoding/json"
	"fmt"
	"time"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/internal/duration"
)

// NoPeriod is the period of reminders and timers that fire once.
// Any negative period is encoded the same way.
const NoPeriod = duration.Unset

// ReminderParams describes a reminder as exchanged with the sidecar.
type ReminderParams struct {
	// Data is the opaque reminder state.
	Data []byte
	// DueTime is the delay before the first delivery. It is never negative.
	DueTime time.Duration
	// Period is the interval between deliveries. A negative period fires once.
	Period time.Duration
}

// NewReminderParams creates and validates reminder parameters
func NewReminderParams(data []byte, dueTime, period time.Duration) (*ReminderParams, error) {
	params := &ReminderParams{
		Data:    data,
		DueTime: dueTime,
		Period:  period,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the duration invariants
func (x *ReminderParams) Validate() error {
	if err := validateSchedule(x.DueTime, x.Period); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidReminderParams, err)
	}
	return nil
}

// Repeats reports whether the reminder fires more than once
func (x *ReminderParams) Repeats() bool {
	return x.Period >= 0
}

type reminderParamsJSON struct {
	Data    []byte `json:"data,omitempty"`
	DueTime string `json:"dueTime"`
	Period  string `json:"period"`
}

// MarshalJSON encodes the reminder using the sidecar duration text format
func (x *ReminderParams) MarshalJSON() ([]byte, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(reminderParamsJSON{
		Data:    x.Data,
		DueTime: duration.Format(x.DueTime),
		Period:  duration.Format(x.Period),
	})
}

// UnmarshalJSON decodes a reminder encoded with MarshalJSON
func (x *ReminderParams) UnmarshalJSON(data []byte) error {
	var raw reminderParamsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidReminderParams, err)
	}

	dueTime, err := parseDueTime(raw.DueTime)
	if err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidReminderParams, err)
	}

	period, err := duration.Parse(raw.Period)
	if err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidReminderParams, err)
	}

	*x = ReminderParams{Data: raw.Data, DueTime: dueTime, Period: period}
	return x.Validate()
}

// TimerParams describes a timer registered by a live actor instance.
type TimerParams struct {
	// Callback is the name of the method invoked when the timer fires.
	Callback string
	// Data is passed to the callback as its payload.
	Data []byte
	// DueTime is the delay before the first firing. It is never negative.
	DueTime time.Duration
	// Period is the interval between firings. A negative period fires once.
	Period time.Duration
	// TTL bounds the lifetime of a repeating timer. Zero means no bound.
	TTL time.Duration
}

// NewTimerParams creates and validates timer parameters
func NewTimerParams(callback string, data []byte, dueTime, period time.Duration) (*TimerParams, error) {
	params := &TimerParams{
		Callback: callback,
		Data:     data,
		DueTime:  dueTime,
		Period:   period,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// WithTTL returns a copy of the parameters bounded by the given time to live
func (x *TimerParams) WithTTL(ttl time.Duration) *TimerParams {
	clone := *x
	clone.TTL = ttl
	return &clone
}

// Validate checks the callback and duration invariants
func (x *TimerParams) Validate() error {
	if x.Callback == "" {
		return fmt.Errorf("%w: callback method is required", gerrors.ErrInvalidTimerParams)
	}
	if x.TTL < 0 {
		return fmt.Errorf("%w: ttl=(%s) must not be negative", gerrors.ErrInvalidTimerParams, x.TTL)
	}
	if err := validateSchedule(x.DueTime, x.Period); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidTimerParams, err)
	}
	return nil
}

// Repeats reports whether the timer fires more than once
func (x *TimerParams) Repeats() bool {
	return x.Period >= 0
}

type timerParamsJSON struct {
	Callback string `json:"callback"`
	Data     []byte `json:"data,omitempty"`
	DueTime  string `json:"dueTime"`
	Period   string `json:"period"`
	TTL      string `json:"ttl,omitempty"`
}

// MarshalJSON encodes the timer using the sidecar duration text format
func (x *TimerParams) MarshalJSON() ([]byte, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	raw := timerParamsJSON{
		Callback: x.Callback,
		Data:     x.Data,
		DueTime:  duration.Format(x.DueTime),
		Period:   duration.Format(x.Period),
	}
	if x.TTL > 0 {
		raw.TTL = duration.Format(x.TTL)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a timer encoded with MarshalJSON
func (x *TimerParams) UnmarshalJSON(data []byte) error {
	var raw timerParamsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidTimerParams, err)
	}

	dueTime, err := parseDueTime(raw.DueTime)
	if err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidTimerParams, err)
	}

	period, err := duration.Parse(raw.Period)
	if err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidTimerParams, err)
	}

	var ttl time.Duration
	if raw.TTL != "" {
		if ttl, err = duration.Parse(raw.TTL); err != nil {
			return fmt.Errorf("%w: %w", gerrors.ErrInvalidTimerParams, err)
		}
	}

	*x = TimerParams{
		Callback: raw.Callback,
		Data:     raw.Data,
		DueTime:  dueTime,
		Period:   period,
		TTL:      ttl,
	}
	return x.Validate()
}

func validateSchedule(dueTime, period time.Duration) error {
	if dueTime < 0 {
		return fmt.Errorf("dueTime=(%s) must not be negative", dueTime)
	}
	if period < NoPeriod {
		return fmt.Errorf("period=(%s) must not be lower than %s", period, NoPeriod)
	}
	return nil
}

// parseDueTime reads an absent due time as an immediate firing
func parseDueTime(text string) (time.Duration, error) {
	if text == "" {
		return 0, nil
	}
	return duration.Parse(text)
}

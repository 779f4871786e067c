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

package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/reugn/go-quartz/quartz"
)

// trigger fires once after dueTime and then every period until the optional
// deadline. A negative or zero period stops it after the first firing.
type trigger struct {
	mu       sync.Mutex
	dueTime  time.Duration
	period   time.Duration
	deadline int64
	fired    bool
}

var _ quartz.Trigger = (*trigger)(nil)

func newTrigger(dueTime, period, ttl time.Duration) *trigger {
	var deadline int64
	if ttl > 0 {
		deadline = time.Now().Add(ttl).UnixNano()
	}
	return &trigger{
		dueTime:  dueTime,
		period:   period,
		deadline: deadline,
	}
}

// NextFireTime returns the next time at which the trigger is scheduled to fire.
func (t *trigger) NextFireTime(prev int64) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var next int64
	switch {
	case !t.fired:
		t.fired = true
		next = prev + t.dueTime.Nanoseconds()
	case t.period > 0:
		next = prev + t.period.Nanoseconds()
	default:
		return 0, quartz.ErrTriggerExpired
	}

	if t.deadline > 0 && next > t.deadline {
		return 0, quartz.ErrTriggerExpired
	}
	return next, nil
}

// Description returns the description of the trigger.
func (t *trigger) Description() string {
	return fmt.Sprintf("DueTimeTrigger::%s::%s", t.dueTime, t.period)
}

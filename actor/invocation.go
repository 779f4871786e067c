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

// CallType tells the source of an invocation.
type CallType int

const (
	// CallTypeMethod is a client method call.
	CallTypeMethod CallType = iota
	// CallTypeTimer is a timer callback.
	CallTypeTimer
	// CallTypeReminder is a reminder delivery.
	CallTypeReminder
)

// String returns the string representation of the call type
func (c CallType) String() string {
	switch c {
	case CallTypeMethod:
		return "method"
	case CallTypeTimer:
		return "timer"
	case CallTypeReminder:
		return "reminder"
	default:
		return "unknown"
	}
}

// InvocationContext is handed to the pre and post invocation hooks.
// Name is the method name for method calls, the timer name for timer
// callbacks and the reminder name for reminders.
type InvocationContext struct {
	callType CallType
	name     string
}

// NewInvocationContext creates an InvocationContext
func NewInvocationContext(callType CallType, name string) *InvocationContext {
	return &InvocationContext{
		callType: callType,
		name:     name,
	}
}

// CallType returns the invocation source
func (x *InvocationContext) CallType() CallType {
	return x.callType
}

// Name returns the logical operation name
func (x *InvocationContext) Name() string {
	return x.name
}

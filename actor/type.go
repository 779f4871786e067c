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
	"errors"
	"fmt"
	"time"

	"github.com/tochemey/actorhost/codec"
	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/internal/validation"
)

// Factory creates an actor instance bound to the given Context.
type Factory func(actorContext *Context) (Actor, error)

// Type describes an actor type: its name, how to build instances,
// the methods they expose and, optionally, how they receive reminders.
type Type struct {
	name     string
	factory  Factory
	methods  *MethodTable
	reminder *ReminderHandler
}

// TypeOption configures a Type
type TypeOption func(*Type)

// WithReminderHandler makes the actor type reminder-capable
func WithReminderHandler(handler *ReminderHandler) TypeOption {
	return func(t *Type) {
		t.reminder = handler
	}
}

// NewType creates an actor type descriptor
func NewType(name string, factory Factory, methods *MethodTable, opts ...TypeOption) (*Type, error) {
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewNameValidator("actor type", name)).
		AddAssertion(factory != nil, "the [factory] is required").
		AddAssertion(methods != nil, "the [method table] is required").
		Validate(); err != nil {
		return nil, errors.Join(gerrors.ErrInvalidActorType, err)
	}

	typ := &Type{
		name:    name,
		factory: factory,
		methods: methods,
	}

	for _, opt := range opts {
		opt(typ)
	}

	return typ, nil
}

// Name returns the actor type name
func (x *Type) Name() string {
	return x.name
}

// Methods returns the method table
func (x *Type) Methods() *MethodTable {
	return x.methods
}

// Remindable reports whether instances of this type receive reminders
func (x *Type) Remindable() bool {
	return x.reminder != nil
}

// ReminderHandler delivers reminders to an actor instance.
type ReminderHandler struct {
	receive func(ctx context.Context, instance Actor, serializer codec.Serializer, name string, params *ReminderParams) error
}

// NewReminderHandler builds the reminder capability of an actor type.
// The reminder data is decoded into S with the manager's serializer; when S is
// []byte the raw data is passed as is. Empty data yields the zero value of S.
func NewReminderHandler[A Actor, S any](fn func(actor A, ctx context.Context, name string, state S, dueTime, period time.Duration) error) *ReminderHandler {
	return &ReminderHandler{
		receive: func(ctx context.Context, instance Actor, serializer codec.Serializer, name string, params *ReminderParams) error {
			receiver, err := receiverOf[A](name, instance)
			if err != nil {
				return err
			}

			var state S
			if len(params.Data) > 0 {
				if raw, ok := any(&state).(*[]byte); ok {
					*raw = params.Data
				} else if err := serializer.Unmarshal(params.Data, &state); err != nil {
					return gerrors.NewErrInvalidPayload(fmt.Errorf("reminder=(%s): %w", name, err))
				}
			}

			return fn(receiver, ctx, name, state, params.DueTime, params.Period)
		},
	}
}

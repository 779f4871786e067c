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
	"fmt"
	"reflect"
	"slices"

	goset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/tochemey/actorhost/errors"
)

// Method is an invocable entry of a method table.
// It is built once at registration time with Method0, Method1, Action0 or Action1.
type Method struct {
	name      string
	arity     int
	paramType reflect.Type
	newParam  func() any
	accepts   func(any) bool
	call      func(ctx context.Context, instance Actor, args []any) (any, error)
}

// Name returns the method name
func (x *Method) Name() string {
	return x.name
}

// Arity returns the number of declared parameters, zero or one
func (x *Method) Arity() int {
	return x.arity
}

// ParamType returns the declared parameter type, nil for zero-parameter methods
func (x *Method) ParamType() reflect.Type {
	return x.paramType
}

// NewParam returns a pointer to a fresh value of the declared parameter type,
// ready to be decoded into. It returns nil for zero-parameter methods.
func (x *Method) NewParam() any {
	if x.newParam == nil {
		return nil
	}
	return x.newParam()
}

// Accepts reports whether value already has the declared parameter type,
// or is a pointer to it, and can be passed without decoding.
func (x *Method) Accepts(value any) bool {
	if x.accepts == nil {
		return false
	}
	return x.accepts(value)
}

// Invoke calls the method on the given instance
func (x *Method) Invoke(ctx context.Context, instance Actor, args ...any) (any, error) {
	return x.call(ctx, instance, args)
}

// Method0 registers a method with no parameter and a result.
func Method0[A Actor, R any](name string, fn func(A, context.Context) (R, error)) *Method {
	return &Method{
		name: name,
		call: func(ctx context.Context, instance Actor, _ []any) (any, error) {
			receiver, err := receiverOf[A](name, instance)
			if err != nil {
				return nil, err
			}
			return fn(receiver, ctx)
		},
	}
}

// Method1 registers a method with one parameter and a result.
func Method1[A Actor, P, R any](name string, fn func(A, context.Context, P) (R, error)) *Method {
	method := newMethod1[P](name)
	method.call = func(ctx context.Context, instance Actor, args []any) (any, error) {
		receiver, err := receiverOf[A](name, instance)
		if err != nil {
			return nil, err
		}
		param, err := paramOf[P](name, args)
		if err != nil {
			return nil, err
		}
		return fn(receiver, ctx, param)
	}
	return method
}

// Action0 registers a method with no parameter and no result.
func Action0[A Actor](name string, fn func(A, context.Context) error) *Method {
	return &Method{
		name: name,
		call: func(ctx context.Context, instance Actor, _ []any) (any, error) {
			receiver, err := receiverOf[A](name, instance)
			if err != nil {
				return nil, err
			}
			return nil, fn(receiver, ctx)
		},
	}
}

// Action1 registers a method with one parameter and no result.
func Action1[A Actor, P any](name string, fn func(A, context.Context, P) error) *Method {
	method := newMethod1[P](name)
	method.call = func(ctx context.Context, instance Actor, args []any) (any, error) {
		receiver, err := receiverOf[A](name, instance)
		if err != nil {
			return nil, err
		}
		param, err := paramOf[P](name, args)
		if err != nil {
			return nil, err
		}
		return nil, fn(receiver, ctx, param)
	}
	return method
}

func newMethod1[P any](name string) *Method {
	return &Method{
		name:      name,
		arity:     1,
		paramType: reflect.TypeFor[P](),
		newParam:  func() any { return new(P) },
		accepts: func(value any) bool {
			switch value.(type) {
			case P, *P:
				return true
			default:
				return false
			}
		},
	}
}

func receiverOf[A Actor](name string, instance Actor) (A, error) {
	receiver, ok := instance.(A)
	if !ok {
		var zero A
		return zero, fmt.Errorf("method=(%s) expects receiver (%T), got (%T): %w", name, zero, instance, gerrors.ErrInvalidActorType)
	}
	return receiver, nil
}

// paramOf reads the single argument of a one-parameter method.
// A missing or nil argument yields the zero value of P.
func paramOf[P any](name string, args []any) (P, error) {
	var zero P
	if len(args) == 0 || args[0] == nil {
		return zero, nil
	}

	switch value := args[0].(type) {
	case P:
		return value, nil
	case *P:
		if value == nil {
			return zero, nil
		}
		return *value, nil
	default:
		return zero, gerrors.NewErrInvalidPayload(fmt.Errorf("method=(%s) expects (%T), got (%T)", name, zero, args[0]))
	}
}

// MethodTable resolves method names to their descriptors.
// A table built with Extend overrides its parent's entries and delegates
// every other name to it.
type MethodTable struct {
	parent  *MethodTable
	methods map[string]*Method
}

// NewMethodTable creates a method table from the given methods
func NewMethodTable(methods ...*Method) (*MethodTable, error) {
	return newMethodTable(nil, methods)
}

// Extend creates a child table that overrides or adds the given methods
func (x *MethodTable) Extend(methods ...*Method) (*MethodTable, error) {
	return newMethodTable(x, methods)
}

// Resolve returns the method registered under name. Own entries win over
// inherited ones.
func (x *MethodTable) Resolve(name string) (*Method, bool) {
	for table := x; table != nil; table = table.parent {
		if method, ok := table.methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

// Names returns the sorted names resolvable through the table
func (x *MethodTable) Names() []string {
	names := goset.NewThreadUnsafeSet[string]()
	for table := x; table != nil; table = table.parent {
		for name := range table.methods {
			names.Add(name)
		}
	}
	sorted := names.ToSlice()
	slices.Sort(sorted)
	return sorted
}

// Len returns the number of resolvable names
func (x *MethodTable) Len() int {
	return len(x.Names())
}

func newMethodTable(parent *MethodTable, methods []*Method) (*MethodTable, error) {
	table := &MethodTable{
		parent:  parent,
		methods: make(map[string]*Method, len(methods)),
	}

	for _, method := range methods {
		if method == nil || method.name == "" {
			return nil, fmt.Errorf("method without name: %w", gerrors.ErrInvalidArgument)
		}
		if _, ok := table.methods[method.name]; ok {
			return nil, fmt.Errorf("method=(%s) %w", method.name, gerrors.ErrDuplicateMethod)
		}
		table.methods[method.name] = method
	}
	return table, nil
}

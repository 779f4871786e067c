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

// Package testkit helps actor authors test their actor types against a real
// runtime backed by a recording state provider.
package testkit

import (
	"context"
	"testing"

	"github.com/tochemey/actorhost/actor"
	"github.com/tochemey/actorhost/codec"
	"github.com/tochemey/actorhost/log"
	"github.com/tochemey/actorhost/runtime"
)

// TestKit defines the actor test kit
type TestKit struct {
	runtime    *runtime.Runtime
	provider   *Provider
	serializer codec.Serializer
	kt         *testing.T
	logger     log.Logger
}

// New creates and starts a TestKit hosting the given actor types
func New(ctx context.Context, t *testing.T, actorTypes []*actor.Type, opts ...Option) *TestKit {
	// create the testkit instance
	testkit := &TestKit{
		provider:   NewProvider(),
		serializer: codec.NewJSON(),
		kt:         t,
		logger:     log.DiscardLogger,
	}

	// apply the various options
	for _, opt := range opts {
		opt.Apply(testkit)
	}

	rt, err := runtime.New(testkit.provider,
		runtime.WithLogger(testkit.logger),
		runtime.WithSerializer(testkit.serializer),
		runtime.WithTurnBasedConcurrency(true))
	if err != nil {
		t.Fatal(err.Error())
	}

	for _, actorType := range actorTypes {
		if err := rt.Register(actorType); err != nil {
			t.Fatal(err.Error())
		}
	}

	if err := rt.Start(ctx); err != nil {
		t.Fatal(err.Error())
	}

	testkit.runtime = rt
	return testkit
}

// Runtime returns the runtime under test
func (k *TestKit) Runtime() *runtime.Runtime {
	return k.runtime
}

// Provider returns the recording state provider
func (k *TestKit) Provider() *Provider {
	return k.provider
}

// Activate activates an actor
func (k *TestKit) Activate(ctx context.Context, actorType string, actorID actor.ID) {
	if err := k.runtime.Activate(ctx, actorType, actorID); err != nil {
		k.kt.Fatal(err.Error())
	}
}

// Deactivate deactivates an actor
func (k *TestKit) Deactivate(ctx context.Context, actorType string, actorID actor.ID) {
	if err := k.runtime.Deactivate(ctx, actorType, actorID); err != nil {
		k.kt.Fatal(err.Error())
	}
}

// Invoke calls a method that is expected to succeed and returns its raw result
func (k *TestKit) Invoke(ctx context.Context, actorType string, actorID actor.ID, method string, payload any) []byte {
	result, err := k.runtime.InvokeMethod(ctx, actorType, actorID, method, payload)
	if err != nil {
		k.kt.Fatal(err.Error())
	}
	return result
}

// InvokeInto calls a method that is expected to succeed and decodes its result into target
func (k *TestKit) InvokeInto(ctx context.Context, actorType string, actorID actor.ID, method string, payload, target any) {
	result := k.Invoke(ctx, actorType, actorID, method, payload)
	if err := k.serializer.Unmarshal(result, target); err != nil {
		k.kt.Fatal(err.Error())
	}
}

// ExpectState asserts that the store holds the given value for a state
func (k *TestKit) ExpectState(actorType string, actorID actor.ID, stateName string, expected any) {
	k.kt.Helper()
	value, found, err := k.provider.Memory.Load(context.Background(), actorType, actorID.String(), stateName)
	if err != nil {
		k.kt.Fatal(err.Error())
	}

	if !found {
		k.kt.Fatalf("state (%s) of actor (%s/%s) not found", stateName, actorType, actorID)
	}

	want, err := k.serializer.Marshal(expected)
	if err != nil {
		k.kt.Fatal(err.Error())
	}

	if string(want) != string(value) {
		k.kt.Fatalf("state (%s) of actor (%s/%s): expected %s, got %s", stateName, actorType, actorID, want, value)
	}
}

// ExpectNoState asserts that the store holds nothing for a state
func (k *TestKit) ExpectNoState(actorType string, actorID actor.ID, stateName string) {
	k.kt.Helper()
	exists, err := k.provider.Memory.Contains(context.Background(), actorType, actorID.String(), stateName)
	if err != nil {
		k.kt.Fatal(err.Error())
	}

	if exists {
		k.kt.Fatalf("state (%s) of actor (%s/%s) unexpectedly found", stateName, actorType, actorID)
	}
}

// Shutdown stops the test kit
func (k *TestKit) Shutdown(ctx context.Context) {
	if err := k.runtime.Stop(ctx); err != nil {
		k.kt.Fatal(err.Error())
	}
}

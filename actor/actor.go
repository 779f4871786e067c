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
)

// Actor is the contract of application-authored actor instances.
//
// Hooks run inside the invocation turn: OnPreInvoke before the target method,
// timer callback or reminder handler, and OnPostInvoke once its outcome is known.
// Errors returned by any hook reach the caller unchanged.
type Actor interface {
	// OnActivate is called once the instance is created and before it is
	// reachable by invocations.
	OnActivate(ctx context.Context) error
	// OnDeactivate is called after the instance has been removed from the
	// active registry.
	OnDeactivate(ctx context.Context) error
	// OnPreInvoke is called before every invocation.
	OnPreInvoke(ctx context.Context, invocation *InvocationContext) error
	// OnPostInvoke is called after every invocation, whether it failed or not.
	OnPostInvoke(ctx context.Context, invocation *InvocationContext) error
}

// NoopHooks implements every Actor hook as a no-op.
// Embed it in actors that only care about some of the hooks.
type NoopHooks struct{}

// OnActivate implements Actor.
func (NoopHooks) OnActivate(context.Context) error { return nil }

// OnDeactivate implements Actor.
func (NoopHooks) OnDeactivate(context.Context) error { return nil }

// OnPreInvoke implements Actor.
func (NoopHooks) OnPreInvoke(context.Context, *InvocationContext) error { return nil }

// OnPostInvoke implements Actor.
func (NoopHooks) OnPostInvoke(context.Context, *InvocationContext) error { return nil }

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

// Package state defines the backing store contract used by the actor state
// manager, together with the transactional operations it submits.
package state

import (
	"context"
	"strings"
)

// KeySeparator joins the actor type, actor id and state name into a store key.
const KeySeparator = "||"

// Provider is the backing store of actor state.
//
// Every call is scoped to one actor instance. Apply must be all-or-nothing:
// either every operation is visible afterwards or none is.
type Provider interface {
	// Load returns the encoded value of the given state. The boolean is false
	// when the store holds nothing for that name.
	Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error)
	// Contains reports whether the store holds the given state.
	Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error)
	// Apply submits the operations as a single transaction.
	Apply(ctx context.Context, actorType, actorID string, operations []Operation) error
}

// Key builds the store key of an actor state.
func Key(actorType, actorID, stateName string) string {
	return strings.Join([]string{actorType, actorID, stateName}, KeySeparator)
}

// Prefix builds the key prefix shared by every state of an actor instance.
func Prefix(actorType, actorID string) string {
	return actorType + KeySeparator + actorID + KeySeparator
}

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
	"errors"

	"github.com/google/uuid"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/internal/validation"
)

// ID identifies an actor instance within its actor type.
// IDs compare by value and can be used as map keys.
type ID string

// NewID validates the given value and returns it as an ID.
func NewID(value string) (ID, error) {
	if err := validation.NewNameValidator("actor id", value).Validate(); err != nil {
		return "", errors.Join(gerrors.ErrInvalidActorID, err)
	}
	return ID(value), nil
}

// NewRandomID returns a UUID-backed ID
func NewRandomID() ID {
	return ID(uuid.NewString())
}

// String returns the string representation of the ID
func (x ID) String() string {
	return string(x)
}

// IsZero reports whether the ID is empty
func (x ID) IsZero() bool {
	return x == ""
}

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

package state

import (
	"fmt"

	gerrors "github.com/tochemey/actorhost/errors"
)

// OperationType is the kind of a transactional state operation.
type OperationType string

const (
	// Upsert creates or replaces a state value.
	Upsert OperationType = "upsert"
	// Delete removes a state value.
	Delete OperationType = "delete"
)

// Request is the payload of an operation. Value is empty for deletes.
type Request struct {
	Key   string `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// Operation is a single write submitted through Provider.Apply.
// Request.Key holds the state name; providers derive the store key with Key.
type Operation struct {
	Operation OperationType `json:"operation"`
	Request   Request       `json:"request"`
}

// NewUpsert creates an upsert operation
func NewUpsert(stateName string, value []byte) Operation {
	return Operation{
		Operation: Upsert,
		Request:   Request{Key: stateName, Value: value},
	}
}

// NewDelete creates a delete operation
func NewDelete(stateName string) Operation {
	return Operation{
		Operation: Delete,
		Request:   Request{Key: stateName},
	}
}

// Validate checks the operation shape
func (o Operation) Validate() error {
	if o.Request.Key == "" {
		return fmt.Errorf("state operation without key: %w", gerrors.ErrInvalidArgument)
	}

	switch o.Operation {
	case Upsert, Delete:
		return nil
	default:
		return fmt.Errorf("state operation=(%s): %w", o.Operation, gerrors.ErrInvalidArgument)
	}
}

// ValidateAll validates a batch of operations, stopping on the first invalid one.
func ValidateAll(operations []Operation) error {
	for _, operation := range operations {
		if err := operation.Validate(); err != nil {
			return err
		}
	}
	return nil
}

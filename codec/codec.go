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

// Package codec provides the payload serializers used to decode method
// parameters and reminder state and to encode method results.
package codec

import (
	"errors"
)

var (
	// ErrNilValue is returned when marshaling a nil value.
	ErrNilValue = errors.New("codec: value is nil")
	// ErrSerializeFailed wraps an underlying encoding failure.
	ErrSerializeFailed = errors.New("codec: failed to serialize value")
	// ErrDeserializeFailed wraps an underlying decoding failure.
	ErrDeserializeFailed = errors.New("codec: failed to deserialize value")
	// ErrUnsupportedType is returned when a serializer cannot handle the given Go type.
	ErrUnsupportedType = errors.New("codec: unsupported type")
)

// Serializer converts values to and from their wire representation.
//
// Unmarshal decodes into target, which must be a non-nil pointer.
// Implementations are stateless and safe for concurrent use.
type Serializer interface {
	// Marshal encodes the given value.
	Marshal(value any) ([]byte, error)
	// Unmarshal decodes data into target.
	Unmarshal(data []byte, target any) error
	// ContentType returns the media type of the encoded payloads.
	ContentType() string
}

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

package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Proto encodes protocol buffer messages in their binary wire format.
// Values that are not proto.Message fail with ErrUnsupportedType.
type Proto struct{}

// enforce compilation error
var _ Serializer = Proto{}

// NewProto returns the protobuf serializer
func NewProto() Proto {
	return Proto{}
}

// Marshal implements Serializer.
func (Proto) Marshal(value any) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	message, ok := value.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("type=(%T) %w", value, ErrUnsupportedType)
	}
	bytea, err := proto.Marshal(message)
	if err != nil {
		return nil, errors.Join(ErrSerializeFailed, err)
	}
	return bytea, nil
}

// Unmarshal implements Serializer.
func (Proto) Unmarshal(data []byte, target any) error {
	message, ok := target.(proto.Message)
	if !ok {
		return fmt.Errorf("type=(%T) %w", target, ErrUnsupportedType)
	}
	if err := proto.Unmarshal(data, message); err != nil {
		return errors.Join(ErrDeserializeFailed, err)
	}
	return nil
}

// ContentType implements Serializer.
func (Proto) ContentType() string {
	return "application/x-protobuf"
}

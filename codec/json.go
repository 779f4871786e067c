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
	"encoding/json"
	"errors"
)

// JSON is the default Serializer. It encodes values with encoding/json.
type JSON struct{}

// enforce compilation error
var _ Serializer = JSON{}

// NewJSON returns the JSON serializer
func NewJSON() JSON {
	return JSON{}
}

// Marshal implements Serializer.
func (JSON) Marshal(value any) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	bytea, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrSerializeFailed, err)
	}
	return bytea, nil
}

// Unmarshal implements Serializer.
func (JSON) Unmarshal(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Join(ErrDeserializeFailed, err)
	}
	return nil
}

// ContentType implements Serializer.
func (JSON) ContentType() string {
	return "application/json"
}

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

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// CBOR encodes values using the Concise Binary Object Representation.
// Keys are sorted canonically so equal values produce equal bytes.
type CBOR struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

// enforce compilation error
var _ Serializer = (*CBOR)(nil)

// NewCBOR returns a ready-to-use CBOR serializer
func NewCBOR() *CBOR {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()
	return &CBOR{encMode: encMode, decMode: decMode}
}

// Marshal implements Serializer.
func (x *CBOR) Marshal(value any) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	bytea, err := x.encMode.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrSerializeFailed, err)
	}
	return bytea, nil
}

// Unmarshal implements Serializer.
func (x *CBOR) Unmarshal(data []byte, target any) error {
	if err := x.decMode.Unmarshal(data, target); err != nil {
		return errors.Join(ErrDeserializeFailed, err)
	}
	return nil
}

// ContentType implements Serializer.
func (x *CBOR) ContentType() string {
	return "application/cbor"
}

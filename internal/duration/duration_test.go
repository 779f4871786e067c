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

package duration

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/actorhost/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s0ms"},
		{"negative", -1 * time.Second, ""},
		{"unset", Unset, ""},
		{"seconds", 3 * time.Second, "0h0m3s0ms"},
		{"minutes and seconds", 1*time.Minute + 30*time.Second, "0h1m30s0ms"},
		{"all units", 4*time.Hour + 15*time.Minute + 50*time.Second + 60*time.Millisecond, "4h15m50s60ms"},
		{"hours beyond a day", 26*time.Hour + 10*time.Millisecond, "26h0m0s10ms"},
		{"sub millisecond dropped", 7*time.Second + 10*time.Millisecond + 999*time.Microsecond, "0h0m7s10ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, d := range []time.Duration{
			0,
			time.Millisecond,
			3 * time.Second,
			7*time.Second + 10*time.Millisecond,
			49*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond,
		} {
			parsed, err := Parse(Format(d))
			require.NoError(t, err)
			assert.Equal(t, d, parsed)
		}
	})

	t.Run("empty text is unset", func(t *testing.T) {
		parsed, err := Parse("")
		require.NoError(t, err)
		assert.Equal(t, Unset, parsed)
	})

	t.Run("partial units", func(t *testing.T) {
		parsed, err := Parse("1m")
		require.NoError(t, err)
		assert.Equal(t, time.Minute, parsed)

		parsed, err = Parse("500ms")
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, parsed)

		parsed, err = Parse("1h30m")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, parsed)

		parsed, err = Parse("2s5ms")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second+5*time.Millisecond, parsed)
	})

	t.Run("largest representable text", func(t *testing.T) {
		d, err := Parse("2562047h47m16s854ms")
		require.NoError(t, err)
		assert.Equal(t, time.Duration(math.MaxInt64).Truncate(time.Millisecond), d)
	})

	t.Run("invalid texts", func(t *testing.T) {
		for _, text := range []string{"5", "h", "1d", "1s1h", "1m1m", "-1s", "1h 2m", "PT1S", "99999999999999999999h",
			"2562048h", "3000000h", "9223372036854m", "9223372036855s", "9223372036855ms",
			"2562047h59m", "2562047h47m16s854ms"} {
			_, err := Parse(text)
			require.Error(t, err, text)
			assert.ErrorIs(t, err, gerrors.ErrInvalidDuration, text)
		}
	})
}

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
	"strconv"
	"strings"
	"time"

	gerrors "github.com/tochemey/actorhost/errors"
)

// Unset is the decoded value of an empty duration text. Reminders and timers
// read it as "fire once".
const Unset = -time.Millisecond

// Format renders a duration with the sidecar text contract "{h}h{m}m{s}s{ms}ms".
// Hours are not folded into days and precision below a millisecond is dropped.
// A negative duration renders as the empty string.
//
// Examples:
//   - 0 => "0h0m0s0ms"
//   - 90 * time.Second => "0h1m30s0ms"
//   - 26*time.Hour + 10*time.Millisecond => "26h0m0s10ms"
func Format(d time.Duration) string {
	if d < 0 {
		return ""
	}

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond

	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.FormatInt(int64(hours), 10))
	sb.WriteByte('h')
	sb.WriteString(strconv.FormatInt(int64(minutes), 10))
	sb.WriteByte('m')
	sb.WriteString(strconv.FormatInt(int64(seconds), 10))
	sb.WriteByte('s')
	sb.WriteString(strconv.FormatInt(int64(millis), 10))
	sb.WriteString("ms")
	return sb.String()
}

// units in the only order they may appear
var units = []struct {
	suffix string
	value  time.Duration
}{
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
}

// Parse decodes a text produced by Format. Any subset of the units is accepted
// as long as they keep the h, m, s, ms order, so "1m", "500ms" and "1h30m"
// are valid. The empty string decodes to Unset.
func Parse(text string) (time.Duration, error) {
	if text == "" {
		return Unset, nil
	}

	var (
		total time.Duration
		next  int
		rest  = text
	)

	for rest != "" {
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}

		if digits == 0 {
			return 0, gerrors.NewErrInvalidDuration(text)
		}

		value, err := strconv.ParseInt(rest[:digits], 10, 64)
		if err != nil {
			return 0, gerrors.NewErrInvalidDuration(text)
		}

		rest = rest[digits:]
		suffix := unitSuffix(rest)
		index := unitIndex(suffix)
		if index < next {
			return 0, gerrors.NewErrInvalidDuration(text)
		}

		unit := units[index].value
		if value > math.MaxInt64/int64(unit) {
			return 0, gerrors.NewErrInvalidDuration(text)
		}

		part := time.Duration(value) * unit
		if total > math.MaxInt64-part {
			return 0, gerrors.NewErrInvalidDuration(text)
		}

		total += part
		rest = rest[len(suffix):]
		next = index + 1
	}

	return total, nil
}

// unitSuffix reads the unit at the head of s; "ms" wins over "m".
func unitSuffix(s string) string {
	switch {
	case strings.HasPrefix(s, "ms"):
		return "ms"
	case strings.HasPrefix(s, "h"), strings.HasPrefix(s, "m"), strings.HasPrefix(s, "s"):
		return s[:1]
	default:
		return ""
	}
}

// unitIndex returns -1 for an unknown suffix, which always fails the order check.
func unitIndex(suffix string) int {
	for i, unit := range units {
		if unit.suffix == suffix {
			return i
		}
	}
	return -1
}

/*
 * Copyright 2026 The mysql-server Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kernel

import (
	"fmt"

	"github.com/chengnin/mysql-server/eval"
)

// ShiftInt shifts a 64-bit unsigned magnitude. Shift amounts of 64 or more
// yield zero, never undefined behavior.
func ShiftInt(v uint64, shift uint64, left bool) uint64 {
	if shift >= 64 {
		return 0
	}
	if left {
		return v << shift
	}
	return v >> shift
}

// ensureLen returns buf resized to n bytes, reusing its backing array when
// capacity allows.
func ensureLen(buf []byte, n int) []byte {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]byte, n)
}

func combineBytes(buf, a, b []byte, name string, op func(x, y byte) byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: binary operands of %q must be of equal length", eval.ErrInvalidArgument, name)
	}
	buf = ensureLen(buf, len(a))
	for i := range a {
		buf[i] = op(a[i], b[i])
	}
	return buf, nil
}

// AndBytes computes the bitwise AND of two binary strings of equal length
// into buf. A length mismatch is a hard error, not null: the result length
// would be ambiguous.
func AndBytes(buf, a, b []byte) ([]byte, error) {
	return combineBytes(buf, a, b, "&", func(x, y byte) byte { return x & y })
}

// OrBytes computes the bitwise OR of two binary strings of equal length.
func OrBytes(buf, a, b []byte) ([]byte, error) {
	return combineBytes(buf, a, b, "|", func(x, y byte) byte { return x | y })
}

// XorBytes computes the bitwise XOR of two binary strings of equal length.
func XorBytes(buf, a, b []byte) ([]byte, error) {
	return combineBytes(buf, a, b, "^", func(x, y byte) byte { return x ^ y })
}

// NotBytes inverts every bit of a binary string into buf.
func NotBytes(buf, a []byte) []byte {
	buf = ensureLen(buf, len(a))
	for i := range a {
		buf[i] = ^a[i]
	}
	return buf
}

// ShiftBytes shifts a binary string of any length by the given number of
// bits, big-endian: bit 0 is the most significant bit of byte 0. Vacated
// positions are zero-filled and the shift amount is clamped to the total
// bit length, so shifting by 8*len or more clears the buffer.
//
// Example, left shift by 21 bits: byte i receives the low 3 bits of byte
// i+2 (shifted left by 5) ORed with the high 5 bits of byte i+3 (shifted
// right by 3).
func ShiftBytes(buf, a []byte, shift uint64, left bool) []byte {
	n := len(a)
	buf = ensureLen(buf, n)
	if n == 0 {
		return buf
	}
	if total := uint64(n) * 8; shift > total {
		shift = total
	}
	mod := shift % 8
	comp := 8 - mod
	whole := int(shift / 8)

	if left {
		// Bytes of lower index are overwritten by bytes of higher index.
		for i := 0; i < n; i++ {
			switch {
			case i+whole+1 < n:
				buf[i] = a[i+whole]<<mod | a[i+whole+1]>>comp
			case i+whole+1 == n:
				buf[i] = a[i+whole] << mod
			default:
				buf[i] = 0
			}
		}
	} else {
		// Bytes of higher index are overwritten by bytes of lower index.
		for i := n - 1; i >= 0; i-- {
			switch {
			case i-whole > 0:
				buf[i] = a[i-whole]>>mod | a[i-whole-1]<<comp
			case i-whole == 0:
				buf[i] = a[i-whole] >> mod
			default:
				buf[i] = 0
			}
		}
	}
	return buf
}

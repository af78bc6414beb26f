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

package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chengnin/mysql-server/decimal"
)

// Kind tags the domain of a Value or the resolved result domain of an
// expression node.
type Kind uint8

const (
	// KindInt is a signed 64-bit integer.
	KindInt Kind = iota
	// KindUint is an unsigned 64-bit integer.
	KindUint
	// KindReal is a double precision float.
	KindReal
	// KindDecimal is a bounded fixed-point decimal.
	KindDecimal
	// KindBytes is a binary byte string.
	KindBytes
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindReal:
		return "real"
	case KindDecimal:
		return "decimal"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind is one of the numeric domains.
func (k Kind) Numeric() bool {
	return k != KindBytes
}

// Value is a discriminated union over the five domains, plus a null bit.
// The zero Value is a non-null signed integer 0.
type Value struct {
	kind Kind
	null bool
	i    int64 // also carries the uint64 bit pattern for KindUint
	f    float64
	d    *decimal.Decimal
	b    []byte
}

// NewInt returns a signed integer Value.
func NewInt(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// NewUint returns an unsigned integer Value.
func NewUint(v uint64) Value {
	return Value{kind: KindUint, i: int64(v)}
}

// NewFloat returns a double Value.
func NewFloat(v float64) Value {
	return Value{kind: KindReal, f: v}
}

// NewDecimal returns a decimal Value. The decimal is referenced, not copied.
func NewDecimal(d *decimal.Decimal) Value {
	return Value{kind: KindDecimal, d: d}
}

// NewBytes returns a binary string Value. The slice is referenced, not copied.
func NewBytes(b []byte) Value {
	return Value{kind: KindBytes, b: b}
}

// Null returns a null Value of the given domain.
func Null(kind Kind) Value {
	return Value{kind: kind, null: true}
}

// Kind returns the domain tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool { return v.null }

// Int returns the signed integer payload. Valid only for KindInt/KindUint.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned integer payload. Valid only for KindInt/KindUint.
func (v Value) Uint() uint64 { return uint64(v.i) }

// Float returns the double payload. Valid only for KindReal.
func (v Value) Float() float64 { return v.f }

// Decimal returns the decimal payload. Valid only for KindDecimal.
func (v Value) Decimal() *decimal.Decimal { return v.d }

// Bytes returns the byte string payload. Valid only for KindBytes.
func (v Value) Bytes() []byte { return v.b }

// AsInt converts the payload to a 64-bit integer, truncating fractional
// digits toward zero. Byte strings are parsed as leading numeric text.
func (v Value) AsInt() int64 {
	if v.null {
		return 0
	}
	switch v.kind {
	case KindInt, KindUint:
		return v.i
	case KindReal:
		return int64(math.RoundToEven(v.f))
	case KindDecimal:
		n, _ := v.d.ToInt()
		return n
	case KindBytes:
		return parseIntPrefix(v.b)
	}
	return 0
}

// AsFloat converts the payload to a double.
func (v Value) AsFloat() float64 {
	if v.null {
		return 0
	}
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(uint64(v.i))
	case KindReal:
		return v.f
	case KindDecimal:
		return v.d.ToFloat()
	case KindBytes:
		f, _ := strconv.ParseFloat(string(numericPrefix(v.b)), 64)
		return f
	}
	return 0
}

// AsDecimal converts the payload to a decimal, writing into buf and
// returning it. buf must be non-nil.
func (v Value) AsDecimal(buf *decimal.Decimal) *decimal.Decimal {
	if v.null {
		buf.SetZero()
		return buf
	}
	switch v.kind {
	case KindInt:
		buf.SetInt(v.i)
	case KindUint:
		buf.SetUint(uint64(v.i))
	case KindReal:
		buf.SetFloat(v.f)
	case KindDecimal:
		v.d.CopyTo(buf)
	case KindBytes:
		buf.SetString(string(numericPrefix(v.b)))
	}
	return buf
}

// AsBytes renders the payload as a byte string, appending to buf.
func (v Value) AsBytes(buf []byte) []byte {
	if v.null {
		return buf[:0]
	}
	switch v.kind {
	case KindInt:
		return strconv.AppendInt(buf[:0], v.i, 10)
	case KindUint:
		return strconv.AppendUint(buf[:0], uint64(v.i), 10)
	case KindReal:
		return strconv.AppendFloat(buf[:0], v.f, 'g', -1, 64)
	case KindDecimal:
		return append(buf[:0], v.d.String()...)
	case KindBytes:
		return append(buf[:0], v.b...)
	}
	return buf[:0]
}

// String renders the value for diagnostics.
func (v Value) String() string {
	if v.null {
		return "NULL"
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(uint64(v.i), 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.d.String()
	case KindBytes:
		return fmt.Sprintf("%q", v.b)
	}
	return "unknown"
}

// numericPrefix returns the leading portion of b that looks like a decimal
// number, mirroring the permissive string-to-number conversion of the
// surrounding query engine.
func numericPrefix(b []byte) []byte {
	i := 0
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	seenDot := false
	for i < len(b) {
		c := b[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	return b[:i]
}

func parseIntPrefix(b []byte) int64 {
	p := numericPrefix(b)
	if idx := indexByte(p, '.'); idx >= 0 {
		p = p[:idx]
	}
	n, _ := strconv.ParseInt(string(p), 10, 64)
	return n
}

func indexByte(b []byte, c byte) int {
	for i := range b {
		if b[i] == c {
			return i
		}
	}
	return -1
}

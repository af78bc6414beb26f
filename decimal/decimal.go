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

package decimal

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// DigitsPerWord is the number of base-10 digits packed into one word.
	DigitsPerWord = 9
	// WordBase is 10^DigitsPerWord.
	WordBase = 1_000_000_000
	// MaxPrecision is the maximum total number of significant digits.
	MaxPrecision = 65
	// MaxScale is the maximum number of digits right of the point.
	MaxScale = 30
)

// Status reports the outcome of a decimal operation, ordered by severity.
type Status int

const (
	// StatusOK means the exact result was stored.
	StatusOK Status = iota
	// StatusTruncated means low-order digits were dropped to fit the scale
	// bound. The result is accepted, at most with a warning.
	StatusTruncated
	// StatusOverflow means the magnitude exceeded MaxPrecision integer
	// digits; the result was clamped to the largest representable value.
	StatusOverflow
	// StatusDivisionByZero means the divisor was exactly zero.
	StatusDivisionByZero
	// StatusBadNumber means the input could not be parsed as a number.
	StatusBadNumber
)

// Hard reports whether the status must be escalated to null plus an error
// by the caller. Statuses at or below StatusTruncated are acceptable.
func (s Status) Hard() bool { return s > StatusTruncated }

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTruncated:
		return "truncated"
	case StatusOverflow:
		return "overflow"
	case StatusDivisionByZero:
		return "division by zero"
	case StatusBadNumber:
		return "bad number"
	default:
		return "unknown"
	}
}

// Decimal is a bounded fixed-point number: sign, base-10^9 digit words
// (most significant first), integer digit count and scale.
//
// The zero Decimal is ready to use and represents 0.
type Decimal struct {
	neg   bool
	intg  int // significant digits left of the point
	frac  int // digits right of the point
	words []uint32
}

// New returns a zero decimal.
func New() *Decimal { return &Decimal{} }

var (
	bigTen      = big.NewInt(10)
	bigWordBase = big.NewInt(WordBase)
)

// pow10 returns 10^n as a big integer; n must be non-negative.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// coeff rebuilds the unsigned coefficient (all digits, point removed) from
// the digit words.
func (d *Decimal) coeff() *big.Int {
	c := new(big.Int)
	for _, w := range d.words {
		c.Mul(c, bigWordBase)
		c.Add(c, big.NewInt(int64(w)))
	}
	return c
}

// signedCoeff returns the coefficient with the sign applied.
func (d *Decimal) signedCoeff() *big.Int {
	c := d.coeff()
	if d.neg {
		c.Neg(c)
	}
	return c
}

func digitCount(c *big.Int) int {
	if c.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(c).String())
}

// setCoeff stores the signed coefficient c at the given scale, renormalizing
// the word array and clamping to the precision and scale bounds.
func (d *Decimal) setCoeff(c *big.Int, frac int) Status {
	status := StatusOK
	abs := new(big.Int).Abs(c)
	d.neg = c.Sign() < 0

	if frac > MaxScale {
		shift := frac - MaxScale
		rem := new(big.Int)
		abs.DivMod(abs, pow10(shift), rem)
		if rem.Sign() != 0 {
			status = StatusTruncated
		}
		frac = MaxScale
	}
	if frac < 0 {
		frac = 0
	}

	digits := digitCount(abs)
	if digits-frac > MaxPrecision {
		// Integer part does not fit: clamp to the largest value of the
		// requested scale.
		d.setMax(frac)
		return StatusOverflow
	}
	if digits > MaxPrecision {
		shift := digits - MaxPrecision
		rem := new(big.Int)
		abs.DivMod(abs, pow10(shift), rem)
		if rem.Sign() != 0 {
			status = StatusTruncated
		}
		frac -= shift
		digits = MaxPrecision
	}

	d.frac = frac
	d.intg = digits - frac
	if d.intg < 0 {
		d.intg = 0
	}
	d.storeWords(abs)
	if abs.Sign() == 0 {
		d.neg = false
	}
	return status
}

// storeWords repacks abs (non-negative) into base-10^9 words.
func (d *Decimal) storeWords(abs *big.Int) {
	d.words = d.words[:0]
	if abs.Sign() == 0 {
		d.words = append(d.words, 0)
		return
	}
	tmp := new(big.Int).Set(abs)
	rem := new(big.Int)
	var rev []uint32
	for tmp.Sign() != 0 {
		tmp.DivMod(tmp, bigWordBase, rem)
		rev = append(rev, uint32(rem.Uint64()))
	}
	for i := len(rev) - 1; i >= 0; i-- {
		d.words = append(d.words, rev[i])
	}
}

// setMax sets d to the largest representable magnitude of the given scale,
// keeping the current sign.
func (d *Decimal) setMax(frac int) {
	intg := MaxPrecision - frac
	c := pow10(intg + frac)
	c.Sub(c, big.NewInt(1))
	d.frac = frac
	d.intg = intg
	d.storeWords(c)
}

// SetZero resets d to 0.
func (d *Decimal) SetZero() *Decimal {
	d.neg = false
	d.intg = 1
	d.frac = 0
	d.words = append(d.words[:0], 0)
	return d
}

// SetInt stores a signed integer.
func (d *Decimal) SetInt(v int64) *Decimal {
	d.setCoeff(big.NewInt(v), 0)
	return d
}

// SetUint stores an unsigned integer.
func (d *Decimal) SetUint(v uint64) *Decimal {
	d.setCoeff(new(big.Int).SetUint64(v), 0)
	return d
}

// SetFloat stores a double, using the shortest decimal rendering that
// round-trips. Infinities and NaN overflow.
func (d *Decimal) SetFloat(f float64) Status {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		d.SetZero()
		return StatusOverflow
	}
	return d.SetString(strconv.FormatFloat(f, 'f', -1, 64))
}

// SetString parses a plain decimal string ("-123.45").
func (d *Decimal) SetString(s string) Status {
	s = strings.TrimSpace(s)
	if s == "" {
		d.SetZero()
		return StatusBadNumber
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}
	if intPart == "" && fracPart == "" {
		d.SetZero()
		return StatusBadNumber
	}
	for _, part := range []string{intPart, fracPart} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				d.SetZero()
				return StatusBadNumber
			}
		}
	}
	c, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		d.SetZero()
		return StatusBadNumber
	}
	if neg {
		c.Neg(c)
	}
	return d.setCoeff(c, len(fracPart))
}

// Parse returns a new decimal parsed from s.
func Parse(s string) (*Decimal, Status) {
	d := New()
	st := d.SetString(s)
	return d, st
}

// MustParse parses s and panics on failure. Intended for literals in tests
// and constant expressions.
func MustParse(s string) *Decimal {
	d, st := Parse(s)
	if st.Hard() {
		panic("decimal: cannot parse " + strconv.Quote(s) + ": " + st.String())
	}
	return d
}

// CopyTo copies d into dst.
func (d *Decimal) CopyTo(dst *Decimal) *Decimal {
	dst.neg = d.neg
	dst.intg = d.intg
	dst.frac = d.frac
	dst.words = append(dst.words[:0], d.words...)
	return dst
}

// Clone returns a copy of d.
func (d *Decimal) Clone() *Decimal {
	return d.CopyTo(New())
}

// Neg flips the sign in place. Zero stays non-negative.
func (d *Decimal) Neg() *Decimal {
	if !d.IsZero() {
		d.neg = !d.neg
	}
	return d
}

// Abs clears the sign in place.
func (d *Decimal) Abs() *Decimal {
	d.neg = false
	return d
}

// IsZero reports whether the value is exactly zero.
func (d *Decimal) IsZero() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Negative reports whether the value is negative.
func (d *Decimal) Negative() bool { return d.neg && !d.IsZero() }

// Scale returns the number of digits right of the point.
func (d *Decimal) Scale() int { return d.frac }

// IntDigits returns the number of digits left of the point, at least 1.
func (d *Decimal) IntDigits() int {
	if d.intg < 1 {
		return 1
	}
	return d.intg
}

// Precision returns the total number of significant digits.
func (d *Decimal) Precision() int { return d.IntDigits() + d.frac }

// Cmp compares d against other numerically.
func (d *Decimal) Cmp(other *Decimal) int {
	a := d.signedCoeff()
	b := other.signedCoeff()
	if d.frac < other.frac {
		a.Mul(a, pow10(other.frac-d.frac))
	} else if other.frac < d.frac {
		b.Mul(b, pow10(d.frac-other.frac))
	}
	return a.Cmp(b)
}

// String renders the decimal with its full scale ("-2.50").
func (d *Decimal) String() string {
	digits := d.coeff().String()
	if d.frac >= len(digits) {
		digits = strings.Repeat("0", d.frac-len(digits)+1) + digits
	}
	intPart := digits[:len(digits)-d.frac]
	var sb strings.Builder
	if d.Negative() {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart)
	if d.frac > 0 {
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-d.frac:])
	}
	return sb.String()
}

// ToInt converts to a signed 64-bit integer, truncating fractional digits
// toward zero. Out-of-range magnitudes clamp and report StatusOverflow.
func (d *Decimal) ToInt() (int64, Status) {
	c := d.signedCoeff()
	rem := new(big.Int)
	c.DivMod(c, pow10(d.frac), rem)
	// big.Int DivMod is Euclidean; redo truncation toward zero for
	// negative values.
	if d.Negative() && rem.Sign() != 0 {
		c.Add(c, big.NewInt(1))
	}
	status := StatusOK
	if rem.Sign() != 0 {
		status = StatusTruncated
	}
	if !c.IsInt64() {
		if c.Sign() < 0 {
			return math.MinInt64, StatusOverflow
		}
		return math.MaxInt64, StatusOverflow
	}
	return c.Int64(), status
}

// ToUint converts to an unsigned 64-bit integer, truncating fractional
// digits. Negative values clamp to zero and report StatusOverflow.
func (d *Decimal) ToUint() (uint64, Status) {
	if d.Negative() {
		return 0, StatusOverflow
	}
	c := d.coeff()
	rem := new(big.Int)
	c.DivMod(c, pow10(d.frac), rem)
	status := StatusOK
	if rem.Sign() != 0 {
		status = StatusTruncated
	}
	if !c.IsUint64() {
		return math.MaxUint64, StatusOverflow
	}
	return c.Uint64(), status
}

// ToFloat converts to a double.
func (d *Decimal) ToFloat() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// PrecisionToLength returns the display width of a decimal column with the
// given precision and scale: one extra position for the point when scale is
// non-zero and one for the sign when signed.
func PrecisionToLength(precision, scale int, unsigned bool) int {
	length := precision
	if scale > 0 {
		length++
	}
	if !unsigned {
		length++
	}
	return length
}

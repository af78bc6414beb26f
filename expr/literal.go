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

package expr

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/types"
	"github.com/chengnin/mysql-server/utils/cast"
)

// baseLeaf carries the fixed metadata of literal and column nodes. Leaves
// resolve at construction; Bind only checks the recursion budget.
type baseLeaf struct {
	kind      types.Kind
	decimals  int
	maxLength int
	unsigned  bool
	maybeNull bool
	constant  bool
	usedRels  uint64
	geometry  bool
}

func (b *baseLeaf) Bind(bctx *BindContext) error {
	if err := bctx.enter(); err != nil {
		return err
	}
	bctx.leave()
	return nil
}

func (b *baseLeaf) Kind() types.Kind               { return b.kind }
func (b *baseLeaf) NumericContextKind() types.Kind { return b.kind }
func (b *baseLeaf) Decimals() int                  { return b.decimals }
func (b *baseLeaf) MaxLength() int                 { return b.maxLength }
func (b *baseLeaf) Unsigned() bool                 { return b.unsigned }
func (b *baseLeaf) MaybeNull() bool                { return b.maybeNull }
func (b *baseLeaf) Const() bool                    { return b.constant }
func (b *baseLeaf) UsedRelations() uint64          { return b.usedRels }
func (b *baseLeaf) Geometry() bool                 { return b.geometry }

func (b *baseLeaf) DecimalPrecision() int {
	p := b.maxLength
	if b.decimals > 0 && b.decimals != NotFixedDec {
		p--
	}
	if !b.unsigned {
		p--
	}
	if p < 1 {
		p = 1
	}
	if p > decimal.MaxPrecision {
		p = decimal.MaxPrecision
	}
	return p
}

// IntLiteral is a constant signed integer.
type IntLiteral struct {
	baseLeaf
	v int64
}

// NewIntLiteral returns a constant signed integer node.
func NewIntLiteral(v int64) *IntLiteral {
	n := &IntLiteral{v: v}
	n.kind = types.KindInt
	n.constant = true
	n.maxLength = len(strconv.FormatInt(v, 10))
	return n
}

func (n *IntLiteral) DecimalPrecision() int {
	p := n.maxLength
	if n.v < 0 {
		p--
	}
	return p
}

func (n *IntLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return n.v, false, nil
}

func (n *IntLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return float64(n.v), false, nil
}

func (n *IntLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	return buf.SetInt(n.v), false, nil
}

func (n *IntLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return strconv.AppendInt(buf[:0], n.v, 10), false, nil
}

// UintLiteral is a constant unsigned integer.
type UintLiteral struct {
	baseLeaf
	v uint64
}

// NewUintLiteral returns a constant unsigned integer node.
func NewUintLiteral(v uint64) *UintLiteral {
	n := &UintLiteral{v: v}
	n.kind = types.KindUint
	n.unsigned = true
	n.constant = true
	n.maxLength = len(strconv.FormatUint(v, 10))
	return n
}

func (n *UintLiteral) DecimalPrecision() int { return n.maxLength }

func (n *UintLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return int64(n.v), false, nil
}

func (n *UintLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return float64(n.v), false, nil
}

func (n *UintLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	return buf.SetUint(n.v), false, nil
}

func (n *UintLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return strconv.AppendUint(buf[:0], n.v, 10), false, nil
}

// FloatLiteral is a constant double.
type FloatLiteral struct {
	baseLeaf
	v float64
}

// NewFloatLiteral returns a constant double node.
func NewFloatLiteral(v float64) *FloatLiteral {
	n := &FloatLiteral{v: v}
	n.kind = types.KindReal
	n.constant = true
	n.decimals = NotFixedDec
	n.maxLength = floatLength(NotFixedDec)
	return n
}

func (n *FloatLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return int64(math.RoundToEven(n.v)), false, nil
}

func (n *FloatLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return n.v, false, nil
}

func (n *FloatLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	buf.SetFloat(n.v)
	return buf, false, nil
}

func (n *FloatLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return strconv.AppendFloat(buf[:0], n.v, 'g', -1, 64), false, nil
}

// DecimalLiteral is a constant fixed-point decimal.
type DecimalLiteral struct {
	baseLeaf
	d *decimal.Decimal
}

// NewDecimalLiteral returns a constant decimal node. The decimal is
// referenced, not copied; callers must not mutate it afterwards.
func NewDecimalLiteral(d *decimal.Decimal) *DecimalLiteral {
	n := &DecimalLiteral{d: d}
	n.kind = types.KindDecimal
	n.constant = true
	n.decimals = d.Scale()
	n.unsigned = false
	n.maxLength = decimal.PrecisionToLength(d.Precision(), d.Scale(), false)
	return n
}

func (n *DecimalLiteral) DecimalPrecision() int { return n.d.Precision() }

func (n *DecimalLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	v, st := n.d.ToInt()
	if st == decimal.StatusOverflow {
		err := ctx.RaiseOverflow("BIGINT", "literal")
		return 0, true, err
	}
	return v, false, nil
}

func (n *DecimalLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return n.d.ToFloat(), false, nil
}

func (n *DecimalLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	return n.d.CopyTo(buf), false, nil
}

func (n *DecimalLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return append(buf[:0], n.d.String()...), false, nil
}

// BytesLiteral is a constant binary string, optionally geometry-typed.
type BytesLiteral struct {
	baseLeaf
	b []byte
}

// NewBytesLiteral returns a constant binary string node.
func NewBytesLiteral(b []byte) *BytesLiteral {
	n := &BytesLiteral{b: b}
	n.kind = types.KindBytes
	n.constant = true
	n.maxLength = len(b)
	return n
}

// NewGeometryLiteral returns a constant carrying a geometry payload, which
// numeric and bitwise operators reject at resolution time.
func NewGeometryLiteral(b []byte) *BytesLiteral {
	n := NewBytesLiteral(b)
	n.geometry = true
	return n
}

func (n *BytesLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return types.NewBytes(n.b).AsInt(), false, nil
}

func (n *BytesLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return types.NewBytes(n.b).AsFloat(), false, nil
}

func (n *BytesLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	return types.NewBytes(n.b).AsDecimal(buf), false, nil
}

func (n *BytesLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return append(buf[:0], n.b...), false, nil
}

// StringLiteral is a constant character string. In numeric context it
// counts as a real operand when coercible to a number.
type StringLiteral struct {
	baseLeaf
	s     string
	f     float64
	numOK bool
}

// NewStringLiteral returns a constant string node.
func NewStringLiteral(s string) *StringLiteral {
	n := &StringLiteral{s: s}
	n.kind = types.KindBytes
	n.constant = true
	n.maxLength = len(s)
	if f, err := cast.ToFloat64E(s); err == nil {
		n.f = f
		n.numOK = true
	}
	return n
}

func (n *StringLiteral) NumericContextKind() types.Kind {
	if n.numOK {
		return types.KindReal
	}
	return types.KindBytes
}

func (n *StringLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return int64(math.RoundToEven(n.f)), false, nil
}

func (n *StringLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return n.f, false, nil
}

func (n *StringLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	buf.SetString(n.s)
	return buf, false, nil
}

func (n *StringLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return append(buf[:0], n.s...), false, nil
}

// NullLiteral is a constant SQL NULL of a given domain.
type NullLiteral struct {
	baseLeaf
}

// NewNullLiteral returns a constant NULL of the given domain.
func NewNullLiteral(kind types.Kind) *NullLiteral {
	n := &NullLiteral{}
	n.kind = kind
	n.constant = true
	n.maybeNull = true
	return n
}

func (n *NullLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	return 0, true, nil
}

func (n *NullLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	return 0, true, nil
}

func (n *NullLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	return nil, true, nil
}

func (n *NullLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	return nil, true, nil
}

// DatetimeLiteral is a constant temporal value. In numeric context it
// counts as its integer representation (YYYYMMDDHHMMSS), or as a decimal
// when it carries fractional seconds.
type DatetimeLiteral struct {
	baseLeaf
	t   time.Time
	fsp int
}

// NewDatetimeLiteral returns a constant temporal node with fsp fractional
// second digits (0..6).
func NewDatetimeLiteral(t time.Time, fsp int) *DatetimeLiteral {
	if fsp < 0 {
		fsp = 0
	}
	if fsp > 6 {
		fsp = 6
	}
	n := &DatetimeLiteral{t: t, fsp: fsp}
	n.kind = types.KindBytes
	n.constant = true
	n.decimals = fsp
	n.maxLength = len("2006-01-02 15:04:05") + fspWidth(fsp)
	return n
}

func fspWidth(fsp int) int {
	if fsp == 0 {
		return 0
	}
	return fsp + 1
}

func (n *DatetimeLiteral) NumericContextKind() types.Kind {
	if n.fsp > 0 {
		return types.KindDecimal
	}
	return types.KindInt
}

func (n *DatetimeLiteral) numericString() string {
	s := n.t.Format("20060102150405")
	if n.fsp > 0 {
		frac := fmt.Sprintf("%09d", n.t.Nanosecond())
		s += "." + frac[:n.fsp]
	}
	return s
}

func (n *DatetimeLiteral) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	v, _ := strconv.ParseInt(n.t.Format("20060102150405"), 10, 64)
	return v, false, nil
}

func (n *DatetimeLiteral) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	f, _ := strconv.ParseFloat(n.numericString(), 64)
	return f, false, nil
}

func (n *DatetimeLiteral) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	buf.SetString(n.numericString())
	return buf, false, nil
}

func (n *DatetimeLiteral) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	s := n.t.Format("2006-01-02 15:04:05")
	if n.fsp > 0 {
		frac := fmt.Sprintf("%09d", n.t.Nanosecond())
		s += "." + frac[:n.fsp]
	}
	return append(buf[:0], s...), false, nil
}

// Column references one value of the input row by index and records the
// base relation it depends on in the used-relations bitmap.
type Column struct {
	baseLeaf
	index int
}

// NewColumn returns a column reference. relation identifies the base
// relation (bit position in the used-relations bitmap).
func NewColumn(index, relation int, kind types.Kind, unsigned bool, decimals, maxLength int, nullable bool) *Column {
	n := &Column{index: index}
	n.kind = kind
	n.unsigned = unsigned
	n.decimals = decimals
	n.maxLength = maxLength
	n.maybeNull = nullable
	n.usedRels = 1 << uint(relation)
	return n
}

func (n *Column) value(row Row) (types.Value, error) {
	if n.index < 0 || n.index >= len(row) {
		return types.Value{}, fmt.Errorf("%w: column index %d outside row of %d values", eval.ErrBind, n.index, len(row))
	}
	return row[n.index], nil
}

func (n *Column) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	v, err := n.value(row)
	if err != nil || v.IsNull() {
		return 0, v.IsNull(), err
	}
	return v.AsInt(), false, nil
}

func (n *Column) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	v, err := n.value(row)
	if err != nil || v.IsNull() {
		return 0, v.IsNull(), err
	}
	return v.AsFloat(), false, nil
}

func (n *Column) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	v, err := n.value(row)
	if err != nil || v.IsNull() {
		return nil, v.IsNull(), err
	}
	return v.AsDecimal(buf), false, nil
}

func (n *Column) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	v, err := n.value(row)
	if err != nil || v.IsNull() {
		return nil, v.IsNull(), err
	}
	return v.AsBytes(buf), false, nil
}

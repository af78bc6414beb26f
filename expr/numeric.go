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

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/kernel"
	"github.com/chengnin/mysql-server/types"
)

// numOps is the per-domain evaluation contract of a hybrid numeric node.
// Exactly one of the three is the node's native operation; numHybrid routes
// every entry point to the native one and converts the result.
type numOps interface {
	intOp(ctx *eval.Context, row Row) (int64, bool, error)
	realOp(ctx *eval.Context, row Row) (float64, bool, error)
	decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error)
}

// numHybrid is the shared body of numeric function nodes: it owns the
// operand scratch decimals and dispatches the four evaluation entry points
// to the operation matching the resolved result domain.
type numHybrid struct {
	baseFunc
	ops numOps

	darg1, darg2, dres decimal.Decimal
}

func (n *numHybrid) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	n.mustResolved()
	switch n.kind {
	case types.KindInt, types.KindUint:
		return n.ops.intOp(ctx, row)
	case types.KindReal:
		f, null, err := n.ops.realOp(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		return realToInt(ctx, f, n.unsigned, n.name)
	case types.KindDecimal:
		d, null, err := n.ops.decimalOp(ctx, row, &n.dres)
		if null || err != nil {
			return 0, null, err
		}
		return decimalToInt(ctx, d, n.unsigned, n.name)
	}
	panic("expr: " + n.name + " resolved to non-numeric domain")
}

func (n *numHybrid) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	n.mustResolved()
	switch n.kind {
	case types.KindInt, types.KindUint:
		v, null, err := n.ops.intOp(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		if n.unsigned {
			return float64(uint64(v)), false, nil
		}
		return float64(v), false, nil
	case types.KindReal:
		return n.ops.realOp(ctx, row)
	case types.KindDecimal:
		d, null, err := n.ops.decimalOp(ctx, row, &n.dres)
		if null || err != nil {
			return 0, null, err
		}
		return d.ToFloat(), false, nil
	}
	panic("expr: " + n.name + " resolved to non-numeric domain")
}

func (n *numHybrid) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	n.mustResolved()
	switch n.kind {
	case types.KindInt, types.KindUint:
		v, null, err := n.ops.intOp(ctx, row)
		if null || err != nil {
			return nil, null, err
		}
		if n.unsigned {
			return buf.SetUint(uint64(v)), false, nil
		}
		return buf.SetInt(v), false, nil
	case types.KindReal:
		f, null, err := n.ops.realOp(ctx, row)
		if null || err != nil {
			return nil, null, err
		}
		buf.SetFloat(f)
		return buf, false, nil
	case types.KindDecimal:
		return n.ops.decimalOp(ctx, row, buf)
	}
	panic("expr: " + n.name + " resolved to non-numeric domain")
}

func (n *numHybrid) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	n.mustResolved()
	switch n.kind {
	case types.KindInt, types.KindUint:
		v, null, err := n.ops.intOp(ctx, row)
		if null || err != nil {
			return nil, null, err
		}
		if n.unsigned {
			return strconv.AppendUint(buf[:0], uint64(v), 10), false, nil
		}
		return strconv.AppendInt(buf[:0], v, 10), false, nil
	case types.KindReal:
		f, null, err := n.ops.realOp(ctx, row)
		if null || err != nil {
			return nil, null, err
		}
		if n.decimals != NotFixedDec {
			return strconv.AppendFloat(buf[:0], f, 'f', n.decimals, 64), false, nil
		}
		return strconv.AppendFloat(buf[:0], f, 'g', -1, 64), false, nil
	case types.KindDecimal:
		d, null, err := n.ops.decimalOp(ctx, row, &n.dres)
		if null || err != nil {
			return nil, null, err
		}
		return append(buf[:0], d.String()...), false, nil
	}
	panic("expr: " + n.name + " resolved to non-numeric domain")
}

// intArgs evaluates both operands in the integer domain, short-circuiting on
// null.
func (n *numHybrid) intArgs(ctx *eval.Context, row Row) (a, b kernel.Int, null bool, err error) {
	v0, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return a, b, null, err
	}
	v1, null, err := n.args[1].EvalInt(ctx, row)
	if null || err != nil {
		return a, b, null, err
	}
	a = kernel.Int{V: v0, Unsigned: n.args[0].Unsigned()}
	b = kernel.Int{V: v1, Unsigned: n.args[1].Unsigned()}
	return a, b, false, nil
}

// realArgs evaluates both operands in the double domain.
func (n *numHybrid) realArgs(ctx *eval.Context, row Row) (a, b float64, null bool, err error) {
	a, null, err = n.args[0].EvalReal(ctx, row)
	if null || err != nil {
		return 0, 0, null, err
	}
	b, null, err = n.args[1].EvalReal(ctx, row)
	if null || err != nil {
		return 0, 0, null, err
	}
	return a, b, false, nil
}

// decimalArgs evaluates both operands into the node-owned scratch decimals.
func (n *numHybrid) decimalArgs(ctx *eval.Context, row Row) (a, b *decimal.Decimal, null bool, err error) {
	a, null, err = n.args[0].EvalDecimal(ctx, row, &n.darg1)
	if null || err != nil {
		return nil, nil, null, err
	}
	b, null, err = n.args[1].EvalDecimal(ctx, row, &n.darg2)
	if null || err != nil {
		return nil, nil, null, err
	}
	return a, b, false, nil
}

func realToInt(ctx *eval.Context, f float64, unsigned bool, op string) (int64, bool, error) {
	f = math.RoundToEven(f)
	if unsigned {
		if f < 0 || f >= 1<<64 {
			err := ctx.RaiseOverflow("BIGINT UNSIGNED", op)
			return 0, true, err
		}
		return int64(uint64(f)), false, nil
	}
	if f < math.MinInt64 || f >= 1<<63 {
		err := ctx.RaiseOverflow("BIGINT", op)
		return 0, true, err
	}
	return int64(f), false, nil
}

func decimalToInt(ctx *eval.Context, d *decimal.Decimal, unsigned bool, op string) (int64, bool, error) {
	if unsigned {
		v, st := d.ToUint()
		if st == decimal.StatusOverflow {
			err := ctx.RaiseOverflow("BIGINT UNSIGNED", op)
			return 0, true, err
		}
		return int64(v), false, nil
	}
	v, st := d.ToInt()
	if st == decimal.StatusOverflow {
		err := ctx.RaiseOverflow("BIGINT", op)
		return 0, true, err
	}
	return v, false, nil
}

// resolveNumericKind aggregates the operands' numeric-context domains with
// the precedence real > decimal > int. Operands that cannot participate in
// numeric context (non-coercible strings, geometry) fail resolution.
func resolveNumericKind(op string, args []Node) (types.Kind, error) {
	if err := rejectGeometry(op, args); err != nil {
		return 0, err
	}
	kind := types.KindInt
	for _, a := range args {
		switch a.NumericContextKind() {
		case types.KindReal:
			kind = types.KindReal
		case types.KindDecimal:
			if kind != types.KindReal {
				kind = types.KindDecimal
			}
		case types.KindInt, types.KindUint:
			// lowest precedence
		default:
			return 0, fmt.Errorf("%w: non-numeric operand of %q", eval.ErrType, op)
		}
	}
	return kind, nil
}

// argScale returns the operand's fixed scale, reading the floating sentinel
// as the maximum decimal scale.
func argScale(a Node) int {
	d := a.Decimals()
	if d == NotFixedDec {
		return decimal.MaxScale
	}
	return d
}

// setRealResult fixes a double result domain whose scale follows the widest
// operand; any floating operand makes the scale floating too.
func (n *numHybrid) setRealResult() {
	n.kind = types.KindReal
	n.decimals = 0
	for _, a := range n.args {
		if a.Decimals() == NotFixedDec {
			n.decimals = NotFixedDec
			break
		}
		n.decimals = maxInt(n.decimals, a.Decimals())
	}
	n.maxLength = floatLength(n.decimals)
}

// setDecimalResult fixes a decimal result domain from a precision and scale
// pair, clamping both to the representable bounds.
func (n *numHybrid) setDecimalResult(precision, scale int) {
	n.kind = types.KindDecimal
	if scale > decimal.MaxScale {
		scale = decimal.MaxScale
	}
	if precision > decimal.MaxPrecision {
		precision = decimal.MaxPrecision
	}
	if precision < scale+1 {
		precision = scale + 1
	}
	n.decimals = scale
	n.maxLength = decimal.PrecisionToLength(precision, scale, n.unsigned)
}

// resolveAdditive fixes the result domain of + and -: the hybrid kind, the
// signedness union in the integer domain and intersection in the decimal
// domain, and one extra leading digit for the carry.
func (n *numHybrid) resolveAdditive(op string) error {
	kind, err := resolveNumericKind(op, n.args)
	if err != nil {
		return err
	}
	a0, a1 := n.args[0], n.args[1]
	switch kind {
	case types.KindReal:
		n.unsigned = false
		n.setRealResult()
	case types.KindDecimal:
		n.unsigned = a0.Unsigned() && a1.Unsigned()
		scale := maxInt(argScale(a0), argScale(a1))
		intDigits := maxInt(a0.DecimalPrecision()-argScale(a0), a1.DecimalPrecision()-argScale(a1))
		n.setDecimalResult(intDigits+1+scale, scale)
	default:
		n.unsigned = a0.Unsigned() || a1.Unsigned()
		n.decimals = 0
		n.maxLength = maxInt(a0.MaxLength(), a1.MaxLength()) + 1
		n.setIntKind()
	}
	return nil
}

// Plus is binary addition.
type Plus struct{ numHybrid }

// NewPlus returns an a + b node.
func NewPlus(a, b Node) *Plus {
	p := &Plus{}
	p.init("+", a, b)
	p.ops = p
	return p
}

func (p *Plus) Bind(bctx *BindContext) error { return p.bind(bctx, p) }

func (p *Plus) resolve(bctx *BindContext) error { return p.resolveAdditive("+") }

func (p *Plus) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	a, b, null, err := p.intArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.AddInt(ctx, a, b, p.unsigned, p.name)
}

func (p *Plus) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	a, b, null, err := p.realArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.AddReal(ctx, a, b, p.name)
}

func (p *Plus) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, b, null, err := p.decimalArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	null, err = kernel.AddDecimal(ctx, buf, a, b, p.name)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

// Minus is binary subtraction. With the no-unsigned-subtraction session mode
// the result is signed even when both operands are unsigned.
type Minus struct{ numHybrid }

// NewMinus returns an a - b node.
func NewMinus(a, b Node) *Minus {
	m := &Minus{}
	m.init("-", a, b)
	m.ops = m
	return m
}

func (m *Minus) Bind(bctx *BindContext) error { return m.bind(bctx, m) }

func (m *Minus) resolve(bctx *BindContext) error {
	if err := m.resolveAdditive("-"); err != nil {
		return err
	}
	if bctx.Eval.Mode().Has(eval.ModeNoUnsignedSubtraction) && m.unsigned {
		m.unsigned = false
		if m.kind == types.KindUint {
			m.kind = types.KindInt
		}
	}
	return nil
}

func (m *Minus) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	a, b, null, err := m.intArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.SubInt(ctx, a, b, m.unsigned, m.name)
}

func (m *Minus) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	a, b, null, err := m.realArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.SubReal(ctx, a, b, m.name)
}

func (m *Minus) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, b, null, err := m.decimalArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	null, err = kernel.SubDecimal(ctx, buf, a, b, m.name)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

// Mul is binary multiplication.
type Mul struct{ numHybrid }

// NewMul returns an a * b node.
func NewMul(a, b Node) *Mul {
	m := &Mul{}
	m.init("*", a, b)
	m.ops = m
	return m
}

func (m *Mul) Bind(bctx *BindContext) error { return m.bind(bctx, m) }

func (m *Mul) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(m.name, m.args)
	if err != nil {
		return err
	}
	a0, a1 := m.args[0], m.args[1]
	switch kind {
	case types.KindReal:
		m.unsigned = false
		m.setRealResult()
	case types.KindDecimal:
		m.unsigned = a0.Unsigned() && a1.Unsigned()
		scale := minInt(argScale(a0)+argScale(a1), decimal.MaxScale)
		precision := minInt(a0.DecimalPrecision()+a1.DecimalPrecision(), decimal.MaxPrecision)
		m.setDecimalResult(precision, scale)
	default:
		m.unsigned = a0.Unsigned() || a1.Unsigned()
		m.decimals = 0
		m.maxLength = a0.MaxLength() + a1.MaxLength()
		m.setIntKind()
	}
	return nil
}

func (m *Mul) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	a, b, null, err := m.intArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.MulInt(ctx, a, b, m.unsigned, m.name)
}

func (m *Mul) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	a, b, null, err := m.realArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.MulReal(ctx, a, b, m.name)
}

func (m *Mul) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, b, null, err := m.decimalArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	null, err = kernel.MulDecimal(ctx, buf, a, b, m.name)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

// Div is true division. Integer operands are promoted to the decimal domain
// so that 7 / 2 is 3.5000, and the result can always be null (division by
// zero outside the error mode).
type Div struct{ numHybrid }

// NewDiv returns an a / b node.
func NewDiv(a, b Node) *Div {
	d := &Div{}
	d.init("/", a, b)
	d.ops = d
	return d
}

func (d *Div) Bind(bctx *BindContext) error { return d.bind(bctx, d) }

func (d *Div) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(d.name, d.args)
	if err != nil {
		return err
	}
	incr := bctx.Eval.DivPrecIncrement()
	a0, a1 := d.args[0], d.args[1]
	if kind == types.KindReal {
		d.unsigned = false
		d.setRealResult()
		if d.decimals != NotFixedDec {
			d.decimals = minInt(d.decimals+incr, NotFixedDec-1)
			d.maxLength = floatLength(d.decimals)
		}
	} else {
		// Integer operands divide in the decimal domain.
		d.unsigned = a0.Unsigned() && a1.Unsigned()
		scale := minInt(argScale(a0)+incr, decimal.MaxScale)
		precision := minInt(a0.DecimalPrecision()+argScale(a1)+incr, decimal.MaxPrecision)
		d.setDecimalResult(precision, scale)
	}
	d.maybeNull = true
	return nil
}

func (d *Div) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	panic("expr: / never resolves to the integer domain")
}

func (d *Div) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	a, b, null, err := d.realArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.DivReal(ctx, a, b, d.name)
}

func (d *Div) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, b, null, err := d.decimalArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	null, err = kernel.DivDecimal(ctx, buf, a, b, d.name)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

// IntDiv is integer division (DIV): the quotient truncated toward zero,
// always an integer result. Non-integer operands are lowered through the
// exact decimal domain before truncation, so 5.9 DIV 2 is 2, not 3.
type IntDiv struct {
	numHybrid
	lowered bool
}

// NewIntDiv returns an a DIV b node.
func NewIntDiv(a, b Node) *IntDiv {
	d := &IntDiv{}
	d.init("DIV", a, b)
	d.ops = d
	return d
}

func (d *IntDiv) Bind(bctx *BindContext) error { return d.bind(bctx, d) }

func (d *IntDiv) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(d.name, d.args)
	if err != nil {
		return err
	}
	a0, a1 := d.args[0], d.args[1]
	d.lowered = kind != types.KindInt && kind != types.KindUint
	d.unsigned = a0.Unsigned() || a1.Unsigned()
	d.decimals = 0
	d.maxLength = minInt(maxInt(a0.MaxLength()-argScale(a1), 1), 21)
	d.maybeNull = true
	d.setIntKind()
	return nil
}

func (d *IntDiv) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	if !d.lowered {
		a, b, null, err := d.intArgs(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		return kernel.DivInt(ctx, a, b, d.unsigned, d.name)
	}
	a, b, null, err := d.decimalArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	null, err = kernel.CheckDecimalOverflow(ctx, d.name, d.dres.Div(a, b, 0))
	if null || err != nil {
		return 0, null, err
	}
	return decimalToInt(ctx, &d.dres, d.unsigned, d.name)
}

func (d *IntDiv) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	panic("expr: DIV always resolves to the integer domain")
}

func (d *IntDiv) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	panic("expr: DIV always resolves to the integer domain")
}

// Mod is the modulo operation. The result carries the dividend's sign and
// can always be null (modulo by zero outside the error mode).
type Mod struct{ numHybrid }

// NewMod returns an a % b node.
func NewMod(a, b Node) *Mod {
	m := &Mod{}
	m.init("%", a, b)
	m.ops = m
	return m
}

func (m *Mod) Bind(bctx *BindContext) error { return m.bind(bctx, m) }

func (m *Mod) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(m.name, m.args)
	if err != nil {
		return err
	}
	a0, a1 := m.args[0], m.args[1]
	switch kind {
	case types.KindReal:
		m.unsigned = false
		m.setRealResult()
	case types.KindDecimal:
		// The sign follows the dividend.
		m.unsigned = a0.Unsigned()
		scale := maxInt(argScale(a0), argScale(a1))
		precision := maxInt(a0.DecimalPrecision(), a1.DecimalPrecision())
		m.setDecimalResult(precision, scale)
	default:
		m.unsigned = a0.Unsigned()
		m.decimals = 0
		m.maxLength = maxInt(a0.MaxLength(), a1.MaxLength())
		m.setIntKind()
	}
	m.maybeNull = true
	return nil
}

func (m *Mod) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	a, b, null, err := m.intArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.ModInt(ctx, a, b, m.unsigned, m.name)
}

func (m *Mod) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	a, b, null, err := m.realArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.ModReal(ctx, a, b, m.name)
}

func (m *Mod) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, b, null, err := m.decimalArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	null, err = kernel.ModDecimal(ctx, buf, a, b, m.name)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

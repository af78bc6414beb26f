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
	"math"

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/kernel"
	"github.com/chengnin/mysql-server/types"
)

// Neg is unary minus. The result is always signed; a constant integer whose
// negation does not fit the signed range is promoted to the decimal domain
// at resolution time so that -(-9223372036854775808) evaluates exactly
// instead of overflowing.
type Neg struct{ numHybrid }

// NewNeg returns a -a node.
func NewNeg(a Node) *Neg {
	n := &Neg{}
	n.init("-", a)
	n.ops = n
	return n
}

func (n *Neg) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *Neg) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(n.name, n.args)
	if err != nil {
		return err
	}
	a := n.args[0]
	n.unsigned = false
	n.decimals = a.Decimals()
	n.maxLength = a.MaxLength() + 1

	if (kind == types.KindInt || kind == types.KindUint) && a.Const() {
		promote, err := n.constNeedsDecimal(bctx.Eval)
		if err != nil {
			return err
		}
		if promote {
			n.setDecimalResult(a.DecimalPrecision()+1, 0)
			return nil
		}
	}
	switch kind {
	case types.KindReal:
		n.kind = types.KindReal
		n.maxLength = floatLength(n.decimals)
	case types.KindDecimal:
		n.setDecimalResult(a.DecimalPrecision()+1, argScale(a))
	default:
		n.setIntKind()
	}
	return nil
}

// constNeedsDecimal reports whether negating the constant integer operand
// leaves the signed 64-bit range.
func (n *Neg) constNeedsDecimal(ctx *eval.Context) (bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, Row(nil))
	if err != nil {
		return false, err
	}
	if null {
		return false, nil
	}
	if n.args[0].Unsigned() {
		return uint64(v) > uint64(math.MaxInt64)+1, nil
	}
	return v == math.MinInt64, nil
}

func (n *Neg) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	a := kernel.Int{V: v, Unsigned: n.args[0].Unsigned()}
	return kernel.NegInt(ctx, a, n.unsigned, n.name)
}

func (n *Neg) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	v, null, err := n.args[0].EvalReal(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return -v, false, nil
}

func (n *Neg) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	d, null, err := n.args[0].EvalDecimal(ctx, row, buf)
	if null || err != nil {
		return nil, null, err
	}
	return d.Neg(), false, nil
}

// Abs is the absolute value. The result keeps the operand's domain and
// signedness; |MinInt64| in the signed integer domain raises overflow.
type Abs struct{ numHybrid }

// NewAbs returns an ABS(a) node.
func NewAbs(a Node) *Abs {
	n := &Abs{}
	n.init("ABS", a)
	n.ops = n
	return n
}

func (n *Abs) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *Abs) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(n.name, n.args)
	if err != nil {
		return err
	}
	a := n.args[0]
	n.unsigned = a.Unsigned()
	n.decimals = a.Decimals()
	n.maxLength = a.MaxLength()
	switch kind {
	case types.KindReal:
		n.kind = types.KindReal
		n.maxLength = floatLength(n.decimals)
	case types.KindDecimal:
		n.setDecimalResult(a.DecimalPrecision(), argScale(a))
	default:
		n.setIntKind()
	}
	return nil
}

func (n *Abs) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	a := kernel.Int{V: v, Unsigned: n.args[0].Unsigned()}
	return kernel.AbsInt(ctx, a, n.unsigned, n.name)
}

func (n *Abs) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	v, null, err := n.args[0].EvalReal(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return math.Abs(v), false, nil
}

func (n *Abs) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	d, null, err := n.args[0].EvalDecimal(ctx, row, buf)
	if null || err != nil {
		return nil, null, err
	}
	return d.Abs(), false, nil
}

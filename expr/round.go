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

// Round is ROUND(x, d) and TRUNCATE(x, d): rounding to nearest or truncation
// toward zero at a given decimal position. A constant scale argument fixes
// the result scale at resolution time; a non-constant scale forces the exact
// decimal domain for integer and decimal operands.
type Round struct {
	numHybrid
	truncate bool
}

// NewRound returns a ROUND(x, d) node.
func NewRound(x, d Node) *Round {
	n := &Round{}
	n.init("ROUND", x, d)
	n.ops = n
	return n
}

// NewTruncate returns a TRUNCATE(x, d) node.
func NewTruncate(x, d Node) *Round {
	n := &Round{truncate: true}
	n.init("TRUNCATE", x, d)
	n.ops = n
	return n
}

func (n *Round) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *Round) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(n.name, n.args)
	if err != nil {
		return err
	}
	value, scale := n.args[0], n.args[1]
	n.unsigned = value.Unsigned()

	if !scale.Const() {
		// Unknown scale: keep the operand's width and stay exact for
		// integer and decimal operands.
		n.decimals = value.Decimals()
		if kind == types.KindReal {
			n.kind = types.KindReal
			n.maxLength = floatLength(n.decimals)
			return nil
		}
		n.setDecimalResult(value.DecimalPrecision()+1, argScale(value))
		return nil
	}

	val1, null, err := scale.EvalInt(bctx.Eval, Row(nil))
	if err != nil {
		return err
	}
	val1Unsigned := scale.Unsigned()
	decimalsToSet := 0
	if null {
		val1 = 0
	}
	if val1Unsigned || val1 > 0 {
		decimalsToSet = decimal.MaxScale
		if val1Unsigned {
			if uint64(val1) < decimal.MaxScale {
				decimalsToSet = int(val1)
			}
		} else if val1 < decimal.MaxScale {
			decimalsToSet = int(val1)
		}
	}

	switch kind {
	case types.KindReal:
		n.kind = types.KindReal
		if value.Decimals() == NotFixedDec {
			n.decimals = NotFixedDec
		} else {
			n.decimals = minInt(decimalsToSet, NotFixedDec)
		}
		n.maxLength = floatLength(n.decimals)
	case types.KindInt, types.KindUint:
		if val1Unsigned || val1 >= 0 {
			n.decimals = 0
			n.maxLength = value.MaxLength()
			n.setIntKind()
			return nil
		}
		// A negative scale can carry the value outside the operand's
		// width; resolve through the decimal domain.
		n.setDecimalResult(value.DecimalPrecision()+1, 0)
	default:
		newScale := minInt(argScale(value), decimalsToSet)
		precision := value.DecimalPrecision() - (argScale(value) - newScale)
		if !n.truncate {
			precision++
		}
		n.setDecimalResult(precision, newScale)
	}
	return nil
}

// scaleArg evaluates the scale operand.
func (n *Round) scaleArg(ctx *eval.Context, row Row) (int64, bool, bool, error) {
	v, null, err := n.args[1].EvalInt(ctx, row)
	return v, n.args[1].Unsigned(), null, err
}

func (n *Round) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	dec, decUnsigned, null, err := n.scaleArg(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.RoundInt(ctx, v, n.args[0].Unsigned(), dec, decUnsigned, n.truncate, n.name)
}

func (n *Round) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	v, null, err := n.args[0].EvalReal(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	dec, decUnsigned, null, err := n.scaleArg(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.RoundFloat(v, dec, decUnsigned, n.truncate), false, nil
}

func (n *Round) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, null, err := n.args[0].EvalDecimal(ctx, row, &n.darg1)
	if null || err != nil {
		return nil, null, err
	}
	dec, decUnsigned, null, err := n.scaleArg(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	scale := clampDecimalScale(dec, decUnsigned)
	null, err = kernel.CheckDecimalOverflow(ctx, n.name, a.Round(buf, scale, n.truncate))
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

// clampDecimalScale bounds a runtime scale argument to the range the decimal
// representation can distinguish: anything below -(MaxPrecision) already
// rounds every representable value to zero.
func clampDecimalScale(dec int64, decUnsigned bool) int {
	if decUnsigned {
		if uint64(dec) > decimal.MaxScale {
			return decimal.MaxScale
		}
		return int(dec)
	}
	if dec > decimal.MaxScale {
		return decimal.MaxScale
	}
	if dec < -decimal.MaxPrecision {
		return -decimal.MaxPrecision
	}
	return int(dec)
}

// intVal is the shared body of CEILING and FLOOR: an integer-valued result
// whose domain narrows to a plain integer whenever the operand's integer
// digits are known to fit.
type intVal struct {
	numHybrid
	ceil bool
}

// Ceiling is CEILING(x) (alias CEIL): the smallest integer not less than x.
type Ceiling struct{ intVal }

// NewCeiling returns a CEILING(x) node.
func NewCeiling(x Node) *Ceiling {
	n := &Ceiling{}
	n.ceil = true
	n.init("CEILING", x)
	n.ops = n
	return n
}

func (n *Ceiling) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

// Floor is FLOOR(x): the largest integer not greater than x.
type Floor struct{ intVal }

// NewFloor returns a FLOOR(x) node.
func NewFloor(x Node) *Floor {
	n := &Floor{}
	n.init("FLOOR", x)
	n.ops = n
	return n
}

func (n *Floor) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *intVal) resolve(bctx *BindContext) error {
	kind, err := resolveNumericKind(n.name, n.args)
	if err != nil {
		return err
	}
	a := n.args[0]
	n.unsigned = a.Unsigned()
	n.decimals = 0
	switch kind {
	case types.KindReal:
		n.kind = types.KindReal
		n.decimals = NotFixedDec
		n.maxLength = floatLength(NotFixedDec)
	case types.KindDecimal:
		intDigits := a.DecimalPrecision() - argScale(a)
		if intDigits < 19 {
			// One extra digit for the carry of CEILING(9.9).
			n.maxLength = intDigits + 2
			n.setIntKind()
			return nil
		}
		n.setDecimalResult(intDigits+1, 0)
	default:
		n.maxLength = a.MaxLength()
		n.setIntKind()
	}
	return nil
}

func (n *intVal) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	if k := n.args[0].NumericContextKind(); k == types.KindInt || k == types.KindUint {
		// Already integral.
		return n.args[0].EvalInt(ctx, row)
	}
	a, null, err := n.args[0].EvalDecimal(ctx, row, &n.darg1)
	if null || err != nil {
		return 0, null, err
	}
	var st decimal.Status
	if n.ceil {
		st = a.Ceiling(&n.dres)
	} else {
		st = a.Floor(&n.dres)
	}
	null, err = kernel.CheckDecimalOverflow(ctx, n.name, st)
	if null || err != nil {
		return 0, null, err
	}
	return decimalToInt(ctx, &n.dres, n.unsigned, n.name)
}

func (n *intVal) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	v, null, err := n.args[0].EvalReal(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	if n.ceil {
		return math.Ceil(v), false, nil
	}
	return math.Floor(v), false, nil
}

func (n *intVal) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	a, null, err := n.args[0].EvalDecimal(ctx, row, &n.darg1)
	if null || err != nil {
		return nil, null, err
	}
	var st decimal.Status
	if n.ceil {
		st = a.Ceiling(buf)
	} else {
		st = a.Floor(buf)
	}
	null, err = kernel.CheckDecimalOverflow(ctx, n.name, st)
	if null || err != nil {
		return nil, null, err
	}
	return buf, false, nil
}

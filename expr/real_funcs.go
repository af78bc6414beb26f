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

// realFunc is the shared body of functions that always produce a double:
// the logarithm family, SQRT, POW and EXP. The result scale is floating and
// every one of them can produce null from a valid input.
type realFunc struct {
	numHybrid
	fn func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error)
}

func (n *realFunc) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *realFunc) resolve(bctx *BindContext) error {
	if _, err := resolveNumericKind(n.name, n.args); err != nil {
		return err
	}
	n.kind = types.KindReal
	n.unsigned = false
	n.decimals = NotFixedDec
	n.maxLength = floatLength(NotFixedDec)
	n.maybeNull = true
	return nil
}

func (n *realFunc) intOp(ctx *eval.Context, row Row) (int64, bool, error) {
	panic("expr: " + n.name + " always resolves to the double domain")
}

func (n *realFunc) realOp(ctx *eval.Context, row Row) (float64, bool, error) {
	return n.fn(ctx, row, n)
}

func (n *realFunc) decimalOp(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	panic("expr: " + n.name + " always resolves to the double domain")
}

func newRealFunc(name string, fn func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error), args ...Node) Node {
	n := &realFunc{fn: fn}
	n.init(name, args...)
	n.ops = n
	return n
}

// logArg evaluates one operand and applies the logarithm domain rule: a
// non-positive argument is null plus a warning, never an error.
func logArg(ctx *eval.Context, row Row, n *realFunc, i int) (float64, bool, error) {
	v, null, err := n.args[i].EvalReal(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	if v <= 0 {
		ctx.SignalInvalidLogArgument(n.name)
		return 0, true, nil
	}
	return v, false, nil
}

// NewLn returns an LN(x) node: the natural logarithm.
func NewLn(x Node) Node {
	return newRealFunc("LN", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		v, null, err := logArg(ctx, row, n, 0)
		if null || err != nil {
			return 0, null, err
		}
		return math.Log(v), false, nil
	}, x)
}

// NewLog returns a LOG(x) node, the natural logarithm, or a LOG(b, x) node,
// the logarithm of x in base b. A base of 1 has no logarithm and is null.
func NewLog(args ...Node) Node {
	return newRealFunc("LOG", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		if len(n.args) == 1 {
			v, null, err := logArg(ctx, row, n, 0)
			if null || err != nil {
				return 0, null, err
			}
			return math.Log(v), false, nil
		}
		base, null, err := logArg(ctx, row, n, 0)
		if null || err != nil {
			return 0, null, err
		}
		v, null, err := logArg(ctx, row, n, 1)
		if null || err != nil {
			return 0, null, err
		}
		if base == 1 {
			ctx.SignalInvalidLogArgument(n.name)
			return 0, true, nil
		}
		return math.Log(v) / math.Log(base), false, nil
	}, args...)
}

// NewLog2 returns a LOG2(x) node.
func NewLog2(x Node) Node {
	return newRealFunc("LOG2", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		v, null, err := logArg(ctx, row, n, 0)
		if null || err != nil {
			return 0, null, err
		}
		return math.Log2(v), false, nil
	}, x)
}

// NewLog10 returns a LOG10(x) node.
func NewLog10(x Node) Node {
	return newRealFunc("LOG10", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		v, null, err := logArg(ctx, row, n, 0)
		if null || err != nil {
			return 0, null, err
		}
		return math.Log10(v), false, nil
	}, x)
}

// NewSqrt returns a SQRT(x) node. A negative argument is null.
func NewSqrt(x Node) Node {
	return newRealFunc("SQRT", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		v, null, err := n.args[0].EvalReal(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		if v < 0 {
			return 0, true, nil
		}
		return math.Sqrt(v), false, nil
	}, x)
}

// NewPow returns a POW(x, y) node. An infinite result raises overflow.
func NewPow(x, y Node) Node {
	return newRealFunc("POW", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		a, b, null, err := n.realArgs(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		return kernel.CheckFloatOverflow(ctx, n.name, math.Pow(a, b))
	}, x, y)
}

// NewExp returns an EXP(x) node. An infinite result raises overflow.
func NewExp(x Node) Node {
	return newRealFunc("EXP", func(ctx *eval.Context, row Row, n *realFunc) (float64, bool, error) {
		v, null, err := n.args[0].EvalReal(ctx, row)
		if null || err != nil {
			return 0, null, err
		}
		return kernel.CheckFloatOverflow(ctx, n.name, math.Exp(v))
	}, x)
}

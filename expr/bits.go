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
	"strconv"

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/kernel"
	"github.com/chengnin/mysql-server/types"
)

// maxBigintWidth is the display width of an unsigned 64-bit integer.
const maxBigintWidth = 21

// bitOps is the per-mode evaluation contract of a bitwise node: the integer
// form over unsigned 64-bit values and the string form over binary payloads.
type bitOps interface {
	intEval(ctx *eval.Context, row Row) (uint64, bool, error)
	bytesEval(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error)
}

// bitBase is the shared body of bitwise nodes. Resolution picks one of two
// modes: the string mode operates on whole binary payloads and is selected
// only when every deciding operand is a genuine (non-constant) binary string;
// everything else, mixed operands included, goes through the unsigned 64-bit
// integer mode, where strings are coerced like any other number.
type bitBase struct {
	baseFunc
	ops     bitOps
	strMode bool

	barg1, barg2, bres []byte
}

// resolveBits fixes the mode and the result metadata. strArgs is how many
// leading operands decide the mode: both for the symmetric operators, only
// the value operand for shifts and inversion.
func (n *bitBase) resolveBits(strArgs int) error {
	if err := rejectGeometry(n.name, n.args); err != nil {
		return err
	}
	binary := 0
	for _, a := range n.args[:strArgs] {
		if a.Kind() == types.KindBytes && !a.Const() {
			binary++
		}
	}
	if binary == strArgs {
		n.strMode = true
		n.kind = types.KindBytes
		n.decimals = 0
		n.maxLength = 0
		for _, a := range n.args[:strArgs] {
			n.maxLength = maxInt(n.maxLength, a.MaxLength())
		}
		return nil
	}
	n.kind = types.KindUint
	n.unsigned = true
	n.decimals = 0
	n.maxLength = maxBigintWidth
	return nil
}

func (n *bitBase) EvalInt(ctx *eval.Context, row Row) (int64, bool, error) {
	n.mustResolved()
	if !n.strMode {
		v, null, err := n.ops.intEval(ctx, row)
		return int64(v), null, err
	}
	b, null, err := n.ops.bytesEval(ctx, row, n.bres)
	if null || err != nil {
		return 0, null, err
	}
	n.bres = b
	return types.NewBytes(b).AsInt(), false, nil
}

func (n *bitBase) EvalReal(ctx *eval.Context, row Row) (float64, bool, error) {
	n.mustResolved()
	if !n.strMode {
		v, null, err := n.ops.intEval(ctx, row)
		return float64(v), null, err
	}
	b, null, err := n.ops.bytesEval(ctx, row, n.bres)
	if null || err != nil {
		return 0, null, err
	}
	n.bres = b
	return types.NewBytes(b).AsFloat(), false, nil
}

func (n *bitBase) EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error) {
	n.mustResolved()
	if !n.strMode {
		v, null, err := n.ops.intEval(ctx, row)
		if null || err != nil {
			return nil, null, err
		}
		return buf.SetUint(v), false, nil
	}
	b, null, err := n.ops.bytesEval(ctx, row, n.bres)
	if null || err != nil {
		return nil, null, err
	}
	n.bres = b
	return types.NewBytes(b).AsDecimal(buf), false, nil
}

func (n *bitBase) EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	n.mustResolved()
	if n.strMode {
		return n.ops.bytesEval(ctx, row, buf)
	}
	v, null, err := n.ops.intEval(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	return strconv.AppendUint(buf[:0], v, 10), false, nil
}

// uintArgs evaluates both operands as unsigned 64-bit bit patterns.
func (n *bitBase) uintArgs(ctx *eval.Context, row Row) (a, b uint64, null bool, err error) {
	v0, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, 0, null, err
	}
	v1, null, err := n.args[1].EvalInt(ctx, row)
	if null || err != nil {
		return 0, 0, null, err
	}
	return uint64(v0), uint64(v1), false, nil
}

// bytesArgs evaluates both operands into the node-owned byte scratch.
func (n *bitBase) bytesArgs(ctx *eval.Context, row Row) (a, b []byte, null bool, err error) {
	a, null, err = n.args[0].EvalBytes(ctx, row, n.barg1)
	if null || err != nil {
		return nil, nil, null, err
	}
	n.barg1 = a
	b, null, err = n.args[1].EvalBytes(ctx, row, n.barg2)
	if null || err != nil {
		return nil, nil, null, err
	}
	n.barg2 = b
	return a, b, false, nil
}

// bitCombine is the shared body of &, | and ^.
type bitCombine struct {
	bitBase
	intFn  func(a, b uint64) uint64
	byteFn func(buf, a, b []byte) ([]byte, error)
}

func (n *bitCombine) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *bitCombine) resolve(bctx *BindContext) error { return n.resolveBits(2) }

func (n *bitCombine) intEval(ctx *eval.Context, row Row) (uint64, bool, error) {
	a, b, null, err := n.uintArgs(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return n.intFn(a, b), false, nil
}

func (n *bitCombine) bytesEval(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	a, b, null, err := n.bytesArgs(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	out, err := n.byteFn(buf, a, b)
	if err != nil {
		return nil, false, err
	}
	return out, false, nil
}

// NewBitAnd returns an a & b node.
func NewBitAnd(a, b Node) Node {
	n := &bitCombine{
		intFn:  func(x, y uint64) uint64 { return x & y },
		byteFn: kernel.AndBytes,
	}
	n.init("&", a, b)
	n.ops = n
	return n
}

// NewBitOr returns an a | b node.
func NewBitOr(a, b Node) Node {
	n := &bitCombine{
		intFn:  func(x, y uint64) uint64 { return x | y },
		byteFn: kernel.OrBytes,
	}
	n.init("|", a, b)
	n.ops = n
	return n
}

// NewBitXor returns an a ^ b node.
func NewBitXor(a, b Node) Node {
	n := &bitCombine{
		intFn:  func(x, y uint64) uint64 { return x ^ y },
		byteFn: kernel.XorBytes,
	}
	n.init("^", a, b)
	n.ops = n
	return n
}

// bitShift is the shared body of << and >>. Only the shifted operand decides
// the mode; the shift count is always an integer.
type bitShift struct {
	bitBase
	left bool
}

func (n *bitShift) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *bitShift) resolve(bctx *BindContext) error { return n.resolveBits(1) }

func (n *bitShift) shiftCount(ctx *eval.Context, row Row) (uint64, bool, error) {
	v, null, err := n.args[1].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	if !n.args[1].Unsigned() && v < 0 {
		// A negative count shifts everything out.
		return ^uint64(0), false, nil
	}
	return uint64(v), false, nil
}

func (n *bitShift) intEval(ctx *eval.Context, row Row) (uint64, bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	shift, null, err := n.shiftCount(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return kernel.ShiftInt(uint64(v), shift, n.left), false, nil
}

func (n *bitShift) bytesEval(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	a, null, err := n.args[0].EvalBytes(ctx, row, n.barg1)
	if null || err != nil {
		return nil, null, err
	}
	n.barg1 = a
	shift, null, err := n.shiftCount(ctx, row)
	if null || err != nil {
		return nil, null, err
	}
	return kernel.ShiftBytes(buf, a, shift, n.left), false, nil
}

// NewShiftLeft returns an a << b node.
func NewShiftLeft(a, b Node) Node {
	n := &bitShift{left: true}
	n.init("<<", a, b)
	n.ops = n
	return n
}

// NewShiftRight returns an a >> b node.
func NewShiftRight(a, b Node) Node {
	n := &bitShift{}
	n.init(">>", a, b)
	n.ops = n
	return n
}

// BitNeg is the unary bit inversion ~a.
type BitNeg struct{ bitBase }

// NewBitNeg returns a ~a node.
func NewBitNeg(a Node) *BitNeg {
	n := &BitNeg{}
	n.init("~", a)
	n.ops = n
	return n
}

func (n *BitNeg) Bind(bctx *BindContext) error { return n.bind(bctx, n) }

func (n *BitNeg) resolve(bctx *BindContext) error { return n.resolveBits(1) }

func (n *BitNeg) intEval(ctx *eval.Context, row Row) (uint64, bool, error) {
	v, null, err := n.args[0].EvalInt(ctx, row)
	if null || err != nil {
		return 0, null, err
	}
	return ^uint64(v), false, nil
}

func (n *BitNeg) bytesEval(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error) {
	a, null, err := n.args[0].EvalBytes(ctx, row, n.barg1)
	if null || err != nil {
		return nil, null, err
	}
	n.barg1 = a
	return kernel.NotBytes(buf, a), false, nil
}

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

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/types"
)

// NotFixedDec is the sentinel scale of floating results whose number of
// fractional digits is not fixed.
const NotFixedDec = 31

// DefaultMaxDepth is the default binding recursion budget.
const DefaultMaxDepth = 256

// Row is one input row: the resolved operand values referenced by Column
// nodes.
type Row []types.Value

// Node is one expression tree node. Metadata accessors are valid only after
// Bind has succeeded; evaluation entry points panic if called on an
// unresolved node.
type Node interface {
	// Bind recursively binds the subtree and resolves this node's result
	// domain and numeric metadata. Idempotent; resolution itself runs
	// exactly once.
	Bind(bctx *BindContext) error

	// Kind is the resolved result domain.
	Kind() types.Kind
	// NumericContextKind is the domain the node contributes to numeric
	// type resolution (temporal values count as int or decimal, strings
	// as real when coercible).
	NumericContextKind() types.Kind
	// Decimals is the resolved scale, or NotFixedDec for floating results.
	Decimals() int
	// MaxLength is the resolved display-width upper bound.
	MaxLength() int
	// DecimalPrecision is the significant-digit estimate used by result
	// precision rules.
	DecimalPrecision() int
	// Unsigned reports the resolved signedness.
	Unsigned() bool
	// MaybeNull reports whether the node can ever produce SQL NULL.
	MaybeNull() bool
	// Const reports whether the node evaluates identically on every row.
	Const() bool
	// UsedRelations is the bitmap of base relations referenced by
	// non-constant descendants.
	UsedRelations() uint64
	// Geometry reports whether the node carries a geometry-typed payload,
	// which arithmetic and bitwise operators never accept.
	Geometry() bool

	EvalInt(ctx *eval.Context, row Row) (int64, bool, error)
	EvalReal(ctx *eval.Context, row Row) (float64, bool, error)
	// EvalDecimal writes into the caller-owned buf and returns it, or nil
	// when the result is null. The result is valid until the next
	// evaluation that reuses buf.
	EvalDecimal(ctx *eval.Context, row Row, buf *decimal.Decimal) (*decimal.Decimal, bool, error)
	// EvalBytes appends into the caller-owned buf. The returned slice is
	// valid until the next call that reuses buf.
	EvalBytes(ctx *eval.Context, row Row, buf []byte) ([]byte, bool, error)
}

// BindContext carries the per-statement state of the binding phase: the
// evaluation context whose session modes drive resolution decisions, and
// the recursion budget guarding against degenerate tree depth.
type BindContext struct {
	Eval     *eval.Context
	MaxDepth int
	depth    int
}

// NewBindContext returns a binding context with the default recursion
// budget. A nil eval context gets eval.Background().
func NewBindContext(evalCtx *eval.Context) *BindContext {
	if evalCtx == nil {
		evalCtx = eval.Background()
	}
	return &BindContext{Eval: evalCtx, MaxDepth: DefaultMaxDepth}
}

func (b *BindContext) enter() error {
	max := b.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	b.depth++
	if b.depth > max {
		return fmt.Errorf("%w: expression nesting exceeds %d", eval.ErrStackOverflow, max)
	}
	return nil
}

func (b *BindContext) leave() { b.depth-- }

// resolver is the once-per-statement type resolution hook of a function
// node.
type resolver interface {
	resolve(bctx *BindContext) error
}

// baseFunc carries the child list and the write-once resolved metadata of a
// function node.
type baseFunc struct {
	name     string
	args     []Node
	bound    bool
	resolved bool

	kind      types.Kind
	decimals  int
	maxLength int
	unsigned  bool
	maybeNull bool
	constant  bool
	usedRels  uint64
}

func (f *baseFunc) init(name string, args ...Node) {
	f.name = name
	f.args = args
}

// bind binds all children exactly once, aggregates their metadata, and
// invokes r.resolve exactly once.
func (f *baseFunc) bind(bctx *BindContext, r resolver) error {
	if err := bctx.enter(); err != nil {
		return err
	}
	defer bctx.leave()
	if f.bound {
		return nil
	}
	f.constant = true
	for _, a := range f.args {
		if err := a.Bind(bctx); err != nil {
			return err
		}
		f.maybeNull = f.maybeNull || a.MaybeNull()
		f.usedRels |= a.UsedRelations()
		f.constant = f.constant && a.Const()
	}
	if f.resolved {
		panic("expr: " + f.name + " resolved twice")
	}
	if err := r.resolve(bctx); err != nil {
		return err
	}
	f.resolved = true
	f.bound = true
	return nil
}

func (f *baseFunc) mustResolved() {
	if !f.resolved {
		panic("expr: " + f.name + " evaluated before binding")
	}
}

func (f *baseFunc) Kind() types.Kind { return f.kind }
func (f *baseFunc) NumericContextKind() types.Kind {
	return f.kind
}
func (f *baseFunc) Decimals() int          { return f.decimals }
func (f *baseFunc) MaxLength() int         { return f.maxLength }
func (f *baseFunc) Unsigned() bool         { return f.unsigned }
func (f *baseFunc) MaybeNull() bool        { return f.maybeNull }
func (f *baseFunc) Const() bool            { return f.constant }
func (f *baseFunc) UsedRelations() uint64  { return f.usedRels }
func (f *baseFunc) Geometry() bool         { return false }

// DecimalPrecision estimates significant digits from the resolved width,
// dropping the point and sign positions.
func (f *baseFunc) DecimalPrecision() int {
	p := f.maxLength
	if f.decimals > 0 && f.decimals != NotFixedDec {
		p--
	}
	if !f.unsigned {
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

// setIntKind fixes an integer result domain consistent with the resolved
// signedness.
func (f *baseFunc) setIntKind() {
	if f.unsigned {
		f.kind = types.KindUint
	} else {
		f.kind = types.KindInt
	}
}

const dblDig = 15

// floatLength is the display width of a double with the given scale.
func floatLength(decimals int) int {
	if decimals == NotFixedDec {
		return dblDig + 8
	}
	return dblDig + 2 + decimals
}

// rejectGeometry fails resolution when any operand carries a geometry
// payload; geometry values never participate in numeric or bitwise
// calculations.
func rejectGeometry(op string, args []Node) error {
	for _, a := range args {
		if a.Geometry() {
			return fmt.Errorf("%w: geometry operand in %q", eval.ErrInvalidArgument, op)
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

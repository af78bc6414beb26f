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

package funcs

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/expr"
	"github.com/chengnin/mysql-server/types"
	"github.com/chengnin/mysql-server/utils/cast"
)

// Bridge connects the typed node engine to expr-lang: free-form expression
// strings over map rows, with the engine's named scalar functions available
// in the expression environment. Callers that need exact decimal arithmetic
// or the session overflow modes build typed trees instead; the bridge is the
// convenience surface.
type Bridge struct {
	mu       sync.RWMutex
	ctx      *eval.Context
	registry *Registry
	programs map[string]*vm.Program
}

// NewBridge returns a bridge evaluating with ctx over the given registry.
// A nil registry uses the default one.
func NewBridge(ctx *eval.Context, r *Registry) *Bridge {
	if ctx == nil {
		ctx = eval.Background()
	}
	if r == nil {
		r = Default()
	}
	return &Bridge{
		ctx:      ctx,
		registry: r,
		programs: make(map[string]*vm.Program),
	}
}

// identifier reports whether a registered name can appear as an expr-lang
// function. Operator spellings like "+" or "<<" are expr-lang builtins and
// are not re-exported.
func identifier(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return len(name) > 0
}

// call builds, binds and evaluates one named function over already-evaluated
// operand values.
func (b *Bridge) call(name string, params []interface{}) (interface{}, error) {
	args := make([]expr.Node, len(params))
	for i, p := range params {
		n, err := paramNode(p)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %q: %w", i+1, name, err)
		}
		args[i] = n
	}
	node, err := b.registry.Build(name, args...)
	if err != nil {
		return nil, err
	}
	if err := node.Bind(expr.NewBindContext(b.ctx)); err != nil {
		return nil, err
	}
	return nodeResult(b.ctx, node)
}

// environment merges the row data with the wrapped engine functions, both in
// their registered and upper-case spellings.
func (b *Bridge) environment(data map[string]interface{}) map[string]interface{} {
	env := make(map[string]interface{}, len(data)+2*len(b.registry.ListNames()))
	for k, v := range data {
		env[k] = v
	}
	for _, name := range b.registry.ListNames() {
		if !identifier(name) {
			continue
		}
		fname := name
		wrapped := func(params ...interface{}) (interface{}, error) {
			return b.call(fname, params)
		}
		env[fname] = wrapped
		env[strings.ToUpper(fname)] = wrapped
	}
	return env
}

// Compile parses and caches an expression string.
func (b *Bridge) Compile(expression string) (*vm.Program, error) {
	b.mu.RLock()
	program, ok := b.programs[expression]
	b.mu.RUnlock()
	if ok {
		return program, nil
	}

	options := []exprlang.Option{
		exprlang.Env(map[string]interface{}{}),
		exprlang.AllowUndefinedVariables(),
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", eval.ErrBind, err)
	}

	b.mu.Lock()
	b.programs[expression] = program
	b.mu.Unlock()
	return program, nil
}

// Evaluate compiles (or reuses) the expression and runs it over data.
func (b *Bridge) Evaluate(expression string, data map[string]interface{}) (interface{}, error) {
	program, err := b.Compile(expression)
	if err != nil {
		return nil, err
	}
	out, err := vm.Run(program, b.environment(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", eval.ErrInvalidArgument, err)
	}
	return out, nil
}

// paramNode lifts one dynamically-typed argument into a constant node.
func paramNode(p interface{}) (expr.Node, error) {
	switch v := p.(type) {
	case nil:
		return expr.NewNullLiteral(types.KindInt), nil
	case int:
		return expr.NewIntLiteral(int64(v)), nil
	case int8:
		return expr.NewIntLiteral(int64(v)), nil
	case int16:
		return expr.NewIntLiteral(int64(v)), nil
	case int32:
		return expr.NewIntLiteral(int64(v)), nil
	case int64:
		return expr.NewIntLiteral(v), nil
	case uint:
		return expr.NewUintLiteral(uint64(v)), nil
	case uint8:
		return expr.NewUintLiteral(uint64(v)), nil
	case uint16:
		return expr.NewUintLiteral(uint64(v)), nil
	case uint32:
		return expr.NewUintLiteral(uint64(v)), nil
	case uint64:
		return expr.NewUintLiteral(v), nil
	case float32:
		return expr.NewFloatLiteral(float64(v)), nil
	case float64:
		return expr.NewFloatLiteral(v), nil
	case string:
		return expr.NewStringLiteral(v), nil
	case []byte:
		return expr.NewBytesLiteral(v), nil
	case *decimal.Decimal:
		return expr.NewDecimalLiteral(v), nil
	default:
		f, err := cast.ToFloat64E(p)
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported argument type %T", eval.ErrType, p)
		}
		return expr.NewFloatLiteral(f), nil
	}
}

// nodeResult evaluates a bound node in its native domain and returns a plain
// Go value: int64, uint64, float64, the decimal rendering, or the bytes.
// SQL NULL comes back as nil.
func nodeResult(ctx *eval.Context, node expr.Node) (interface{}, error) {
	switch node.Kind() {
	case types.KindInt:
		v, null, err := node.EvalInt(ctx, nil)
		if err != nil || null {
			return nil, err
		}
		return v, nil
	case types.KindUint:
		v, null, err := node.EvalInt(ctx, nil)
		if err != nil || null {
			return nil, err
		}
		return uint64(v), nil
	case types.KindReal:
		v, null, err := node.EvalReal(ctx, nil)
		if err != nil || null {
			return nil, err
		}
		return v, nil
	case types.KindDecimal:
		d, null, err := node.EvalDecimal(ctx, nil, decimal.New())
		if err != nil || null {
			return nil, err
		}
		return d.String(), nil
	case types.KindBytes:
		b, null, err := node.EvalBytes(ctx, nil, nil)
		if err != nil || null {
			return nil, err
		}
		return string(b), nil
	}
	return nil, fmt.Errorf("%w: unexpected result domain", eval.ErrType)
}

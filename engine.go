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

package mysqlserver

import (
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/expr"
	"github.com/chengnin/mysql-server/funcs"
)

// Engine is the facade over the scalar expression machinery: one evaluation
// context (session modes plus a statement diagnostics area), a function
// registry, and the expr-lang bridge for free-form expression strings.
//
// An Engine is safe for concurrent evaluation of bound trees; the
// diagnostics area serializes its own access.
type Engine struct {
	mode          eval.Mode
	precIncrement int
	maxDepth      int
	registry      *funcs.Registry

	diags  *eval.Diagnostics
	ctx    *eval.Context
	bridge *funcs.Bridge
}

// New returns an engine configured by the given options.
//
// Example:
//
//	engine := mysqlserver.New(
//		mysqlserver.WithStrictMode(),
//		mysqlserver.WithDivPrecIncrement(6),
//	)
//	node, err := engine.Build("/", expr.NewDecimalLiteral(decimal.MustParse("10.5")), expr.NewIntLiteral(4))
func New(options ...Option) *Engine {
	e := &Engine{
		precIncrement: eval.DefaultDivPrecIncrement,
		maxDepth:      expr.DefaultMaxDepth,
		registry:      funcs.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.diags = eval.NewDiagnostics()
	e.ctx = eval.NewContext(e.mode, e.precIncrement, e.diags)
	e.bridge = funcs.NewBridge(e.ctx, e.registry)
	return e
}

// Context returns the engine's evaluation context, for passing to node
// evaluation entry points.
func (e *Engine) Context() *eval.Context { return e.ctx }

// Registry returns the function registry the engine builds from.
func (e *Engine) Registry() *funcs.Registry { return e.registry }

// Build constructs the named function over args and binds it, returning a
// tree ready for evaluation.
func (e *Engine) Build(name string, args ...expr.Node) (expr.Node, error) {
	node, err := e.registry.Build(name, args...)
	if err != nil {
		return nil, err
	}
	if err := e.Bind(node); err != nil {
		return nil, err
	}
	return node, nil
}

// Bind binds an externally constructed tree against the engine's context.
func (e *Engine) Bind(node expr.Node) error {
	bctx := expr.NewBindContext(e.ctx)
	bctx.MaxDepth = e.maxDepth
	return node.Bind(bctx)
}

// EvaluateExpression evaluates a free-form expression string over a map row
// through the expr-lang bridge. The engine's registered functions are
// available under their lower- and upper-case names.
func (e *Engine) EvaluateExpression(expression string, data map[string]interface{}) (interface{}, error) {
	return e.bridge.Evaluate(expression, data)
}

// Warnings returns the warnings collected since the last reset.
func (e *Engine) Warnings() []eval.Diagnostic { return e.diags.Warnings() }

// ResetDiagnostics clears the statement diagnostics area.
func (e *Engine) ResetDiagnostics() { e.diags.Reset() }

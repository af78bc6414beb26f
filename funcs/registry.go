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

	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/expr"
)

// Category groups registered functions for discovery.
type Category string

const (
	// CategoryArithmetic holds +, -, *, /, DIV, %, NEG, ABS.
	CategoryArithmetic Category = "arithmetic"
	// CategoryRounding holds ROUND, TRUNCATE, CEILING, FLOOR.
	CategoryRounding Category = "rounding"
	// CategoryBitwise holds &, |, ^, ~, <<, >>.
	CategoryBitwise Category = "bitwise"
	// CategoryMath holds the real-valued functions (LN, LOG, SQRT, POW, ...).
	CategoryMath Category = "math"
)

// Builder constructs an unbound expression node from its operand nodes.
// Arity has already been validated against the registration.
type Builder func(args ...expr.Node) expr.Node

// Entry describes one registered function.
type Entry struct {
	Name     string
	Category Category
	MinArgs  int
	MaxArgs  int
	Build    Builder
}

// Registry is a case-insensitive name to node-builder map, safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	categories map[Category][]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:    make(map[string]*Entry),
		categories: make(map[Category][]*Entry),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry preloaded with the built-in
// operators.
func Default() *Registry { return defaultRegistry }

// Register adds an entry. Names are case-insensitive; registering a taken
// name fails.
func (r *Registry) Register(e *Entry) error {
	name := strings.ToLower(e.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: function %q already registered", eval.ErrBind, e.Name)
	}
	r.entries[name] = e
	r.categories[e.Category] = append(r.categories[e.Category], e)
	return nil
}

// Get looks up an entry by name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.ToLower(name)]
	return e, ok
}

// GetByCategory returns the entries of one category.
func (r *Registry) GetByCategory(c Category) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, len(r.categories[c]))
	copy(out, r.categories[c])
	return out
}

// ListNames returns every registered name, lower-cased.
func (r *Registry) ListNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Build constructs an unbound node for name over args, validating arity.
func (r *Registry) Build(name string, args ...expr.Node) (expr.Node, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown function %q", eval.ErrBind, name)
	}
	if len(args) < e.MinArgs || len(args) > e.MaxArgs {
		return nil, fmt.Errorf("%w: %q expects %d to %d arguments, got %d",
			eval.ErrBind, e.Name, e.MinArgs, e.MaxArgs, len(args))
	}
	return e.Build(args...), nil
}

// Build constructs a node from the default registry.
func Build(name string, args ...expr.Node) (expr.Node, error) {
	return defaultRegistry.Build(name, args...)
}

func mustRegister(r *Registry, name string, c Category, min, max int, b Builder) {
	if err := r.Register(&Entry{Name: name, Category: c, MinArgs: min, MaxArgs: max, Build: b}); err != nil {
		panic(err)
	}
}

func binary(f func(a, b expr.Node) expr.Node) Builder {
	return func(args ...expr.Node) expr.Node { return f(args[0], args[1]) }
}

func unary(f func(a expr.Node) expr.Node) Builder {
	return func(args ...expr.Node) expr.Node { return f(args[0]) }
}

func nodeBinary(f func(a, b expr.Node) *expr.Round) Builder {
	return func(args ...expr.Node) expr.Node { return f(args[0], args[1]) }
}

func init() {
	r := defaultRegistry

	mustRegister(r, "+", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewPlus(a, b) }))
	mustRegister(r, "-", CategoryArithmetic, 1, 2, func(args ...expr.Node) expr.Node {
		if len(args) == 1 {
			return expr.NewNeg(args[0])
		}
		return expr.NewMinus(args[0], args[1])
	})
	mustRegister(r, "*", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewMul(a, b) }))
	mustRegister(r, "/", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewDiv(a, b) }))
	mustRegister(r, "div", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewIntDiv(a, b) }))
	mustRegister(r, "%", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewMod(a, b) }))
	mustRegister(r, "mod", CategoryArithmetic, 2, 2, binary(func(a, b expr.Node) expr.Node { return expr.NewMod(a, b) }))
	mustRegister(r, "abs", CategoryArithmetic, 1, 1, unary(func(a expr.Node) expr.Node { return expr.NewAbs(a) }))

	mustRegister(r, "round", CategoryRounding, 1, 2, roundBuilder(expr.NewRound))
	mustRegister(r, "truncate", CategoryRounding, 2, 2, nodeBinary(expr.NewTruncate))
	mustRegister(r, "ceiling", CategoryRounding, 1, 1, unary(func(a expr.Node) expr.Node { return expr.NewCeiling(a) }))
	mustRegister(r, "ceil", CategoryRounding, 1, 1, unary(func(a expr.Node) expr.Node { return expr.NewCeiling(a) }))
	mustRegister(r, "floor", CategoryRounding, 1, 1, unary(func(a expr.Node) expr.Node { return expr.NewFloor(a) }))

	mustRegister(r, "&", CategoryBitwise, 2, 2, binary(expr.NewBitAnd))
	mustRegister(r, "|", CategoryBitwise, 2, 2, binary(expr.NewBitOr))
	mustRegister(r, "^", CategoryBitwise, 2, 2, binary(expr.NewBitXor))
	mustRegister(r, "~", CategoryBitwise, 1, 1, unary(func(a expr.Node) expr.Node { return expr.NewBitNeg(a) }))
	mustRegister(r, "<<", CategoryBitwise, 2, 2, binary(expr.NewShiftLeft))
	mustRegister(r, ">>", CategoryBitwise, 2, 2, binary(expr.NewShiftRight))

	mustRegister(r, "ln", CategoryMath, 1, 1, unary(expr.NewLn))
	mustRegister(r, "log", CategoryMath, 1, 2, func(args ...expr.Node) expr.Node { return expr.NewLog(args...) })
	mustRegister(r, "log2", CategoryMath, 1, 1, unary(expr.NewLog2))
	mustRegister(r, "log10", CategoryMath, 1, 1, unary(expr.NewLog10))
	mustRegister(r, "sqrt", CategoryMath, 1, 1, unary(expr.NewSqrt))
	mustRegister(r, "pow", CategoryMath, 2, 2, binary(expr.NewPow))
	mustRegister(r, "power", CategoryMath, 2, 2, binary(expr.NewPow))
	mustRegister(r, "exp", CategoryMath, 1, 1, unary(expr.NewExp))
}

// roundBuilder supplies the implicit zero scale of the one-argument ROUND.
func roundBuilder(f func(x, d expr.Node) *expr.Round) Builder {
	return func(args ...expr.Node) expr.Node {
		if len(args) == 1 {
			return f(args[0], expr.NewIntLiteral(0))
		}
		return f(args[0], args[1])
	}
}

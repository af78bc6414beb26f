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
	"io"

	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/funcs"
	"github.com/chengnin/mysql-server/logger"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithStrictMode makes recoverable numeric warnings (overflow, truncation on
// conversion) statement errors instead of warning-plus-NULL.
func WithStrictMode() Option {
	return func(e *Engine) { e.mode |= eval.ModeStrict }
}

// WithErrorOnDivisionByZero makes division and modulo by zero a statement
// error instead of warning-plus-NULL.
func WithErrorOnDivisionByZero() Option {
	return func(e *Engine) { e.mode |= eval.ModeErrDivisionByZero }
}

// WithNoUnsignedSubtraction lets subtraction of unsigned operands produce
// signed, possibly negative, results.
func WithNoUnsignedSubtraction() Option {
	return func(e *Engine) { e.mode |= eval.ModeNoUnsignedSubtraction }
}

// WithDivPrecIncrement sets the number of extra fractional digits preserved
// by decimal division. The default is 4.
func WithDivPrecIncrement(n int) Option {
	return func(e *Engine) { e.precIncrement = n }
}

// WithMaxDepth sets the binding recursion budget.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithRegistry replaces the default function registry.
func WithRegistry(r *funcs.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets a custom logger as the process default.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { logger.SetDefault(log) }
}

// WithLogLevel sets the default logger's level.
//
// Example:
//
//	engine := mysqlserver.New(mysqlserver.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) { logger.GetDefault().SetLevel(level) }
}

// WithLogOutput directs default logging to output at the given level.
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) { logger.SetDefault(logger.NewLogger(level, output)) }
}

// WithDiscardLog turns logging off entirely.
func WithDiscardLog() Option {
	return func(e *Engine) { logger.SetDefault(logger.NewDiscardLogger()) }
}

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

package eval

import (
	"fmt"
	"sync"

	"github.com/chengnin/mysql-server/logger"
)

// Mode is the session-level flag set consulted by the kernels.
type Mode uint32

const (
	// ModeStrict converts recoverable numeric warnings into statement
	// errors.
	ModeStrict Mode = 1 << iota
	// ModeErrDivisionByZero makes division by zero a statement error
	// instead of a null-with-warning.
	ModeErrDivisionByZero
	// ModeNoUnsignedSubtraction lets subtraction of unsigned integers
	// produce signed (possibly negative) results.
	ModeNoUnsignedSubtraction
)

// Has reports whether all flags in f are set.
func (m Mode) Has(f Mode) bool { return m&f == f }

// DefaultDivPrecIncrement is the default number of extra fractional digits
// preserved by division.
const DefaultDivPrecIncrement = 4

// Diagnostic is one warning collected in the statement diagnostics area.
type Diagnostic struct {
	Code    WarnCode
	Message string
}

// Sink receives warnings raised during evaluation.
type Sink interface {
	Warn(code WarnCode, format string, args ...interface{})
}

// Diagnostics is the default Sink: a statement diagnostics area that
// collects warnings and mirrors them to the logger at debug level.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []Diagnostic
	log      logger.Logger
}

// NewDiagnostics returns an empty diagnostics area.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{log: logger.GetDefault()}
}

// Warn records one warning.
func (d *Diagnostics) Warn(code WarnCode, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	d.mu.Lock()
	d.warnings = append(d.warnings, Diagnostic{Code: code, Message: msg})
	d.mu.Unlock()
	if d.log != nil {
		d.log.Debug("warning %d: %s", code, msg)
	}
}

// Warnings returns a copy of the collected warnings.
func (d *Diagnostics) Warnings() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// Reset clears the diagnostics area for the next statement.
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	d.warnings = d.warnings[:0]
	d.mu.Unlock()
}

// Context is the immutable per-statement evaluation context passed through
// every kernel call. One Context must not be shared between concurrently
// evaluating statements unless the sink is safe for concurrent use.
type Context struct {
	mode          Mode
	precIncrement int
	sink          Sink
}

// NewContext returns a context with the given session modes and division
// precision increment. A nil sink gets a fresh Diagnostics area.
func NewContext(mode Mode, precIncrement int, sink Sink) *Context {
	if precIncrement < 0 {
		precIncrement = 0
	}
	if precIncrement > MaxPrecIncrement {
		precIncrement = MaxPrecIncrement
	}
	if sink == nil {
		sink = NewDiagnostics()
	}
	return &Context{mode: mode, precIncrement: precIncrement, sink: sink}
}

// MaxPrecIncrement bounds the extra fractional digits of division.
const MaxPrecIncrement = 30

// Background returns a context with default modes and a private diagnostics
// area, for kernels exercised outside a session.
func Background() *Context {
	return NewContext(0, DefaultDivPrecIncrement, nil)
}

// Mode returns the session flag set.
func (c *Context) Mode() Mode { return c.mode }

// Strict reports whether strict mode is on.
func (c *Context) Strict() bool { return c.mode.Has(ModeStrict) }

// DivPrecIncrement returns the extra fractional digits preserved by
// division.
func (c *Context) DivPrecIncrement() int { return c.precIncrement }

// Warnf records a warning in the diagnostics area.
func (c *Context) Warnf(code WarnCode, format string, args ...interface{}) {
	c.sink.Warn(code, format, args...)
}

// RaiseOverflow reports that op overflowed the named domain. In strict mode
// it returns a statement error; otherwise it records a warning and returns
// nil, and the caller produces SQL NULL.
func (c *Context) RaiseOverflow(domain, op string) error {
	if c.Strict() {
		return fmt.Errorf("%w: %s value in %q", ErrOverflow, domain, op)
	}
	c.Warnf(WarnDataOutOfRange, "%s value is out of range in %q", domain, op)
	return nil
}

// SignalDivisionByZero reports a division by exact zero. When the session
// treats division by zero as an error it returns a statement error;
// otherwise it records a warning and returns nil, and the caller produces
// SQL NULL.
func (c *Context) SignalDivisionByZero() error {
	if c.mode.Has(ModeErrDivisionByZero) {
		return ErrDivisionByZero
	}
	c.Warnf(WarnDivisionByZero, "division by zero")
	return nil
}

// SignalInvalidLogArgument reports a non-positive logarithm argument seen at
// evaluation time. Always recoverable: warning plus NULL.
func (c *Context) SignalInvalidLogArgument(op string) {
	c.Warnf(WarnInvalidLogArgument, "invalid argument for logarithm in %q", op)
}

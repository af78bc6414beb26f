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

import "errors"

// Sentinel errors of the engine. Statement-level failures wrap one of these;
// callers classify with errors.Is.
var (
	// ErrOverflow reports a magnitude exceeding the domain's representable
	// range. Raised as a hard error only in strict mode.
	ErrOverflow = errors.New("value is out of range")
	// ErrDivisionByZero reports division by exact zero when the session
	// treats that as an error.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidArgument reports an operand the operator can never accept:
	// a geometry payload in numeric context, mismatched byte lengths in
	// string-mode bitwise operations, or a non-positive logarithm argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStackOverflow reports an expression tree deeper than the binding
	// recursion budget. Fatal for the statement, not for the process.
	ErrStackOverflow = errors.New("expression tree too deep")
	// ErrBind reports a binding failure.
	ErrBind = errors.New("bind error")
	// ErrType reports an unsupported domain combination at resolution time.
	ErrType = errors.New("type resolution error")
)

// WarnCode identifies a diagnostics-area warning condition.
type WarnCode int

// Warning codes, numbered after the server conditions they correspond to.
const (
	WarnDivisionByZero     WarnCode = 1365
	WarnDataOutOfRange     WarnCode = 1690
	WarnInvalidLogArgument WarnCode = 3020
	WarnDataTruncated      WarnCode = 1265
)

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

package kernel

import (
	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
)

// CheckDecimalOverflow maps a decimal status to the engine's null/error
// policy: severities above truncation become null plus overflow handling,
// truncation is accepted with a warning, and division by zero follows the
// session's division mode.
func CheckDecimalOverflow(ctx *eval.Context, op string, st decimal.Status) (bool, error) {
	switch {
	case st == decimal.StatusDivisionByZero:
		err := ctx.SignalDivisionByZero()
		return true, err
	case st.Hard():
		err := ctx.RaiseOverflow("DECIMAL", op)
		return true, err
	case st == decimal.StatusTruncated:
		ctx.Warnf(eval.WarnDataTruncated, "decimal result truncated in %q", op)
	}
	return false, nil
}

// AddDecimal stores a + b into res, reporting null on overflow.
func AddDecimal(ctx *eval.Context, res, a, b *decimal.Decimal, op string) (bool, error) {
	return CheckDecimalOverflow(ctx, op, res.Add(a, b))
}

// SubDecimal stores a - b into res.
func SubDecimal(ctx *eval.Context, res, a, b *decimal.Decimal, op string) (bool, error) {
	return CheckDecimalOverflow(ctx, op, res.Sub(a, b))
}

// MulDecimal stores a * b into res.
func MulDecimal(ctx *eval.Context, res, a, b *decimal.Decimal, op string) (bool, error) {
	return CheckDecimalOverflow(ctx, op, res.Mul(a, b))
}

// DivDecimal stores a / b into res, preserving the session's extra
// fractional digits. Division by zero produces null.
func DivDecimal(ctx *eval.Context, res, a, b *decimal.Decimal, op string) (bool, error) {
	return CheckDecimalOverflow(ctx, op, res.Div(a, b, ctx.DivPrecIncrement()))
}

// ModDecimal stores a % b into res. Modulo by zero produces null.
func ModDecimal(ctx *eval.Context, res, a, b *decimal.Decimal, op string) (bool, error) {
	return CheckDecimalOverflow(ctx, op, res.Mod(a, b))
}

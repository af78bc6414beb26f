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
	"math"

	"github.com/chengnin/mysql-server/eval"
)

// CheckFloatOverflow validates a computed double. An infinite result raises
// overflow and produces null (or a statement error in strict mode).
func CheckFloatOverflow(ctx *eval.Context, op string, v float64) (float64, bool, error) {
	if math.IsInf(v, 0) {
		err := ctx.RaiseOverflow("DOUBLE", op)
		return 0, true, err
	}
	return v, false, nil
}

// AddReal adds two doubles with overflow checking.
func AddReal(ctx *eval.Context, a, b float64, op string) (float64, bool, error) {
	return CheckFloatOverflow(ctx, op, a+b)
}

// SubReal subtracts two doubles with overflow checking.
func SubReal(ctx *eval.Context, a, b float64, op string) (float64, bool, error) {
	return CheckFloatOverflow(ctx, op, a-b)
}

// MulReal multiplies two doubles with overflow checking.
func MulReal(ctx *eval.Context, a, b float64, op string) (float64, bool, error) {
	return CheckFloatOverflow(ctx, op, a*b)
}

// DivReal divides two doubles. Division by exact zero produces null plus the
// session's division-by-zero handling.
func DivReal(ctx *eval.Context, a, b float64, op string) (float64, bool, error) {
	if b == 0.0 {
		err := ctx.SignalDivisionByZero()
		return 0, true, err
	}
	return CheckFloatOverflow(ctx, op, a/b)
}

// ModReal computes fmod(a, b). Modulo by exact zero produces null.
func ModReal(ctx *eval.Context, a, b float64, op string) (float64, bool, error) {
	if b == 0.0 {
		err := ctx.SignalDivisionByZero()
		return 0, true, err
	}
	return math.Mod(a, b), false, nil
}

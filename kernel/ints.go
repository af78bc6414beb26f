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

// Int is a 64-bit integer operand: the value bits plus the signedness under
// which they are interpreted.
type Int struct {
	V        int64
	Unsigned bool
}

// Uint returns the value bits as an unsigned integer.
func (i Int) Uint() uint64 { return uint64(i.V) }

// negative reports whether the operand is mathematically negative.
func (i Int) negative() bool { return !i.Unsigned && i.V < 0 }

func sumOverflowsUint64(a, b uint64) bool {
	return math.MaxUint64-a < b
}

// checkIntegerOverflow validates that the (value, resUnsigned) pair fits the
// target signedness, raising overflow otherwise.
func checkIntegerOverflow(ctx *eval.Context, res int64, resUnsigned, wantUnsigned bool, op string) (int64, bool, error) {
	if (wantUnsigned && !resUnsigned && res < 0) ||
		(!wantUnsigned && resUnsigned && uint64(res) > uint64(math.MaxInt64)) {
		return raiseIntegerOverflow(ctx, op)
	}
	return res, false, nil
}

func raiseIntegerOverflow(ctx *eval.Context, op string) (int64, bool, error) {
	err := ctx.RaiseOverflow("BIGINT", op)
	return 0, true, err
}

// AddInt adds two integer operands, producing a value of the target
// signedness or null on overflow.
//
// The wrapped sum is accepted only after classifying both operands by
// (unsigned flag, sign) and proving the mathematical result representable.
func AddInt(ctx *eval.Context, a, b Int, wantUnsigned bool, op string) (int64, bool, error) {
	res := a.V + b.V
	resUnsigned := false

	if a.Unsigned {
		if b.Unsigned || b.V >= 0 {
			if sumOverflowsUint64(a.Uint(), b.Uint()) {
				return raiseIntegerOverflow(ctx, op)
			}
			resUnsigned = true
		} else {
			// b is negative.
			if a.Uint() > uint64(math.MaxInt64) {
				resUnsigned = true
			}
		}
	} else {
		if b.Unsigned {
			if a.V >= 0 {
				if sumOverflowsUint64(a.Uint(), b.Uint()) {
					return raiseIntegerOverflow(ctx, op)
				}
				resUnsigned = true
			} else {
				if b.Uint() > uint64(math.MaxInt64) {
					resUnsigned = true
				}
			}
		} else {
			if a.V >= 0 && b.V >= 0 {
				resUnsigned = true
			} else if a.V < 0 && b.V < 0 && res >= 0 {
				return raiseIntegerOverflow(ctx, op)
			}
		}
	}
	return checkIntegerOverflow(ctx, res, resUnsigned, wantUnsigned, op)
}

// SubInt subtracts b from a with the same overflow discipline as AddInt.
func SubInt(ctx *eval.Context, a, b Int, wantUnsigned bool, op string) (int64, bool, error) {
	res := a.V - b.V
	resUnsigned := false

	if a.Unsigned {
		if b.Unsigned {
			if a.Uint() < b.Uint() {
				if res >= 0 {
					return raiseIntegerOverflow(ctx, op)
				}
			} else {
				resUnsigned = true
			}
		} else {
			if b.V >= 0 {
				if a.Uint() > uint64(b.V) {
					resUnsigned = true
				}
			} else {
				if sumOverflowsUint64(a.Uint(), uint64(-b.V)) {
					return raiseIntegerOverflow(ctx, op)
				}
				resUnsigned = true
			}
		}
	} else {
		if b.Unsigned {
			if uint64(a.V-math.MinInt64) < b.Uint() {
				return raiseIntegerOverflow(ctx, op)
			}
		} else {
			if a.V >= 0 && b.V < 0 {
				resUnsigned = true
			} else if a.V < 0 && b.V > 0 && res >= 0 {
				return raiseIntegerOverflow(ctx, op)
			}
		}
	}
	return checkIntegerOverflow(ctx, res, resUnsigned, wantUnsigned, op)
}

// MulInt multiplies two integer operands. Operands are taken as absolute
// magnitudes split into 32-bit halves; the cross products are checked
// incrementally against the 32- and 64-bit capacities before combining, and
// the sign is reapplied at the end.
func MulInt(ctx *eval.Context, a, b Int, wantUnsigned bool, op string) (int64, bool, error) {
	aVal, bVal := a.V, b.V
	aNegative := false
	bNegative := false
	if !a.Unsigned && aVal < 0 {
		aNegative = true
		aVal = -aVal // MinInt64 keeps its bit pattern; the unsigned halves below read it as 2^63
	}
	if !b.Unsigned && bVal < 0 {
		bNegative = true
		bVal = -bVal
	}

	a0 := uint64(aVal) & 0xFFFFFFFF
	a1 := uint64(aVal) >> 32
	b0 := uint64(bVal) & 0xFFFFFFFF
	b1 := uint64(bVal) >> 32

	if a1 != 0 && b1 != 0 {
		return raiseIntegerOverflow(ctx, op)
	}
	res1 := a1*b0 + a0*b1
	if res1 > 0xFFFFFFFF {
		return raiseIntegerOverflow(ctx, op)
	}
	res1 <<= 32
	res0 := a0 * b0
	if sumOverflowsUint64(res1, res0) {
		return raiseIntegerOverflow(ctx, op)
	}
	res := res1 + res0

	resUnsigned := false
	if aNegative != bNegative {
		if res > uint64(math.MaxInt64)+1 {
			return raiseIntegerOverflow(ctx, op)
		}
		return checkIntegerOverflow(ctx, -int64(res), false, wantUnsigned, op)
	}
	resUnsigned = true
	return checkIntegerOverflow(ctx, int64(res), resUnsigned, wantUnsigned, op)
}

// DivInt performs integer division over unsigned magnitudes, reapplying the
// sign afterwards. Division by zero produces null.
func DivInt(ctx *eval.Context, a, b Int, wantUnsigned bool, op string) (int64, bool, error) {
	if b.V == 0 {
		err := ctx.SignalDivisionByZero()
		return 0, true, err
	}
	aNeg := a.negative()
	bNeg := b.negative()
	resNegative := aNeg != bNeg
	ua := magnitude(a)
	ub := magnitude(b)
	res := ua / ub
	if resNegative {
		if res > uint64(math.MaxInt64) {
			return raiseIntegerOverflow(ctx, op)
		}
		return checkIntegerOverflow(ctx, -int64(res), false, wantUnsigned, op)
	}
	return checkIntegerOverflow(ctx, int64(res), true, wantUnsigned, op)
}

// ModInt computes a % b over unsigned magnitudes, sidestepping the
// MinInt64 % -1 case, then reapplies the dividend's sign.
func ModInt(ctx *eval.Context, a, b Int, wantUnsigned bool, op string) (int64, bool, error) {
	if b.V == 0 {
		err := ctx.SignalDivisionByZero()
		return 0, true, err
	}
	aNeg := a.negative()
	ua := magnitude(a)
	ub := magnitude(b)
	res := ua % ub
	if aNeg {
		return checkIntegerOverflow(ctx, -int64(res), false, wantUnsigned, op)
	}
	return checkIntegerOverflow(ctx, int64(res), true, wantUnsigned, op)
}

// magnitude returns |v| as an unsigned integer, exact even for MinInt64.
func magnitude(v Int) uint64 {
	if v.negative() && v.V != math.MinInt64 {
		return uint64(-v.V)
	}
	return uint64(v.V)
}

// NegInt negates an integer operand. MinInt64 cannot be negated in the
// signed domain and raises overflow; resolution promotes such constants to
// decimal before evaluation ever reaches this point.
func NegInt(ctx *eval.Context, a Int, wantUnsigned bool, op string) (int64, bool, error) {
	if a.Unsigned && a.Uint() > uint64(math.MaxInt64)+1 {
		return raiseIntegerOverflow(ctx, op)
	}
	if a.V == math.MinInt64 && !a.Unsigned && !wantUnsigned {
		return raiseIntegerOverflow(ctx, op)
	}
	// -(2^63) taken from an unsigned operand is representable as MinInt64.
	if a.V == math.MinInt64 && a.Unsigned && !wantUnsigned {
		return math.MinInt64, false, nil
	}
	return checkIntegerOverflow(ctx, -a.V, !a.Unsigned && a.V < 0, wantUnsigned, op)
}

// AbsInt computes the absolute value. |MinInt64| exceeds the signed range
// and raises overflow.
func AbsInt(ctx *eval.Context, a Int, wantUnsigned bool, op string) (int64, bool, error) {
	if wantUnsigned {
		return a.V, false, nil
	}
	if a.V == math.MinInt64 {
		return raiseIntegerOverflow(ctx, op)
	}
	if a.V >= 0 {
		return a.V, false, nil
	}
	return -a.V, false, nil
}

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

// pow10Int holds the powers of ten representable in an int64.
var pow10Int = [...]int64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
}

// RoundFloat rounds value to dec decimal places; negative dec rounds to a
// power of ten left of the point. Rounding to nearest uses round half to
// even, independent of the host floating-point rounding mode; truncation
// uses floor or ceil selected by the value's sign.
func RoundFloat(value float64, dec int64, decUnsigned, truncate bool) float64 {
	if decUnsigned && dec < 0 {
		dec = math.MaxInt32
	}
	decNegative := dec < 0
	absDec := dec
	if decNegative {
		absDec = -dec
	}
	tmp := math.Pow(10, float64(absDec))

	valueDivTmp := value / tmp
	valueMulTmp := value * tmp

	if decNegative && math.IsInf(tmp, 0) {
		return 0.0
	}
	if !decNegative && (math.IsInf(valueMulTmp, 0) || math.IsNaN(valueMulTmp)) {
		return value
	}
	if truncate {
		if value >= 0.0 {
			if decNegative {
				return math.Floor(valueDivTmp) * tmp
			}
			return math.Floor(valueMulTmp) / tmp
		}
		if decNegative {
			return math.Ceil(valueDivTmp) * tmp
		}
		return math.Ceil(valueMulTmp) / tmp
	}
	if decNegative {
		return math.RoundToEven(valueDivTmp) * tmp
	}
	return math.RoundToEven(valueMulTmp) / tmp
}

// unsignedRound rounds value to a multiple of to. ok is false when rounding
// up carries past the top of the unsigned range.
func unsignedRound(value, to uint64) (res uint64, ok bool) {
	tmp := value / to * to
	if value-tmp < to>>1 {
		return tmp, true
	}
	if tmp > math.MaxUint64-to {
		return 0, false
	}
	return tmp + to, true
}

// RoundInt rounds an integer: only a negative dec has an effect, zeroing
// digits left of the point via the powers-of-ten table. A dec beyond the
// representable powers yields 0. Rounding up near the top of the operand's
// range can carry the magnitude past what 64 bits hold; that raises overflow.
func RoundInt(ctx *eval.Context, value int64, valueUnsigned bool, dec int64, decUnsigned, truncate bool, op string) (int64, bool, error) {
	if dec >= 0 || decUnsigned {
		return value, false, nil // integers have no digits after the point
	}
	absDec := uint64(-dec)
	if absDec >= uint64(len(pow10Int)) {
		return 0, false, nil
	}
	to := uint64(pow10Int[absDec])
	if truncate {
		// Truncation only moves the magnitude toward zero.
		if valueUnsigned {
			return int64(uint64(value) / to * to), false, nil
		}
		return value / int64(to) * int64(to), false, nil
	}
	if valueUnsigned {
		res, ok := unsignedRound(uint64(value), to)
		if !ok {
			return raiseIntegerOverflow(ctx, op)
		}
		return int64(res), false, nil
	}
	if value >= 0 {
		res, ok := unsignedRound(uint64(value), to)
		if !ok || res > uint64(math.MaxInt64) {
			return raiseIntegerOverflow(ctx, op)
		}
		return int64(res), false, nil
	}
	res, ok := unsignedRound(uint64(-value), to)
	if !ok || res > uint64(math.MaxInt64)+1 {
		return raiseIntegerOverflow(ctx, op)
	}
	return -int64(res), false, nil
}

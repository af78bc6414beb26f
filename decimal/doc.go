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

/*
Package decimal implements the bounded fixed-point decimal arithmetic used by
the scalar expression engine.

A Decimal is a sign, an ordered sequence of base-10^9 digit words, a count of
integer digits and a scale (digits right of the point). Precision is bounded
by MaxPrecision and scale by MaxScale; results that would exceed these bounds
are truncated (reported as StatusTruncated) or clamped to the largest
representable value (reported as StatusOverflow), never grown without bound.

Every fallible operation reports a Status severity. Severities above
StatusTruncated are treated by callers as null plus an overflow error;
StatusTruncated and below are accepted, at most with a warning.

Multiplication, division and modulo lower the digit words to a math/big
coefficient internally; addition and rounding stay on the word representation
through the same coefficient form. The word layout is the storage contract,
not the computation vehicle.
*/
package decimal

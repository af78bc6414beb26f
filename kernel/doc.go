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
Package kernel implements the arithmetic, rounding and bitwise kernels of the
scalar expression engine.

Kernels accept already-evaluated operands of a fixed domain and return a
value of that same domain, or signal null. Data-dependent conditions
(overflow, division by zero) never panic: the kernel reports through the
eval.Context and returns null, with a statement error only in strict mode.

Integer addition and subtraction validate overflow with a sign/magnitude
pre-check over the (unsigned flag, sign) classification of both operands,
never by inspecting a wrapped result alone. Multiplication splits operands
into 32-bit halves and checks the cross products incrementally, avoiding
128-bit arithmetic. Modulo and integer division work on unsigned magnitudes
to sidestep the MinInt64 / -1 case.
*/
package kernel

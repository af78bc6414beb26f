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
Package eval carries the evaluation context of the scalar expression engine:
the session-mode flag set, the statement diagnostics area and the error
taxonomy shared by the kernels and the expression nodes.

Kernels never panic for data-dependent conditions. Overflow, division by
zero and invalid evaluation-time arguments surface as a null result plus a
warning collected in the diagnostics area; strict mode escalates overflow to
a statement error instead. Only programmer contract violations (resolving a
node twice, evaluating before binding) panic.
*/
package eval

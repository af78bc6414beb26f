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
Package expr implements the expression node protocol of the scalar engine:
tree construction, two-phase binding and hybrid type resolution, and the
typed per-row evaluation entry points.

A Node is created once during tree construction, bound and resolved once per
statement, then evaluated an arbitrary number of times. Bind recursively
binds every child exactly once (idempotent for already-bound children),
aggregates nullability, constness and the used-relations bitmap, and invokes
resolution exactly once; resolving a node twice is a programmer contract
violation and panics. Resolution fixes the node's result domain, scale,
display width and signedness; these are never mutated afterwards.

Evaluation never panics for data-dependent conditions. Overflow and division
by zero surface as SQL NULL plus a warning in the statement diagnostics area
(or a statement error in strict mode), per the eval package policy.

Scratch buffers held by nodes are reused across evaluations: a caller must
not retain a returned decimal or byte slice across two evaluations of the
same node, and must copy if persistence is needed.
*/
package expr

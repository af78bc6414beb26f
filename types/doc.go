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
Package types defines the value domain of the scalar expression engine.

A Value is a tagged union over the five result domains an expression node can
produce: signed 64-bit integer, unsigned 64-bit integer, double precision
float, fixed-point decimal and binary byte string. Every Value additionally
carries a null bit that is orthogonal to the domain tag: a null Value keeps
its tag but has no meaningful payload.

Values are transient. They are created fresh per evaluation or reused in
caller-owned scratch buffers, and must be copied explicitly if they need to
outlive a single evaluation.
*/
package types

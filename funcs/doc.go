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

// Package funcs maps function names to expression node builders and bridges
// the typed engine to expr-lang for free-form expression strings.
//
// The default registry carries every built-in operator under its SQL
// spelling, case-insensitively. Custom scalar functions register through
// Registry.Register and become visible both to Build and to expressions
// evaluated through the Bridge.
package funcs

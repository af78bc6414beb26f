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

// Package cast wraps spf13/cast with the conversions the engine needs for
// constant coercion: strict whole-string parses that report failure instead
// of guessing.
package cast

import (
	"strings"

	spf13 "github.com/spf13/cast"
)

// ToFloat64E converts x to a double. String inputs must parse as a whole
// number after trimming surrounding space.
func ToFloat64E(x interface{}) (float64, error) {
	if s, ok := x.(string); ok {
		return spf13.ToFloat64E(strings.TrimSpace(s))
	}
	return spf13.ToFloat64E(x)
}

// ToInt64E converts x to a signed integer.
func ToInt64E(x interface{}) (int64, error) {
	if s, ok := x.(string); ok {
		return spf13.ToInt64E(strings.TrimSpace(s))
	}
	return spf13.ToInt64E(x)
}

// ToUint64E converts x to an unsigned integer.
func ToUint64E(x interface{}) (uint64, error) {
	if s, ok := x.(string); ok {
		return spf13.ToUint64E(strings.TrimSpace(s))
	}
	return spf13.ToUint64E(x)
}

// ToString renders x for diagnostics.
func ToString(x interface{}) string {
	return spf13.ToString(x)
}

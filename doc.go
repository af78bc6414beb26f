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
Package mysqlserver evaluates scalar SQL expressions over typed rows:
arithmetic, rounding and bitwise operators with exact fixed-point decimals,
64-bit signed and unsigned integers, doubles and binary strings, under SQL
null and overflow semantics.

Expressions are trees of expr.Node built directly or through the function
registry, bound once against an evaluation context, then evaluated once per
row. The engine facade holds a session configuration (strict mode, division
by zero handling, unsigned subtraction, division precision) and a statement
diagnostics area collecting warnings.

	engine := mysqlserver.New(mysqlserver.WithErrorOnDivisionByZero())
	node, err := engine.Build("+",
		expr.NewColumn(0, 0, types.KindInt, false, 0, 11, false),
		expr.NewIntLiteral(42),
	)
	if err != nil {
		// ...
	}
	v, isNull, err := node.EvalInt(engine.Context(), expr.Row{types.NewInt(7)})

For free-form expression strings over map rows there is the expr-lang
bridge:

	out, err := engine.EvaluateExpression("round(price * 1.19, 2)",
		map[string]interface{}{"price": 10.0})
*/
package mysqlserver

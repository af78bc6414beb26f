package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/eval"
)

func TestBridgeEvaluateFunctions(t *testing.T) {
	b := NewBridge(nil, nil)
	tests := []struct {
		name string
		expr string
		data map[string]interface{}
		want interface{}
	}{
		{"Abs", "abs(-5)", nil, int64(5)},
		{"AbsUpper", "ABS(-5)", nil, int64(5)},
		{"Pow", "pow(2, 10)", nil, float64(1024)},
		{"Mod", "mod(7, 3)", nil, int64(1)},
		{"Floor", "floor(temperature)", map[string]interface{}{"temperature": 21.7}, float64(21)},
		{"NestedCalls", "abs(floor(-1.5))", nil, float64(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := b.Evaluate(tt.expr, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBridgeRoundOverRowData(t *testing.T) {
	b := NewBridge(nil, nil)
	out, err := b.Evaluate("round(price * 1.19, 2)", map[string]interface{}{"price": 100.0})
	require.NoError(t, err)
	v, ok := out.(float64)
	require.True(t, ok)
	assert.InDelta(t, 119.0, v, 1e-9)
}

func TestBridgeNullResultIsNil(t *testing.T) {
	b := NewBridge(nil, nil)

	out, err := b.Evaluate("ln(0)", nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	// Undefined variables evaluate to nil and flow through as SQL NULL.
	out, err = b.Evaluate("abs(missing)", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestBridgeStringArgumentsCoerce(t *testing.T) {
	b := NewBridge(nil, nil)
	out, err := b.Evaluate(`abs("-2.5")`, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.5, out)
}

func TestBridgeCompileError(t *testing.T) {
	b := NewBridge(nil, nil)
	_, err := b.Evaluate("1 +", nil)
	assert.ErrorIs(t, err, eval.ErrBind)
}

func TestBridgeArityErrorSurfaces(t *testing.T) {
	b := NewBridge(nil, nil)
	_, err := b.Evaluate("pow(2)", nil)
	assert.Error(t, err)
}

func TestBridgeCompileCaches(t *testing.T) {
	b := NewBridge(nil, nil)
	first, err := b.Compile("abs(x)")
	require.NoError(t, err)
	second, err := b.Compile("abs(x)")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestBridgeUsesEngineSemantics(t *testing.T) {
	// The bridge runs registered functions through the typed engine, so
	// division-by-zero inside a call follows SQL semantics instead of
	// raising a runtime error.
	b := NewBridge(nil, nil)
	out, err := b.Evaluate("mod(7, 0)", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestIdentifierFilter(t *testing.T) {
	assert.True(t, identifier("round"))
	assert.True(t, identifier("log2"))
	assert.False(t, identifier("+"))
	assert.False(t, identifier("<<"))
	assert.False(t, identifier(""))
	assert.False(t, identifier("2log"))
}

package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/expr"
	"github.com/chengnin/mysql-server/types"
)

func evalBound(t *testing.T, node expr.Node) (int64, bool) {
	t.Helper()
	require.NoError(t, node.Bind(expr.NewBindContext(eval.Background())))
	v, null, err := node.EvalInt(eval.Background(), nil)
	require.NoError(t, err)
	return v, null
}

func TestBuildOperators(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args []expr.Node
		want int64
	}{
		{"Plus", "+", []expr.Node{expr.NewIntLiteral(2), expr.NewIntLiteral(3)}, 5},
		{"MinusBinary", "-", []expr.Node{expr.NewIntLiteral(2), expr.NewIntLiteral(3)}, -1},
		{"MinusUnary", "-", []expr.Node{expr.NewIntLiteral(2)}, -2},
		{"Mul", "*", []expr.Node{expr.NewIntLiteral(6), expr.NewIntLiteral(7)}, 42},
		{"IntDiv", "div", []expr.Node{expr.NewIntLiteral(7), expr.NewIntLiteral(2)}, 3},
		{"Mod", "%", []expr.Node{expr.NewIntLiteral(7), expr.NewIntLiteral(3)}, 1},
		{"ModWord", "mod", []expr.Node{expr.NewIntLiteral(7), expr.NewIntLiteral(3)}, 1},
		{"Abs", "abs", []expr.Node{expr.NewIntLiteral(-9)}, 9},
		{"RoundOneArg", "round", []expr.Node{expr.NewIntLiteral(42)}, 42},
		{"Ceil", "ceil", []expr.Node{expr.NewIntLiteral(5)}, 5},
		{"ShiftLeft", "<<", []expr.Node{expr.NewIntLiteral(1), expr.NewIntLiteral(3)}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Build(tt.fn, tt.args...)
			require.NoError(t, err)
			v, null := evalBound(t, node)
			require.False(t, null)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestBuildIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"abs", "ABS", "Abs"} {
		node, err := Build(name, expr.NewIntLiteral(-1))
		require.NoError(t, err, name)
		v, null := evalBound(t, node)
		require.False(t, null)
		assert.Equal(t, int64(1), v)
	}
}

func TestBuildUnknownFunction(t *testing.T) {
	_, err := Build("no_such_fn", expr.NewIntLiteral(1))
	assert.ErrorIs(t, err, eval.ErrBind)
}

func TestBuildArityValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args []expr.Node
	}{
		{"PlusTooFew", "+", []expr.Node{expr.NewIntLiteral(1)}},
		{"AbsTooMany", "abs", []expr.Node{expr.NewIntLiteral(1), expr.NewIntLiteral(2)}},
		{"RoundTooMany", "round", []expr.Node{expr.NewIntLiteral(1), expr.NewIntLiteral(2), expr.NewIntLiteral(3)}},
		{"TruncateTooFew", "truncate", []expr.Node{expr.NewIntLiteral(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.fn, tt.args...)
			assert.ErrorIs(t, err, eval.ErrBind)
		})
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()
	entry := func() *Entry {
		return &Entry{
			Name:     "double",
			Category: CategoryMath,
			MinArgs:  1,
			MaxArgs:  1,
			Build:    func(args ...expr.Node) expr.Node { return expr.NewPlus(args[0], args[0]) },
		}
	}
	require.NoError(t, r.Register(entry()))
	assert.ErrorIs(t, r.Register(entry()), eval.ErrBind)

	upper := entry()
	upper.Name = "DOUBLE"
	assert.ErrorIs(t, r.Register(upper), eval.ErrBind)
}

func TestCustomRegistryBuild(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Entry{
		Name:     "double",
		Category: CategoryMath,
		MinArgs:  1,
		MaxArgs:  1,
		Build:    func(args ...expr.Node) expr.Node { return expr.NewPlus(args[0], args[0]) },
	}))

	node, err := r.Build("double", expr.NewIntLiteral(21))
	require.NoError(t, err)
	require.NoError(t, node.Bind(expr.NewBindContext(eval.Background())))
	v, null, err := node.EvalInt(eval.Background(), nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(42), v)

	_, err = r.Build("abs", expr.NewIntLiteral(1))
	assert.ErrorIs(t, err, eval.ErrBind)
}

func TestDefaultCategories(t *testing.T) {
	names := func(c Category) map[string]bool {
		out := make(map[string]bool)
		for _, e := range Default().GetByCategory(c) {
			out[e.Name] = true
		}
		return out
	}

	arith := names(CategoryArithmetic)
	for _, n := range []string{"+", "-", "*", "/", "div", "%", "mod", "abs"} {
		assert.True(t, arith[n], n)
	}
	rounding := names(CategoryRounding)
	for _, n := range []string{"round", "truncate", "ceiling", "ceil", "floor"} {
		assert.True(t, rounding[n], n)
	}
	bitwise := names(CategoryBitwise)
	for _, n := range []string{"&", "|", "^", "~", "<<", ">>"} {
		assert.True(t, bitwise[n], n)
	}
	math := names(CategoryMath)
	for _, n := range []string{"ln", "log", "log2", "log10", "sqrt", "pow", "power", "exp"} {
		assert.True(t, math[n], n)
	}
}

func TestListNamesLowerCased(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Default().ListNames() {
		seen[name] = true
	}
	assert.True(t, seen["round"])
	assert.True(t, seen["pow"])
	assert.False(t, seen["ROUND"])
}

func TestGetReturnsEntryMetadata(t *testing.T) {
	e, ok := Default().Get("LOG")
	require.True(t, ok)
	assert.Equal(t, "log", e.Name)
	assert.Equal(t, CategoryMath, e.Category)
	assert.Equal(t, 1, e.MinArgs)
	assert.Equal(t, 2, e.MaxArgs)
}

func TestBuiltResultKinds(t *testing.T) {
	div, err := Build("/", expr.NewIntLiteral(1), expr.NewIntLiteral(4))
	require.NoError(t, err)
	require.NoError(t, div.Bind(expr.NewBindContext(eval.Background())))
	assert.Equal(t, types.KindDecimal, div.Kind())

	sq, err := Build("sqrt", expr.NewIntLiteral(4))
	require.NoError(t, err)
	require.NoError(t, sq.Bind(expr.NewBindContext(eval.Background())))
	assert.Equal(t, types.KindReal, sq.Kind())
}

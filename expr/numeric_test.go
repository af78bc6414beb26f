package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/decimal"
	"github.com/chengnin/mysql-server/eval"
	"github.com/chengnin/mysql-server/types"
)

func mustBind(t *testing.T, n Node) *eval.Context {
	t.Helper()
	ctx := eval.Background()
	require.NoError(t, n.Bind(NewBindContext(ctx)))
	return ctx
}

func bindWith(t *testing.T, n Node, mode eval.Mode) *eval.Context {
	t.Helper()
	ctx := eval.NewContext(mode, eval.DefaultDivPrecIncrement, nil)
	require.NoError(t, n.Bind(NewBindContext(ctx)))
	return ctx
}

func TestPlusInt(t *testing.T) {
	n := NewPlus(NewIntLiteral(2), NewIntLiteral(3))
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindInt, n.Kind())
	assert.True(t, n.Const())
	assert.False(t, n.MaybeNull())

	v, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(5), v)

	// Cross-domain accessors convert the native integer result.
	f, _, err := n.EvalReal(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, f)
	b, _, err := n.EvalBytes(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "5", string(b))
}

func TestPlusIntOverflowIsNull(t *testing.T) {
	n := NewPlus(NewIntLiteral(math.MaxInt64), NewIntLiteral(1))
	diags := eval.NewDiagnostics()
	ctx := eval.NewContext(0, eval.DefaultDivPrecIncrement, diags)
	require.NoError(t, n.Bind(NewBindContext(ctx)))

	_, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.True(t, null)
	require.Len(t, diags.Warnings(), 1)
	assert.Equal(t, eval.WarnDataOutOfRange, diags.Warnings()[0].Code)
}

func TestPlusIntOverflowStrictIsError(t *testing.T) {
	n := NewPlus(NewIntLiteral(math.MaxInt64), NewIntLiteral(1))
	ctx := bindWith(t, n, eval.ModeStrict)
	_, _, err := n.EvalInt(ctx, nil)
	assert.ErrorIs(t, err, eval.ErrOverflow)
}

func TestPlusDecimalScaleAndPrecision(t *testing.T) {
	n := NewPlus(
		NewDecimalLiteral(decimal.MustParse("1.25")),
		NewDecimalLiteral(decimal.MustParse("10.5")),
	)
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindDecimal, n.Kind())
	// The result scale is the wider operand scale, and the precision
	// leaves room for one carry digit.
	assert.Equal(t, 2, n.Decimals())
	assert.GreaterOrEqual(t, n.DecimalPrecision(), 4)

	d, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "11.75", d.String())
}

func TestPlusRealTakesPrecedenceOverDecimal(t *testing.T) {
	n := NewPlus(NewFloatLiteral(0.5), NewDecimalLiteral(decimal.MustParse("1.5")))
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindReal, n.Kind())
	v, null, err := n.EvalReal(ctx, nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, 2.0, v)
}

func TestPlusCoercibleStringIsReal(t *testing.T) {
	n := NewPlus(NewStringLiteral("5"), NewIntLiteral(1))
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindReal, n.Kind())
	v, _, err := n.EvalReal(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestPlusNonCoercibleStringFailsBind(t *testing.T) {
	n := NewPlus(NewStringLiteral("abc"), NewIntLiteral(1))
	err := n.Bind(NewBindContext(eval.Background()))
	assert.ErrorIs(t, err, eval.ErrType)
}

func TestPlusBytesColumnFailsBind(t *testing.T) {
	col := NewColumn(0, 0, types.KindBytes, false, 0, 16, false)
	n := NewPlus(col, NewIntLiteral(1))
	err := n.Bind(NewBindContext(eval.Background()))
	assert.ErrorIs(t, err, eval.ErrType)
}

func TestPlusGeometryRejected(t *testing.T) {
	n := NewPlus(NewGeometryLiteral([]byte{1, 2, 3}), NewIntLiteral(1))
	err := n.Bind(NewBindContext(eval.Background()))
	assert.ErrorIs(t, err, eval.ErrInvalidArgument)
}

func TestPlusNullPropagates(t *testing.T) {
	n := NewPlus(NewNullLiteral(types.KindInt), NewIntLiteral(1))
	ctx := mustBind(t, n)
	assert.True(t, n.MaybeNull())
	_, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.True(t, null)
}

func TestMinusUnsignedBorrowIsNull(t *testing.T) {
	n := NewMinus(NewUintLiteral(1), NewUintLiteral(2))
	ctx := mustBind(t, n)
	assert.Equal(t, types.KindUint, n.Kind())
	_, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.True(t, null)
}

func TestMinusNoUnsignedSubtraction(t *testing.T) {
	n := NewMinus(NewUintLiteral(1), NewUintLiteral(2))
	ctx := bindWith(t, n, eval.ModeNoUnsignedSubtraction)

	assert.Equal(t, types.KindInt, n.Kind())
	assert.False(t, n.Unsigned())
	v, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(-1), v)
}

func TestMulDecimalScaleAdds(t *testing.T) {
	n := NewMul(
		NewDecimalLiteral(decimal.MustParse("1.5")),
		NewDecimalLiteral(decimal.MustParse("2.25")),
	)
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindDecimal, n.Kind())
	assert.Equal(t, 3, n.Decimals())
	d, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "3.375", d.String())
}

func TestMulIntOverflowIsNull(t *testing.T) {
	n := NewMul(NewIntLiteral(math.MinInt64), NewIntLiteral(math.MinInt64))
	ctx := mustBind(t, n)
	_, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.True(t, null)
}

func TestDivPromotesIntToDecimal(t *testing.T) {
	n := NewDiv(NewIntLiteral(7), NewIntLiteral(2))
	ctx := mustBind(t, n)

	assert.Equal(t, types.KindDecimal, n.Kind())
	assert.True(t, n.MaybeNull())
	assert.Equal(t, eval.DefaultDivPrecIncrement, n.Decimals())

	d, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "3.5000", d.String())
}

func TestDivDecimalExtendsScale(t *testing.T) {
	n := NewDiv(
		NewDecimalLiteral(decimal.MustParse("10.5")),
		NewDecimalLiteral(decimal.MustParse("0.5")),
	)
	ctx := mustBind(t, n)

	assert.Equal(t, 5, n.Decimals())
	d, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "21.00000", d.String())
}

func TestDivByZero(t *testing.T) {
	n := NewDiv(NewIntLiteral(1), NewIntLiteral(0))
	ctx := mustBind(t, n)
	_, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	assert.True(t, null)

	strict := NewDiv(NewIntLiteral(1), NewIntLiteral(0))
	ctx = bindWith(t, strict, eval.ModeErrDivisionByZero)
	_, _, err = strict.EvalDecimal(ctx, nil, decimal.New())
	assert.ErrorIs(t, err, eval.ErrDivisionByZero)
}

func TestDivReal(t *testing.T) {
	n := NewDiv(NewFloatLiteral(1.0), NewFloatLiteral(4.0))
	ctx := mustBind(t, n)
	assert.Equal(t, types.KindReal, n.Kind())
	v, null, err := n.EvalReal(ctx, nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, 0.25, v)
}

func TestIntDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want int64
	}{
		{"Ints", NewIntLiteral(7), NewIntLiteral(2), 3},
		{"NegativeTruncatesTowardZero", NewIntLiteral(-7), NewIntLiteral(2), -3},
		{"DecimalLoweringTruncates", NewDecimalLiteral(decimal.MustParse("5.9")), NewIntLiteral(2), 2},
		{"RealOperand", NewFloatLiteral(5.9), NewFloatLiteral(2), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewIntDiv(tt.a, tt.b)
			ctx := mustBind(t, n)
			require.True(t, n.Kind() == types.KindInt || n.Kind() == types.KindUint)
			v, null, err := n.EvalInt(ctx, nil)
			require.NoError(t, err)
			require.False(t, null)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestIntDivByZeroIsNull(t *testing.T) {
	n := NewIntDiv(NewIntLiteral(1), NewIntLiteral(0))
	ctx := mustBind(t, n)
	_, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.True(t, null)
}

func TestModSignFollowsDividend(t *testing.T) {
	n := NewMod(NewIntLiteral(-7), NewIntLiteral(3))
	ctx := mustBind(t, n)
	v, null, err := n.EvalInt(ctx, nil)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(-1), v)
}

func TestModDecimal(t *testing.T) {
	n := NewMod(
		NewDecimalLiteral(decimal.MustParse("8.5")),
		NewIntLiteral(3),
	)
	ctx := mustBind(t, n)
	assert.Equal(t, types.KindDecimal, n.Kind())
	d, null, err := n.EvalDecimal(ctx, nil, decimal.New())
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "2.5", d.String())
}

func TestColumnEvaluation(t *testing.T) {
	a := NewColumn(0, 0, types.KindInt, false, 0, 11, true)
	b := NewColumn(1, 1, types.KindInt, false, 0, 11, false)
	n := NewPlus(a, b)
	ctx := mustBind(t, n)

	assert.False(t, n.Const())
	assert.True(t, n.MaybeNull())
	assert.Equal(t, uint64(0b11), n.UsedRelations())

	v, null, err := n.EvalInt(ctx, Row{types.NewInt(40), types.NewInt(2)})
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(42), v)

	_, null, err = n.EvalInt(ctx, Row{types.Null(types.KindInt), types.NewInt(2)})
	require.NoError(t, err)
	assert.True(t, null)
}

func TestColumnIndexOutOfRange(t *testing.T) {
	n := NewPlus(NewColumn(3, 0, types.KindInt, false, 0, 11, false), NewIntLiteral(1))
	ctx := mustBind(t, n)
	_, _, err := n.EvalInt(ctx, Row{types.NewInt(1)})
	assert.ErrorIs(t, err, eval.ErrBind)
}

func TestBindIsIdempotent(t *testing.T) {
	n := NewPlus(NewIntLiteral(1), NewIntLiteral(2))
	bctx := NewBindContext(eval.Background())
	require.NoError(t, n.Bind(bctx))
	require.NoError(t, n.Bind(bctx))

	v, _, err := n.EvalInt(eval.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestBindDepthBudget(t *testing.T) {
	var n Node = NewIntLiteral(1)
	for i := 0; i < 40; i++ {
		n = NewPlus(n, NewIntLiteral(1))
	}
	bctx := NewBindContext(eval.Background())
	bctx.MaxDepth = 10
	assert.ErrorIs(t, n.Bind(bctx), eval.ErrStackOverflow)
}

func TestEvalBeforeBindPanics(t *testing.T) {
	n := NewPlus(NewIntLiteral(1), NewIntLiteral(2))
	assert.Panics(t, func() { _, _, _ = n.EvalInt(eval.Background(), nil) })
}

func TestSharedSubtreeBindsOnce(t *testing.T) {
	shared := NewPlus(NewIntLiteral(1), NewIntLiteral(2))
	top := NewPlus(shared, shared)
	ctx := mustBind(t, top)
	v, _, err := top.EvalInt(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)
}

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/eval"
)

func TestRealArithmetic(t *testing.T) {
	ctx := eval.Background()

	v, null, err := AddReal(ctx, 1.5, 2.25, "+")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, 3.75, v)

	v, null, err = SubReal(ctx, 1.5, 2.25, "-")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, -0.75, v)

	v, null, err = MulReal(ctx, 3.0, -1.5, "*")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, -4.5, v)

	v, null, err = DivReal(ctx, 7.0, 2.0, "/")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, 3.5, v)
}

func TestRealOverflowIsNull(t *testing.T) {
	ctx := eval.Background()
	_, null, err := MulReal(ctx, math.MaxFloat64, 2.0, "*")
	require.NoError(t, err)
	assert.True(t, null)
}

func TestRealOverflowStrictIsError(t *testing.T) {
	ctx := eval.NewContext(eval.ModeStrict, eval.DefaultDivPrecIncrement, nil)
	_, _, err := AddReal(ctx, math.MaxFloat64, math.MaxFloat64, "+")
	assert.ErrorIs(t, err, eval.ErrOverflow)
}

func TestRealDivisionByZero(t *testing.T) {
	ctx := eval.Background()
	_, null, err := DivReal(ctx, 1.0, 0.0, "/")
	require.NoError(t, err)
	assert.True(t, null)

	ctx = eval.NewContext(eval.ModeErrDivisionByZero, eval.DefaultDivPrecIncrement, nil)
	_, _, err = DivReal(ctx, 1.0, 0.0, "/")
	assert.ErrorIs(t, err, eval.ErrDivisionByZero)
}

func TestRealMod(t *testing.T) {
	ctx := eval.Background()

	v, null, err := ModReal(ctx, 7.5, 2.0, "%")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, 1.5, v)

	// The sign follows the dividend.
	v, null, err = ModReal(ctx, -7.5, 2.0, "%")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, -1.5, v)

	_, null, err = ModReal(ctx, 1.0, 0.0, "%")
	require.NoError(t, err)
	assert.True(t, null)
}

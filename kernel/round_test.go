package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/eval"
)

func TestRoundFloatHalfToEven(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		dec   int64
		want  float64
	}{
		{"HalfUpToEven", 2.5, 0, 2.0},
		{"NegativeHalfToEven", -2.5, 0, -2.0},
		{"HalfToEvenOdd", 3.5, 0, 4.0},
		{"BelowHalf", 2.4, 0, 2.0},
		{"AboveHalf", 2.6, 0, 3.0},
		{"TwoPlaces", 1.375, 2, 1.38},
		{"NegativeDec", 1250, -2, 1200},
		{"NegativeDecOdd", 1350, -2, 1400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundFloat(tt.value, tt.dec, false, false), 1e-9)
		})
	}
}

func TestRoundFloatTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		dec   int64
		want  float64
	}{
		{"PositiveTowardZero", 2.9, 0, 2.0},
		{"NegativeTowardZero", -2.9, 0, -2.0},
		{"TwoPlaces", 1.999, 2, 1.99},
		{"NegativeDec", 1299, -2, 1200},
		{"NegativeValueNegativeDec", -1299, -2, -1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundFloat(tt.value, tt.dec, false, true), 1e-9)
		})
	}
}

func TestRoundFloatIdempotent(t *testing.T) {
	once := RoundFloat(2.34567, 2, false, false)
	assert.Equal(t, once, RoundFloat(once, 2, false, false))
}

func TestRoundFloatExtremeDec(t *testing.T) {
	// A huge positive scale leaves the value untouched; a huge negative
	// scale rounds everything away.
	assert.Equal(t, 1.5, RoundFloat(1.5, 400, false, false))
	assert.Equal(t, 0.0, RoundFloat(1e10, -400, false, false))
	// An unsigned scale argument with the sign bit set reads as a huge
	// positive scale.
	assert.Equal(t, 1.5, RoundFloat(1.5, -1, true, false))
}

func TestRoundInt(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		unsigned bool
		dec      int64
		truncate bool
		want     int64
	}{
		{"PositiveDecNoop", 12345, false, 2, false, 12345},
		{"ZeroDecNoop", 12345, false, 0, false, 12345},
		{"RoundHundreds", 1250, false, -2, false, 1300},
		{"RoundHundredsDown", 1249, false, -2, false, 1200},
		{"TruncateHundreds", 1299, false, -2, true, 1200},
		{"NegativeValue", -1250, false, -2, false, -1300},
		{"NegativeValueTruncate", -1299, false, -2, true, -1200},
		{"DecBeyondRange", math.MaxInt64, false, -19, false, 0},
		{"UnsignedValue", 1250, true, -2, false, 1300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, null, err := RoundInt(eval.Background(), tt.value, tt.unsigned, tt.dec, false, tt.truncate, "ROUND")
			require.NoError(t, err)
			require.False(t, null)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundIntOverflows(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		unsigned bool
		dec      int64
	}{
		{"SignedMaxRoundsPastRange", math.MaxInt64, false, -1},
		{"SignedMinRoundsPastRange", math.MinInt64, false, -1},
		{"UnsignedMaxRoundsPastRange", -1, true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := eval.NewDiagnostics()
			ctx := eval.NewContext(0, eval.DefaultDivPrecIncrement, diags)
			_, null, err := RoundInt(ctx, tt.value, tt.unsigned, tt.dec, false, false, "ROUND")
			require.NoError(t, err)
			assert.True(t, null)
			warnings := diags.Warnings()
			require.Len(t, warnings, 1)
			assert.Equal(t, eval.WarnDataOutOfRange, warnings[0].Code)
		})
	}
}

func TestRoundIntOverflowStrictIsError(t *testing.T) {
	ctx := eval.NewContext(eval.ModeStrict, eval.DefaultDivPrecIncrement, nil)
	_, _, err := RoundInt(ctx, math.MaxInt64, false, -1, false, false, "ROUND")
	assert.ErrorIs(t, err, eval.ErrOverflow)
}

func TestRoundIntNearRangeStaysExact(t *testing.T) {
	// Rounding down at the top of the range must not trip the check.
	got, null, err := RoundInt(eval.Background(), math.MaxInt64-7, false, -1, false, false, "ROUND")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(9223372036854775800), got)

	got, null, err = RoundInt(eval.Background(), math.MaxInt64, false, -1, false, true, "TRUNCATE")
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(9223372036854775800), got)
}

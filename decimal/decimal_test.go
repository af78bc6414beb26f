package decimal

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		status Status
	}{
		{"Integer", "123", "123", StatusOK},
		{"Fraction", "-2.50", "-2.50", StatusOK},
		{"LeadingZeros", "000.5", "0.5", StatusOK},
		{"PlusSign", "+7.25", "7.25", StatusOK},
		{"ZeroKeepsScale", "0.000", "0.000", StatusOK},
		{"NegativeZero", "-0.0", "0.0", StatusOK},
		{"ScaleClamped", "0." + strings.Repeat("1", 40), "0." + strings.Repeat("1", 30), StatusTruncated},
		{"Garbage", "12a", "0", StatusBadNumber},
		{"Empty", "", "0", StatusBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, st := Parse(tt.input)
			assert.Equal(t, tt.status, st)
			assert.Equal(t, tt.output, d.String())
		})
	}
}

func TestParseOverflowClampsToMax(t *testing.T) {
	d, st := Parse(strings.Repeat("9", 70))
	assert.Equal(t, StatusOverflow, st)
	assert.Equal(t, strings.Repeat("9", MaxPrecision), d.String())
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		sum     string
		diff    string
	}{
		{"SameScale", "1.25", "2.25", "3.50", "-1.00"},
		{"MixedScale", "10", "0.5", "10.5", "9.5"},
		{"NegativeOperand", "-3.3", "1.1", "-2.2", "-4.4"},
		{"CancelsToZero", "7.77", "7.77", "15.54", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			res := New()
			require.Equal(t, StatusOK, res.Add(a, b))
			assert.Equal(t, tt.sum, res.String())
			require.Equal(t, StatusOK, res.Sub(a, b))
			assert.Equal(t, tt.diff, res.String())
		})
	}
}

func TestAddResultScaleIsMaxOfOperands(t *testing.T) {
	a := MustParse("1.23")
	b := MustParse("0.4567")
	res := New()
	require.Equal(t, StatusOK, res.Add(a, b))
	assert.Equal(t, 4, res.Scale())
	assert.Equal(t, "1.6867", res.String())
}

func TestMul(t *testing.T) {
	res := New()
	require.Equal(t, StatusOK, res.Mul(MustParse("1.5"), MustParse("2.5")))
	assert.Equal(t, "3.75", res.String())

	// Scales add up and clamp at the bound with truncation.
	a := MustParse("0." + strings.Repeat("3", 20))
	st := res.Mul(a, a)
	assert.Equal(t, StatusTruncated, st)
	assert.Equal(t, MaxScale, res.Scale())
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		fracIncr int
		want     string
		status   Status
	}{
		{"ExtendsScale", "10.5", "0.5", 4, "21.00000", StatusOK},
		{"DefaultIncrement", "1", "3", 4, "0.3333", StatusTruncated},
		{"ExactNoRemainder", "1", "4", 4, "0.2500", StatusOK},
		{"NegativeDividend", "-7", "2", 1, "-3.5", StatusOK},
		{"ByZero", "1", "0", 4, "0", StatusDivisionByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New()
			st := res.Div(MustParse(tt.a), MustParse(tt.b), tt.fracIncr)
			assert.Equal(t, tt.status, st)
			assert.Equal(t, tt.want, res.String())
		})
	}
}

func TestModSignFollowsDividend(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"Positive", "7", "3", "1"},
		{"NegativeDividend", "-7", "3", "-1"},
		{"NegativeDivisor", "7", "-3", "1"},
		{"Fractional", "8.5", "3", "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New()
			require.Equal(t, StatusOK, res.Mod(MustParse(tt.a), MustParse(tt.b)))
			assert.Equal(t, tt.want, res.String())
		})
	}

	res := New()
	assert.Equal(t, StatusDivisionByZero, res.Mod(MustParse("1"), MustParse("0")))
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		scale    int
		truncate bool
		want     string
	}{
		{"HalfAwayFromZero", "2.5", 0, false, "3"},
		{"HalfAwayNegative", "-2.5", 0, false, "-3"},
		{"BelowHalf", "2.4", 0, false, "2"},
		{"TwoPlaces", "1.005", 2, false, "1.01"},
		{"TruncatePositive", "2.9", 0, true, "2"},
		{"TruncateNegative", "-2.9", 0, true, "-2"},
		{"NegativeScale", "1234", -2, false, "1200"},
		{"NegativeScaleRoundsUp", "1250", -2, false, "1300"},
		{"PadToLargerScale", "1.5", 3, false, "1.500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New()
			require.Equal(t, StatusOK, MustParse(tt.input).Round(res, tt.scale, tt.truncate))
			assert.Equal(t, tt.want, res.String())
		})
	}
}

func TestRoundIdempotent(t *testing.T) {
	once := New()
	require.Equal(t, StatusOK, MustParse("2.345").Round(once, 2, false))
	twice := New()
	require.Equal(t, StatusOK, once.Round(twice, 2, false))
	assert.Equal(t, 0, once.Cmp(twice))
}

func TestCeilingFloor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ceiling string
		floor   string
	}{
		{"Positive", "2.3", "3", "2"},
		{"Negative", "-2.3", "-2", "-3"},
		{"Integral", "5", "5", "5"},
		{"NegativeIntegral", "-5.0", "-5", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New()
			require.Equal(t, StatusOK, MustParse(tt.input).Ceiling(res))
			assert.Equal(t, tt.ceiling, res.String())
			require.Equal(t, StatusOK, MustParse(tt.input).Floor(res))
			assert.Equal(t, tt.floor, res.String())
		})
	}
}

func TestToIntTruncatesTowardZero(t *testing.T) {
	v, st := MustParse("-3.7").ToInt()
	assert.Equal(t, StatusTruncated, st)
	assert.Equal(t, int64(-3), v)

	v, st = MustParse("3.7").ToInt()
	assert.Equal(t, StatusTruncated, st)
	assert.Equal(t, int64(3), v)

	_, st = Parse(strings.Repeat("9", 30))
	require.Equal(t, StatusOK, st)
	v, st = MustParse(strings.Repeat("9", 30)).ToInt()
	assert.Equal(t, StatusOverflow, st)
	assert.Equal(t, int64(math.MaxInt64), v)
}

func TestToUint(t *testing.T) {
	v, st := MustParse("18446744073709551615").ToUint()
	assert.Equal(t, StatusOK, st)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, st = MustParse("-1").ToUint()
	assert.Equal(t, StatusOverflow, st)
}

func TestSetFloat(t *testing.T) {
	d := New()
	require.Equal(t, StatusOK, d.SetFloat(2.5))
	assert.Equal(t, "2.5", d.String())
	assert.Equal(t, StatusOverflow, d.SetFloat(math.Inf(1)))
}

func TestCmp(t *testing.T) {
	assert.Equal(t, 0, MustParse("1.50").Cmp(MustParse("1.5")))
	assert.Equal(t, -1, MustParse("-2").Cmp(MustParse("0.1")))
	assert.Equal(t, 1, MustParse("10").Cmp(MustParse("9.999")))
}

func TestPrecisionToLength(t *testing.T) {
	assert.Equal(t, 7, PrecisionToLength(5, 2, false))
	assert.Equal(t, 6, PrecisionToLength(5, 2, true))
	assert.Equal(t, 6, PrecisionToLength(5, 0, false))
}

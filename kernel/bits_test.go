package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengnin/mysql-server/eval"
)

func TestShiftInt(t *testing.T) {
	tests := []struct {
		name  string
		v     uint64
		shift uint64
		left  bool
		want  uint64
	}{
		{"LeftOne", 1, 1, true, 2},
		{"LeftToTopBit", 1, 63, true, 1 << 63},
		{"LeftSixtyFour", 1, 64, true, 0},
		{"LeftHuge", 1, ^uint64(0), true, 0},
		{"RightOne", 2, 1, false, 1},
		{"RightSixtyFour", ^uint64(0), 64, false, 0},
		{"RightAll", 1 << 63, 63, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShiftInt(tt.v, tt.shift, tt.left))
		})
	}
}

func TestCombineBytes(t *testing.T) {
	a := []byte{0xF0, 0x0F}
	b := []byte{0xFF, 0x00}

	out, err := AndBytes(nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x00}, out)

	out, err = OrBytes(nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x0F}, out)

	out, err = XorBytes(nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0F, 0x0F}, out)
}

func TestCombineBytesLengthMismatch(t *testing.T) {
	_, err := AndBytes(nil, []byte{1, 2}, []byte{1})
	assert.ErrorIs(t, err, eval.ErrInvalidArgument)
	_, err = OrBytes(nil, []byte{1}, []byte{1, 2})
	assert.ErrorIs(t, err, eval.ErrInvalidArgument)
	_, err = XorBytes(nil, []byte{}, []byte{1})
	assert.ErrorIs(t, err, eval.ErrInvalidArgument)
}

func TestNotBytes(t *testing.T) {
	assert.Equal(t, []byte{0x0F, 0xFF}, NotBytes(nil, []byte{0xF0, 0x00}))
	assert.Equal(t, []byte{}, NotBytes(nil, nil))
}

func TestShiftBytes(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		shift uint64
		left  bool
		want  []byte
	}{
		{"LeftZero", []byte{0x81, 0x42}, 0, true, []byte{0x81, 0x42}},
		{"LeftOneCarries", []byte{0x81}, 1, true, []byte{0x02}},
		{"LeftOneAcrossBytes", []byte{0x01, 0x80}, 1, true, []byte{0x03, 0x00}},
		{"LeftSeven", []byte{0x01, 0x01}, 7, true, []byte{0x80, 0x80}},
		{"LeftWholeByte", []byte{0xAB, 0xCD}, 8, true, []byte{0xCD, 0x00}},
		{"LeftNine", []byte{0xAB, 0xCD}, 9, true, []byte{0x9A, 0x00}},
		{"LeftAllBits", []byte{0xFF, 0xFF}, 16, true, []byte{0x00, 0x00}},
		{"LeftBeyondAllBits", []byte{0xFF, 0xFF}, 17, true, []byte{0x00, 0x00}},
		{"RightZero", []byte{0x81, 0x42}, 0, false, []byte{0x81, 0x42}},
		{"RightOneCarries", []byte{0x81, 0x00}, 1, false, []byte{0x40, 0x80}},
		{"RightSeven", []byte{0x80, 0x80}, 7, false, []byte{0x01, 0x01}},
		{"RightWholeByte", []byte{0xAB, 0xCD}, 8, false, []byte{0x00, 0xAB}},
		{"RightNine", []byte{0xAB, 0xCD}, 9, false, []byte{0x00, 0x55}},
		{"RightAllBits", []byte{0xFF, 0xFF}, 16, false, []byte{0x00, 0x00}},
		{"RightBeyondAllBits", []byte{0xFF, 0xFF}, 1 << 40, false, []byte{0x00, 0x00}},
		{"Empty", []byte{}, 5, true, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShiftBytes(nil, tt.in, tt.shift, tt.left))
		})
	}
}

func TestShiftBytesLongBuffer(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04}
	// 21 bits left: two whole bytes plus five bits.
	out := ShiftBytes(nil, in, 21, true)
	assert.Equal(t, []byte{0x60, 0x80, 0x00, 0x00}, out)

	out = ShiftBytes(nil, in, 21, false)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x08}, out)
}

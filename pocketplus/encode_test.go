package pocketplus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountEncodeBitLengths(t *testing.T) {
	// §8 S6: COUNT(1), COUNT(33), COUNT(34) emit 1, 8, 9 bits.
	cases := []struct {
		a        int
		wantBits int
	}{
		{1, 1},
		{33, 8},
		{34, 9},
	}
	for _, c := range cases {
		bb := NewBitBuffer(0)
		require.NoError(t, CountEncode(bb, c.a))
		assert.Equal(t, c.wantBits, bb.Len(), "A=%d", c.a)
	}
}

func TestCountEncodeLargeValueUsesDerivedBitLength(t *testing.T) {
	// The spec's worked example for COUNT(65535) (31 bits) does not match
	// its own stated formula E = 2*floor(log2(A-2))+2-6 (which yields 26,
	// for a 29-bit total); we follow the formula, which is self-consistent
	// with the COUNT(34) case above, rather than the one-off example.
	bb := NewBitBuffer(0)
	require.NoError(t, CountEncode(bb, 65535))
	assert.Equal(t, 29, bb.Len())
}

func TestCountEncodeInvalidArg(t *testing.T) {
	bb := NewBitBuffer(0)
	assert.ErrorIs(t, CountEncode(bb, 0), ErrInvalidArg)
	assert.ErrorIs(t, CountEncode(bb, 65536), ErrInvalidArg)
}

func TestRLEEncodeEmptyVectorIsTerminator(t *testing.T) {
	for _, f := range []int{1, 8, 720} {
		v, _ := NewBitVector(f)
		bb := NewBitBuffer(0)
		require.NoError(t, RLEEncode(bb, v))
		assert.Equal(t, 2, bb.Len(), "F=%d", f)
		assert.Equal(t, []byte{0b10000000}, bb.ToBytes(), "F=%d", f)
	}
}

func TestRLEEncodeSingleBit(t *testing.T) {
	f := 16
	for _, p := range []int{0, 5, 15} {
		v, _ := NewBitVector(f)
		v.SetBit(p, 1)

		bb := NewBitBuffer(0)
		require.NoError(t, RLEEncode(bb, v))

		want := NewBitBuffer(0)
		require.NoError(t, CountEncode(want, f-p))
		require.NoError(t, countTerminator(want))

		assert.Equal(t, want.Len(), bb.Len(), "p=%d", p)
		assert.Equal(t, want.ToBytes(), bb.ToBytes(), "p=%d", p)
	}
}

func TestBitExtractReverseOrder(t *testing.T) {
	data, _ := NewBitVector(8)
	data.FromBytes([]byte{0b10110100})
	mask, _ := NewBitVector(8)
	for _, p := range []int{1, 3, 6} {
		mask.SetBit(p, 1)
	}

	bb := NewBitBuffer(0)
	require.NoError(t, BitExtract(bb, data, mask))
	// Reverse order: position 6 first, then 3, then 1.
	assert.Equal(t, []int{data.GetBit(6), data.GetBit(3), data.GetBit(1)}, bitsOf(bb))
}

func TestBitExtractForwardOrder(t *testing.T) {
	data, _ := NewBitVector(8)
	data.FromBytes([]byte{0b10110100})
	mask, _ := NewBitVector(8)
	for _, p := range []int{1, 3, 6} {
		mask.SetBit(p, 1)
	}

	bb := NewBitBuffer(0)
	require.NoError(t, BitExtractForward(bb, data, mask))
	assert.Equal(t, []int{data.GetBit(1), data.GetBit(3), data.GetBit(6)}, bitsOf(bb))
}

// bitsOf unpacks the bits appended to bb, in append order, for assertions.
func bitsOf(bb *BitBuffer) []int {
	data, n := bb.Bytes()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, int((data[i/8]>>(7-uint(i%8)))&1))
	}
	return out
}

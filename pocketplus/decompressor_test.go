package pocketplus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecompressorClampsRobustness(t *testing.T) {
	d, err := NewDecompressor(8, nil, 20)
	require.NoError(t, err)
	assert.Equal(t, MaxRobustness, d.robustness)

	_, err = NewDecompressor(8, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestNewDecompressorRejectsMismatchedInitialMask(t *testing.T) {
	mask, _ := NewBitVector(16)
	_, err := NewDecompressor(8, mask, 0)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestDecompressPacketUnderflowOnTruncatedStream(t *testing.T) {
	d, err := NewDecompressor(8, nil, 0)
	require.NoError(t, err)
	reader := NewBitReader([]byte{}, 0)
	_, err = d.DecompressPacket(reader)
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestDecompressPacketInvalidDataOnCountMismatch(t *testing.T) {
	f := 8
	d, err := NewDecompressor(f, nil, 0)
	require.NoError(t, err)

	// Hand-build ht with dt=0 (Vt=0, Xt empty), then an uncompressed
	// (rt=1) payload whose COUNT(F) lies about F.
	bb := NewBitBuffer(0)
	empty, _ := NewBitVector(f)
	require.NoError(t, RLEEncode(bb, empty)) // Xt
	require.NoError(t, bb.AppendValue(0, 4)) // Vt=0
	require.NoError(t, bb.AppendBit(0))      // dt=0 so ft/rt are read
	require.NoError(t, bb.AppendBit(0))      // ft=0
	require.NoError(t, bb.AppendBit(1))      // rt=1
	require.NoError(t, CountEncode(bb, f+1)) // wrong length
	for i := 0; i < f; i++ {
		require.NoError(t, bb.AppendBit(0))
	}

	data, n := bb.Bytes()
	_, err = d.DecompressPacket(NewBitReader(data, n))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDecompressStreamRejectsEmptyInput(t *testing.T) {
	d, err := NewDecompressor(8, nil, 0)
	require.NoError(t, err)
	_, err = d.DecompressStream(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

package pocketplus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressDecompressSequence feeds packets through a fresh Compressor/
// Decompressor pair using the given flag schedule and asserts the
// decompressor reproduces every input packet bit-for-bit (§8 property 1)
// and that the two instances' masks and cycle counters stay in lockstep
// (§8 property 2).
func compressDecompressSequence(t *testing.T, f, robustness int, packets []*BitVector, flags []CompressParams) {
	t.Helper()

	comp, err := NewCompressor(f, nil, robustness, 0, 0, 0)
	require.NoError(t, err)
	decomp, err := NewDecompressor(f, nil, robustness)
	require.NoError(t, err)

	for i, packet := range packets {
		wire, err := comp.CompressPacket(packet, &flags[i])
		require.NoError(t, err, "packet %d", i)

		br := NewBitReader(wire, 0)
		got, err := decomp.DecompressPacket(br)
		require.NoError(t, err, "packet %d", i)

		assert.True(t, packet.Equals(got), "packet %d mismatch", i)
		assert.Equal(t, comp.t, decomp.t, "t diverged at packet %d", i)
		assert.True(t, comp.mask.Equals(decomp.mask), "mask diverged at packet %d", i)
	}
}

func randomPackets(n, f int, seed int64) []*BitVector {
	r := rand.New(rand.NewSource(seed))
	out := make([]*BitVector, n)
	raw := make([]byte, (f+7)/8)
	for i := 0; i < n; i++ {
		r.Read(raw)
		v, _ := NewBitVector(f)
		v.FromBytes(raw)
		out[i] = v
	}
	return out
}

func TestRoundTripConstantStream(t *testing.T) {
	// §8 S1: a run of identical packets compresses and decompresses
	// exactly under light robustness.
	f := 90 * 8
	n := 100
	zero, _ := NewBitVector(f)
	zero.FromBytes(make([]byte, f/8))

	packets := make([]*BitVector, n)
	for i := range packets {
		packets[i] = zero
	}

	flags := make([]CompressParams, n)
	for i := range flags {
		flags[i] = CompressParams{
			NewMaskFlag:  i%10 == 0,
			SendMaskFlag: i%20 == 0,
		}
	}
	compressDecompressSequence(t, f, 1, packets, flags)
}

func TestRoundTripRandomStreamAllRobustnessLevels(t *testing.T) {
	f := 64
	n := 30
	for robustness := 0; robustness <= MaxRobustness; robustness++ {
		packets := randomPackets(n, f, int64(robustness+1))
		flags := make([]CompressParams, n)
		for i := range flags {
			flags[i] = CompressParams{
				NewMaskFlag:      i%7 == 0,
				SendMaskFlag:     i%5 == 0,
				UncompressedFlag: i%11 == 0,
			}
		}
		compressDecompressSequence(t, f, robustness, packets, flags)
	}
}

func TestRoundTripBoundaryPacketWidths(t *testing.T) {
	// §8 S5: a handful of representative F values, with a single bit
	// toggling at the first, middle, and last position across packets.
	// Packet 0 is sent with ft=1, rt=1 (as the automatic overlay does) so
	// the decoder has a full packet to predict from.
	for _, f := range []int{1, 7, 8, 31, 32, 33, 63, 64, 719, 720, 721} {
		positions := []int{0, f / 2, f - 1}
		packets := make([]*BitVector, len(positions))
		flags := make([]CompressParams, len(positions))
		flags[0] = CompressParams{SendMaskFlag: true, UncompressedFlag: true}
		for i, p := range positions {
			v, _ := NewBitVector(f)
			v.SetBit(p, 1)
			packets[i] = v
		}
		compressDecompressSequence(t, f, 2, packets, flags)
	}
}

func TestRoundTripViaPackageLevelFunctions(t *testing.T) {
	packetBytes := 12
	n := 50
	data := make([]byte, packetBytes*n)
	r := rand.New(rand.NewSource(7))
	r.Read(data)

	compressed, err := Compress(data, packetBytes, 3, 10, 20, 50)
	require.NoError(t, err)

	decompressed, err := Decompress(compressed, packetBytes, 3)
	require.NoError(t, err)

	assert.Equal(t, data, decompressed)
}

func TestRoundTripEmptyInput(t *testing.T) {
	out, err := Compress(nil, 8, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Decompress(nil, 8, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCompressRejectsMisalignedLength(t *testing.T) {
	_, err := Compress(make([]byte, 5), 4, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

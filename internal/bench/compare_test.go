package bench

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagraspace/pocketplus-go/internal/config"
)

func syntheticInput(n, packetBytes int) []byte {
	r := rand.New(rand.NewSource(3))
	base := make([]byte, packetBytes)
	r.Read(base)
	out := make([]byte, 0, n*packetBytes)
	for i := 0; i < n; i++ {
		if i%5 == 0 {
			base[r.Intn(packetBytes)] ^= 1
		}
		out = append(out, base...)
	}
	return out
}

func TestCompareRoundTripsAndReportsRatios(t *testing.T) {
	profile := config.Profile{
		PacketBytes: 16,
		Robustness:  2,
		PtLimit:     10,
		FtLimit:     20,
		RtLimit:     50,
	}
	data := syntheticInput(200, profile.PacketBytes)

	report, err := Compare(data, profile)
	require.NoError(t, err)

	assert.True(t, report.RoundTripOK)
	assert.Equal(t, len(data), report.InputBytes)
	assert.Greater(t, report.PocketPlusRatio, 0.0)
	assert.Greater(t, report.FlateRatio, 0.0)
	assert.Positive(t, report.PocketPlusBytes)
	assert.Positive(t, report.FlateBytes)
}

func TestCompareRejectsBadPacketSize(t *testing.T) {
	profile := config.Profile{PacketBytes: 0, Robustness: 0}
	_, err := Compare([]byte{1, 2, 3}, profile)
	assert.Error(t, err)
}

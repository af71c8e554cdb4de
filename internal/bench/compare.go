// Package bench compares the POCKET+ codec against a general-purpose
// baseline and verifies round-trip integrity by comparing xxhash64
// digests of the input and the round-tripped output instead of
// comparing the two buffers byte by byte.
package bench

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/flate"

	"github.com/tanagraspace/pocketplus-go/internal/config"
	"github.com/tanagraspace/pocketplus-go/pocketplus"
)

// Report summarizes one comparison run over a single input buffer.
type Report struct {
	InputBytes int

	PocketPlusBytes    int
	PocketPlusRatio    float64
	PocketPlusDuration time.Duration

	FlateBytes    int
	FlateRatio    float64
	FlateDuration time.Duration

	// InputDigest and RoundTripDigest are xxhash64 sums of the original
	// input and the POCKET+ round-tripped output; they match iff the
	// round trip was lossless.
	InputDigest     uint64
	RoundTripDigest uint64
	RoundTripOK     bool
}

// Compare round-trips data through the POCKET+ codec using profile's
// parameters, and separately through compress/flate (via
// klauspost/compress's drop-in faster implementation) as a
// general-purpose baseline, reporting size and timing for both plus an
// xxhash64-verified round-trip check.
func Compare(data []byte, profile config.Profile) (Report, error) {
	var report Report
	report.InputBytes = len(data)
	report.InputDigest = xxhash.Sum64(data)

	start := time.Now()
	compressed, err := pocketplus.Compress(data, profile.PacketBytes, profile.Robustness,
		profile.PtLimit, profile.FtLimit, profile.RtLimit)
	if err != nil {
		return report, fmt.Errorf("bench: pocketplus compress: %w", err)
	}
	report.PocketPlusDuration = time.Since(start)
	report.PocketPlusBytes = len(compressed)
	report.PocketPlusRatio = ratio(len(data), len(compressed))

	decompressed, err := pocketplus.Decompress(compressed, profile.PacketBytes, profile.Robustness)
	if err != nil {
		return report, fmt.Errorf("bench: pocketplus decompress: %w", err)
	}
	report.RoundTripDigest = xxhash.Sum64(decompressed)
	report.RoundTripOK = report.RoundTripDigest == report.InputDigest

	start = time.Now()
	flateBytes, err := flateCompress(data)
	if err != nil {
		return report, fmt.Errorf("bench: flate compress: %w", err)
	}
	report.FlateDuration = time.Since(start)
	report.FlateBytes = len(flateBytes)
	report.FlateRatio = ratio(len(data), len(flateBytes))

	return report, nil
}

func ratio(in, out int) float64 {
	if out == 0 {
		return 0
	}
	return float64(in) / float64(out)
}

func flateCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

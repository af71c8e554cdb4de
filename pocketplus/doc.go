// Package pocketplus implements the CCSDS 124.0-B-1 POCKET+ lossless
// compression algorithm for fixed-length housekeeping data.
//
// POCKET+ tracks an "unpredictability mask" over a stream of
// same-size packets and transmits only the bits the mask identifies as
// unpredictable, refreshing the mask periodically (manually or via the
// automatic scheduling overlay) so a receiver that joins mid-stream,
// or loses packets, can resynchronize.
//
// Basic usage:
//
//	// Compress data: packetBytes-sized records, robustness 3, automatic
//	// mask/full-packet refresh every 16/64/64 packets.
//	compressed, err := pocketplus.Compress(data, packetBytes, 3, 16, 64, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decompress data
//	decompressed, err := pocketplus.Decompress(compressed, packetBytes, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Callers who need per-packet control over pt/ft/rt, streaming
// decompression, or a non-zero initial mask should use Compressor and
// Decompressor directly instead of the package-level convenience
// functions.
//
// For more information about the POCKET+ algorithm, see:
// https://ccsds.org/Pubs/124x0b1.pdf
package pocketplus

package pocketplus

import "github.com/tanagraspace/pocketplus-go/internal/packetstream"

// Version identifies this implementation, independent of the CCSDS
// standard's own document version.
const Version = "1.0.0"

// Compress encodes data, a contiguous byte buffer whose length is a
// multiple of packetBytes, as a stream of POCKET+ packets, each of
// packetBytes*8 bits, automatically scheduling pt/ft/rt per §4.7 using
// the three period limits. robustness above MaxRobustness clamps to
// it rather than erroring.
func Compress(data []byte, packetBytes, robustness, ptLimit, ftLimit, rtLimit int) ([]byte, error) {
	if packetBytes <= 0 {
		return nil, newErr(InvalidArg, "Compress", "packetBytes must be positive")
	}
	if len(data) == 0 {
		return nil, nil
	}
	records, err := packetstream.Chunks(data, packetBytes)
	if err != nil {
		return nil, newErr(InvalidArg, "Compress", "data length must be a multiple of packetBytes")
	}

	f := packetBytes * 8
	comp, err := NewCompressor(f, nil, robustness, ptLimit, ftLimit, rtLimit)
	if err != nil {
		return nil, err
	}

	input, err := NewBitVector(f)
	if err != nil {
		return nil, err
	}

	packets := make([][]byte, len(records))
	for i, record := range records {
		input.FromBytes(record)
		packet, err := comp.CompressPacket(input, nil)
		if err != nil {
			return nil, err
		}
		packets[i] = packet
	}
	return packetstream.Join(packets), nil
}

// Decompress is the inverse of Compress: it parses a POCKET+ bit
// stream back into its original packetBytes-sized records. robustness
// must match the value used at compression time.
func Decompress(data []byte, packetBytes, robustness int) ([]byte, error) {
	if packetBytes <= 0 {
		return nil, newErr(InvalidArg, "Decompress", "packetBytes must be positive")
	}
	if len(data) == 0 {
		return nil, nil
	}

	f := packetBytes * 8
	decomp, err := NewDecompressor(f, nil, robustness)
	if err != nil {
		return nil, err
	}

	packets, err := decomp.DecompressStream(data, 0)
	if err != nil {
		return nil, err
	}
	return packetstream.Join(packets), nil
}

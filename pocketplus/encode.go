package pocketplus

import "math/bits"

// CountEncode writes A (1 <= A <= 65535) to bb using the COUNT code of
// CCSDS 124.0-B-1 §5.2.2 Table 5-1 / Equation 9:
//
//	A = 1       -> '0'
//	2 <= A <= 33 -> '110' || BIT_5(A-2)
//	A >= 34     -> '111' || BIT_E(A-2), E = 2*floor(log2(A-2)) + 2 - 6
//
// The two-bit sequence '10' is reserved by RLE as its terminator and is
// never produced by CountEncode for a valid A (A=0 would collide with
// it, which is why A=0 is rejected here rather than encoded).
func CountEncode(bb *BitBuffer, A int) error {
	if A < 1 || A > 65535 {
		return newErr(InvalidArg, "CountEncode", "A must be in [1, 65535]")
	}

	switch {
	case A == 1:
		return bb.AppendBit(0)

	case A <= 33:
		if err := bb.AppendValue(0b110, 3); err != nil {
			return err
		}
		return bb.AppendValue(uint32(A-2), 5)

	default:
		if err := bb.AppendValue(0b111, 3); err != nil {
			return err
		}
		value := uint32(A - 2)
		e := 2*bits.Len32(value) - 6
		return appendWideValue(bb, value, e)
	}
}

// appendWideValue appends the low n bits of value MSB-first, splitting
// into AppendValue's <=24-bit batches since COUNT fields for large A can
// exceed that cap (A up to 65535 needs E up to 26 bits).
func appendWideValue(bb *BitBuffer, value uint32, n int) error {
	for n > 24 {
		chunk := n - 24
		if err := bb.AppendValue(value>>uint(24), chunk); err != nil {
			return err
		}
		value &= (1 << 24) - 1
		n = 24
	}
	return bb.AppendValue(value, n)
}

// countTerminator writes the RLE run terminator pattern '10'.
func countTerminator(bb *BitBuffer) error {
	return bb.AppendValue(0b10, 2)
}

// RLEEncode writes RLE(v) per §5.2.3 / Equation 10: a sequence of COUNT
// codes for the gaps between set bits, scanned from the highest bit
// position down to 0, followed by the '10' terminator. An all-zero
// vector encodes to exactly the terminator.
func RLEEncode(bb *BitBuffer, v *BitVector) error {
	old := v.Length()
	var encErr error
	v.forEachSetBitReverse(func(pos int) {
		if encErr != nil {
			return
		}
		delta := old - pos
		encErr = CountEncode(bb, delta)
		old = pos
	})
	if encErr != nil {
		return encErr
	}
	return countTerminator(bb)
}

// BitExtract is the reverse-order BE of §4.4.3: it appends, for each
// set bit of mask scanned from the highest position to the lowest, the
// corresponding bit of data.
func BitExtract(bb *BitBuffer, data, mask *BitVector) error {
	var extErr error
	mask.forEachSetBitReverse(func(pos int) {
		if extErr != nil {
			return
		}
		extErr = bb.AppendBit(data.GetBit(pos))
	})
	return extErr
}

// BitExtractForward is the forward-order BE used for kt: it appends,
// for each set bit of mask scanned from the lowest position to the
// highest, the corresponding bit of data.
func BitExtractForward(bb *BitBuffer, data, mask *BitVector) error {
	var extErr error
	mask.forEachSetBitForward(func(pos int) {
		if extErr != nil {
			return
		}
		extErr = bb.AppendBit(data.GetBit(pos))
	})
	return extErr
}

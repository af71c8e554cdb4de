package pocketplus

// Decompressor holds the decoder-side state machine of §4.9: the
// current mask M, the previous output Oprev (the prediction base), and
// Xpos (positions of positive mask updates applied this packet, used
// only within the current cycle). It mirrors Compressor's state
// exactly so the two stay synchronized packet for packet.
type Decompressor struct {
	f           int
	robustness  int
	initialMask *BitVector

	mask       *BitVector
	prevOutput *BitVector
	xpos       *BitVector

	t int

	extractMask *BitVector // scratch for mask OR xpos
}

// NewDecompressor constructs a decompressor for F-bit packets.
// robustness above MaxRobustness is clamped, matching NewCompressor.
// The value is stored but does not affect decoding: Xt, Vt and ct all
// arrive on the wire.
func NewDecompressor(f int, initialMask *BitVector, robustness int) (*Decompressor, error) {
	if f <= 0 {
		return nil, newErr(InvalidArg, "NewDecompressor", "F must be positive")
	}
	if robustness < 0 {
		return nil, newErr(InvalidArg, "NewDecompressor", "robustness must not be negative")
	}
	if robustness > MaxRobustness {
		robustness = MaxRobustness
	}
	if initialMask != nil && initialMask.Length() != f {
		return nil, newErr(InvalidArg, "NewDecompressor", "initialMask length must equal F")
	}

	d := &Decompressor{f: f, robustness: robustness}

	var err error
	if d.initialMask, err = NewBitVector(f); err != nil {
		return nil, err
	}
	if initialMask != nil {
		d.initialMask.CopyFrom(initialMask)
	}

	for _, dst := range []**BitVector{&d.mask, &d.prevOutput, &d.xpos, &d.extractMask} {
		v, err := NewBitVector(f)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	d.Reset()
	return d, nil
}

// Reset returns the decompressor to t=0 with the mask restored to
// initialMask.
func (d *Decompressor) Reset() {
	d.t = 0
	d.mask.CopyFrom(d.initialMask)
	d.prevOutput.Zero()
	d.xpos.Zero()
}

// DecompressPacket parses one compressed packet from reader and
// returns the reconstructed F-bit input, the inverse of
// Compressor.CompressPacket. State (M, Oprev, t) advances on success.
func (d *Decompressor) DecompressPacket(reader *BitReader) (*BitVector, error) {
	output, err := NewBitVector(d.f)
	if err != nil {
		return nil, err
	}
	output.CopyFrom(d.prevOutput)
	d.xpos.Zero()

	// ht: RLE(Xt) || BIT4(Vt) || [et || [kt || ct]] || dt
	Xt, err := RLEDecode(reader, d.f)
	if err != nil {
		return nil, err
	}
	vtRaw, err := reader.ReadBits(4)
	if err != nil {
		return nil, err
	}
	Vt := int(vtRaw)

	ct := 0
	changeCount := Xt.HammingWeight()

	switch {
	case Vt > 0 && changeCount > 0:
		et, err := reader.ReadBit()
		if err != nil {
			return nil, err
		}
		if et == 1 {
			var ktErr error
			Xt.forEachSetBitForward(func(pos int) {
				if ktErr != nil {
					return
				}
				bit, err := reader.ReadBit()
				if err != nil {
					ktErr = err
					return
				}
				if bit != 0 {
					d.mask.SetBit(pos, 0)
					d.xpos.SetBit(pos, 1)
				} else {
					d.mask.SetBit(pos, 1)
				}
			})
			if ktErr != nil {
				return nil, ktErr
			}
			ctBit, err := reader.ReadBit()
			if err != nil {
				return nil, err
			}
			ct = ctBit
		} else {
			Xt.forEachSetBitForward(func(pos int) {
				d.mask.SetBit(pos, 1)
			})
		}

	case Vt == 0 && changeCount > 0:
		Xt.forEachSetBitForward(func(pos int) {
			d.mask.SetBit(pos, 1-d.mask.GetBit(pos))
		})
	}

	dt, err := reader.ReadBit()
	if err != nil {
		return nil, err
	}

	ft, rt := 0, 0
	if dt == 0 {
		ft, err = reader.ReadBit()
		if err != nil {
			return nil, err
		}
		if ft == 1 {
			hxor, err := RLEDecode(reader, d.f)
			if err != nil {
				return nil, err
			}
			// M[F-1] = H[F-1]; M[i] = H[i] XOR M[i+1] for i = F-2..0.
			current := hxor.GetBit(d.f - 1)
			d.mask.SetBit(d.f-1, current)
			for i := d.f - 2; i >= 0; i-- {
				current = hxor.GetBit(i) ^ current
				d.mask.SetBit(i, current)
			}
		}
		rt, err = reader.ReadBit()
		if err != nil {
			return nil, err
		}
	}

	if rt == 1 {
		length, err := CountDecode(reader)
		if err != nil {
			return nil, err
		}
		if length != d.f {
			return nil, newErr(InvalidData, "DecompressPacket", "COUNT(F) on uncompressed path did not equal F")
		}
		for i := 0; i < d.f; i++ {
			bit, err := reader.ReadBit()
			if err != nil {
				return nil, err
			}
			output.SetBit(i, bit)
		}
	} else {
		extractMask := d.mask
		if ct == 1 && Vt > 0 {
			d.extractMask.ORInto(d.mask, d.xpos)
			extractMask = d.extractMask
		}
		if err := BitInsert(reader, output, extractMask); err != nil {
			return nil, err
		}
	}

	d.prevOutput.CopyFrom(output)
	d.t++
	return output, nil
}

// DecompressStream decodes every packet packed into data (numBits <= 0
// means "use all of data") and returns each reconstructed F-bit packet
// as its own byte-aligned slice. The decompressor is reset first.
func (d *Decompressor) DecompressStream(data []byte, numBits int) ([][]byte, error) {
	if len(data) == 0 {
		return nil, newErr(InvalidArg, "DecompressStream", "input data is empty")
	}
	d.Reset()
	reader := NewBitReader(data, numBits)

	var outputs [][]byte
	for reader.Remaining() > 0 {
		output, err := d.DecompressPacket(reader)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, output.ToBytes())
		reader.AlignByte()
	}
	return outputs, nil
}

// PacketIterator streams decompressed packets one at a time instead of
// materializing the whole stream, for callers working with very long
// telemetry recordings.
type PacketIterator struct {
	d      *Decompressor
	reader *BitReader
	err    error
}

// NewPacketIterator resets d and returns an iterator over data.
func (d *Decompressor) NewPacketIterator(data []byte, numBits int) *PacketIterator {
	d.Reset()
	return &PacketIterator{d: d, reader: NewBitReader(data, numBits)}
}

// Next returns the next decompressed packet, or nil once the stream is
// exhausted or a decode error occurred; check Err to distinguish the two.
func (it *PacketIterator) Next() []byte {
	if it.err != nil || it.reader.Remaining() <= 0 {
		return nil
	}
	output, err := it.d.DecompressPacket(it.reader)
	if err != nil {
		it.err = err
		return nil
	}
	it.reader.AlignByte()
	return output.ToBytes()
}

// Err returns any error encountered during iteration.
func (it *PacketIterator) Err() error { return it.err }

// StreamPackets returns a channel yielding decompressed packets as
// they're parsed from data; the channel is closed when the stream is
// exhausted or a decode error terminates it early.
func (d *Decompressor) StreamPackets(data []byte, numBits int) <-chan []byte {
	ch := make(chan []byte, 64)
	go func() {
		defer close(ch)
		it := d.NewPacketIterator(data, numBits)
		for {
			packet := it.Next()
			if packet == nil {
				return
			}
			ch <- packet
		}
	}()
	return ch
}

package pocketplus

// Dhist/PHist depth. Rt is capped at 7, and the Ct lookback in
// computeEffectiveRobustness can walk up to 15-Rt further packets
// behind Rt, so 16 slots cover the worst case (Rt=0, Ct up to 15).
const (
	historyDepth  = 16
	MaxRobustness = 7
)

// CompressParams carries the per-packet control flags of §4.6: pt (new
// mask request), ft (send mask request), and rt (uncompressed
// request). A nil CompressParams passed to CompressPacket falls back
// to the Compressor's AutoScheduler, if one is configured.
type CompressParams struct {
	NewMaskFlag      bool // pt
	SendMaskFlag     bool // ft
	UncompressedFlag bool // rt
}

// Compressor holds the encoder-side state machine of §4.9: the current
// mask M, the shadow build vector B, the previous input, and a rolling
// history of change vectors Dhist used by the robustness window and
// effective-robustness computations. All per-packet scratch is
// allocated once at construction and reused across CompressPacket
// calls.
type Compressor struct {
	f           int // F: packet length in bits
	robustness  int // Rt, already clamped to [0, MaxRobustness]
	initialMask *BitVector

	mask      *BitVector
	prevMask  *BitVector
	build     *BitVector
	prevInput *BitVector

	dhist         [historyDepth]*BitVector
	dhistPopcount [historyDepth]int
	dhistNext     int // slot that will hold the *current* packet's D

	phist     [historyDepth]bool
	phistNext int // slot that will hold the *current* packet's pt

	t int

	scheduler *AutoScheduler

	// Scratch reused across packets; never allocated in the hot path.
	scratch     *BitVector
	buildPrev   *BitVector
	xt          *BitVector
	invMask     *BitVector
	extractMask *BitVector
	maskShifted *BitVector
	out         *BitBuffer
}

// NewCompressor constructs a compressor for F-bit packets. robustness
// above MaxRobustness is clamped, never rejected; robustness below 0 is
// an InvalidArg. initialMask, if non-nil, must have length F and seeds
// both the running mask and the value reset() restores. ptLim/ftLim/
// rtLim enable the automatic scheduling overlay of §4.7 when all three
// are positive; pass zeros to drive pt/ft/rt manually via
// CompressParams instead.
func NewCompressor(f int, initialMask *BitVector, robustness, ptLim, ftLim, rtLim int) (*Compressor, error) {
	if f <= 0 {
		return nil, newErr(InvalidArg, "NewCompressor", "F must be positive")
	}
	if robustness < 0 {
		return nil, newErr(InvalidArg, "NewCompressor", "robustness must not be negative")
	}
	if robustness > MaxRobustness {
		robustness = MaxRobustness
	}
	if initialMask != nil && initialMask.Length() != f {
		return nil, newErr(InvalidArg, "NewCompressor", "initialMask length must equal F")
	}

	c := &Compressor{f: f, robustness: robustness}

	var err error
	if c.initialMask, err = NewBitVector(f); err != nil {
		return nil, err
	}
	if initialMask != nil {
		c.initialMask.CopyFrom(initialMask)
	}

	for _, dst := range []**BitVector{&c.mask, &c.prevMask, &c.build, &c.prevInput,
		&c.scratch, &c.buildPrev, &c.xt, &c.invMask, &c.extractMask, &c.maskShifted} {
		v, err := NewBitVector(f)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	for i := range c.dhist {
		v, err := NewBitVector(f)
		if err != nil {
			return nil, err
		}
		c.dhist[i] = v
	}

	c.out = NewBitBuffer(0)

	if ptLim > 0 && ftLim > 0 && rtLim > 0 {
		c.scheduler = NewAutoScheduler(ptLim, ftLim, rtLim)
	}

	c.Reset()
	return c, nil
}

// Reset returns the compressor to t=0 with the mask restored to
// initialMask, the only legal way to start a new stream on an existing
// instance (§4.9).
func (c *Compressor) Reset() {
	c.t = 0
	c.mask.CopyFrom(c.initialMask)
	c.prevMask.Zero()
	c.build.Zero()
	c.prevInput.Zero()

	for i := range c.dhist {
		c.dhist[i].Zero()
		c.dhistPopcount[i] = 0
	}
	c.dhistNext = 0

	for i := range c.phist {
		c.phist[i] = false
	}
	c.phistNext = 0

	if c.scheduler != nil {
		c.scheduler.Reset()
	}
}

// CompressPacket encodes one F-bit input packet and returns the
// packed, byte-aligned wire segment ht‖qt‖ut. params may be nil if and
// only if the compressor was constructed with automatic scheduling
// enabled. State (M, B, Iprev, Dhist, PHist, t) advances on success.
// An invalid input or missing params is rejected before any state
// changes; a failure while writing the packet leaves M, B and the
// current Dhist slot already updated while t does not advance, so the
// caller restarts the stream with Reset.
func (c *Compressor) CompressPacket(input *BitVector, params *CompressParams) ([]byte, error) {
	if input == nil || input.Length() != c.f {
		return nil, newErr(InvalidArg, "CompressPacket", "input must be non-nil and length F")
	}
	if params == nil {
		if !c.scheduler.Enabled() {
			return nil, newErr(InvalidArg, "CompressPacket", "params required when no AutoScheduler is configured")
		}
		pt, ft, rt := c.scheduler.Next(c.t, c.robustness)
		params = &CompressParams{NewMaskFlag: pt, SendMaskFlag: ft, UncompressedFlag: rt}
	}

	c.out.Reset()
	out := c.out

	// Equations 6-8: advance B, M, and compute D = M_t XOR M_{t-1}.
	c.prevMask.CopyFrom(c.mask)
	c.buildPrev.CopyFrom(c.build)

	if c.t > 0 {
		UpdateBuild(c.build, input, c.prevInput, c.scratch, params.NewMaskFlag, c.t)
		UpdateMask(c.mask, input, c.prevInput, c.buildPrev, c.scratch, params.NewMaskFlag)
	}
	change := c.scratch
	ComputeChange(change, c.mask, c.prevMask, c.t)

	dSlot := c.dhistNext
	c.dhist[dSlot].CopyFrom(change)
	c.dhistPopcount[dSlot] = change.HammingWeight()

	// Xt (robustness window, §4.6).
	Xt := c.xt
	if c.robustness == 0 || c.t == 0 {
		Xt.CopyFrom(change)
	} else {
		Xt.CopyFrom(change)
		numPrior := c.robustness
		if c.t < numPrior {
			numPrior = c.t
		}
		for i := 1; i <= numPrior; i++ {
			idx := (dSlot + historyDepth - i) % historyDepth
			Xt.ORInto(Xt, c.dhist[idx])
		}
	}

	Vt := c.computeEffectiveRobustness(dSlot)

	dt := 0
	if !params.SendMaskFlag && !params.UncompressedFlag {
		dt = 1
	}

	// ht: RLE(Xt) || BIT4(Vt) || [et || [kt || ct]] || dt
	if err := RLEEncode(out, Xt); err != nil {
		return nil, err
	}
	if err := out.AppendValue(uint32(Vt), 4); err != nil {
		return nil, err
	}

	ct := 0
	if Vt > 0 && Xt.HammingWeight() > 0 {
		c.invMask.CopyFrom(c.mask)
		c.invMask.Not()
		et := 0
		if hasPositiveUpdate(Xt, c.mask) {
			et = 1
		}
		if err := out.AppendBit(et); err != nil {
			return nil, err
		}
		if et == 1 {
			if err := BitExtractForward(out, c.invMask, Xt); err != nil {
				return nil, err
			}
			ct = c.computeCtFlag(Vt, params.NewMaskFlag)
			if err := out.AppendBit(ct); err != nil {
				return nil, err
			}
		}
	}
	if err := out.AppendBit(dt); err != nil {
		return nil, err
	}

	// qt: optional mask replacement, only when dt = 0.
	if dt == 0 {
		if params.SendMaskFlag {
			if err := out.AppendBit(1); err != nil {
				return nil, err
			}
			c.maskShifted.LeftShiftBy1Into(c.mask)
			c.maskShifted.XORInto(c.mask, c.maskShifted)
			if err := RLEEncode(out, c.maskShifted); err != nil {
				return nil, err
			}
		} else {
			if err := out.AppendBit(0); err != nil {
				return nil, err
			}
		}
	}

	// ut: full packet on the uncompressed path, or BE_reverse otherwise.
	if params.UncompressedFlag {
		if err := out.AppendBit(1); err != nil {
			return nil, err
		}
		if err := CountEncode(out, c.f); err != nil {
			return nil, err
		}
		if err := out.AppendBitVector(input, 0); err != nil {
			return nil, err
		}
	} else {
		if dt == 0 {
			if err := out.AppendBit(0); err != nil {
				return nil, err
			}
		}
		extractMask := c.mask
		if ct == 1 && Vt > 0 {
			c.extractMask.ORInto(c.mask, Xt)
			extractMask = c.extractMask
		}
		if err := BitExtract(out, input, extractMask); err != nil {
			return nil, err
		}
	}

	// Advance state for the next cycle.
	c.prevInput.CopyFrom(input)
	c.phist[c.phistNext] = params.NewMaskFlag
	c.phistNext = (c.phistNext + 1) % historyDepth
	c.dhistNext = (c.dhistNext + 1) % historyDepth
	c.t++

	return out.ToBytes(), nil
}

// computeEffectiveRobustness computes Vt = Rt + Ct per §4.6, using the
// cached Dhist popcounts rather than rescanning each BitVector.
func (c *Compressor) computeEffectiveRobustness(currentSlot int) int {
	Rt := c.robustness
	if c.t <= Rt {
		return Rt
	}

	maxLookback := 15 - Rt
	ct := 0
	limit := c.t
	if limit > 15 {
		limit = 15
	}
	for i := Rt + 1; i <= limit && ct < maxLookback; i++ {
		idx := (currentSlot + historyDepth - i) % historyDepth
		if c.dhistPopcount[idx] > 0 {
			break
		}
		ct++
	}

	Vt := Rt + ct
	if Vt > 15 {
		Vt = 15
	}
	return Vt
}

// computeCtFlag reports whether pt has been set at least twice within
// the current packet and the Vt preceding flag-history entries.
func (c *Compressor) computeCtFlag(Vt int, currentPt bool) int {
	if Vt == 0 {
		return 0
	}
	count := 0
	if currentPt {
		count++
	}
	lookback := Vt
	if lookback > c.t {
		lookback = c.t
	}
	for i := 0; i < lookback; i++ {
		idx := (c.phistNext + historyDepth - 1 - i) % historyDepth
		if c.phist[idx] {
			count++
		}
	}
	if count >= 2 {
		return 1
	}
	return 0
}

// hasPositiveUpdate reports whether any set bit of Xt sits at a
// position where mask is currently 0 (et of §4.6).
func hasPositiveUpdate(Xt, mask *BitVector) bool {
	found := false
	Xt.forEachSetBitForward(func(pos int) {
		if !found && mask.GetBit(pos) == 0 {
			found = true
		}
	})
	return found
}

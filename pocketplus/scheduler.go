package pocketplus

// AutoScheduler derives the per-packet pt/ft/rt control flags from
// three period limits instead of requiring the caller to supply them
// manually, per CCSDS 124.0-B-1 §4.7. It is a pure countdown machine;
// a Compressor holds one optionally and consults it in place of
// caller-supplied CompressParams.
type AutoScheduler struct {
	ptLim, ftLim, rtLim             int
	ptCounter, ftCounter, rtCounter int
}

// NewAutoScheduler builds a scheduler from three period limits. A
// limit of 0 disables the overlay entirely; Enabled reports false
// unless all three are positive.
func NewAutoScheduler(ptLim, ftLim, rtLim int) *AutoScheduler {
	s := &AutoScheduler{ptLim: ptLim, ftLim: ftLim, rtLim: rtLim}
	s.Reset()
	return s
}

// Enabled reports whether the overlay applies, i.e. all three period
// limits are positive. A nil receiver reports false, so a Compressor
// field of type *AutoScheduler left unset behaves as "manual mode".
func (s *AutoScheduler) Enabled() bool {
	return s != nil && s.ptLim > 0 && s.ftLim > 0 && s.rtLim > 0
}

// Reset restores the countdown counters to their configured limits.
func (s *AutoScheduler) Reset() {
	s.ptCounter = s.ptLim
	s.ftCounter = s.ftLim
	s.rtCounter = s.rtLim
}

// Next derives (pt, ft, rt) for packet t and ticks the internal
// counters. Must be called exactly once per packet, in increasing
// order of t, matching the Compressor's own cycle counter.
func (s *AutoScheduler) Next(t, robustness int) (pt, ft, rt bool) {
	if t == 0 {
		// Force a full mask + full packet so a fresh stream is
		// self-contained from the very first packet.
		s.Reset()
		return false, true, true
	}

	ft = s.tick(&s.ftCounter, s.ftLim)
	pt = s.tick(&s.ptCounter, s.ptLim)
	rt = s.tick(&s.rtCounter, s.rtLim)

	// Initialization override: guarantee the decoder can synchronize
	// within the first Rt+1 packets even if all but one were lost.
	// Counters have already ticked above and keep running regardless.
	if t <= robustness {
		pt, ft, rt = false, true, true
	}
	return pt, ft, rt
}

// tick reports whether counter has reached 1, resetting it to lim in
// that case; otherwise it decrements counter.
func (s *AutoScheduler) tick(counter *int, lim int) bool {
	if *counter <= 1 {
		*counter = lim
		return true
	}
	*counter--
	return false
}

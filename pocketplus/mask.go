package pocketplus

// UpdateBuild applies Equation 6 of §4.5: the shadow mask B accumulates
// bits that changed since the last mask replacement.
//
//	t = 0 or newMaskFlag: B <- 0
//	otherwise:            B <- B OR (I_t XOR I_{t-1})
//
// scratch is caller-owned working storage sized like build/input, used
// to avoid allocating the XOR result on every packet.
func UpdateBuild(build, input, prevInput, scratch *BitVector, newMaskFlag bool, t int) {
	if t == 0 || newMaskFlag {
		build.Zero()
		return
	}
	scratch.XORInto(input, prevInput)
	build.ORInto(scratch, build)
}

// UpdateMask applies Equation 7 of §4.5.
//
//	newMaskFlag:     M <- (I_t XOR I_{t-1}) OR B_{t-1}
//	otherwise:       M <- M OR (I_t XOR I_{t-1})
//
// buildPrev must hold B as it was *before* this packet's UpdateBuild
// ran. scratch is caller-owned working storage.
func UpdateMask(mask, input, prevInput, buildPrev, scratch *BitVector, newMaskFlag bool) {
	scratch.XORInto(input, prevInput)
	if newMaskFlag {
		mask.ORInto(scratch, buildPrev)
		return
	}
	mask.ORInto(scratch, mask)
}

// ComputeChange applies Equation 8 of §4.5.
//
//	t = 0: D <- M        (M_{-1} is treated as all-zero)
//	else:  D <- M XOR Mprev
func ComputeChange(change, mask, prevMask *BitVector, t int) {
	if t == 0 {
		change.CopyFrom(mask)
		return
	}
	change.XORInto(mask, prevMask)
}

package mathx

// MapU16 maps x in [inMin,inMax] to [outMin,outMax] with 32-bit intermediates.
// Clamps to out range if input is outside.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax == inMin {
		return outMin
	}
	// Clamp input first to avoid over/underflow in multiply.
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	den := uint32(inMax - inMin)
	return uint16(uint32(outMin) + num/den)
}

// Map8 maps x in [0,top] onto [0,out] with 16-bit intermediates.
// top==0 returns 0. x is clamped to top.
func Map8(x, top, out uint8) uint8 {
	if top == 0 {
		return 0
	}
	if x > top {
		x = top
	}
	return uint8(uint16(x) * uint16(out) / uint16(top))
}

// Scale8 scales v by frac/255 (Map8 with a full-range input).
func Scale8(v, frac uint8) uint8 {
	return uint8(uint16(v) * uint16(frac) / 255)
}

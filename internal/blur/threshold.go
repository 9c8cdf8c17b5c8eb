package blur

// doubleThreshold zeroes every value that is neither strong (> high) nor
// weak (> low) with a strong 8-neighbor. Border samples can only survive as
// strong values.
//
// This is a single pass: a weak value next to another weak value that
// touches a strong one is still dropped. It runs in place; kept values are
// never modified and a value at or below high stays at or below high, so
// neighbors already visited answer the strong test the same way they did
// before the pass.
func doubleThreshold[T Sample](buf []T, w, h, low, high int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := int(buf[i])
			if v > high {
				continue
			}
			interior := x > 0 && x < w-1 && y > 0 && y < h-1
			if !interior || v <= low || !hasStrongNeighbor(buf, i, w, high) {
				buf[i] = 0
			}
		}
	}
}

func hasStrongNeighbor[T Sample](buf []T, i, w, high int) bool {
	for _, j := range [8]int{i - w - 1, i - w, i - w + 1, i - 1, i + 1, i + w - 1, i + w, i + w + 1} {
		if int(buf[j]) > high {
			return true
		}
	}
	return false
}

package blur

// suppress keeps the magnitudes that are strict local maxima along their
// direction, clipped to peak. dst must be zeroed; only interior entries are
// written, so the border stays zero.
func suppress[T Sample](dst []T, dir []Direction, mag []uint32, w, h int, peak uint32) {
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			n := &suppressionNeighbors[dir[i]]
			m := mag[i]

			a := mag[i+n[0].dy*w+n[0].dx]
			b := mag[i+n[1].dy*w+n[1].dx]
			if m > a && m > b {
				dst[i] = T(min(m, peak))
			}
		}
	}
}

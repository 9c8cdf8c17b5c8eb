package blur

// sobel computes gradient magnitudes and quantized directions for the
// interior of the packed plane src. Border entries of mag and dir are left
// as they are; later stages never read them.
func sobel[T Sample](mag []uint32, dir []Direction, src []T, w, h int, p *Profile) {
	for y := 1; y < h-1; y++ {
		up := src[(y-1)*w:]
		mid := src[y*w:]
		down := src[(y+1)*w:]

		for x := 1; x < w-1; x++ {
			tl, tc, tr := int(up[x-1]), int(up[x]), int(up[x+1])
			ml, mr := int(mid[x-1]), int(mid[x+1])
			bl, bc, br := int(down[x-1]), int(down[x]), int(down[x+1])

			gx := (tr - tl) + 2*(mr-ml) + (br - bl)
			gy := (bl - tl) + 2*(bc-tc) + (br - tr)

			mag[y*w+x] = uint32(abs(gx) + abs(gy))
			dir[y*w+x] = classify(gx, gy, p)
		}
	}
}

// classify quantizes the gradient (gx, gy) to a Direction.
//
// Gy/Gx is the tangent of the gradient angle, so instead of dividing, Gy is
// compared against tan(pi/8)*Gx and tan(3pi/8)*Gx in the profile's fixed
// point scale. Negating both components yields the same direction.
func classify(gx, gy int, p *Profile) Direction {
	if gx == 0 {
		return Vertical
	}
	if gx < 0 {
		gx, gy = -gx, -gy
	}
	gy *= p.Scale

	lo := p.TanPi8 * gx
	hi := p.Tan3Pi8 * gx

	switch {
	case gy > -hi && gy < -lo:
		return UpDiagonal
	case gy > -lo && gy < lo:
		return Horizontal
	case gy > lo && gy < hi:
		return DownDiagonal
	}
	return Vertical
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

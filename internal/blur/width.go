package blur

// diagonalScale converts a diagonal step count to an approximate distance
// in pixels (sqrt(2)/2 rounded to the calibrated 0.7).
const diagonalScale = 0.7

// minEdgeWidth is the width at or below which a measurement is noise.
const minEdgeWidth = 0.001

// edgeWidth measures the distance between the two extrema surrounding the
// edge pixel (x, y) of the packed plane src, walking along the unit step of
// d. Each sense stops at the first slope reversal or after radius steps.
// A walk that would leave the plane makes the width 0.
func edgeWidth[T Sample](src []T, x, y int, d Direction, w, h, radius int) float64 {
	step := walkSteps[d]

	// Whether the walk looks for a maximum or a minimum.
	sign := -1
	if src[y*w+x] > src[(y-step.dy)*w+x-step.dx] {
		sign = 1
	}

	var width int

	k := 0
	for ; k < radius; k++ {
		cx, cy := x-k*step.dx, y-k*step.dy
		nx, ny := cx-step.dx, cy-step.dy
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return 0
		}
		if (int(src[cy*w+cx])-int(src[ny*w+nx]))*sign <= 0 {
			break
		}
	}
	width += k

	for k = 0; k < radius; k++ {
		cx, cy := x+k*step.dx, y+k*step.dy
		nx, ny := cx+step.dx, cy+step.dy
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return 0
		}
		if (int(src[cy*w+cx])-int(src[ny*w+nx]))*sign >= 0 {
			break
		}
	}
	width += k

	if d.diagonal() {
		return float64(width) * diagonalScale
	}
	return float64(width)
}

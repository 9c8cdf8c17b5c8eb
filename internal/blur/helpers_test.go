package blur

import "math/rand"

// newFlatPlane returns a packed plane filled with v.
func newFlatPlane[T Sample](width, height int, v T) *Plane[T] {
	p := NewPlane[T](width, height)
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

// newColumnProfilePlane returns a plane whose every row equals profile
// (one value per column).
func newColumnProfilePlane(profile []uint8, height int) *Plane[uint8] {
	p := NewPlane[uint8](len(profile), height)
	for y := 0; y < height; y++ {
		copy(p.Pix[y*p.Stride:], profile)
	}
	return p
}

// stepProfile returns width samples: lo up to and including column at-1,
// mid at column at, hi afterwards.
func stepProfile(width, at int, lo, mid, hi uint8) []uint8 {
	row := make([]uint8, width)
	for x := range row {
		switch {
		case x < at:
			row[x] = lo
		case x == at:
			row[x] = mid
		default:
			row[x] = hi
		}
	}
	return row
}

// softProfile is a wider S-shaped transition centered on column at.
func softProfile(width, at int) []uint8 {
	row := make([]uint8, width)
	for x := range row {
		switch {
		case x < at-1:
			row[x] = 0
		case x == at-1:
			row[x] = 25
		case x == at:
			row[x] = 100
		case x == at+1:
			row[x] = 175
		default:
			row[x] = 200
		}
	}
	return row
}

func newRandomPlane(width, height int, seed int64) *Plane[uint8] {
	rng := rand.New(rand.NewSource(seed))
	p := NewPlane[uint8](width, height)
	for i := range p.Pix {
		p.Pix[i] = uint8(rng.Intn(256))
	}
	return p
}

func mustProfile(depth int) *Profile {
	p, err := NewProfile(depth, DefaultLow, DefaultHigh)
	if err != nil {
		panic(err)
	}
	return &p
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

package blur

import "fmt"

// Profile holds the bit depth dependent constants of the pipeline.
//
// Gradient directions are classified by comparing Gy against Gx scaled by
// tan(pi/8) and tan(3pi/8). To stay in integer arithmetic Gy is multiplied
// by Scale and the tangents are stored pre-multiplied by the same factor.
// Scale shrinks as the bit depth grows so the products fit in 32 bits.
type Profile struct {
	BitDepth int
	Peak     uint32

	// Absolute thresholds derived from the normalized configuration.
	Low  int
	High int

	Scale   int // 1 << (16 - (depth - 8))
	TanPi8  int // round((sqrt(2) - 1) * Scale)
	Tan3Pi8 int // round((sqrt(2) + 1) * Scale)
}

type depthConstants struct {
	peak    uint32
	scale   int
	tanPi8  int
	tan3Pi8 int
}

var depthTable = map[int]depthConstants{
	8:  {peak: 255, scale: 1 << 16, tanPi8: 27146, tan3Pi8: 158218},
	10: {peak: 1023, scale: 1 << 14, tanPi8: 6786, tan3Pi8: 39554},
	12: {peak: 4095, scale: 1 << 12, tanPi8: 1697, tan3Pi8: 9887},
	14: {peak: 16383, scale: 1 << 10, tanPi8: 424, tan3Pi8: 2472},
	16: {peak: 65535, scale: 1 << 8, tanPi8: 106, tan3Pi8: 618},
}

// SupportedBitDepth reports whether depth is one of 8, 10, 12, 14 or 16.
func SupportedBitDepth(depth int) bool {
	_, ok := depthTable[depth]
	return ok
}

// NewProfile builds the profile for a bit depth, scaling the normalized
// thresholds of cfg to absolute sample values.
func NewProfile(depth int, low, high float64) (Profile, error) {
	k, ok := depthTable[depth]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %d (want 8, 10, 12, 14 or 16)", ErrUnsupportedBitDepth, depth)
	}
	return Profile{
		BitDepth: depth,
		Peak:     k.peak,
		Low:      int(low*float64(k.peak) + 0.5),
		High:     int(high*float64(k.peak) + 0.5),
		Scale:    k.scale,
		TanPi8:   k.tanPi8,
		Tan3Pi8:  k.tan3Pi8,
	}, nil
}

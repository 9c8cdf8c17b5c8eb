package blur

import (
	"errors"
	"fmt"
)

// Configuration and input errors. Returned errors wrap one of these so
// callers can test with errors.Is.
var (
	ErrInvalidConfig       = errors.New("invalid blur configuration")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidPlane        = errors.New("invalid plane")
)

// WholePlane is the block dimension sentinel meaning "use the full plane
// width or height".
const WholePlane = -1

// Default parameter values.
const (
	DefaultLow      = 0.05882353 // 15/255
	DefaultHigh     = 0.11764706 // 30/255
	DefaultRadius   = 50
	DefaultBlockPct = 80
)

// Config holds the tunable parameters of the blur pipeline.
type Config struct {
	// Low is the weak edge threshold, normalized to 0..1 of the peak value.
	Low float64 `json:"low"`

	// High is the strong edge threshold, normalized to 0..1 of the peak
	// value. Must be >= Low.
	High float64 `json:"high"`

	// Radius is the maximum number of steps walked in each sense when
	// measuring an edge width (1..100).
	Radius int `json:"radius"`

	// BlockPct is the percentage of the sharpest blocks averaged into the
	// final score (1..100).
	BlockPct int `json:"block_pct"`

	// BlockWidth and BlockHeight set the pooling block size in samples.
	// WholePlane (-1) uses the plane dimension.
	BlockWidth  int `json:"block_width"`
	BlockHeight int `json:"block_height"`
}

// DefaultConfig returns the configuration used when the caller does not
// override anything: a single block covering the plane, 80% pooling.
func DefaultConfig() Config {
	return Config{
		Low:         DefaultLow,
		High:        DefaultHigh,
		Radius:      DefaultRadius,
		BlockPct:    DefaultBlockPct,
		BlockWidth:  WholePlane,
		BlockHeight: WholePlane,
	}
}

// Validate reports the first parameter outside its allowed range.
func (c Config) Validate() error {
	switch {
	case c.Low < 0 || c.Low > 1:
		return fmt.Errorf("%w: low must be between 0.0..1.0, got %g", ErrInvalidConfig, c.Low)
	case c.High < 0 || c.High > 1:
		return fmt.Errorf("%w: high must be between 0.0..1.0, got %g", ErrInvalidConfig, c.High)
	case c.Low > c.High:
		return fmt.Errorf("%w: low (%g) must be less than or equal to high (%g)", ErrInvalidConfig, c.Low, c.High)
	case c.Radius < 1 || c.Radius > 100:
		return fmt.Errorf("%w: radius must be between 1..100, got %d", ErrInvalidConfig, c.Radius)
	case c.BlockPct < 1 || c.BlockPct > 100:
		return fmt.Errorf("%w: block_pct must be between 1..100, got %d", ErrInvalidConfig, c.BlockPct)
	case c.BlockWidth != WholePlane && c.BlockWidth < 1:
		return fmt.Errorf("%w: block_width must be -1 or at least 1, got %d", ErrInvalidConfig, c.BlockWidth)
	case c.BlockHeight != WholePlane && c.BlockHeight < 1:
		return fmt.Errorf("%w: block_height must be -1 or at least 1, got %d", ErrInvalidConfig, c.BlockHeight)
	}
	return nil
}

// blockSize resolves the WholePlane sentinel against a plane size.
func (c Config) blockSize(width, height int) (int, int) {
	bw, bh := c.BlockWidth, c.BlockHeight
	if bw == WholePlane {
		bw = width
	}
	if bh == WholePlane {
		bh = height
	}
	return bw, bh
}

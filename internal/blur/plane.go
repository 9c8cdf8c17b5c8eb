package blur

import "fmt"

// Sample is the storage type of one plane sample.
type Sample interface {
	~uint8 | ~uint16
}

// MinPlaneSize is the smallest width or height the 5x5 smoothing kernel
// can process.
const MinPlaneSize = 5

// Plane is a rectangular grid of samples in row-major order. Row y starts
// at Pix[y*Stride]. The pipeline only reads from a Plane.
type Plane[T Sample] struct {
	Width  int
	Height int
	Stride int
	Pix    []T
}

// NewPlane allocates a zeroed, tightly packed plane.
func NewPlane[T Sample](width, height int) *Plane[T] {
	return &Plane[T]{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]T, width*height),
	}
}

// At returns the sample at column x, row y.
func (p *Plane[T]) At(x, y int) T {
	return p.Pix[y*p.Stride+x]
}

// Set stores v at column x, row y.
func (p *Plane[T]) Set(x, y int, v T) {
	p.Pix[y*p.Stride+x] = v
}

// Validate checks the plane geometry against its buffer.
func (p *Plane[T]) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil plane", ErrInvalidPlane)
	}
	if p.Width < MinPlaneSize || p.Height < MinPlaneSize {
		return fmt.Errorf("%w: %dx%d is smaller than %dx%d",
			ErrInvalidPlane, p.Width, p.Height, MinPlaneSize, MinPlaneSize)
	}
	if p.Stride < p.Width {
		return fmt.Errorf("%w: stride %d is less than width %d", ErrInvalidPlane, p.Stride, p.Width)
	}
	if need := (p.Height-1)*p.Stride + p.Width; len(p.Pix) < need {
		return fmt.Errorf("%w: buffer holds %d samples, need %d", ErrInvalidPlane, len(p.Pix), need)
	}
	return nil
}

// workspace holds the scratch buffers of one pipeline invocation. All
// buffers are packed (stride == width) and share the plane dimensions.
type workspace[T Sample] struct {
	width, height int

	smoothed   []T
	gradients  []uint32
	directions []Direction
	edges      []T
}

func newWorkspace[T Sample](width, height int) *workspace[T] {
	n := width * height
	return &workspace[T]{
		width:      width,
		height:     height,
		smoothed:   make([]T, n),
		gradients:  make([]uint32, n),
		directions: make([]Direction, n),
		edges:      make([]T, n),
	}
}

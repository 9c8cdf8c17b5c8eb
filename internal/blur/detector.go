package blur

// Detector runs the blur pipeline with a fixed configuration and bit depth.
type Detector struct {
	cfg     Config
	profile Profile
}

// NewDetector validates cfg and prepares the constants for bitDepth. All
// configuration errors are reported here; scoring a well-formed plane with
// the returned detector cannot fail.
func NewDetector(cfg Config, bitDepth int) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	profile, err := NewProfile(bitDepth, cfg.Low, cfg.High)
	if err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg, profile: profile}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// Profile returns the bit depth profile.
func (d *Detector) Profile() Profile { return d.profile }

// SamplePlane is a plane of any supported sample type. *Plane[uint8] and
// *Plane[uint16] implement it.
type SamplePlane interface {
	Dimensions() (width, height int)
	analyzeWith(d *Detector) (*PlaneReport, error)
}

// Dimensions returns the plane width and height.
func (p *Plane[T]) Dimensions() (int, int) { return p.Width, p.Height }

func (p *Plane[T]) analyzeWith(d *Detector) (*PlaneReport, error) {
	return Analyze(d, p)
}

// Analyze runs the pipeline on p, picking the implementation for its
// sample type.
func (d *Detector) Analyze(p SamplePlane) (*PlaneReport, error) {
	return p.analyzeWith(d)
}

// Score returns the blur score of p. The only possible error is a
// malformed plane.
func Score[T Sample](d *Detector, p *Plane[T]) (float64, error) {
	r, err := Analyze(d, p)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// Analyze runs the full pipeline on p and returns the score with the block
// statistics behind it.
func Analyze[T Sample](d *Detector, p *Plane[T]) (*PlaneReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	w, h := p.Width, p.Height
	ws := newWorkspace[T](w, h)

	smooth(ws.smoothed, p)
	sobel(ws.gradients, ws.directions, ws.smoothed, w, h, &d.profile)
	suppress(ws.edges, ws.directions, ws.gradients, w, h, d.profile.Peak)
	doubleThreshold(ws.edges, w, h, d.profile.Low, d.profile.High)

	return aggregate(ws, &d.cfg), nil
}

package imaging

import (
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/blur-detect-mcp/internal/blur"
)

// Options controls how an image is turned into planes and scored.
type Options struct {
	// Config is the blur pipeline configuration.
	Config blur.Config

	// Mode selects native planes, a luma plane, or a lightness plane.
	Mode Mode

	// BitDepth overrides the sample depth (0 = storage depth).
	BitDepth int

	// Planes lists the plane indices to score; empty scores all of them.
	Planes []int
}

// DefaultOptions scores every native plane with the default configuration.
func DefaultOptions() Options {
	return Options{Config: blur.DefaultConfig(), Mode: ModeNative}
}

// PlaneScore is the blur result for one plane.
type PlaneScore struct {
	// Plane is the channel name (y, u, v, r, g, b, a or l).
	Plane string `json:"plane"`

	// Index is the plane position within the image.
	Index int `json:"index"`

	// Property is the metadata key, e.g. "blurriness_y".
	Property string `json:"property"`

	// Score is the mean edge width in pixels of the sharpest blocks. Higher
	// is blurrier; 0 means no usable edges.
	Score float64 `json:"score"`

	Width            int `json:"width"`
	Height           int `json:"height"`
	Blocks           int `json:"blocks"`
	QualifyingBlocks int `json:"qualifying_blocks"`
	PooledBlocks     int `json:"pooled_blocks"`
	EdgePixels       int `json:"edge_pixels"`
}

// BlurReport contains the blur scores of every selected plane of an image.
type BlurReport struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Family   Family      `json:"family"`
	BitDepth int         `json:"bit_depth"`
	Config   blur.Config `json:"config"`

	// Planes holds one entry per selected plane in index order.
	Planes []PlaneScore `json:"planes"`

	// Properties maps each property name to its score, the form a video
	// pipeline would attach to frame metadata.
	Properties map[string]float64 `json:"properties"`
}

// job is a validated analysis: the detector, the planes to score and their
// indices.
type job struct {
	set      *PlaneSet
	detector *blur.Detector
	planes   []NamedPlane
	indices  []int
}

// prepare performs every check that can reject an analysis, so that no
// plane is scored unless all of them can be.
func prepare(img image.Image, opts Options) (*job, error) {
	set, err := ExtractPlanes(img, opts.Mode, opts.BitDepth)
	if err != nil {
		return nil, err
	}

	detector, err := blur.NewDetector(opts.Config, set.BitDepth)
	if err != nil {
		return nil, err
	}

	selected, err := SelectPlanes(opts.Planes, len(set.Planes))
	if err != nil {
		return nil, err
	}

	j := &job{set: set, detector: detector}
	for i, ok := range selected {
		if !ok {
			continue
		}
		p := set.Planes[i]
		if w, h := p.Plane.Dimensions(); w < blur.MinPlaneSize || h < blur.MinPlaneSize {
			return nil, fmt.Errorf("%w: plane %s is %dx%d, need at least %dx%d",
				ErrIncompatibleFormat, p.Name, w, h, blur.MinPlaneSize, blur.MinPlaneSize)
		}
		j.planes = append(j.planes, p)
		j.indices = append(j.indices, i)
	}
	return j, nil
}

// run scores the job's planes concurrently. Each plane is an independent
// pipeline invocation with its own buffers.
func (j *job) run() ([]*blur.PlaneReport, error) {
	reports := make([]*blur.PlaneReport, len(j.planes))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range j.planes {
		i, p := i, p
		g.Go(func() error {
			r, err := j.detector.Analyze(p.Plane)
			if err != nil {
				return fmt.Errorf("plane %s: %w", p.Name, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// AnalyzeImage scores the selected planes of img.
//
// All configuration problems (bad parameters, unsupported bit depth, plane
// selection, planes too small) are reported before any plane is processed.
func AnalyzeImage(img image.Image, opts Options) (*BlurReport, error) {
	j, err := prepare(img, opts)
	if err != nil {
		return nil, err
	}
	reports, err := j.run()
	if err != nil {
		return nil, err
	}

	report := &BlurReport{
		Width:      j.set.Width,
		Height:     j.set.Height,
		Family:     j.set.Family,
		BitDepth:   j.set.BitDepth,
		Config:     opts.Config,
		Planes:     make([]PlaneScore, len(reports)),
		Properties: make(map[string]float64, len(reports)),
	}
	for i, r := range reports {
		p := j.planes[i]
		report.Planes[i] = PlaneScore{
			Plane:            p.Name,
			Index:            j.indices[i],
			Property:         p.Property(),
			Score:            r.Score,
			Width:            r.Width,
			Height:           r.Height,
			Blocks:           r.Blocks,
			QualifyingBlocks: r.QualifyingBlocks,
			PooledBlocks:     r.PooledBlocks,
			EdgePixels:       r.EdgePixels,
		}
		report.Properties[p.Property()] = r.Score
	}
	return report, nil
}

// BlockMapResult is the per-block edge width grid of one plane.
type BlockMapResult struct {
	Plane    string  `json:"plane"`
	Property string  `json:"property"`
	Score    float64 `json:"score"`

	// BlockWidth and BlockHeight are in plane samples. Chroma planes of
	// subsampled images have fewer samples than the image has pixels.
	BlockWidth  int `json:"block_width"`
	BlockHeight int `json:"block_height"`
	Columns     int `json:"columns"`
	Rows        int `json:"rows"`

	// Widths is indexed [row][column]; 0 marks blocks without enough
	// edges to be scored.
	Widths [][]float64 `json:"widths"`

	// Sharpest and Blurriest locate the qualifying blocks with the lowest
	// and highest average width. Nil when no block qualified.
	Sharpest  *BlockRef `json:"sharpest,omitempty"`
	Blurriest *BlockRef `json:"blurriest,omitempty"`
}

// BlockRef locates one block and the image pixels it covers.
type BlockRef struct {
	Column int     `json:"column"`
	Row    int     `json:"row"`
	Width  float64 `json:"width"`

	// Region is in image pixels, scaled up by the subsampling factor for
	// chroma planes and clipped to the image.
	Region Region `json:"region"`
}

// BlockMap scores one plane of img and returns its block grid. Use a block
// size smaller than the plane to see where an image is sharp or soft.
//
// A block dimension larger than the selected plane is reduced to the whole
// plane, so the map always has at least one block.
func BlockMap(img image.Image, plane int, opts Options) (*BlockMapResult, error) {
	opts.Planes = []int{plane}
	j, err := prepare(img, opts)
	if err != nil {
		return nil, err
	}

	p := j.planes[0]
	pw, ph := p.Plane.Dimensions()
	cfg := opts.Config
	if cfg.BlockWidth > pw || cfg.BlockHeight > ph {
		if cfg.BlockWidth > pw {
			cfg.BlockWidth = blur.WholePlane
		}
		if cfg.BlockHeight > ph {
			cfg.BlockHeight = blur.WholePlane
		}
		if j.detector, err = blur.NewDetector(cfg, j.set.BitDepth); err != nil {
			return nil, err
		}
	}

	reports, err := j.run()
	if err != nil {
		return nil, err
	}

	r := reports[0]
	bw, bh := cfg.BlockWidth, cfg.BlockHeight
	if bw == blur.WholePlane {
		bw = pw
	}
	if bh == blur.WholePlane {
		bh = ph
	}

	// Plane to image scale: 1 for full resolution planes, the subsampling
	// factor for chroma.
	sx := (j.set.Width + pw - 1) / pw
	sy := (j.set.Height + ph - 1) / ph
	origin := img.Bounds().Min

	result := &BlockMapResult{
		Plane:       p.Name,
		Property:    p.Property(),
		Score:       r.Score,
		BlockWidth:  bw,
		BlockHeight: bh,
		Columns:     r.Columns,
		Rows:        r.Rows,
		Widths:      make([][]float64, r.Rows),
	}
	for row := 0; row < r.Rows; row++ {
		result.Widths[row] = r.BlockMap[row*r.Columns : (row+1)*r.Columns]
		for col, v := range result.Widths[row] {
			if v == 0 {
				continue
			}
			ref := &BlockRef{
				Column: col,
				Row:    row,
				Width:  v,
				Region: Region{
					X1: origin.X + col*bw*sx,
					Y1: origin.Y + row*bh*sy,
					X2: origin.X + min((col+1)*bw*sx, j.set.Width),
					Y2: origin.Y + min((row+1)*bh*sy, j.set.Height),
				},
			}
			if result.Sharpest == nil || v < result.Sharpest.Width {
				result.Sharpest = ref
			}
			if result.Blurriest == nil || v > result.Blurriest.Width {
				result.Blurriest = ref
			}
		}
	}
	return result, nil
}

package blur

import "slices"

// minBlockWidthSum is the summed edge width below which a block counts as
// smooth content and is left out of pooling.
const minBlockWidthSum = 2

// PlaneReport is the result of running the pipeline on one plane.
type PlaneReport struct {
	// Score is the mean edge width of the pooled blocks, 0 when no block
	// carried enough edge content.
	Score float64 `json:"score"`

	// Width and Height of the analyzed plane.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Columns and Rows of the block grid. Samples right of or below the
	// last full block are not pooled.
	Columns int `json:"columns"`
	Rows    int `json:"rows"`

	// Blocks is Columns*Rows.
	Blocks int `json:"blocks"`

	// QualifyingBlocks passed the edge content check.
	QualifyingBlocks int `json:"qualifying_blocks"`

	// PooledBlocks is the number of sharpest blocks averaged into Score.
	PooledBlocks int `json:"pooled_blocks"`

	// EdgePixels counts the edge pixels with a usable width.
	EdgePixels int `json:"edge_pixels"`

	// BlockMap holds the average edge width of every block in row-major
	// order, 0 for blocks that did not qualify.
	BlockMap []float64 `json:"block_map"`
}

// aggregate measures every surviving edge pixel, averages widths per block
// and pools the sharpest blocks into the report score.
func aggregate[T Sample](ws *workspace[T], cfg *Config) *PlaneReport {
	w, h := ws.width, ws.height
	bw, bh := cfg.blockSize(w, h)
	cols, rows := w/bw, h/bh

	report := &PlaneReport{
		Width:    w,
		Height:   h,
		Columns:  cols,
		Rows:     rows,
		Blocks:   cols * rows,
		BlockMap: make([]float64, cols*rows),
	}

	averages := make([]float64, 0, cols*rows)
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			var total float64
			count := 0

			for y := by * bh; y < (by+1)*bh; y++ {
				for x := bx * bw; x < (bx+1)*bw; x++ {
					i := y*w + x
					if ws.edges[i] == 0 {
						continue
					}
					ew := edgeWidth(ws.smoothed, x, y, ws.directions[i], w, h, cfg.Radius)
					if ew > minEdgeWidth {
						count++
						total += ew
					}
				}
			}

			report.EdgePixels += count
			if count == 0 || total < minBlockWidthSum {
				continue
			}
			avg := total / float64(count)
			averages = append(averages, avg)
			report.BlockMap[by*cols+bx] = avg
		}
	}

	report.QualifyingBlocks = len(averages)
	report.Score, report.PooledBlocks = poolBlocks(averages, cfg.BlockPct)
	return report
}

// poolBlocks sorts the block averages ascending (sharpest first) and
// returns the mean of the first ceil(len*pct/100) of them along with how
// many were used. It reorders averages.
func poolBlocks(averages []float64, pct int) (float64, int) {
	slices.Sort(averages)

	keep := (len(averages)*pct + 99) / 100
	if keep == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range averages[:keep] {
		sum += v
	}
	return sum / float64(keep), keep
}

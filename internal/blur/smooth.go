package blur

// gaussian5x5 is the smoothing kernel, sigma ~= 1.4. Weights sum to 159.
var gaussian5x5 = [5][5]int{
	{2, 4, 5, 4, 2},
	{4, 9, 12, 9, 4},
	{5, 12, 15, 12, 5},
	{4, 9, 12, 9, 4},
	{2, 4, 5, 4, 2},
}

const gaussianSum = 159

// smooth writes the Gaussian filtered src into dst (packed, src dimensions).
// The two outermost rows and columns are copied unchanged.
func smooth[T Sample](dst []T, src *Plane[T]) {
	w, h, stride := src.Width, src.Height, src.Stride

	for y := 0; y < h; y++ {
		row := src.Pix[y*stride : y*stride+w]
		out := dst[y*w : y*w+w]

		if y < 2 || y >= h-2 {
			copy(out, row)
			continue
		}

		out[0], out[1] = row[0], row[1]
		out[w-2], out[w-1] = row[w-2], row[w-1]

		for x := 2; x < w-2; x++ {
			sum := 0
			for ky := 0; ky < 5; ky++ {
				base := (y+ky-2)*stride + x - 2
				k := &gaussian5x5[ky]
				for kx := 0; kx < 5; kx++ {
					sum += k[kx] * int(src.Pix[base+kx])
				}
			}
			out[x] = T(sum / gaussianSum)
		}
	}
}

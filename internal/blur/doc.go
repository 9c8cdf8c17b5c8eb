// Package blur estimates how blurry an image plane is from the width of its
// edges.
//
// The estimate is produced by a five stage pipeline that runs over every
// sample of the plane:
//
//  1. Smoothing: 5x5 Gaussian kernel (weights sum to 159) to reduce noise.
//     The two outermost rows and columns are copied through unchanged.
//
//  2. Gradients: 3x3 Sobel operators. The magnitude is |Gx| + |Gy| and the
//     direction is quantized to one of four orientations with fixed-point
//     tangent comparisons, so no floating point is used per pixel.
//
//  3. Non-maximum suppression: a magnitude survives only when it is strictly
//     greater than both neighbors along its direction. Survivors are clipped
//     to the peak sample value.
//
//  4. Double threshold: values above the high threshold are kept; values
//     above the low threshold are kept only when one of the 8 immediate
//     neighbors is above the high threshold. There is no chain following.
//
//  5. Edge width: for each surviving pixel the smoothed plane is walked in
//     both senses along the quantized direction until the slope reverses.
//     Widths are averaged per block, low-content blocks are dropped, and the
//     sharpest block_pct percent of blocks are averaged into the score.
//
// # Score Interpretation
//
// The score is an edge width in pixels. Larger values mean softer edges.
// A score of 0 means no usable edge signal was found (a flat plane, or a
// plane whose blocks all failed the content check); it is not an error.
//
// # Sample Types
//
// Planes are generic over the sample storage type: uint8 for 8-bit content
// and uint16 for 10, 12, 14 and 16-bit content. The storage type is chosen
// once per plane; [Detector.Analyze] dispatches on it at run time.
//
// # Thread Safety
//
// A [Detector] is immutable after [NewDetector] returns and may be shared by
// any number of goroutines. Each call allocates and owns its scratch
// buffers, so different planes and images can be scored concurrently
// without locking.
package blur

// Package imaging connects decoded images to the blur pipeline.
//
// It loads and caches image files, splits images into the planes the blur
// detector scores, selects planes, and runs the detector over whole images,
// regions, block grids and synthetic blur sweeps. Coordinates follow the
// image package: (0,0) is the top-left corner, X grows rightward and Y grows
// downward. Regions are inclusive at (X1,Y1) and exclusive at (X2,Y2).
//
// # Planes
//
// In native mode an image is scored per stored channel:
//   - YCbCr (JPEG): y, u, v, plus a for NYCbCrA with transparency. Chroma
//     planes keep their subsampled size.
//   - Gray and Gray16: y.
//   - Everything else: r, g, b, plus a when the image is not opaque.
//
// Luma mode scores one BT.601 luma plane and lightness mode one CIE L*
// plane. Each plane's score is reported under "blurriness_<name>".
//
// # Bit Depth
//
// 8-bit images are scored at 8 bits. 16-bit images (PNG-16, Gray16) default
// to 16 bits and may be scored at 10, 12 or 14 bits when the content was
// captured at that depth; samples are shifted down accordingly.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Analysis functions are stateless;
// the planes of one image are scored in parallel.
//
// # Error Handling
//
// Every configuration problem (parameters out of range, bit depth not
// compatible with the image, plane index out of range or repeated, planes
// smaller than 5x5, regions outside the image) is returned before any plane
// is scored. Once scoring starts it cannot fail.
package imaging

package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/blur-detect-mcp/internal/blur"
)

// ErrIncompatibleFormat is returned when an image cannot be split into
// planes at the requested bit depth or mode.
var ErrIncompatibleFormat = errors.New("incompatible plane format")

// Mode selects how an image is split into planes.
type Mode string

const (
	// ModeNative uses the planes the image is stored in: Y/Cb/Cr for YCbCr
	// images, R/G/B for everything else, plus alpha when it is not opaque.
	ModeNative Mode = "native"

	// ModeLuma scores a single BT.601 luma plane.
	ModeLuma Mode = "luma"

	// ModeLightness scores a single CIE L* plane at 16-bit precision.
	ModeLightness Mode = "lightness"
)

// Family names the color model of a PlaneSet.
type Family string

const (
	FamilyYUV       Family = "yuv"
	FamilyRGB       Family = "rgb"
	FamilyGray      Family = "gray"
	FamilyLightness Family = "lightness"
)

// NamedPlane is one plane of an image with its semantic channel name.
type NamedPlane struct {
	// Name is the channel: y, u, v, r, g, b, a or l.
	Name string

	// Plane holds the samples, either *blur.Plane[uint8] or
	// *blur.Plane[uint16].
	Plane blur.SamplePlane
}

// Property returns the metadata key the plane's score is reported under,
// e.g. "blurriness_y".
func (p NamedPlane) Property() string {
	return "blurriness_" + p.Name
}

// PlaneSet is an image split into planes sharing one bit depth.
type PlaneSet struct {
	Family   Family
	BitDepth int
	Width    int
	Height   int
	Planes   []NamedPlane
}

// Names returns the plane names in index order.
func (s *PlaneSet) Names() []string {
	names := make([]string, len(s.Planes))
	for i, p := range s.Planes {
		names[i] = p.Name
	}
	return names
}

// ExtractPlanes splits img into planes for scoring.
//
// bitDepth 0 keeps the storage depth (8 or 16). Images stored with 8-bit
// samples only accept 8. Images stored with 16-bit samples accept 10, 12,
// 14 and 16; samples are shifted right so the most significant bits are
// kept. Other combinations return ErrIncompatibleFormat.
//
// 8-bit YCbCr and Gray planes reference the image buffers directly and must
// not outlive modifications to the image.
func ExtractPlanes(img image.Image, mode Mode, bitDepth int) (*PlaneSet, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrIncompatibleFormat)
	}

	var (
		set *PlaneSet
		err error
	)
	switch mode {
	case ModeNative, "":
		set, err = nativePlanes(img, bitDepth)
	case ModeLuma:
		set, err = lumaPlanes(img, bitDepth)
	case ModeLightness:
		set, err = lightnessPlanes(img, bitDepth)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q (want native, luma or lightness)", ErrIncompatibleFormat, mode)
	}
	if err != nil {
		return nil, err
	}

	set.Width, set.Height = b.Dx(), b.Dy()
	return set, nil
}

// resolveDepth checks the requested depth against the storage width and
// returns the effective depth.
func resolveDepth(storageBits, requested int) (int, error) {
	if requested == 0 {
		return storageBits, nil
	}
	if !blur.SupportedBitDepth(requested) {
		return 0, fmt.Errorf("%w: bit depth %d is not one of 8, 10, 12, 14, 16", ErrIncompatibleFormat, requested)
	}
	if storageBits == 8 && requested != 8 {
		return 0, fmt.Errorf("%w: 8-bit image cannot be scored at %d bits", ErrIncompatibleFormat, requested)
	}
	if storageBits == 16 && requested == 8 {
		return 0, fmt.Errorf("%w: 16-bit image must be scored at 10, 12, 14 or 16 bits", ErrIncompatibleFormat)
	}
	return requested, nil
}

func nativePlanes(img image.Image, bitDepth int) (*PlaneSet, error) {
	switch m := img.(type) {
	case *image.NYCbCrA:
		depth, err := resolveDepth(8, bitDepth)
		if err != nil {
			return nil, err
		}
		planes := yuvPlanes(&m.YCbCr)
		if !m.Opaque() {
			r := m.Rect
			planes = append(planes, NamedPlane{Name: "a", Plane: &blur.Plane[uint8]{
				Width: r.Dx(), Height: r.Dy(), Stride: m.AStride,
				Pix: m.A[m.AOffset(r.Min.X, r.Min.Y):],
			}})
		}
		return &PlaneSet{Family: FamilyYUV, BitDepth: depth, Planes: planes}, nil

	case *image.YCbCr:
		depth, err := resolveDepth(8, bitDepth)
		if err != nil {
			return nil, err
		}
		return &PlaneSet{Family: FamilyYUV, BitDepth: depth, Planes: yuvPlanes(m)}, nil

	case *image.Gray:
		depth, err := resolveDepth(8, bitDepth)
		if err != nil {
			return nil, err
		}
		r := m.Rect
		y := &blur.Plane[uint8]{
			Width: r.Dx(), Height: r.Dy(), Stride: m.Stride,
			Pix: m.Pix[m.PixOffset(r.Min.X, r.Min.Y):],
		}
		return &PlaneSet{Family: FamilyGray, BitDepth: depth, Planes: []NamedPlane{{Name: "y", Plane: y}}}, nil

	case *image.Gray16:
		depth, err := resolveDepth(16, bitDepth)
		if err != nil {
			return nil, err
		}
		planes := deinterleave16(m.Pix[m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y):], m.Stride, m.Rect.Dx(), m.Rect.Dy(), 1, 1, depth)
		return &PlaneSet{Family: FamilyGray, BitDepth: depth, Planes: []NamedPlane{{Name: "y", Plane: planes[0]}}}, nil

	case *image.RGBA64:
		return rgb16Planes(m.Pix[m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y):], m.Stride, m.Rect, m.Opaque(), bitDepth)

	case *image.NRGBA64:
		return rgb16Planes(m.Pix[m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y):], m.Stride, m.Rect, m.Opaque(), bitDepth)

	case *image.NRGBA:
		return rgb8Planes(m.Pix[m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y):], m.Stride, m.Rect, m.Opaque(), bitDepth)

	case *image.RGBA:
		return rgb8Planes(m.Pix[m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y):], m.Stride, m.Rect, m.Opaque(), bitDepth)
	}

	// Paletted, CMYK and custom types.
	rgba := clone.AsRGBA(img)
	return rgb8Planes(rgba.Pix, rgba.Stride, rgba.Rect, rgba.Opaque(), bitDepth)
}

func rgb8Planes(pix []uint8, stride int, r image.Rectangle, opaque bool, bitDepth int) (*PlaneSet, error) {
	depth, err := resolveDepth(8, bitDepth)
	if err != nil {
		return nil, err
	}
	count := 4
	if opaque {
		count = 3
	}
	planes := deinterleave8(pix, stride, r.Dx(), r.Dy(), 4, count)
	return &PlaneSet{Family: FamilyRGB, BitDepth: depth, Planes: namePlanes(planes, "r", "g", "b", "a")}, nil
}

func rgb16Planes(pix []uint8, stride int, r image.Rectangle, opaque bool, bitDepth int) (*PlaneSet, error) {
	depth, err := resolveDepth(16, bitDepth)
	if err != nil {
		return nil, err
	}
	count := 4
	if opaque {
		count = 3
	}
	planes := deinterleave16(pix, stride, r.Dx(), r.Dy(), 4, count, depth)
	return &PlaneSet{Family: FamilyRGB, BitDepth: depth, Planes: namePlanes(planes, "r", "g", "b", "a")}, nil
}

func lumaPlanes(img image.Image, bitDepth int) (*PlaneSet, error) {
	depth, err := resolveDepth(8, bitDepth)
	if err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	planes := deinterleave8(gray.Pix, gray.Stride, gray.Rect.Dx(), gray.Rect.Dy(), 4, 1)
	return &PlaneSet{Family: FamilyGray, BitDepth: depth, Planes: namePlanes(planes, "y")}, nil
}

func lightnessPlanes(img image.Image, bitDepth int) (*PlaneSet, error) {
	depth, err := resolveDepth(16, bitDepth)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	shift := 16 - depth
	l := blur.NewPlane[uint16](b.Dx(), b.Dy())

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				continue // fully transparent
			}
			lightness, _, _ := c.Lab()
			v := math.Round(math.Max(0, math.Min(1, lightness)) * 65535)
			l.Set(x, y, uint16(v)>>shift)
		}
	}
	return &PlaneSet{Family: FamilyLightness, BitDepth: depth, Planes: []NamedPlane{{Name: "l", Plane: l}}}, nil
}

// yuvPlanes references the Y, Cb and Cr buffers of m. Chroma planes have
// the subsampled dimensions.
func yuvPlanes(m *image.YCbCr) []NamedPlane {
	r := m.Rect
	c := chromaBounds(r, m.SubsampleRatio)
	coff := m.COffset(r.Min.X, r.Min.Y)

	return []NamedPlane{
		{Name: "y", Plane: &blur.Plane[uint8]{
			Width: r.Dx(), Height: r.Dy(), Stride: m.YStride,
			Pix: m.Y[m.YOffset(r.Min.X, r.Min.Y):],
		}},
		{Name: "u", Plane: &blur.Plane[uint8]{
			Width: c.Dx(), Height: c.Dy(), Stride: m.CStride, Pix: m.Cb[coff:],
		}},
		{Name: "v", Plane: &blur.Plane[uint8]{
			Width: c.Dx(), Height: c.Dy(), Stride: m.CStride, Pix: m.Cr[coff:],
		}},
	}
}

// chromaBounds returns the rectangle covered by the chroma samples of a
// YCbCr image with luma bounds r.
func chromaBounds(r image.Rectangle, ratio image.YCbCrSubsampleRatio) image.Rectangle {
	switch ratio {
	case image.YCbCrSubsampleRatio422:
		return image.Rect(r.Min.X/2, r.Min.Y, (r.Max.X+1)/2, r.Max.Y)
	case image.YCbCrSubsampleRatio420:
		return image.Rect(r.Min.X/2, r.Min.Y/2, (r.Max.X+1)/2, (r.Max.Y+1)/2)
	case image.YCbCrSubsampleRatio440:
		return image.Rect(r.Min.X, r.Min.Y/2, r.Max.X, (r.Max.Y+1)/2)
	case image.YCbCrSubsampleRatio411:
		return image.Rect(r.Min.X/4, r.Min.Y, (r.Max.X+3)/4, r.Max.Y)
	case image.YCbCrSubsampleRatio410:
		return image.Rect(r.Min.X/4, r.Min.Y/2, (r.Max.X+3)/4, (r.Max.Y+1)/2)
	}
	return r
}

// deinterleave8 copies the first count channels of an interleaved 8-bit
// buffer with the given channel count into separate planes.
func deinterleave8(pix []uint8, stride, w, h, channels, count int) []blur.SamplePlane {
	planes := make([]*blur.Plane[uint8], count)
	for c := range planes {
		planes[c] = blur.NewPlane[uint8](w, h)
	}
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			for c, p := range planes {
				p.Pix[y*w+x] = row[x*channels+c]
			}
		}
	}

	out := make([]blur.SamplePlane, count)
	for i, p := range planes {
		out[i] = p
	}
	return out
}

// deinterleave16 is deinterleave8 for big-endian 16-bit samples, shifting
// each sample down to depth bits.
func deinterleave16(pix []uint8, stride, w, h, channels, count, depth int) []blur.SamplePlane {
	shift := 16 - depth
	planes := make([]*blur.Plane[uint16], count)
	for c := range planes {
		planes[c] = blur.NewPlane[uint16](w, h)
	}
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			for c, p := range planes {
				i := (x*channels + c) * 2
				v := uint16(row[i])<<8 | uint16(row[i+1])
				p.Pix[y*w+x] = v >> shift
			}
		}
	}

	out := make([]blur.SamplePlane, count)
	for i, p := range planes {
		out[i] = p
	}
	return out
}

func namePlanes(planes []blur.SamplePlane, names ...string) []NamedPlane {
	out := make([]NamedPlane, len(planes))
	for i, p := range planes {
		out[i] = NamedPlane{Name: names[i], Plane: p}
	}
	return out
}

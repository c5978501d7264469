package gghud

import (
	"image"
	"image/color"
)

// BytesPerPixel is the size of one SurfaceFormat pixel.
const BytesPerPixel = 4

// Surface is a CPU-addressable view of an overlay pixel buffer.
//
// Pixels are packed 32-bit ARGB words (SurfaceFormat) with straight,
// non-premultiplied alpha, top-left origin and no row padding. Surface
// implements draw.Image so any Go image code can paint into it.
//
// A Surface obtained from a PixelLock aliases mapped GPU memory and must
// not be used after the lock is released.
type Surface struct {
	// Pix holds the pixels as B, G, R, A bytes.
	Pix []byte
	// Stride is the byte distance between vertically adjacent pixels.
	Stride int
	// Rect is the surface bounds; Min is always (0, 0).
	Rect image.Rectangle
}

// NewSurface allocates a zero-filled surface of the given size.
func NewSurface(width, height int) *Surface {
	width, height = max(0, width), max(0, height)
	return &Surface{
		Pix:    make([]byte, width*height*BytesPerPixel),
		Stride: width * BytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// surfaceFrom wraps pix without copying. Returns nil if pix is too small.
func surfaceFrom(pix []byte, width, height int) *Surface {
	if width <= 0 || height <= 0 {
		return nil
	}
	n := width * height * BytesPerPixel
	if len(pix) < n {
		return nil
	}
	return &Surface{
		Pix:    pix[:n:n],
		Stride: width * BytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.Rect.Dy() }

// Clear fills the surface with fully transparent pixels.
func (s *Surface) Clear() {
	clear(s.Pix)
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle { return s.Rect }

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (s *Surface) PixOffset(x, y int) int {
	return (y-s.Rect.Min.Y)*s.Stride + (x-s.Rect.Min.X)*BytesPerPixel
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	return s.NRGBAAt(x, y)
}

// NRGBAAt returns the straight-alpha color of pixel (x, y).
func (s *Surface) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(s.Rect)) {
		return color.NRGBA{}
	}
	i := s.PixOffset(x, y)
	p := s.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
}

// ARGB returns pixel (x, y) as a packed 0xAARRGGBB word.
func (s *Surface) ARGB(x, y int) uint32 {
	c := s.NRGBAAt(x, y)
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Set implements draw.Image.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetNRGBA(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}

// SetNRGBA stores a straight-alpha color at (x, y).
func (s *Surface) SetNRGBA(x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(s.Rect)) {
		return
	}
	i := s.PixOffset(x, y)
	p := s.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
}

// Opaque reports whether every pixel is fully opaque.
func (s *Surface) Opaque() bool {
	for i := 3; i < len(s.Pix); i += BytesPerPixel {
		if s.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package softhost is an in-memory gghud host.
//
// Textures live in CPU memory and overlays are composited onto any
// draw.Image with Composite. It backs headless rendering and tests.
//
//	host := softhost.New(1280, 720)
//	sys := gghud.NewSystem()
//	sys.Attach(host)
//	...
//	sys.Render(indicator)
//	host.Composite(frame)
package softhost

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/backend/internal/store"
)

// ErrUnsupportedFormat is returned for texture formats other than
// gghud.SurfaceFormat.
var ErrUnsupportedFormat = errors.New("softhost: unsupported texture format")

// Host is a software gghud.Host with a fixed-size viewport.
//
// Host is not safe for concurrent use.
type Host struct {
	store    *store.Store
	width    int
	height   int
	prepared int
}

// New creates a host whose viewport is width×height pixels.
func New(width, height int) *Host {
	h := &Host{width: max(0, width), height: max(0, height)}
	h.store = store.New(h.newTexture)
	return h
}

// PrepareOverlays implements gghud.Host.
func (h *Host) PrepareOverlays() { h.prepared++ }

// Prepared returns how many times PrepareOverlays was called.
func (h *Host) Prepared() int { return h.prepared }

// ActiveViewport implements gghud.Host.
func (h *Host) ActiveViewport() gghud.Viewport { return h }

// Backend implements gghud.Host.
func (h *Host) Backend() gghud.Backend { return h.store }

// PixelSize implements gghud.Viewport.
func (h *Host) PixelSize() (width, height int) { return h.width, h.height }

// SetViewportSize resizes the viewport. The overlay picks the new size up
// on its next geometry update.
func (h *Host) SetViewportSize(width, height int) {
	h.width, h.height = max(0, width), max(0, height)
}

// Counts returns the number of live overlays, panels, materials and
// textures.
func (h *Host) Counts() (overlays, panels, materials, textures int) {
	return h.store.Counts()
}

// Composite draws every visible overlay over dst, scaled to its panel
// rectangle. Textures are sampled as of their last Unmap, so a buffer that
// is mapped right now shows its previous frame.
func (h *Host) Composite(dst draw.Image) {
	for _, l := range h.store.Layers(h.width, h.height) {
		t, ok := l.Texture.(*texture)
		if !ok || t.front == nil {
			continue
		}
		op := xdraw.Over
		if l.Blend == gghud.BlendReplace {
			op = xdraw.Src
		}
		src := t.front
		r := l.Rect.Add(dst.Bounds().Min)
		if r.Size() == src.Bounds().Size() {
			xdraw.Copy(dst, r.Min, src, src.Bounds(), op, nil)
			continue
		}
		xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), op, nil)
	}
}

// Frame allocates a viewport-sized image, fills it with background and
// composites the overlays onto it.
func (h *Host) Frame(background image.Image) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	if background != nil {
		xdraw.Copy(frame, image.Point{}, background, background.Bounds(), xdraw.Src, nil)
	}
	h.Composite(frame)
	return frame
}

// Close removes every resource.
func (h *Host) Close() { h.store.Close() }

func (h *Host) newTexture(name string, width, height int, format gputypes.TextureFormat) (gghud.Texture, error) {
	if format != gghud.SurfaceFormat {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("softhost: texture %s: invalid size %dx%d", name, width, height)
	}
	return &texture{
		name:   name,
		width:  width,
		height: height,
		back:   make([]byte, width*height*gghud.BytesPerPixel),
	}, nil
}

// texture is a CPU texture with a write buffer and a committed copy.
type texture struct {
	name   string
	width  int
	height int

	back    []byte
	mapped  bool
	front   *gghud.Surface
	commits int
}

func (t *texture) Name() string              { return t.name }
func (t *texture) Width() int                { return t.width }
func (t *texture) Height() int               { return t.height }
func (t *texture) Buffer() gghud.PixelBuffer { return t }

// Map returns the write buffer, or nil while it is already mapped.
func (t *texture) Map() []byte {
	if t.mapped || t.back == nil {
		return nil
	}
	t.mapped = true
	return t.back
}

// Unmap commits the write buffer.
func (t *texture) Unmap() {
	if !t.mapped {
		return
	}
	t.mapped = false
	if t.front == nil {
		t.front = gghud.NewSurface(t.width, t.height)
	}
	copy(t.front.Pix, t.back)
	t.commits++
}

// Destroy releases the pixel memory.
func (t *texture) Destroy() {
	t.back, t.front, t.mapped = nil, nil, false
}

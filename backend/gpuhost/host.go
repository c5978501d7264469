// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuhost

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/backend/internal/store"
)

// Errors returned by Host.
var (
	// ErrUnsupportedFormat is returned for texture formats other than
	// gghud.SurfaceFormat.
	ErrUnsupportedFormat = errors.New("gpuhost: unsupported texture format")

	// ErrNoTextureCreator is returned by Draw when the drawer has no
	// texture creator.
	ErrNoTextureCreator = errors.New("gpuhost: drawer has no texture creator")

	// ErrClosed is returned by Draw after Close.
	ErrClosed = errors.New("gpuhost: host is closed")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Host is a gghud.Host drawing overlays through a gpucontext.TextureDrawer.
//
// The viewport size is the window size in physical pixels. Host is not safe
// for concurrent use; call it from the window's draw callback.
type Host struct {
	window gpucontext.WindowProvider
	store  *store.Store

	textures []*texture
	closed   bool
}

// New creates a host for the given window.
func New(window gpucontext.WindowProvider) *Host {
	h := &Host{window: window}
	h.store = store.New(h.newTexture)
	return h
}

// PrepareOverlays implements gghud.Host. Overlay drawing is part of Draw,
// so there is nothing to register.
func (h *Host) PrepareOverlays() {}

// ActiveViewport implements gghud.Host. It returns nil until a window is
// set or after Close.
func (h *Host) ActiveViewport() gghud.Viewport {
	if h.window == nil || h.closed {
		return nil
	}
	return h
}

// Backend implements gghud.Host.
func (h *Host) Backend() gghud.Backend { return h.store }

// PixelSize implements gghud.Viewport: the window size scaled by its DPI
// factor and rounded to whole pixels.
func (h *Host) PixelSize() (width, height int) {
	if h.window == nil {
		return 0, 0
	}
	w, ht := h.window.Size()
	sf := h.window.ScaleFactor()
	if sf <= 0 {
		sf = 1
	}
	return int(math.Round(float64(w) * sf)), int(math.Round(float64(ht) * sf))
}

// Draw uploads changed overlay textures and draws every visible overlay.
//
// GPU textures are created on first draw. A texture replaced by a resize is
// destroyed only after its successor has been created, because
// NewTextureFromRGBA waits for the GPU and the old texture may still be
// referenced by in-flight command buffers.
func (h *Host) Draw(dc gpucontext.TextureDrawer) error {
	if h.closed {
		return ErrClosed
	}
	if dc == nil {
		return nil
	}
	w, ht := h.PixelSize()
	for _, l := range h.store.Layers(w, ht) {
		t, ok := l.Texture.(*texture)
		if !ok || !t.committed {
			continue
		}
		if err := h.sync(dc, t); err != nil {
			return err
		}
		if err := dc.DrawTexture(t.gpu, float32(l.Rect.Min.X), float32(l.Rect.Min.Y)); err != nil {
			return fmt.Errorf("gpuhost: draw %s: %w", t.name, err)
		}
	}
	return nil
}

// sync makes t.gpu hold the latest committed pixels.
func (h *Host) sync(dc gpucontext.TextureDrawer, t *texture) error {
	if t.gpu == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		gpu, err := creator.NewTextureFromRGBA(t.width, t.height, t.rgba)
		if err != nil {
			return fmt.Errorf("gpuhost: NewTextureFromRGBA failed: %w", err)
		}
		// Surface pixels are straight alpha.
		if pt, ok := gpu.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(false)
		}
		t.gpu = gpu
		t.dirty = false
		h.destroyRetired()
		return nil
	}
	if !t.dirty {
		return nil
	}
	if updater, ok := t.gpu.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(t.rgba); err != nil {
			return fmt.Errorf("gpuhost: texture update failed: %w", err)
		}
	}
	t.dirty = false
	return nil
}

// destroyRetired destroys GPU textures of removed overlay textures.
func (h *Host) destroyRetired() {
	live := h.textures[:0]
	for _, t := range h.textures {
		if !t.removed {
			live = append(live, t)
			continue
		}
		t.destroyGPU()
	}
	clear(h.textures[len(live):])
	h.textures = live
}

// Close destroys every resource and GPU texture. It is idempotent.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.store.Close()
	for _, t := range h.textures {
		t.destroyGPU()
	}
	h.textures = nil
	return nil
}

func (h *Host) newTexture(name string, width, height int, format gputypes.TextureFormat) (gghud.Texture, error) {
	if format != gghud.SurfaceFormat {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpuhost: texture %s: invalid size %dx%d", name, width, height)
	}
	t := &texture{
		name:    name,
		width:   width,
		height:  height,
		staging: make([]byte, width*height*gghud.BytesPerPixel),
		rgba:    make([]byte, width*height*4),
	}
	h.textures = append(h.textures, t)
	return t, nil
}

// texture stages BGRA writes in CPU memory and converts them to the RGBA
// layout gpucontext expects on Unmap.
type texture struct {
	name   string
	width  int
	height int

	staging []byte
	rgba    []byte
	mapped  bool

	committed bool
	dirty     bool
	removed   bool

	gpu gpucontext.Texture
}

func (t *texture) Name() string              { return t.name }
func (t *texture) Width() int                { return t.width }
func (t *texture) Height() int               { return t.height }
func (t *texture) Buffer() gghud.PixelBuffer { return t }

// Map returns the staging buffer, or nil while mapped or after removal.
func (t *texture) Map() []byte {
	if t.mapped || t.removed {
		return nil
	}
	t.mapped = true
	return t.staging
}

// Unmap converts the staging buffer and schedules an upload.
func (t *texture) Unmap() {
	if !t.mapped {
		return
	}
	t.mapped = false
	bgraToRGBA(t.rgba, t.staging)
	t.committed = true
	t.dirty = true
}

// Destroy is called by the store when the overlay texture is removed. The
// GPU texture stays alive until the next texture creation or Close.
func (t *texture) Destroy() {
	t.removed = true
	t.mapped = false
	t.staging = nil
}

func (t *texture) destroyGPU() {
	if d, ok := t.gpu.(textureDestroyer); ok {
		d.Destroy()
	}
	t.gpu = nil
}

// bgraToRGBA swaps the red and blue channels of src into dst.
func bgraToRGBA(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
	}
}

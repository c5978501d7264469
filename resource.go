package gghud

import (
	"context"
	"fmt"
	"log/slog"
)

// Resource owns one overlay, its panel, its material and its texture.
//
// The overlay, panel and material are created together by NewResource and
// always co-exist. The texture appears on the first Resize and is replaced,
// never resized in place, when the requested size changes.
//
// If the host cannot provide the resources, the Resource is invalid: all
// handles are nil and every method is a no-op. Resource is not safe for
// concurrent use.
type Resource struct {
	name string

	overlays  OverlayManager
	materials MaterialManager
	textures  TextureManager

	overlay  Overlay
	panel    Panel
	material Material
	texture  Texture

	// Size of the last failed texture create, so a host that keeps
	// refusing the same size is reported once.
	failedWidth, failedHeight int
}

// NewResource creates the overlay resources for name through backend.
// Failure is not fatal: it is logged once and the returned Resource is
// invalid.
func NewResource(name string, backend Backend) *Resource {
	r, err := newResource(name, backend)
	if err != nil {
		Logger().Error("gghud: overlay resources unavailable", "name", name, "err", err)
	}
	return r
}

// newResource is NewResource without the failure log. On error the returned
// Resource is invalid and every partially created handle is destroyed.
func newResource(name string, backend Backend) (*Resource, error) {
	r := &Resource{name: name}
	if err := r.create(backend); err != nil {
		r.Close()
		r.overlays, r.materials, r.textures = nil, nil, nil
		return r, err
	}
	Logger().Info("gghud: overlay created", "name", name)
	return r, nil
}

func (r *Resource) create(backend Backend) error {
	if backend == nil {
		return ErrBackendUnavailable
	}
	om, mm, tm := backend.Overlays(), backend.Materials(), backend.Textures()
	if om == nil || mm == nil || tm == nil {
		return fmt.Errorf("%w: overlays=%t materials=%t textures=%t",
			ErrManagerUnavailable, om != nil, mm != nil, tm != nil)
	}
	if _, ok := om.Overlay(r.OverlayName()); ok {
		return fmt.Errorf("%w: %s", ErrNameInUse, r.OverlayName())
	}
	if _, ok := mm.Material(r.MaterialName()); ok {
		return fmt.Errorf("%w: %s", ErrNameInUse, r.MaterialName())
	}
	r.overlays, r.materials, r.textures = om, mm, tm

	overlay, err := om.CreateOverlay(r.OverlayName())
	if err != nil {
		return fmt.Errorf("gghud: create overlay %s: %w", r.OverlayName(), err)
	}
	r.overlay = overlay

	panel, err := om.CreatePanel(r.PanelName())
	if err != nil {
		return fmt.Errorf("gghud: create panel %s: %w", r.PanelName(), err)
	}
	r.panel = panel
	// Pixel metrics with a top-left origin make the panel position equal
	// the absolute pixel coordinates from Place.
	panel.SetMetricsMode(MetricsPixels)
	panel.SetAlignment(AlignLeft, AlignTop)

	material, err := mm.CreateMaterial(r.MaterialName())
	if err != nil {
		return fmt.Errorf("gghud: create material %s: %w", r.MaterialName(), err)
	}
	r.material = material
	material.SetSceneBlending(BlendTransparentAlpha)

	panel.SetMaterialName(material.Name())
	overlay.Add2D(panel)
	overlay.Hide()
	return nil
}

// Name returns the base name the resource handles are derived from.
func (r *Resource) Name() string { return r.name }

// OverlayName returns the name of the overlay handle.
func (r *Resource) OverlayName() string { return r.name + "Overlay" }

// PanelName returns the name of the panel handle.
func (r *Resource) PanelName() string { return r.name + "Panel" }

// MaterialName returns the name of the material handle.
func (r *Resource) MaterialName() string { return r.name + "Material" }

// TextureName returns the name of the texture handle.
func (r *Resource) TextureName() string { return r.name + "Texture" }

// Valid reports whether the overlay, panel and material exist.
func (r *Resource) Valid() bool {
	return r != nil && r.overlay != nil && r.panel != nil && r.material != nil
}

// Resize makes the texture exactly width×height, flooring both to 1.
// An existing texture of a different size is removed, and detached from the
// material, before the new one is created. Resizing to the current size
// does nothing.
func (r *Resource) Resize(width, height int) {
	if !r.Valid() {
		return
	}
	width, height = max(1, width), max(1, height)
	if r.texture != nil && r.texture.Width() == width && r.texture.Height() == height {
		return
	}

	if r.texture != nil {
		r.material.RemoveAllTextureUnits()
		r.textures.RemoveTexture(r.texture.Name())
		r.texture = nil
	}

	tex, err := r.textures.CreateTexture(r.TextureName(), width, height, SurfaceFormat)
	if err != nil {
		level := slog.LevelWarn
		if width == r.failedWidth && height == r.failedHeight {
			level = slog.LevelDebug
		}
		r.failedWidth, r.failedHeight = width, height
		Logger().Log(context.Background(), level, "gghud: texture creation failed",
			"name", r.TextureName(), "width", width, "height", height, "err", err)
		return
	}
	r.failedWidth, r.failedHeight = 0, 0
	r.texture = tex
	r.material.AddTextureUnit(tex.Name())
	r.material.SetSceneBlending(BlendTransparentAlpha)
	Logger().Debug("gghud: texture created", "name", tex.Name(), "width", width, "height", height)
}

// TextureSize returns the current texture size, or (0, 0) without one.
func (r *Resource) TextureSize() (width, height int) {
	if r == nil || r.texture == nil {
		return 0, 0
	}
	return r.texture.Width(), r.texture.Height()
}

// SetPosition moves the panel to pixel position (x, y).
func (r *Resource) SetPosition(x, y int) {
	if r.Valid() {
		r.panel.SetPosition(float64(x), float64(y))
	}
}

// SetDimensions sets the panel size in pixels.
func (r *Resource) SetDimensions(width, height int) {
	if r.Valid() {
		r.panel.SetDimensions(float64(width), float64(height))
	}
}

// Show makes the overlay visible.
func (r *Resource) Show() {
	if r.Valid() {
		r.overlay.Show()
	}
}

// Hide hides the overlay.
func (r *Resource) Hide() {
	if r.Valid() {
		r.overlay.Hide()
	}
}

// IsVisible reports whether the overlay is shown.
func (r *Resource) IsVisible() bool {
	return r.Valid() && r.overlay.IsVisible()
}

// AcquirePixelBuffer maps the texture pixel buffer. Without a texture the
// returned lock is invalid.
func (r *Resource) AcquirePixelBuffer() *PixelLock {
	if !r.Valid() || r.texture == nil {
		return NewPixelLock(nil)
	}
	return NewPixelLock(r.texture.Buffer())
}

// Close destroys the panel and overlay, then the material, then the
// texture. Every step is guarded on its own so partially built resources
// tear down cleanly. Close is idempotent.
func (r *Resource) Close() {
	if r == nil {
		return
	}
	if r.overlays != nil {
		if r.panel != nil {
			r.overlays.DestroyPanel(r.panel)
		}
		if r.overlay != nil {
			r.overlays.DestroyOverlay(r.overlay)
		}
	}
	r.panel, r.overlay = nil, nil

	if r.material != nil && r.materials != nil {
		r.material.Unload()
		r.materials.RemoveMaterial(r.material.Name())
	}
	r.material = nil

	if r.texture != nil && r.textures != nil {
		r.textures.RemoveTexture(r.texture.Name())
	}
	r.texture = nil
}

package gghud

import "github.com/gogpu/gputypes"

// SurfaceFormat is the pixel format of every overlay texture: packed
// 0xAARRGGBB words stored little-endian, i.e. B, G, R, A bytes in memory.
const SurfaceFormat = gputypes.TextureFormatBGRA8Unorm

// MetricsMode selects how panel positions and sizes are interpreted.
type MetricsMode int

// Metrics modes.
const (
	MetricsRelative MetricsMode = iota // fractions of the viewport
	MetricsPixels                      // absolute pixels
)

// HorizontalAlignment is the panel origin on the X axis.
type HorizontalAlignment int

// Horizontal alignments.
const (
	AlignLeft HorizontalAlignment = iota
	AlignCenter
	AlignRight
)

// VerticalAlignment is the panel origin on the Y axis.
type VerticalAlignment int

// Vertical alignments.
const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

// BlendMode selects how a material is composited over the scene.
type BlendMode int

// Blend modes.
const (
	BlendReplace          BlendMode = iota
	BlendTransparentAlpha           // src*alpha + dst*(1-alpha)
)

// Overlay is a screen-space layer composited on top of the 3D scene.
type Overlay interface {
	Name() string
	Add2D(p Panel)
	Show()
	Hide()
	IsVisible() bool
}

// Panel is the rectangular element of an overlay that carries a material.
type Panel interface {
	Name() string
	SetMetricsMode(m MetricsMode)
	SetAlignment(h HorizontalAlignment, v VerticalAlignment)
	SetPosition(left, top float64)
	SetDimensions(width, height float64)
	SetMaterialName(name string)
}

// Material binds textures to panels. The overlay code uses a single pass
// with a single texture unit.
type Material interface {
	Name() string
	Unload()
	RemoveAllTextureUnits()
	AddTextureUnit(textureName string)
	SetSceneBlending(m BlendMode)
}

// Texture is a GPU texture with a CPU-mappable pixel buffer.
type Texture interface {
	Name() string
	Width() int
	Height() int
	Buffer() PixelBuffer
}

// PixelBuffer is the mappable backing store of a texture.
//
// Map returns the buffer memory for read/write access, or nil if it cannot
// be mapped. Unmap commits the written pixels and must be called exactly
// once per successful Map. Only one mapping may be outstanding at a time.
type PixelBuffer interface {
	Map() []byte
	Unmap()
}

// OverlayManager creates, destroys and looks up overlays and panels.
type OverlayManager interface {
	CreateOverlay(name string) (Overlay, error)
	CreatePanel(name string) (Panel, error)
	DestroyPanel(p Panel)
	DestroyOverlay(o Overlay)
	Overlay(name string) (Overlay, bool)
}

// MaterialManager creates, removes and looks up materials.
type MaterialManager interface {
	CreateMaterial(name string) (Material, error)
	RemoveMaterial(name string)
	Material(name string) (Material, bool)
}

// TextureManager creates, removes and looks up textures.
type TextureManager interface {
	CreateTexture(name string, width, height int, format gputypes.TextureFormat) (Texture, error)
	RemoveTexture(name string)
	Texture(name string) (Texture, bool)
}

// Backend gives access to the host's resource managers. A manager that is
// not ready yet is reported as an untyped nil.
type Backend interface {
	Overlays() OverlayManager
	Materials() MaterialManager
	Textures() TextureManager
}

// Viewport is the host render surface the overlay is placed on.
type Viewport interface {
	// PixelSize returns the current render surface size. It may change
	// between frames and is sampled on every geometry update.
	PixelSize() (width, height int)
}

// Host is the scene/viewport system the overlay attaches to.
type Host interface {
	// PrepareOverlays readies the host's overlay pipeline. Called once
	// before the first resource is created.
	PrepareOverlays()

	// ActiveViewport returns the view the overlay is placed on, or nil.
	ActiveViewport() Viewport

	// Backend returns the resource managers, or nil.
	Backend() Backend
}

// Drawable paints overlay content into a surface.
type Drawable interface {
	// Resize sets the pixel size the next Paint will fill.
	Resize(width, height int)

	// Paint draws into s, which is zero-filled and exactly the size
	// passed to the last Resize.
	Paint(s *Surface)
}

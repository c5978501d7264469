// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store keeps the overlay, panel, material and texture tables shared
// by the gghud backends. Backends only supply the texture implementation.
package store

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghud"
)

// Errors returned by Store.
var (
	// ErrExists is returned when a name is already taken.
	ErrExists = errors.New("store: name already exists")

	// ErrNoTextureFactory is returned by CreateTexture when the backend
	// has no way to make textures.
	ErrNoTextureFactory = errors.New("store: no texture factory")
)

// TextureFactory creates a backend texture.
type TextureFactory func(name string, width, height int, format gputypes.TextureFormat) (gghud.Texture, error)

// Destroyer is implemented by textures that own backend resources.
type Destroyer interface {
	Destroy()
}

// Store implements gghud.Backend and all three resource managers on plain
// maps. It is not safe for concurrent use.
type Store struct {
	overlays  map[string]*Overlay
	order     []string
	panels    map[string]*Panel
	materials map[string]*Material
	textures  map[string]gghud.Texture

	newTexture TextureFactory
}

// New creates an empty store whose textures come from f.
func New(f TextureFactory) *Store {
	return &Store{
		overlays:   make(map[string]*Overlay),
		panels:     make(map[string]*Panel),
		materials:  make(map[string]*Material),
		textures:   make(map[string]gghud.Texture),
		newTexture: f,
	}
}

// Overlays implements gghud.Backend.
func (s *Store) Overlays() gghud.OverlayManager { return s }

// Materials implements gghud.Backend.
func (s *Store) Materials() gghud.MaterialManager { return s }

// Textures implements gghud.Backend.
func (s *Store) Textures() gghud.TextureManager { return s }

// CreateOverlay implements gghud.OverlayManager.
func (s *Store) CreateOverlay(name string) (gghud.Overlay, error) {
	if _, ok := s.overlays[name]; ok {
		return nil, fmt.Errorf("%w: overlay %s", ErrExists, name)
	}
	o := &Overlay{name: name}
	s.overlays[name] = o
	s.order = append(s.order, name)
	return o, nil
}

// CreatePanel implements gghud.OverlayManager.
func (s *Store) CreatePanel(name string) (gghud.Panel, error) {
	if _, ok := s.panels[name]; ok {
		return nil, fmt.Errorf("%w: panel %s", ErrExists, name)
	}
	p := &Panel{name: name}
	s.panels[name] = p
	return p, nil
}

// DestroyPanel implements gghud.OverlayManager. The panel is detached from
// every overlay that holds it.
func (s *Store) DestroyPanel(p gghud.Panel) {
	if p == nil {
		return
	}
	delete(s.panels, p.Name())
	for _, o := range s.overlays {
		o.panels = slices.DeleteFunc(o.panels, func(q *Panel) bool { return q.name == p.Name() })
	}
}

// DestroyOverlay implements gghud.OverlayManager.
func (s *Store) DestroyOverlay(o gghud.Overlay) {
	if o == nil {
		return
	}
	delete(s.overlays, o.Name())
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == o.Name() })
}

// Overlay implements gghud.OverlayManager.
func (s *Store) Overlay(name string) (gghud.Overlay, bool) {
	o, ok := s.overlays[name]
	if !ok {
		return nil, false
	}
	return o, true
}

// CreateMaterial implements gghud.MaterialManager.
func (s *Store) CreateMaterial(name string) (gghud.Material, error) {
	if _, ok := s.materials[name]; ok {
		return nil, fmt.Errorf("%w: material %s", ErrExists, name)
	}
	m := &Material{name: name, loaded: true}
	s.materials[name] = m
	return m, nil
}

// RemoveMaterial implements gghud.MaterialManager.
func (s *Store) RemoveMaterial(name string) {
	delete(s.materials, name)
}

// Material implements gghud.MaterialManager.
func (s *Store) Material(name string) (gghud.Material, bool) {
	m, ok := s.materials[name]
	if !ok {
		return nil, false
	}
	return m, true
}

// CreateTexture implements gghud.TextureManager.
func (s *Store) CreateTexture(name string, width, height int, format gputypes.TextureFormat) (gghud.Texture, error) {
	if s.newTexture == nil {
		return nil, ErrNoTextureFactory
	}
	if _, ok := s.textures[name]; ok {
		return nil, fmt.Errorf("%w: texture %s", ErrExists, name)
	}
	t, err := s.newTexture(name, width, height, format)
	if err != nil {
		return nil, err
	}
	s.textures[name] = t
	return t, nil
}

// RemoveTexture implements gghud.TextureManager. Textures implementing
// Destroyer are destroyed.
func (s *Store) RemoveTexture(name string) {
	t, ok := s.textures[name]
	if !ok {
		return
	}
	delete(s.textures, name)
	if d, ok := t.(Destroyer); ok {
		d.Destroy()
	}
}

// Texture implements gghud.TextureManager.
func (s *Store) Texture(name string) (gghud.Texture, bool) {
	t, ok := s.textures[name]
	return t, ok
}

// Counts returns the number of live overlays, panels, materials and
// textures.
func (s *Store) Counts() (overlays, panels, materials, textures int) {
	return len(s.overlays), len(s.panels), len(s.materials), len(s.textures)
}

// Close removes every resource, destroying textures that implement
// Destroyer.
func (s *Store) Close() {
	for name := range s.textures {
		s.RemoveTexture(name)
	}
	clear(s.overlays)
	clear(s.panels)
	clear(s.materials)
	s.order = nil
}

// Layer is one panel ready to be drawn: its texture and the pixel
// rectangle it covers in the viewport.
type Layer struct {
	Overlay string
	Panel   string
	Texture gghud.Texture
	Rect    image.Rectangle
	Blend   gghud.BlendMode
}

// Layers returns the drawable panels of every visible overlay in creation
// order, for a viewport of the given size. Panels without a material, or
// whose material has no existing texture, are skipped.
func (s *Store) Layers(viewportW, viewportH int) []Layer {
	var layers []Layer
	for _, name := range s.order {
		o := s.overlays[name]
		if o == nil || !o.visible {
			continue
		}
		for _, p := range o.panels {
			m, ok := s.materials[p.material]
			if !ok || !m.loaded || len(m.units) == 0 {
				continue
			}
			t, ok := s.textures[m.units[0]]
			if !ok {
				continue
			}
			r := p.Rect(viewportW, viewportH)
			if r.Empty() {
				continue
			}
			layers = append(layers, Layer{Overlay: o.name, Panel: p.name, Texture: t, Rect: r, Blend: m.blend})
		}
	}
	return layers
}

// Overlay is a gghud.Overlay holding panels in insertion order.
type Overlay struct {
	name    string
	panels  []*Panel
	visible bool
}

// Name implements gghud.Overlay.
func (o *Overlay) Name() string { return o.name }

// Add2D implements gghud.Overlay. Panels not created by a Store are
// ignored.
func (o *Overlay) Add2D(p gghud.Panel) {
	if sp, ok := p.(*Panel); ok && !slices.Contains(o.panels, sp) {
		o.panels = append(o.panels, sp)
	}
}

// Show implements gghud.Overlay.
func (o *Overlay) Show() { o.visible = true }

// Hide implements gghud.Overlay.
func (o *Overlay) Hide() { o.visible = false }

// IsVisible implements gghud.Overlay.
func (o *Overlay) IsVisible() bool { return o.visible }

// Panel is a gghud.Panel.
type Panel struct {
	name          string
	metrics       gghud.MetricsMode
	hAlign        gghud.HorizontalAlignment
	vAlign        gghud.VerticalAlignment
	left, top     float64
	width, height float64
	material      string
}

// Name implements gghud.Panel.
func (p *Panel) Name() string { return p.name }

// SetMetricsMode implements gghud.Panel.
func (p *Panel) SetMetricsMode(m gghud.MetricsMode) { p.metrics = m }

// SetAlignment implements gghud.Panel.
func (p *Panel) SetAlignment(h gghud.HorizontalAlignment, v gghud.VerticalAlignment) {
	p.hAlign, p.vAlign = h, v
}

// SetPosition implements gghud.Panel.
func (p *Panel) SetPosition(left, top float64) { p.left, p.top = left, top }

// SetDimensions implements gghud.Panel.
func (p *Panel) SetDimensions(width, height float64) { p.width, p.height = width, height }

// SetMaterialName implements gghud.Panel.
func (p *Panel) SetMaterialName(name string) { p.material = name }

// Rect resolves the panel position and size to viewport pixels.
//
// Relative metrics are fractions of the viewport. Alignment moves the
// origin the position is measured from: center and right/middle and bottom
// place it at the middle or far edge of the viewport.
func (p *Panel) Rect(viewportW, viewportH int) image.Rectangle {
	left, top, w, h := p.left, p.top, p.width, p.height
	if p.metrics == gghud.MetricsRelative {
		left *= float64(viewportW)
		w *= float64(viewportW)
		top *= float64(viewportH)
		h *= float64(viewportH)
	}
	switch p.hAlign {
	case gghud.AlignCenter:
		left += float64(viewportW) / 2
	case gghud.AlignRight:
		left += float64(viewportW)
	}
	switch p.vAlign {
	case gghud.AlignMiddle:
		top += float64(viewportH) / 2
	case gghud.AlignBottom:
		top += float64(viewportH)
	}
	x0, y0 := int(math.Round(left)), int(math.Round(top))
	return image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
}

// Material is a gghud.Material with a single pass.
type Material struct {
	name   string
	units  []string
	blend  gghud.BlendMode
	loaded bool
}

// Name implements gghud.Material.
func (m *Material) Name() string { return m.name }

// Unload implements gghud.Material.
func (m *Material) Unload() { m.loaded = false }

// RemoveAllTextureUnits implements gghud.Material.
func (m *Material) RemoveAllTextureUnits() { m.units = nil }

// AddTextureUnit implements gghud.Material.
func (m *Material) AddTextureUnit(textureName string) { m.units = append(m.units, textureName) }

// SetSceneBlending implements gghud.Material.
func (m *Material) SetSceneBlending(b gghud.BlendMode) { m.blend = b }

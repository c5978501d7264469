package gghud

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gputypes"
)

var errMockCreate = errors.New("mock create failed")

// mockBuffer implements PixelBuffer and counts map/unmap calls.
type mockBuffer struct {
	mem     []byte
	maps    int
	unmaps  int
	failMap bool
}

func (b *mockBuffer) Map() []byte {
	if b.failMap {
		return nil
	}
	b.maps++
	return b.mem
}

func (b *mockBuffer) Unmap() { b.unmaps++ }

// mockTexture implements Texture.
type mockTexture struct {
	name   string
	width  int
	height int
	format gputypes.TextureFormat
	buf    *mockBuffer
}

func (t *mockTexture) Name() string        { return t.name }
func (t *mockTexture) Width() int          { return t.width }
func (t *mockTexture) Height() int         { return t.height }
func (t *mockTexture) Buffer() PixelBuffer { return t.buf }

// mockOverlay implements Overlay.
type mockOverlay struct {
	name    string
	panels  []Panel
	visible bool
}

func (o *mockOverlay) Name() string    { return o.name }
func (o *mockOverlay) Add2D(p Panel)   { o.panels = append(o.panels, p) }
func (o *mockOverlay) Show()           { o.visible = true }
func (o *mockOverlay) Hide()           { o.visible = false }
func (o *mockOverlay) IsVisible() bool { return o.visible }

// mockPanel implements Panel.
type mockPanel struct {
	name          string
	metrics       MetricsMode
	hAlign        HorizontalAlignment
	vAlign        VerticalAlignment
	left, top     float64
	width, height float64
	material      string
}

func (p *mockPanel) Name() string                  { return p.name }
func (p *mockPanel) SetMetricsMode(m MetricsMode)  { p.metrics = m }
func (p *mockPanel) SetPosition(left, top float64) { p.left, p.top = left, top }
func (p *mockPanel) SetMaterialName(name string)   { p.material = name }

func (p *mockPanel) SetAlignment(h HorizontalAlignment, v VerticalAlignment) {
	p.hAlign, p.vAlign = h, v
}

func (p *mockPanel) SetDimensions(width, height float64) {
	p.width, p.height = width, height
}

// mockMaterial implements Material.
type mockMaterial struct {
	name     string
	units    []string
	blend    BlendMode
	unloaded bool
}

func (m *mockMaterial) Name() string                 { return m.name }
func (m *mockMaterial) Unload()                      { m.unloaded = true }
func (m *mockMaterial) RemoveAllTextureUnits()       { m.units = nil }
func (m *mockMaterial) AddTextureUnit(name string)   { m.units = append(m.units, name) }
func (m *mockMaterial) SetSceneBlending(b BlendMode) { m.blend = b }

// mockBackend implements Backend and all three managers, recording every
// create/destroy call in order.
type mockBackend struct {
	overlays  map[string]*mockOverlay
	panels    map[string]*mockPanel
	materials map[string]*mockMaterial
	textures  map[string]*mockTexture

	events          []string
	texturesCreated int
	texturesRemoved int

	noOverlays, noMaterials, noTextures               bool
	failOverlay, failPanel, failMaterial, failTexture bool
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		overlays:  make(map[string]*mockOverlay),
		panels:    make(map[string]*mockPanel),
		materials: make(map[string]*mockMaterial),
		textures:  make(map[string]*mockTexture),
	}
}

func (m *mockBackend) Overlays() OverlayManager {
	if m.noOverlays {
		return nil
	}
	return m
}

func (m *mockBackend) Materials() MaterialManager {
	if m.noMaterials {
		return nil
	}
	return m
}

func (m *mockBackend) Textures() TextureManager {
	if m.noTextures {
		return nil
	}
	return m
}

func (m *mockBackend) record(format string, args ...any) {
	m.events = append(m.events, fmt.Sprintf(format, args...))
}

func (m *mockBackend) CreateOverlay(name string) (Overlay, error) {
	if m.failOverlay {
		return nil, errMockCreate
	}
	o := &mockOverlay{name: name}
	m.overlays[name] = o
	m.record("create overlay %s", name)
	return o, nil
}

func (m *mockBackend) CreatePanel(name string) (Panel, error) {
	if m.failPanel {
		return nil, errMockCreate
	}
	p := &mockPanel{name: name}
	m.panels[name] = p
	m.record("create panel %s", name)
	return p, nil
}

func (m *mockBackend) DestroyPanel(p Panel) {
	delete(m.panels, p.Name())
	m.record("destroy panel %s", p.Name())
}

func (m *mockBackend) DestroyOverlay(o Overlay) {
	delete(m.overlays, o.Name())
	m.record("destroy overlay %s", o.Name())
}

func (m *mockBackend) Overlay(name string) (Overlay, bool) {
	o, ok := m.overlays[name]
	return o, ok
}

func (m *mockBackend) CreateMaterial(name string) (Material, error) {
	if m.failMaterial {
		return nil, errMockCreate
	}
	mat := &mockMaterial{name: name}
	m.materials[name] = mat
	m.record("create material %s", name)
	return mat, nil
}

func (m *mockBackend) RemoveMaterial(name string) {
	delete(m.materials, name)
	m.record("remove material %s", name)
}

func (m *mockBackend) Material(name string) (Material, bool) {
	mat, ok := m.materials[name]
	return mat, ok
}

func (m *mockBackend) CreateTexture(name string, width, height int, format gputypes.TextureFormat) (Texture, error) {
	if m.failTexture {
		return nil, errMockCreate
	}
	t := &mockTexture{
		name:   name,
		width:  width,
		height: height,
		format: format,
		buf:    &mockBuffer{mem: make([]byte, width*height*BytesPerPixel)},
	}
	m.textures[name] = t
	m.texturesCreated++
	m.record("create texture %s %dx%d", name, width, height)
	return t, nil
}

func (m *mockBackend) RemoveTexture(name string) {
	delete(m.textures, name)
	m.texturesRemoved++
	m.record("remove texture %s", name)
}

func (m *mockBackend) Texture(name string) (Texture, bool) {
	t, ok := m.textures[name]
	return t, ok
}

// mockViewport implements Viewport.
type mockViewport struct{ width, height int }

func (v *mockViewport) PixelSize() (int, int) { return v.width, v.height }

// mockHost implements Host.
type mockHost struct {
	backend  Backend
	viewport *mockViewport
	prepared int
}

func newMockHost(width, height int) (*mockHost, *mockBackend) {
	b := newMockBackend()
	return &mockHost{backend: b, viewport: &mockViewport{width: width, height: height}}, b
}

func (h *mockHost) PrepareOverlays() { h.prepared++ }

func (h *mockHost) ActiveViewport() Viewport {
	if h.viewport == nil {
		return nil
	}
	return h.viewport
}

func (h *mockHost) Backend() Backend { return h.backend }

// mockDrawable implements Drawable and fills the surface with one color.
type mockDrawable struct {
	width, height int
	resizes       int
	paints        int
	zeroFilled    bool
	surfaceW      int
	surfaceH      int
	fill          color.NRGBA
	panicOnPaint  bool
}

func (d *mockDrawable) Resize(width, height int) {
	d.width, d.height = width, height
	d.resizes++
}

func (d *mockDrawable) Paint(s *Surface) {
	d.paints++
	d.surfaceW, d.surfaceH = s.Width(), s.Height()
	d.zeroFilled = true
	for _, b := range s.Pix {
		if b != 0 {
			d.zeroFilled = false
			break
		}
	}
	if d.panicOnPaint {
		panic("paint failed")
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetNRGBA(x, y, d.fill)
		}
	}
}

package gghud

import (
	"fmt"
	"image/color"
	"testing"
)

func TestSystemAttach(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()

	sys.Attach(host)
	sys.Attach(host)

	if host.prepared != 1 {
		t.Errorf("PrepareOverlays called %d times, want 1", host.prepared)
	}
	if got := sys.Resource().Name(); got != "HUD0" {
		t.Errorf("resource name = %q, want HUD0", got)
	}
	if len(b.overlays) != 1 {
		t.Errorf("overlays = %d, want 1", len(b.overlays))
	}
}

func TestSystemAttachNil(t *testing.T) {
	sys := NewSystem()
	sys.Attach(nil)
	if sys.Resource() != nil {
		t.Error("Attach(nil) created a resource")
	}
	if _, ok := sys.SetGeometry(Geometry{Width: 10, Height: 10}); ok {
		t.Error("SetGeometry applied without a host")
	}
	sys.SetVisible(true)
	sys.Render(&mockDrawable{})
	sys.Close()
}

func TestSystemAttachLateViewport(t *testing.T) {
	host, b := newMockHost(0, 0)
	host.viewport = nil
	sys := NewSystem()
	defer sys.Close()

	sys.Attach(host)
	if _, ok := sys.SetGeometry(Geometry{Width: 200, Height: 200}); ok {
		t.Fatal("SetGeometry applied without a viewport")
	}
	if b.texturesCreated != 0 {
		t.Error("texture created without a viewport")
	}

	host.viewport = &mockViewport{width: 800, height: 600}
	sys.Attach(host)
	if host.prepared != 1 {
		t.Errorf("PrepareOverlays called %d times, want 1", host.prepared)
	}
	if _, ok := sys.SetGeometry(Geometry{Width: 200, Height: 200}); !ok {
		t.Error("SetGeometry not applied after the viewport appeared")
	}
}

func TestSystemSharedNamesAreUnique(t *testing.T) {
	host, b := newMockHost(800, 600)
	names := NewNameSequence("")

	a := NewSystem(WithNames(names))
	c := NewSystem(WithNames(names))
	defer a.Close()
	defer c.Close()

	a.Attach(host)
	c.Attach(host)

	if a.Resource().Name() == c.Resource().Name() {
		t.Fatalf("both systems named %q", a.Resource().Name())
	}
	if !a.Resource().Valid() || !c.Resource().Valid() {
		t.Error("resources with unique names should both be valid")
	}
	if len(b.overlays) != 2 {
		t.Errorf("overlays = %d, want 2", len(b.overlays))
	}
	if a.Resource().Name() != "AttitudeHUD0" || c.Resource().Name() != "AttitudeHUD1" {
		t.Errorf("names = %q, %q", a.Resource().Name(), c.Resource().Name())
	}
}

func TestSystemDefaultNamesDoNotCollide(t *testing.T) {
	host, b := newMockHost(800, 600)
	a, c := NewSystem(), NewSystem()
	defer a.Close()
	defer c.Close()

	a.Attach(host)
	c.Attach(host)

	if !a.Resource().Valid() || !c.Resource().Valid() {
		t.Fatalf("valid = %t, %t; want both valid", a.Resource().Valid(), c.Resource().Valid())
	}
	if a.Resource().Name() != "AttitudeHUD0" || c.Resource().Name() != "AttitudeHUD1" {
		t.Errorf("names = %q, %q, want AttitudeHUD0, AttitudeHUD1", a.Resource().Name(), c.Resource().Name())
	}
	if len(b.overlays) != 2 || len(b.materials) != 2 {
		t.Errorf("overlays = %d, materials = %d, want 2 each", len(b.overlays), len(b.materials))
	}

	a.SetGeometry(Geometry{Width: 10, Height: 10})
	c.SetGeometry(Geometry{Width: 20, Height: 20})
	if b.texturesCreated != 2 {
		t.Errorf("textures created = %d, want 2", b.texturesCreated)
	}
}

func TestSystemAttachGivesUpOnTakenNames(t *testing.T) {
	host, b := newMockHost(800, 600)
	for i := range maxNameAttempts {
		name := fmt.Sprintf("HUD%d", i)
		b.overlays[name+"Overlay"] = &mockOverlay{name: name + "Overlay"}
	}
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()

	sys.Attach(host)
	if sys.Resource().Valid() {
		t.Fatalf("resource %q valid with every name taken", sys.Resource().Name())
	}
	if len(b.overlays) != maxNameAttempts {
		t.Errorf("overlays = %d, want %d", len(b.overlays), maxNameAttempts)
	}

	delete(b.overlays, "HUD3Overlay")
	other := NewSystem(WithNames(NewNameSequence("HUD")))
	defer other.Close()
	other.Attach(host)
	if got := other.Resource().Name(); got != "HUD3" || !other.Resource().Valid() {
		t.Errorf("resource = %q valid=%t, want HUD3 valid", got, other.Resource().Valid())
	}
}

func TestSystemSetGeometry(t *testing.T) {
	host, b := newMockHost(1920, 1080)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)

	g := Geometry{Width: 200, Height: 200, OffsetX: 10, OffsetY: 10, Anchor: AnchorBottomRight}
	p, ok := sys.SetGeometry(g)
	if !ok {
		t.Fatal("SetGeometry not applied")
	}
	if p.X != 1710 || p.Y != 870 {
		t.Errorf("placement = (%d, %d), want (1710, 870)", p.X, p.Y)
	}

	panel := b.panels["HUD0Panel"]
	if panel.left != 1710 || panel.top != 870 || panel.width != 200 || panel.height != 200 {
		t.Errorf("panel = %+v", panel)
	}
	if w, h := sys.Resource().TextureSize(); w != 200 || h != 200 {
		t.Errorf("TextureSize() = %dx%d, want 200x200", w, h)
	}

	// Repeating the same geometry every frame keeps the texture.
	for range 10 {
		sys.SetGeometry(g)
	}
	if b.texturesCreated != 1 {
		t.Errorf("textures created = %d, want 1", b.texturesCreated)
	}
}

func TestSystemSetGeometryTracksViewport(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)

	g := Geometry{Width: 100, Height: 50, OffsetX: 10, OffsetY: 10, Anchor: AnchorBottomRight}
	sys.SetGeometry(g)
	panel := b.panels["HUD0Panel"]
	if panel.left != 690 || panel.top != 540 {
		t.Errorf("panel at (%v, %v), want (690, 540)", panel.left, panel.top)
	}

	host.viewport.width, host.viewport.height = 1024, 768
	sys.SetGeometry(g)
	if panel.left != 914 || panel.top != 708 {
		t.Errorf("panel at (%v, %v) after viewport resize, want (914, 708)", panel.left, panel.top)
	}
}

func TestSystemSetVisible(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)

	overlay := b.overlays["HUD0Overlay"]
	sys.SetVisible(true)
	if !overlay.visible {
		t.Error("overlay hidden after SetVisible(true)")
	}
	sys.SetVisible(false)
	if overlay.visible {
		t.Error("overlay visible after SetVisible(false)")
	}
}

func TestSystemRenderWithoutTexture(t *testing.T) {
	host, _ := newMockHost(800, 600)
	sys := NewSystem()
	defer sys.Close()
	sys.Attach(host)

	d := &mockDrawable{}
	sys.Render(d)
	if d.paints != 0 || d.resizes != 0 {
		t.Errorf("drawable touched without a texture: paints=%d resizes=%d", d.paints, d.resizes)
	}
	sys.Render(nil)
}

func TestSystemRender(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)
	sys.SetGeometry(Geometry{Width: 16, Height: 8})

	tex := b.textures["HUD0Texture"]
	for i := range tex.buf.mem {
		tex.buf.mem[i] = 0x5a
	}

	red := color.NRGBA{R: 0xff, A: 0x80}
	d := &mockDrawable{fill: red}
	sys.Render(d)

	if d.paints != 1 {
		t.Fatalf("paints = %d, want 1", d.paints)
	}
	if d.width != 16 || d.height != 8 {
		t.Errorf("drawable resized to %dx%d, want 16x8", d.width, d.height)
	}
	if d.surfaceW != 16 || d.surfaceH != 8 {
		t.Errorf("surface = %dx%d, want 16x8", d.surfaceW, d.surfaceH)
	}
	if !d.zeroFilled {
		t.Error("surface not zero-filled before Paint")
	}
	if tex.buf.maps != 1 || tex.buf.unmaps != 1 {
		t.Errorf("maps=%d unmaps=%d, want 1/1", tex.buf.maps, tex.buf.unmaps)
	}
	if got := tex.buf.mem[0:4]; got[0] != 0 || got[1] != 0 || got[2] != 0xff || got[3] != 0x80 {
		t.Errorf("first pixel bytes = %v, want [0 0 255 128]", got)
	}
	if panel := b.panels["HUD0Panel"]; panel.width != 16 || panel.height != 8 {
		t.Errorf("panel = %vx%v, want 16x8", panel.width, panel.height)
	}
}

func TestSystemRenderUnmapsOnPanic(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)
	sys.SetGeometry(Geometry{Width: 4, Height: 4})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the paint panic to propagate")
			}
		}()
		sys.Render(&mockDrawable{panicOnPaint: true})
	}()

	buf := b.textures["HUD0Texture"].buf
	if buf.maps != 1 || buf.unmaps != 1 {
		t.Errorf("maps=%d unmaps=%d, want 1/1", buf.maps, buf.unmaps)
	}
}

func TestSystemRenderSkipsUnmappedFrame(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	defer sys.Close()
	sys.Attach(host)
	sys.SetGeometry(Geometry{Width: 4, Height: 4})

	buf := b.textures["HUD0Texture"].buf
	buf.failMap = true
	d := &mockDrawable{}
	sys.Render(d)
	if d.paints != 0 {
		t.Error("painted into an unmapped buffer")
	}
	if buf.unmaps != 0 {
		t.Errorf("unmaps = %d after failed map, want 0", buf.unmaps)
	}

	buf.failMap = false
	sys.Render(d)
	if d.paints != 1 {
		t.Errorf("paints = %d after retry, want 1", d.paints)
	}
	if buf.unmaps != 1 {
		t.Errorf("unmaps = %d, want 1", buf.unmaps)
	}
}

func TestSystemCloseAndReattach(t *testing.T) {
	host, b := newMockHost(800, 600)
	sys := NewSystem(WithNames(NewNameSequence("HUD")))
	sys.Attach(host)
	sys.SetGeometry(Geometry{Width: 10, Height: 10})

	sys.Close()
	if sys.Resource() != nil {
		t.Error("Resource() non-nil after Close")
	}
	if len(b.overlays)+len(b.panels)+len(b.materials)+len(b.textures) != 0 {
		t.Error("handles leaked after Close")
	}
	sys.Close()

	sys.Attach(host)
	defer sys.Close()
	if got := sys.Resource().Name(); got != "HUD1" {
		t.Errorf("reattached name = %q, want HUD1", got)
	}
	if host.prepared != 2 {
		t.Errorf("PrepareOverlays called %d times, want 2", host.prepared)
	}
}

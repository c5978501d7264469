// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuhost

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghud"
)

// mockTexture implements the gpucontext texture interfaces for testing.
type mockTexture struct {
	width         int
	height        int
	data          []byte
	updated       int
	destroyed     bool
	premultiplied *bool
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }

func (m *mockTexture) UpdateData(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy() { m.destroyed = true }

func (m *mockTexture) SetPremultiplied(p bool) { m.premultiplied = &p }

// mockCreator implements gpucontext.TextureCreator for testing.
type mockCreator struct {
	textures []*mockTexture
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

type drawCall struct {
	tex  gpucontext.Texture
	x, y float32
}

// mockDrawer implements gpucontext.TextureDrawer for testing.
type mockDrawer struct {
	creator gpucontext.TextureCreator
	draws   []drawCall
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.draws = append(m.draws, drawCall{tex: tex, x: x, y: y})
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator { return m.creator }

// fill paints every pixel one color.
type fill struct{ c color.NRGBA }

func (f fill) Resize(int, int) {}

func (f fill) Paint(s *gghud.Surface) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetNRGBA(x, y, f.c)
		}
	}
}

func newSystem(t *testing.T, w gpucontext.WindowProvider) (*Host, *gghud.System) {
	t.Helper()
	h := New(w)
	sys := gghud.NewSystem()
	sys.Attach(h)
	t.Cleanup(func() {
		sys.Close()
		_ = h.Close()
	})
	return h, sys
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		name  string
		win   gpucontext.WindowProvider
		wantW int
		wantH int
	}{
		{"nil window", nil, 0, 0},
		{"default scale", gpucontext.NullWindowProvider{W: 800, H: 600}, 800, 600},
		{"hidpi", gpucontext.NullWindowProvider{W: 800, H: 600, SF: 2}, 1600, 1200},
		{"fractional", gpucontext.NullWindowProvider{W: 801, H: 601, SF: 1.25}, 1001, 751},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := New(tt.win).PixelSize()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PixelSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestActiveViewport(t *testing.T) {
	if New(nil).ActiveViewport() != nil {
		t.Error("ActiveViewport() without a window should be nil")
	}
	h := New(gpucontext.NullWindowProvider{W: 10, H: 10})
	if h.ActiveViewport() == nil {
		t.Fatal("ActiveViewport() = nil")
	}
	_ = h.Close()
	if h.ActiveViewport() != nil {
		t.Error("ActiveViewport() after Close should be nil")
	}
}

func TestDrawCreatesTextureLazily(t *testing.T) {
	h, sys := newSystem(t, gpucontext.NullWindowProvider{W: 200, H: 100})
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}

	sys.SetGeometry(gghud.Geometry{Width: 20, Height: 10, OffsetX: 5, OffsetY: 5, Anchor: gghud.AnchorBottomRight})
	sys.SetVisible(true)

	// Nothing painted yet.
	if err := h.Draw(dc); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(creator.textures) != 0 || len(dc.draws) != 0 {
		t.Fatalf("uncommitted texture drawn: created=%d draws=%d", len(creator.textures), len(dc.draws))
	}

	sys.Render(fill{color.NRGBA{R: 10, G: 20, B: 30, A: 40}})
	if err := h.Draw(dc); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.textures))
	}
	tex := creator.textures[0]
	if tex.width != 20 || tex.height != 10 {
		t.Errorf("texture size = %dx%d, want 20x10", tex.width, tex.height)
	}
	if got := tex.data[:4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 40 {
		t.Errorf("first pixel = %v, want RGBA [10 20 30 40]", got)
	}
	if tex.premultiplied == nil || *tex.premultiplied {
		t.Error("texture not marked straight alpha")
	}
	if len(dc.draws) != 1 || dc.draws[0].x != 175 || dc.draws[0].y != 85 {
		t.Errorf("draws = %+v, want one at (175, 85)", dc.draws)
	}

	// Unchanged content is drawn without re-upload.
	if err := h.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 0 || len(creator.textures) != 1 {
		t.Errorf("clean frame uploaded: updated=%d created=%d", tex.updated, len(creator.textures))
	}

	sys.Render(fill{color.NRGBA{R: 1, A: 255}})
	if err := h.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 1 || tex.data[0] != 1 {
		t.Errorf("repaint not uploaded: updated=%d data[0]=%d", tex.updated, tex.data[0])
	}
}

func TestDrawHiddenOverlay(t *testing.T) {
	h, sys := newSystem(t, gpucontext.NullWindowProvider{W: 100, H: 100})
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}

	sys.SetGeometry(gghud.Geometry{Width: 10, Height: 10})
	sys.Render(fill{color.NRGBA{A: 255}})
	if err := h.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if len(dc.draws) != 0 || len(creator.textures) != 0 {
		t.Errorf("hidden overlay drawn: %d draws", len(dc.draws))
	}
}

func TestResizeDefersDestroy(t *testing.T) {
	h, sys := newSystem(t, gpucontext.NullWindowProvider{W: 100, H: 100})
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	sys.SetVisible(true)

	sys.SetGeometry(gghud.Geometry{Width: 10, Height: 10})
	sys.Render(fill{color.NRGBA{A: 255}})
	if err := h.Draw(dc); err != nil {
		t.Fatal(err)
	}
	old := creator.textures[0]

	sys.SetGeometry(gghud.Geometry{Width: 20, Height: 20})
	if old.destroyed {
		t.Fatal("old GPU texture destroyed before its successor exists")
	}
	sys.Render(fill{color.NRGBA{A: 255}})
	if err := h.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("created %d textures, want 2", len(creator.textures))
	}
	if !old.destroyed {
		t.Error("old GPU texture not destroyed after replacement")
	}
	if creator.textures[1].destroyed {
		t.Error("new GPU texture destroyed")
	}
}

func TestDrawErrors(t *testing.T) {
	t.Run("no creator", func(t *testing.T) {
		h, sys := newSystem(t, gpucontext.NullWindowProvider{W: 100, H: 100})
		sys.SetGeometry(gghud.Geometry{Width: 10, Height: 10})
		sys.SetVisible(true)
		sys.Render(fill{color.NRGBA{A: 255}})
		if err := h.Draw(&mockDrawer{}); !errors.Is(err, ErrNoTextureCreator) {
			t.Errorf("Draw() error = %v, want ErrNoTextureCreator", err)
		}
	})

	t.Run("creation fails then recovers", func(t *testing.T) {
		h, sys := newSystem(t, gpucontext.NullWindowProvider{W: 100, H: 100})
		creator := &mockCreator{failNext: true}
		dc := &mockDrawer{creator: creator}
		sys.SetGeometry(gghud.Geometry{Width: 10, Height: 10})
		sys.SetVisible(true)
		sys.Render(fill{color.NRGBA{A: 255}})
		if err := h.Draw(dc); err == nil {
			t.Fatal("Draw() succeeded with failing creator")
		}
		if err := h.Draw(dc); err != nil {
			t.Fatalf("Draw() retry error = %v", err)
		}
		if len(dc.draws) != 1 {
			t.Errorf("draws = %d, want 1", len(dc.draws))
		}
	})

	t.Run("closed", func(t *testing.T) {
		h := New(gpucontext.NullWindowProvider{W: 1, H: 1})
		_ = h.Close()
		if err := h.Draw(&mockDrawer{}); !errors.Is(err, ErrClosed) {
			t.Errorf("Draw() error = %v, want ErrClosed", err)
		}
	})

	t.Run("nil drawer", func(t *testing.T) {
		h := New(gpucontext.NullWindowProvider{W: 1, H: 1})
		if err := h.Draw(nil); err != nil {
			t.Errorf("Draw(nil) error = %v", err)
		}
	})
}

func TestCloseDestroysGPUTextures(t *testing.T) {
	h := New(gpucontext.NullWindowProvider{W: 100, H: 100})
	sys := gghud.NewSystem()
	sys.Attach(h)
	creator := &mockCreator{}
	sys.SetGeometry(gghud.Geometry{Width: 10, Height: 10})
	sys.SetVisible(true)
	sys.Render(fill{color.NRGBA{A: 255}})
	if err := h.Draw(&mockDrawer{creator: creator}); err != nil {
		t.Fatal(err)
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal("second Close() failed")
	}
	if !creator.textures[0].destroyed {
		t.Error("GPU texture not destroyed on Close")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	h := New(gpucontext.NullWindowProvider{W: 1, H: 1})
	if _, err := h.Backend().Textures().CreateTexture("t", 1, 1, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture() error = %v", err)
	}
}

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	dst := make([]byte, 8)
	bgraToRGBA(dst, src)
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("bgraToRGBA = %v, want %v", dst, want)
		}
	}
}

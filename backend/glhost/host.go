// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glhost draws gghud overlays with OpenGL 3.3 core.
//
// Each overlay texture is an RGBA8 GL texture fed through a pixel unpack
// buffer: Map maps the buffer for writing and Unmap uploads it with a
// BGRA transfer, so painting never stalls on the texture itself.
//
// All methods need the GL context that was current when New was called.
package glhost

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/backend/internal/store"
)

// ErrUnsupportedFormat is returned for texture formats other than
// gghud.SurfaceFormat.
var ErrUnsupportedFormat = errors.New("glhost: unsupported texture format")

// FramebufferSizeFunc reports the drawable size in pixels, for example
// (*glfw.Window).GetFramebufferSize.
type FramebufferSizeFunc func() (width, height int)

// Host is a gghud.Host for an OpenGL window. It is not safe for concurrent
// use.
type Host struct {
	size  FramebufferSizeFunc
	store *store.Store

	program uint32
	vao     uint32
	uRect   int32
	uTex    int32

	closed bool
}

// New compiles the overlay shader. A GL 3.3 core context must be current.
func New(size FramebufferSizeFunc) (*Host, error) {
	program, err := NewProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	h := &Host{size: size, program: program}
	h.uRect = gl.GetUniformLocation(program, gl.Str("uRect\x00"))
	h.uTex = gl.GetUniformLocation(program, gl.Str("uTex\x00"))
	gl.GenVertexArrays(1, &h.vao)
	h.store = store.New(h.newTexture)
	return h, nil
}

// PrepareOverlays implements gghud.Host.
func (h *Host) PrepareOverlays() {}

// ActiveViewport implements gghud.Host.
func (h *Host) ActiveViewport() gghud.Viewport {
	if h.size == nil || h.closed {
		return nil
	}
	return h
}

// Backend implements gghud.Host.
func (h *Host) Backend() gghud.Backend { return h.store }

// PixelSize implements gghud.Viewport.
func (h *Host) PixelSize() (width, height int) {
	if h.size == nil {
		return 0, 0
	}
	w, ht := h.size()
	return max(0, w), max(0, ht)
}

// Draw draws every visible overlay over the current framebuffer.
func (h *Host) Draw() {
	if h.closed {
		return
	}
	w, ht := h.PixelSize()
	layers := h.store.Layers(w, ht)
	if len(layers) == 0 {
		return
	}

	gl.Viewport(0, 0, int32(w), int32(ht))
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(h.program)
	gl.BindVertexArray(h.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(h.uTex, 0)

	for _, l := range layers {
		t, ok := l.Texture.(*texture)
		if !ok || !t.committed {
			continue
		}
		if l.Blend == gghud.BlendReplace {
			gl.Disable(gl.BLEND)
		} else {
			gl.Enable(gl.BLEND)
			gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		}
		x0, y0, x1, y1 := ndcRect(l.Rect, w, ht)
		gl.Uniform4f(h.uRect, x0, y0, x1, y1)
		gl.BindTexture(gl.TEXTURE_2D, t.tex)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
}

// Close deletes every texture and the shader. It is idempotent.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.store.Close()
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.program != 0 {
		gl.DeleteProgram(h.program)
	}
}

func (h *Host) newTexture(name string, width, height int, format gputypes.TextureFormat) (gghud.Texture, error) {
	if format != gghud.SurfaceFormat {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("glhost: texture %s: invalid size %dx%d", name, width, height)
	}
	t := &texture{name: name, width: width, height: height}

	gl.GenTextures(1, &t.tex)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenBuffers(1, &t.pbo)
	return t, nil
}

// texture is a GL texture with a pixel unpack buffer for uploads.
type texture struct {
	name   string
	width  int
	height int

	tex uint32
	pbo uint32

	mapped    bool
	committed bool
}

func (t *texture) Name() string              { return t.name }
func (t *texture) Width() int                { return t.width }
func (t *texture) Height() int               { return t.height }
func (t *texture) Buffer() gghud.PixelBuffer { return t }

func (t *texture) size() int { return t.width * t.height * gghud.BytesPerPixel }

// Map orphans the unpack buffer and maps it for writing. It returns nil if
// the driver refuses or the buffer is already mapped.
func (t *texture) Map() []byte {
	if t.mapped || t.pbo == 0 {
		return nil
	}
	n := t.size()
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, t.pbo)
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, n, nil, gl.STREAM_DRAW)
	p := gl.MapBufferRange(gl.PIXEL_UNPACK_BUFFER, 0, n, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	if p == nil {
		gghud.Logger().Warn("glhost: map failed", "texture", t.name, "glError", gl.GetError())
		return nil
	}
	t.mapped = true
	return unsafe.Slice((*byte)(p), n)
}

// Unmap releases the mapping and copies the buffer into the texture.
func (t *texture) Unmap() {
	if !t.mapped {
		return
	}
	t.mapped = false
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, t.pbo)
	defer gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	if !gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER) {
		// Buffer contents were lost; keep the previous frame.
		gghud.Logger().Debug("glhost: unmap lost buffer contents", "texture", t.name)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height),
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, gl.PtrOffset(0))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	t.committed = true
}

// Destroy deletes the texture and its unpack buffer.
func (t *texture) Destroy() {
	if t.mapped {
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, t.pbo)
		gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER)
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
		t.mapped = false
	}
	if t.pbo != 0 {
		gl.DeleteBuffers(1, &t.pbo)
		t.pbo = 0
	}
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
		t.tex = 0
	}
	t.committed = false
}

// ndcRect converts a pixel rectangle with a top-left origin to normalized
// device coordinates.
func ndcRect(r image.Rectangle, viewportW, viewportH int) (x0, y0, x1, y1 float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return 0, 0, 0, 0
	}
	sx := 2 / float32(viewportW)
	sy := 2 / float32(viewportH)
	x0 = float32(r.Min.X)*sx - 1
	x1 = float32(r.Max.X)*sx - 1
	y0 = 1 - float32(r.Min.Y)*sy
	y1 = 1 - float32(r.Max.Y)*sy
	return x0, y0, x1, y1
}

// uRect holds (left, top, right, bottom) in NDC. Vertex order is a
// triangle strip over the quad corners.
const vertexSource = `
#version 330 core
uniform vec4 uRect;
out vec2 vUV;
void main() {
    vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
    vUV = corner;
    gl_Position = vec4(mix(uRect.x, uRect.z, corner.x), mix(uRect.y, uRect.w, corner.y), 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = texture(uTex, vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("glhost: shader compile error: %s", log)
	}
	return sh, nil
}

// NewProgram compiles and links a vertex and fragment shader pair. Sources
// must be NUL-terminated.
func NewProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("glhost: program link error: %s", log)
	}
	return prog, nil
}

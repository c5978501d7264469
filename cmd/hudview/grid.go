package main

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gghud/backend/glhost"
)

// grid is a flat line grid on the XZ plane with a highlighted north axis.
type grid struct {
	program uint32
	vao     uint32
	vbo     uint32
	uMVP    int32
	uColor  int32
	lines   int32
	axis    int32
}

func newGrid(half int, step float32) (*grid, error) {
	program, err := glhost.NewProgram(gridVertexSource, gridFragmentSource)
	if err != nil {
		return nil, err
	}
	g := &grid{program: program}
	g.uMVP = gl.GetUniformLocation(program, gl.Str("uMVP\x00"))
	g.uColor = gl.GetUniformLocation(program, gl.Str("uColor\x00"))

	verts := gridVertices(half, step)
	g.lines = int32(len(verts)/3) - 2
	g.axis = 2

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g, nil
}

// gridVertices returns line endpoints for a (2*half+1)² grid followed by
// one line from the origin toward -Z (north).
func gridVertices(half int, step float32) []float32 {
	ext := float32(half) * step
	var v []float32
	for i := -half; i <= half; i++ {
		p := float32(i) * step
		v = append(v, p, 0, -ext, p, 0, ext)
		v = append(v, -ext, 0, p, ext, 0, p)
	}
	return append(v, 0, 0.01, 0, 0, 0.01, -ext)
}

func (g *grid) draw(mvp mgl32.Mat4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(g.program)
	gl.UniformMatrix4fv(g.uMVP, 1, false, &mvp[0])
	gl.BindVertexArray(g.vao)
	gl.Uniform4f(g.uColor, 0.45, 0.50, 0.55, 1)
	gl.DrawArrays(gl.LINES, 0, g.lines)
	gl.Uniform4f(g.uColor, 0.95, 0.25, 0.20, 1)
	gl.DrawArrays(gl.LINES, g.lines, g.axis)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (g *grid) delete() {
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteProgram(g.program)
}

const gridVertexSource = `
#version 330 core
layout(location=0) in vec3 aPos;
uniform mat4 uMVP;
void main() {
    gl_Position = uMVP * vec4(aPos, 1.0);
}
` + "\x00"

const gridFragmentSource = `
#version 330 core
uniform vec4 uColor;
out vec4 FragColor;
void main() {
    FragColor = uColor;
}
` + "\x00"

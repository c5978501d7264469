// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compass

import (
	"errors"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// painter draws compass parts around a fixed center in device pixels.
//
// Gradient brushes are evaluated in device space, so every point is
// transformed here instead of through the context matrix. Fill and stroke
// errors are collected in err.
type painter struct {
	dc     *gg.Context
	cx, cy float64
	err    error
}

// rgba8 converts 8-bit channels to a gg color.
func rgba8(r, g, b, a uint8) gg.RGBA {
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

func rgb8(r, g, b uint8) gg.RGBA { return rgba8(r, g, b, 255) }

// polar returns the point at distance d from the center, angle degrees
// clockwise from straight up.
func (p *painter) polar(d, angle float64) (x, y float64) {
	s, c := math.Sincos(angle * math.Pi / 180)
	return p.cx + d*s, p.cy - d*c
}

// rotate maps a center-relative point rotated clockwise by angle degrees
// to device space.
func (p *painter) rotate(x, y, angle float64) (float64, float64) {
	s, c := math.Sincos(angle * math.Pi / 180)
	return p.cx + x*c - y*s, p.cy + x*s + y*c
}

func (p *painter) fill(preserve bool) {
	var err error
	if preserve {
		err = p.dc.FillPreserve()
	} else {
		err = p.dc.Fill()
	}
	p.err = errors.Join(p.err, err)
}

func (p *painter) stroke(c gg.RGBA, width float64) {
	p.dc.SetStrokeBrush(gg.Solid(c))
	p.dc.SetLineWidth(width)
	p.err = errors.Join(p.err, p.dc.Stroke())
}

func (p *painter) circle(r float64) {
	p.dc.DrawCircle(p.cx, p.cy, r)
}

// bezel draws the drop-shadow rings, the metallic rim and the dark face.
func (p *painter) bezel(radius float64) {
	for i := range 5 {
		p.circle(radius + float64(i))
		p.stroke(rgba8(0, 0, 0, uint8(50-i*10)), 1)
	}

	// Sweep angles grow clockwise in device space: 0.25 is the bottom of
	// the rim and 0.75 the top, which carries the highlight.
	rim := gg.NewSweepGradientBrush(p.cx, p.cy, 0).
		AddColorStop(0.00, rgb8(100, 100, 110)).
		AddColorStop(0.25, rgb8(60, 60, 70)).
		AddColorStop(0.50, rgb8(100, 100, 110)).
		AddColorStop(0.75, rgb8(140, 140, 150)).
		AddColorStop(1.00, rgb8(100, 100, 110))
	p.circle(radius)
	p.dc.SetFillBrush(rim)
	p.fill(true)
	p.stroke(rgb8(80, 80, 90), 2)

	face := radius - 5
	if face <= 0 {
		return
	}
	bg := gg.NewRadialGradientBrush(p.cx, p.cy, 0, face).
		AddColorStop(0.0, rgb8(40, 40, 45)).
		AddColorStop(0.7, rgb8(25, 25, 30)).
		AddColorStop(1.0, rgb8(15, 15, 20))
	p.circle(face)
	p.dc.SetFillBrush(bg)
	p.fill(false)
}

// rose draws the heading chevron and the center hub, rotated clockwise by
// angle degrees.
func (p *painter) rose(radius, angle float64) {
	chevronH := radius * 0.45
	chevronW := radius * 0.55
	tipY := -radius * 0.6

	chevron := [][2]float64{
		{0, tipY},
		{-chevronW * 0.5, chevronH * 0.3},
		{-chevronW * 0.25, chevronH * 0.6},
		{0, chevronH * 0.4},
		{chevronW * 0.25, chevronH * 0.6},
		{chevronW * 0.5, chevronH * 0.3},
	}

	x0, y0 := p.rotate(0, tipY, angle)
	x1, y1 := p.rotate(0, chevronH, angle)
	body := gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0.0, rgb8(255, 90, 90)).
		AddColorStop(0.3, rgb8(240, 40, 40)).
		AddColorStop(0.7, rgb8(180, 10, 10)).
		AddColorStop(1.0, rgb8(120, 0, 0))
	p.polygon(chevron, 1, angle)
	p.dc.SetFillBrush(body)
	p.fill(true)
	p.stroke(rgb8(60, 0, 0), 2)

	for i := range 4 {
		p.polygon(chevron, 1+float64(i)*0.03, angle)
		p.stroke(rgba8(255, 50, 50, uint8(120-i*30)), 1)
	}

	hubR := radius * 0.08
	if hubR <= 0 {
		return
	}
	hub := gg.NewRadialGradientBrush(p.cx, p.cy, 0, hubR).
		AddColorStop(0.0, rgb8(250, 250, 255)).
		AddColorStop(0.4, rgb8(100, 100, 120)).
		AddColorStop(1.0, rgb8(40, 40, 50))
	p.circle(hubR)
	p.dc.SetFillBrush(hub)
	p.fill(true)
	p.stroke(rgb8(180, 180, 200), 1)
}

func (p *painter) polygon(pts [][2]float64, scale, angle float64) {
	for i, pt := range pts {
		x, y := p.rotate(pt[0]*scale, pt[1]*scale, angle)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.ClosePath()
}

// ring draws the fixed ticks, cardinal letters and degree labels.
func (p *painter) ring(l layout, cardinal, degree text.Face) {
	outer := l.radius - l.inset

	for angle := 0; angle < 360; angle += 10 {
		a := float64(angle)
		length, width, c := l.minorTick, 1.5, rgb8(120, 120, 120)
		if angle%30 == 0 {
			length, width, c = l.majorTick, 2, rgb8(180, 180, 180)
		}
		x0, y0 := p.polar(outer, a)
		x1, y1 := p.polar(outer-length, a)
		p.dc.DrawLine(x0, y0, x1, y1)
		p.stroke(c, width)
	}

	if cardinal != nil {
		p.dc.SetFont(cardinal)
		p.dc.SetRGB(1, 1, 1)
		for angle := 0; angle < 360; angle += 90 {
			x, y := p.polar(l.cardinalRadius-18, float64(angle))
			p.dc.DrawStringAnchored(cardinals[angle], x, y, 0.5, 0.5)
		}
	}

	if degree != nil {
		p.dc.SetFont(degree)
		p.dc.SetColor(rgb8(160, 160, 160))
		for angle := 0; angle < 360; angle += 30 {
			x, y := p.polar(l.degreeRadius-2, float64(angle))
			p.dc.DrawStringAnchored(DegreeLabel(angle), x, y, 0.5, 0.5)
		}
	}
}
